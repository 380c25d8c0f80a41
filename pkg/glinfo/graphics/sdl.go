// Package graphics is the SDL implementation of the glinfo driver:
// offscreen context creation through a 1x1 hidden window.
package graphics

import (
	"fmt"
	"strings"

	"github.com/glinf/glinf/pkg/glinfo"
	"github.com/glinf/glinf/pkg/glinfo/graphics/gl"
	"github.com/glinf/glinf/pkg/logger"
	"github.com/glinf/glinf/pkg/thread"
	"github.com/veandco/go-sdl2/sdl"
)

type SDL struct {
	log *logger.Logger
}

// NewSDL initializes the SDL video subsystem. Close undoes it; the
// pair brackets the whole negotiation+report sequence.
func NewSDL(log *logger.Logger) (*SDL, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}
	return &SDL{log: log}, nil
}

func (s *SDL) Close() { sdl.Quit() }

// Open attempts a context for exactly v. Any partially created
// window/context is released before an error returns, so negotiation
// never accumulates handles across attempts.
func (s *SDL) Open(api glinfo.API, profile glinfo.Profile, v glinfo.Version) (glinfo.Context, error) {
	if err := setGLAttrs(api, profile, v); err != nil {
		return nil, fmt.Errorf("gl attrs: %w", err)
	}

	var w *sdl.Window
	var err error
	// window creation must happen on the main thread (macOS)
	thread.MainMaybe(func() {
		w, err = sdl.CreateWindow("glinf", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
			1, 1, sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
	})
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}

	glc, err := w.GLCreateContext()
	if err != nil {
		if err1 := destroyWindow(w); err1 != nil {
			s.log.Warn().Err(err1).Msg("window leak")
		}
		return nil, fmt.Errorf("gl context: %w", err)
	}

	c := &context{w: w, glc: glc, log: s.log}
	if err = w.GLMakeCurrent(glc); err != nil {
		c.Destroy()
		return nil, fmt.Errorf("gl bind: %w", err)
	}
	if err = gl.InitWithProcAddrFunc(sdl.GLGetProcAddress); err != nil {
		c.Destroy()
		return nil, fmt.Errorf("gl load: %w", err)
	}

	c.api = grantedAPI()
	c.granted = grantedVersion()
	c.profile = grantedProfile(profile)
	return c, nil
}

func setGLAttrs(api glinfo.API, profile glinfo.Profile, v glinfo.Version) error {
	sdl.GLResetAttributes()
	attrs := [][2]int{
		{int(sdl.GL_CONTEXT_MAJOR_VERSION), v.Major},
		{int(sdl.GL_CONTEXT_MINOR_VERSION), v.Minor},
	}
	switch {
	case api == glinfo.APIOpenGLES:
		attrs = append(attrs, [2]int{int(sdl.GL_CONTEXT_PROFILE_MASK), sdl.GL_CONTEXT_PROFILE_ES})
	case v.AtLeast(3, 2) && profile == glinfo.ProfileCompat:
		attrs = append(attrs, [2]int{int(sdl.GL_CONTEXT_PROFILE_MASK), sdl.GL_CONTEXT_PROFILE_COMPATIBILITY})
	case v.AtLeast(3, 2):
		attrs = append(attrs, [2]int{int(sdl.GL_CONTEXT_PROFILE_MASK), sdl.GL_CONTEXT_PROFILE_CORE})
	}
	for _, a := range attrs {
		if err := sdl.GLSetAttribute(sdl.GLattr(a[0]), a[1]); err != nil {
			return err
		}
	}
	return nil
}

func destroyWindow(w *sdl.Window) (err error) {
	thread.MainMaybe(func() { err = w.Destroy() })
	return
}

// grantedAPI tells the two flavors apart by the version string prefix,
// since SDL has no direct query for it.
func grantedAPI() glinfo.API {
	if strings.HasPrefix(gl.GetString(gl.VERSION), "OpenGL ES") {
		return glinfo.APIOpenGLES
	}
	return glinfo.APIOpenGL
}

// grantedVersion reads GL_MAJOR/MINOR_VERSION, which only exist since
// 3.0; older contexts fall back to parsing the version string.
func grantedVersion() glinfo.Version {
	gl.GetError() // drain
	major := gl.GetIntegerv(gl.MAJOR_VERSION)
	minor := gl.GetIntegerv(gl.MINOR_VERSION)
	if gl.GetError() == gl.NO_ERROR && major > 0 {
		return glinfo.Version{Major: int(major), Minor: int(minor)}
	}
	return glinfo.ParseGLVersion(gl.GetString(gl.VERSION))
}

// grantedProfile reads the profile the driver actually built. Contexts
// without a profile mask (pre-3.2, GLES) report the requested one.
func grantedProfile(requested glinfo.Profile) glinfo.Profile {
	gl.GetError() // drain
	mask := gl.GetIntegerv(gl.CONTEXT_PROFILE_MASK)
	if gl.GetError() != gl.NO_ERROR || mask == 0 {
		return requested
	}
	if uint32(mask)&gl.CONTEXT_COMPATIBILITY_PROFILE_BIT != 0 {
		return glinfo.ProfileCompat
	}
	return glinfo.ProfileCore
}

type context struct {
	w       *sdl.Window
	glc     sdl.GLContext
	log     *logger.Logger
	api     glinfo.API
	granted glinfo.Version
	profile glinfo.Profile
}

func (c *context) API() glinfo.API                { return c.api }
func (c *context) Granted() glinfo.Version        { return c.granted }
func (c *context) GrantedProfile() glinfo.Profile { return c.profile }
func (c *context) MakeCurrent() error             { return c.w.GLMakeCurrent(c.glc) }
func (c *context) QueryInt(key uint32) int32      { return gl.GetIntegerv(key) }
func (c *context) QueryString(key uint32) string  { return gl.GetString(key) }

func (c *context) Destroy() {
	sdl.GLDeleteContext(c.glc)
	if err := destroyWindow(c.w); err != nil {
		c.log.Warn().Err(err).Msg("window leak")
	}
}

// Extensions enumerates through glGetStringi when the context has it,
// else through the classic space-separated extension string.
func (c *context) Extensions() []string {
	if gl.HasGetStringi() {
		gl.GetError() // drain
		n := gl.GetIntegerv(gl.NUM_EXTENSIONS)
		if gl.GetError() == gl.NO_ERROR && n > 0 {
			out := make([]string, 0, n)
			for i := int32(0); i < n; i++ {
				out = append(out, gl.GetStringi(gl.EXTENSIONS, uint32(i)))
			}
			return out
		}
	}
	return strings.Split(gl.GetString(gl.EXTENSIONS), " ")
}

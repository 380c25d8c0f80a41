package glinfo

// API selects between the desktop and the embedded context flavor.
type API int

const (
	APIUnspecified API = iota
	APIOpenGL
	APIOpenGLES
)

func (a API) String() string {
	if a == APIOpenGLES {
		return "OpenGLES"
	}
	return "OpenGL"
}

// Profile is the desktop split between the reduced modern feature set
// and the legacy-compatible one. Not meaningful for GLES or for
// desktop versions below 3.2.
type Profile int

const (
	ProfileCore Profile = iota
	ProfileCompat
)

func (p Profile) String() string {
	if p == ProfileCompat {
		return "compatibility"
	}
	return "core"
}

// Request is the parsed context specification handed over by the CLI
// layer. Versions bounds what Negotiate may probe.
type Request struct {
	API      API
	Profile  Profile
	Versions Range
}

// Driver creates offscreen contexts. The only real implementation sits
// on SDL (pkg/glinfo/graphics); tests plug in doubles to simulate
// partial version support without a graphics stack.
type Driver interface {
	// Open attempts to create a context for exactly v with the given
	// flavor and profile. Implementations release every partially
	// created resource before returning an error.
	Open(api API, profile Profile, v Version) (Context, error)
	// Close tears the windowing system down.
	Close()
}

// Context is a live driver connection able to answer capability
// queries. Granted may legitimately be above the version it was
// opened with, since drivers silently upgrade.
type Context interface {
	API() API
	Granted() Version
	GrantedProfile() Profile
	MakeCurrent() error
	Destroy()
	// QueryInt resolves a single integer capability. Unsupported keys
	// are not an error, the driver's sentinel value is reported as-is.
	QueryInt(key uint32) int32
	QueryString(key uint32) string
	Extensions() []string
}

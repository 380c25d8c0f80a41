package glinfo

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Limit is one resolved capability row. Symbol names the underlying
// query so the value can be traced back to the GL enum.
type Limit struct {
	Label  string
	Value  int32
	Symbol string
}

type Group struct {
	Title  string
	Limits []Limit
}

// Report is the complete capability snapshot of a live context. The
// four driver strings are opaque pass-through values; empty or garbage
// results stay display values, never errors.
type Report struct {
	Header     string
	Version    string
	SLVersion  string
	Vendor     string
	Renderer   string
	Groups     []Group
	Extensions []string // nil unless requested
}

type limitQuery struct {
	label  string
	symbol string
	key    uint32
	scale  int32
}

type limitGroup struct {
	title   string
	queries []limitQuery
}

// The fixed query battery, issued in this order. The two scaled rows
// derive component counts from attribute/buffer counts (4 components
// each).
var battery = []limitGroup{
	{title: "Texture limits", queries: []limitQuery{
		{label: "1D / 2D size:", symbol: "GL_MAX_TEXTURE_SIZE", key: MaxTextureSize},
		{label: "3D size:", symbol: "GL_MAX_3D_TEXTURE_SIZE", key: Max3DTextureSize},
		{label: "Cubemap size:", symbol: "GL_MAX_CUBE_MAP_TEXTURE_SIZE", key: MaxCubeMapTextureSize},
		{label: "Arr. layers:", symbol: "GL_MAX_ARRAY_TEXTURE_LAYERS", key: MaxArrayTextureLayers},
	}},
	{title: "Framebuffer object limits", queries: []limitQuery{
		{label: "Width:", symbol: "GL_MAX_FRAMEBUFFER_WIDTH", key: MaxFramebufferWidth},
		{label: "Height:", symbol: "GL_MAX_FRAMEBUFFER_HEIGHT", key: MaxFramebufferHeight},
		{label: "Color Attach.:", symbol: "GL_MAX_COLOR_ATTACHMENTS", key: MaxColorAttachments},
		{label: "Draw buffers:", symbol: "GL_MAX_DRAW_BUFFERS", key: MaxDrawBuffers},
	}},
	{title: "Maximum number of uniform components in shader stage", queries: []limitQuery{
		{label: "Vertex:", symbol: "GL_MAX_VERTEX_UNIFORM_COMPONENTS", key: MaxVertexUniformComponents},
		{label: "Tess. Ctrl.:", symbol: "GL_MAX_TESS_CONTROL_UNIFORM_COMPONENTS", key: MaxTessControlUniformComponents},
		{label: "Tess. Eval.:", symbol: "GL_MAX_TESS_EVALUATION_UNIFORM_COMPONENTS", key: MaxTessEvaluationUniformComponents},
		{label: "Geometry:", symbol: "GL_MAX_GEOMETRY_UNIFORM_COMPONENTS", key: MaxGeometryUniformComponents},
		{label: "Fragment:", symbol: "GL_MAX_FRAGMENT_UNIFORM_COMPONENTS", key: MaxFragmentUniformComponents},
		{label: "Compute:", symbol: "GL_MAX_COMPUTE_UNIFORM_COMPONENTS", key: MaxComputeUniformComponents},
	}},
	{title: "Maximum number of input components in shader stage", queries: []limitQuery{
		{label: "Vertex:", symbol: "4*GL_MAX_VERTEX_ATTRIBS", key: MaxVertexAttribs, scale: 4},
		{label: "Tess. Ctrl.:", symbol: "GL_MAX_TESS_CONTROL_INPUT_COMPONENTS", key: MaxTessControlInputComponents},
		{label: "Tess. Eval.:", symbol: "GL_MAX_TESS_EVALUATION_INPUT_COMPONENTS", key: MaxTessEvaluationInputComponents},
		{label: "Geometry:", symbol: "GL_MAX_GEOMETRY_INPUT_COMPONENTS", key: MaxGeometryInputComponents},
		{label: "Fragment:", symbol: "GL_MAX_FRAGMENT_INPUT_COMPONENTS", key: MaxFragmentInputComponents},
	}},
	{title: "Maximum number of output components in shader stage", queries: []limitQuery{
		{label: "Vertex:", symbol: "GL_MAX_VERTEX_OUTPUT_COMPONENTS", key: MaxVertexOutputComponents},
		{label: "Tess. Ctrl.:", symbol: "GL_MAX_TESS_CONTROL_OUTPUT_COMPONENTS", key: MaxTessControlOutputComponents},
		{label: "Tess. Eval.:", symbol: "GL_MAX_TESS_EVALUATION_OUTPUT_COMPONENTS", key: MaxTessEvaluationOutputComponents},
		{label: "Geometry:", symbol: "GL_MAX_GEOMETRY_OUTPUT_COMPONENTS", key: MaxGeometryOutputComponents},
		{label: "Fragment:", symbol: "4*GL_MAX_DRAW_BUFFERS", key: MaxDrawBuffers, scale: 4},
	}},
	{title: "Maximum number of samplers in shader stage", queries: []limitQuery{
		{label: "Vertex:", symbol: "GL_MAX_VERTEX_TEXTURE_IMAGE_UNITS", key: MaxVertexTextureImageUnits},
		{label: "Tess. Ctrl.:", symbol: "GL_MAX_TESS_CONTROL_TEXTURE_IMAGE_UNITS", key: MaxTessControlTextureImageUnits},
		{label: "Tess. Eval.:", symbol: "GL_MAX_TESS_EVALUATION_TEXTURE_IMAGE_UNITS", key: MaxTessEvaluationTextureImageUnits},
		{label: "Geometry:", symbol: "GL_MAX_GEOMETRY_TEXTURE_IMAGE_UNITS", key: MaxGeometryTextureImageUnits},
		{label: "Fragment:", symbol: "GL_MAX_TEXTURE_IMAGE_UNITS", key: MaxTextureImageUnits},
		{label: "Compute:", symbol: "GL_MAX_COMPUTE_TEXTURE_IMAGE_UNITS", key: MaxComputeTextureImageUnits},
		{label: "Combined:", symbol: "GL_MAX_COMBINED_TEXTURE_IMAGE_UNITS", key: MaxCombinedTextureImageUnits},
	}},
}

// Build runs the fixed query battery against ctx. The context must be
// current; query failures are not detected here, whatever the driver
// returns is what gets reported.
func Build(ctx Context, withExtensions bool) *Report {
	granted := ctx.Granted()
	header := fmt.Sprintf("%s version %s", ctx.API(), granted)
	// profiles only exist for desktop contexts since 3.2
	if ctx.API() != APIOpenGLES && granted.AtLeast(3, 2) {
		header += fmt.Sprintf(" %s profile", ctx.GrantedProfile())
	}

	r := &Report{
		Header:    header,
		Version:   ctx.QueryString(QueryVersion),
		SLVersion: ctx.QueryString(QuerySLVersion),
		Vendor:    ctx.QueryString(QueryVendor),
		Renderer:  ctx.QueryString(QueryRenderer),
		Groups:    make([]Group, 0, len(battery)),
	}
	for _, g := range battery {
		out := Group{Title: g.title, Limits: make([]Limit, 0, len(g.queries))}
		for _, q := range g.queries {
			v := ctx.QueryInt(q.key)
			if q.scale > 1 {
				v *= q.scale
			}
			out.Limits = append(out.Limits, Limit{Label: q.label, Value: v, Symbol: q.symbol})
		}
		r.Groups = append(r.Groups, out)
	}
	if withExtensions {
		r.Extensions = normalizeExtensions(ctx.Extensions())
	}
	return r
}

// normalizeExtensions drops blanks, dedups and sorts ascending.
func normalizeExtensions(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, ext := range in {
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Render writes the report in its fixed textual layout.
func (r *Report) Render(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Context:    %s\n", r.Header)
	fmt.Fprintf(&b, "Version:    %s\n", r.Version)
	fmt.Fprintf(&b, "SL Version: %s\n", r.SLVersion)
	fmt.Fprintf(&b, "Vendor:     %s\n", r.Vendor)
	fmt.Fprintf(&b, "Renderer:   %s\n", r.Renderer)
	b.WriteString("Resource limitations:\n")
	for _, g := range r.Groups {
		fmt.Fprintf(&b, "  %s:\n", g.Title)
		for _, l := range g.Limits {
			fmt.Fprintf(&b, "    %-14s%5d  %s\n", l.Label, l.Value, l.Symbol)
		}
	}
	if r.Extensions != nil {
		b.WriteString("Extensions:\n")
		for _, ext := range r.Extensions {
			fmt.Fprintf(&b, "    %s\n", ext)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

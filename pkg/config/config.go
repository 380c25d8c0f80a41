package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glinf/glinf/pkg/glinfo"
	flag "github.com/spf13/pflag"
)

type AppConfig struct {
	Debug   bool
	Context Context
}

// Context holds the raw user-facing context options. Request turns
// them into a validated record for the negotiator.
type Context struct {
	Type       string
	Profile    string `fig:"profile" default:"core"`
	Version    string
	Extensions bool
}

// allows custom config path
var configPath string

func NewConfig() *AppConfig {
	c := &AppConfig{}
	c.WithFlags(flag.CommandLine)
	return c
}

// WithFlags registers the CLI flags over the config fields.
func (c *AppConfig) WithFlags(fs *flag.FlagSet) *AppConfig {
	fs.StringVarP(&c.Context.Type, "type", "t", "", "select context type: 'opengl' or 'opengles'")
	fs.StringVarP(&c.Context.Profile, "profile", "p", "core", "select context profile: 'core' or 'compat'")
	fs.StringVarP(&c.Context.Version, "version", "v", "", "select context version: MAJOR.MINOR")
	fs.BoolVarP(&c.Context.Extensions, "extensions", "e", false, "list supported extensions")
	fs.BoolVar(&c.Debug, "debug", false, "enable debug logging")
	fs.StringVarP(&configPath, "conf", "c", "", "set custom configuration file path")
	return c
}

// ParseFlags layers the option sources: flag defaults, then glinf.yaml
// and GLINF_* environment, then flags given on the command line.
func (c *AppConfig) ParseFlags() error {
	fs := flag.CommandLine
	flag.Parse()

	var file AppConfig
	if err := LoadConfig(&file, configPath); err != nil {
		return err
	}
	if !fs.Changed("debug") {
		c.Debug = file.Debug
	}
	if !fs.Changed("type") {
		c.Context.Type = file.Context.Type
	}
	if !fs.Changed("profile") && file.Context.Profile != "" {
		c.Context.Profile = file.Context.Profile
	}
	if !fs.Changed("version") {
		c.Context.Version = file.Context.Version
	}
	if !fs.Changed("extensions") {
		c.Context.Extensions = file.Context.Extensions
	}
	return nil
}

// Request validates the options into the parsed record the negotiator
// consumes. Defaults: unspecified type, core profile, default probe
// range. Matching is case-insensitive like the flags of the original
// glinf tool.
func (c Context) Request() (glinfo.Request, error) {
	req := glinfo.Request{Versions: glinfo.DefaultRange()}

	switch strings.ToLower(c.Type) {
	case "":
		req.API = glinfo.APIUnspecified
	case "opengl":
		req.API = glinfo.APIOpenGL
	case "opengles":
		req.API = glinfo.APIOpenGLES
	default:
		return req, fmt.Errorf("invalid type %q", c.Type)
	}

	switch strings.ToLower(c.Profile) {
	case "", "core":
		req.Profile = glinfo.ProfileCore
	case "compat", "compatibility":
		req.Profile = glinfo.ProfileCompat
	default:
		return req, fmt.Errorf("invalid profile %q", c.Profile)
	}

	if c.Version != "" {
		v, err := parseVersion(c.Version)
		if err != nil {
			return req, fmt.Errorf("invalid version %q", c.Version)
		}
		req.Versions = glinfo.Exact(v)
	}
	return req, nil
}

func parseVersion(s string) (glinfo.Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return glinfo.Version{}, fmt.Errorf("want MAJOR.MINOR, got %q", s)
	}
	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return glinfo.Version{}, err
	}
	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return glinfo.Version{}, err
	}
	return glinfo.Version{Major: int(major), Minor: int(minor)}, nil
}

package config

import (
	"errors"
	"os"

	"github.com/kkyr/fig"
)

const EnvPrefix = "GLINF"

// LoadConfig loads glinf.yaml into the given struct. The path param
// specifies a custom directory for the configuration file; without it
// a few conventional places are searched. Environment variables with
// the GLINF_ prefix override file values, and when no file exists the
// environment alone is used.
func LoadConfig(config any, path string) error {
	dirs := []string{path}
	if path == "" {
		dirs = append(dirs, ".", "configs")
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, home+"/.glinf")
		}
	}
	err := fig.Load(config, fig.File("glinf.yaml"), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) {
		return fig.Load(config, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	return err
}

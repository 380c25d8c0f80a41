package glinfo

import (
	"errors"

	"github.com/glinf/glinf/pkg/logger"
)

// ErrNoUsableContext is returned when the whole probe range is
// exhausted without the driver accepting any version.
var ErrNoUsableContext = errors.New("no usable context in the requested version range")

// Negotiate walks the (major, minor) lattice downwards from the range
// ceiling until the driver grants a context. An attempt counts as
// failed when creation errors, when the granted version is below the
// attempted one (silent downgrade), or when the context cannot be made
// current; each failed attempt is destroyed before the next is built,
// so at most one context is ever alive.
func Negotiate(drv Driver, req Request, log *logger.Logger) (Context, error) {
	try := req.Versions.Max
	for {
		ctx, err := drv.Open(req.API, req.Profile, try)
		if err == nil {
			switch granted := ctx.Granted(); {
			case granted.Less(try):
				log.Debug().Msgf("%s rejected, driver downgraded to %s", try, granted)
				ctx.Destroy()
			default:
				if err = ctx.MakeCurrent(); err == nil {
					log.Debug().Msgf("%s accepted, granted %s", try, granted)
					return ctx, nil
				}
				log.Debug().Err(err).Msgf("%s rejected, context not current", try)
				ctx.Destroy()
			}
		} else {
			log.Debug().Err(err).Msgf("%s rejected", try)
		}

		switch {
		case try.Minor == 0 && try.Major > req.Versions.Min.Major:
			try.Major--
			try.Minor = 9
		case try.Major > req.Versions.Min.Major || try.Minor > req.Versions.Min.Minor:
			try.Minor--
		default:
			return nil, ErrNoUsableContext
		}
	}
}

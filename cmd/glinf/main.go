package main

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/glinf/glinf/pkg/config"
	"github.com/glinf/glinf/pkg/glinfo"
	"github.com/glinf/glinf/pkg/glinfo/graphics"
	"github.com/glinf/glinf/pkg/logger"
	"github.com/glinf/glinf/pkg/thread"
	flag "github.com/spf13/pflag"
)

var Version = "?"

func main() {
	code := 0
	thread.MainWrapMaybe(func() { code = run() })
	os.Exit(code)
}

func run() int {
	conf := config.NewConfig()
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	if err := conf.ParseFlags(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log := logger.NewConsole(conf.Debug, "glinf", false)
	log.Debug().Msgf("version %s", Version)
	log.Debug().Msgf("config: %+v", conf)

	req, err := conf.Context.Request()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	drv, err := graphics.NewSDL(log)
	if err != nil {
		log.Error().Err(err).Msg("video init failed")
		return 1
	}
	defer drv.Close()

	ctx, err := glinfo.Negotiate(drv, req, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot create context")
		return 1
	}
	defer ctx.Destroy()

	if err = ctx.MakeCurrent(); err != nil {
		fmt.Fprintln(os.Stderr, "cannot make context current")
		return 1
	}

	rep := glinfo.Build(ctx, conf.Context.Extensions)
	if err = rep.Render(os.Stdout); err != nil {
		log.Error().Err(err).Msg("report write failed")
		return 1
	}
	return 0
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/launch-dashboard/internal/app"
	"github.com/lueurxax/launch-dashboard/internal/platform/config"
)

const (
	modeServe  = "serve"
	modeImport = "import"
)

func main() {
	mode := flag.String("mode", modeServe, "Service mode (serve, import)")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, &logger)

	if err := runMode(ctx, application, *mode); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("application stopped")
			return
		}

		logger.Fatal().Err(err).Str("mode", *mode).Msg("application error")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == config.AppEnvLocal {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func runMode(ctx context.Context, application *app.App, mode string) error {
	switch mode {
	case modeServe:
		return application.RunServer(ctx)
	case modeImport:
		return application.RunImport(ctx)
	default:
		return fmt.Errorf("unknown mode %q, usage: %s --mode=[%s|%s]", mode, os.Args[0], modeServe, modeImport)
	}
}

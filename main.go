package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"thunderhead/app"
	"thunderhead/hal"
	"thunderhead/internal/buildinfo"
	"thunderhead/internal/config"
	"thunderhead/internal/logging"
)

func main() {
	fs := pflag.NewFlagSet("thunderhead", pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "", "config file (json, yaml or toml)")
	showVersion := fs.Bool("version", false, "print version and exit")
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Println(buildinfo.String())
		return
	}

	if err := run(*configPath, fs); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, fs *pflag.FlagSet) error {
	cfg, err := config.Load(configPath, fs)
	if err != nil {
		return err
	}

	log, closer, err := logging.New(os.Stderr, cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Info().
		Str("version", buildinfo.String()).
		Bool("headless", cfg.Headless.Enabled).
		Uint64("seed", cfg.Strike.Seed).
		Msg("starting thunderhead")

	newApp := app.NewApp(cfg)
	if cfg.Headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Width:      cfg.Window.Width,
			Height:     cfg.Window.Height,
			PixelRatio: 1,
			Hz:         cfg.Headless.Hz,
			Ticks:      uint64(cfg.Headless.Ticks),
			Log:        log,
		})
	} else {
		err = hal.RunWindow(hal.WindowConfig{
			Title:         cfg.Window.Title + " (" + buildinfo.Short() + ")",
			Width:         cfg.Window.Width,
			Height:        cfg.Window.Height,
			MaxPixelRatio: cfg.Window.MaxPixelRatio,
			Log:           log,
		}, newApp)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("stopped")
		return err
	}
	log.Info().Msg("bye")
	return err
}

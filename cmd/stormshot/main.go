// Stormshot renders the storm offscreen on a simulated clock and writes each
// frame as a PNG. The same seed always produces the same frames.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"thunderhead/app"
	"thunderhead/hal"
	"thunderhead/internal/config"
	"thunderhead/internal/logging"
)

type options struct {
	config  string
	out     string
	frames  int
	fps     int
	start   time.Duration
	orbit   float64
	writers int
}

func main() {
	fs := pflag.NewFlagSet("stormshot", pflag.ExitOnError)
	var opt options
	fs.StringVarP(&opt.config, "config", "c", "", "config file (json, yaml or toml)")
	fs.StringVarP(&opt.out, "out", "o", "frames", "output directory")
	fs.IntVarP(&opt.frames, "frames", "n", 120, "number of frames to write")
	fs.IntVar(&opt.fps, "fps", 30, "simulated frames per second")
	fs.DurationVar(&opt.start, "start", 0, "simulated time of the first frame")
	fs.Float64Var(&opt.orbit, "orbit", 0, "horizontal drag per frame in pixels")
	fs.IntVar(&opt.writers, "writers", 4, "concurrent PNG encoders")
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(opt.config, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, closer, err := logging.New(os.Stderr, cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(cfg, opt, log); err != nil {
		log.Error().Err(err).Msg("stormshot failed")
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, opt options, log zerolog.Logger) error {
	if opt.frames <= 0 || opt.fps <= 0 {
		return fmt.Errorf("%w: frames %d fps %d", config.ErrInvalid, opt.frames, opt.fps)
	}
	if err := os.MkdirAll(opt.out, 0o755); err != nil {
		return err
	}

	clock := hal.NewManualClock()
	clock.Set(opt.start)
	host := hal.New(hal.HostConfig{
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		PixelRatio:    cfg.Window.MaxPixelRatio,
		MaxPixelRatio: cfg.Window.MaxPixelRatio,
		Clock:         clock,
		Log:           log,
	})
	storm, err := app.New(host, cfg, log)
	if err != nil {
		return err
	}
	defer storm.Close()

	frameDur := time.Second / time.Duration(opt.fps)
	g := new(errgroup.Group)
	g.SetLimit(max(opt.writers, 1))
	for i := range opt.frames {
		if opt.orbit != 0 {
			host.PushPointer(hal.PointerEvent{DX: opt.orbit})
		}
		if err := storm.Step(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		img := host.Snapshot()
		path := filepath.Join(opt.out, fmt.Sprintf("frame_%05d.png", i))
		g.Go(func() error {
			if err := gg.SavePNG(path, img); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			return nil
		})
		clock.Advance(frameDur)
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().
		Int("frames", opt.frames).
		Int("strikes", storm.Scheduler().Strikes()).
		Str("out", opt.out).
		Msg("frames written")
	return nil
}

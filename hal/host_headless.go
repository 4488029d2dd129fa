package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Width      int
	Height     int
	PixelRatio float64
	Hz         int
	Ticks      uint64 // 0 runs until ctx is done
	// Clock defaults to wall time.
	Clock Clock
	Log   zerolog.Logger
}

// RunHeadless steps the app at cfg.Hz on an offscreen framebuffer without
// opening a window.
func RunHeadless(ctx context.Context, newApp NewApp, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := New(HostConfig{
		Width:      cfg.Width,
		Height:     cfg.Height,
		PixelRatio: cfg.PixelRatio,
		Clock:      cfg.Clock,
		Log:        cfg.Log,
	})
	step, err := newApp(h)
	if err != nil {
		return err
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				cfg.Log.Info().Uint64("ticks", tick).Msg("headless run complete")
				return nil
			}
		}
	}
}

package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"thunderhead/hal"
	"thunderhead/internal/buildinfo"
	"thunderhead/internal/config"
	"thunderhead/internal/lightning"
	"thunderhead/internal/quarkgl"
)

var ErrNoFramebuffer = errors.New("display has no framebuffer")

// Storm owns one running animation: the stage, the strike scheduler and its
// timers. Step advances it by one frame.
type Storm struct {
	h   hal.HAL
	cfg config.Config
	log zerolog.Logger

	*stage
	fb      hal.Framebuffer
	timers  *lightning.Timers
	spawner *lightning.Spawner
	sched   *lightning.Scheduler

	width  int
	height int
	ratio  float64

	home    quarkgl.OrbitController
	hud     bool
	frames  uint64
	fps     float64
	fpsAt   time.Duration
	fpsBase uint64
}

// NewApp adapts New to the runners in package hal.
func NewApp(cfg config.Config) hal.NewApp {
	return func(h hal.HAL) (func() error, error) {
		s, err := New(h, cfg, h.Logger())
		if err != nil {
			return nil, err
		}
		return s.Step, nil
	}
}

// New builds the scene against h's framebuffer size and pixel ratio.
func New(h hal.HAL, cfg config.Config, log zerolog.Logger) (*Storm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fb := h.Display().Framebuffer()
	if fb == nil {
		return nil, ErrNoFramebuffer
	}

	s := &Storm{
		h:      h,
		cfg:    cfg,
		log:    log,
		fb:     fb,
		width:  fb.Width(),
		height: fb.Height(),
		ratio:  fb.PixelRatio(),
	}
	s.stage = newStage(cfg, s.width, s.height, s.ratio)
	s.home = *s.controls

	rng := lightning.NewRand(cfg.Strike.Seed)
	s.timers = lightning.NewTimers()
	s.spawner = lightning.NewSpawner(s.scene, s.timers, rng, cfg.Strike, log)
	s.sched = lightning.NewScheduler(cfg.Strike, rng, s.timers, s.spawner, s.flash, log)

	log.Info().
		Str("build", buildinfo.Short()).
		Int("width", s.width).
		Int("height", s.height).
		Float64("pixelRatio", s.ratio).
		Bool("bloom", cfg.Bloom.Strength > 0).
		Msg("storm ready")
	return s, nil
}

func (s *Storm) Scene() *quarkgl.Scene              { return s.scene }
func (s *Storm) Camera() *quarkgl.Camera            { return s.camera }
func (s *Storm) Controls() *quarkgl.OrbitController { return s.controls }
func (s *Storm) Flash() *quarkgl.PointLight         { return s.flash }
func (s *Storm) Composer() *quarkgl.Composer        { return s.composer }
func (s *Storm) Scheduler() *lightning.Scheduler    { return s.sched }
func (s *Storm) Spawner() *lightning.Spawner        { return s.spawner }
func (s *Storm) Frames() uint64                     { return s.frames }
func (s *Storm) HUD() bool                          { return s.hud }

// Size returns the logical viewport size and pixel ratio.
func (s *Storm) Size() (width, height int, ratio float64) {
	return s.width, s.height, s.ratio
}

// Resize sets the viewport to width x height at the current pixel ratio.
// Sizes below 1 are clamped.
func (s *Storm) Resize(width, height int) {
	s.resize(width, height, s.ratio)
}

func (s *Storm) resize(width, height int, ratio float64) {
	width, height = max(width, 1), max(height, 1)
	s.width, s.height, s.ratio = width, height, ratio
	s.stage.resize(width, height, ratio)
	s.fb.Resize(width, height, ratio)
	s.log.Debug().Int("width", width).Int("height", height).Float64("pixelRatio", ratio).Msg("viewport resized")
}

// Step runs one frame: input, strikes, camera, compose, present.
func (s *Storm) Step() error {
	now := s.h.Clock().Elapsed()

	if w, h, r := s.fb.Width(), s.fb.Height(), s.fb.PixelRatio(); w != s.width || h != s.height || r != s.ratio {
		s.resize(w, h, r)
	}

	if err := s.handleInput(now); err != nil {
		return err
	}

	s.sched.Update(now)
	s.controls.Update(s.camera)

	frame, err := s.composer.Render()
	if err != nil {
		return fmt.Errorf("render frame %d: %w", s.frames, err)
	}
	s.fb.Blit(frame)
	if err := s.fb.Present(); err != nil {
		return fmt.Errorf("present frame %d: %w", s.frames, err)
	}

	s.frames++
	s.updateFPS(now)
	if s.hud {
		s.h.Display().SetOverlay(s.hudText(now))
	}
	return nil
}

func (s *Storm) handleInput(now time.Duration) error {
	in := s.h.Input()
	if in == nil {
		return nil
	}
	if kbd := in.Keyboard(); kbd != nil {
		for drained := false; !drained; {
			select {
			case ev := <-kbd.Events():
				if err := s.handleKey(ev, now); err != nil {
					return err
				}
			default:
				drained = true
			}
		}
	}
	if ptr := in.Pointer(); ptr != nil {
		for drained := false; !drained; {
			select {
			case ev := <-ptr.Events():
				s.handlePointer(ev)
			default:
				drained = true
			}
		}
	}
	return nil
}

func (s *Storm) handleKey(ev hal.KeyEvent, now time.Duration) error {
	if !ev.Press {
		return nil
	}
	switch {
	case ev.Code == hal.KeyEscape:
		return hal.ErrQuit
	case ev.Code == hal.KeyF1, ev.Rune == 'h', ev.Rune == 'H':
		s.hud = !s.hud
		if !s.hud {
			s.h.Display().SetOverlay("")
		}
	case ev.Code == hal.KeyHome, ev.Rune == 'r', ev.Rune == 'R':
		*s.controls = s.home
		s.controls.Apply(s.camera)
	case ev.Rune == ' ':
		s.sched.Strike(now)
	}
	return nil
}

// handlePointer turns drag deltas into orbit rotation and wheel notches into
// a zoom proportional to the current radius.
func (s *Storm) handlePointer(ev hal.PointerEvent) {
	speed := s.cfg.Controls.RotateSpeed
	if ev.DX != 0 || ev.DY != 0 {
		s.controls.Rotate(-float32(ev.DX)*speed, -float32(ev.DY)*speed)
	}
	if ev.Wheel != 0 {
		s.controls.Zoom(-float32(ev.Wheel) * s.cfg.Controls.ZoomSpeed * s.controls.Radius)
	}
}

func (s *Storm) updateFPS(now time.Duration) {
	if d := now - s.fpsAt; d >= time.Second {
		s.fps = float64(s.frames-s.fpsBase) / d.Seconds()
		s.fpsAt = now
		s.fpsBase = s.frames
	}
}

func (s *Storm) hudText(now time.Duration) string {
	info := s.renderer.Info()
	var b strings.Builder
	fmt.Fprintf(&b, "thunderhead %s\n", buildinfo.Short())
	fmt.Fprintf(&b, "fps      %.1f\n", s.fps)
	fmt.Fprintf(&b, "state    %s\n", s.sched.State())
	fmt.Fprintf(&b, "strikes  %d\n", s.sched.Strikes())
	fmt.Fprintf(&b, "bolts    %d\n", len(s.spawner.Live()))
	fmt.Fprintf(&b, "next in  %v\n", max(s.sched.Next()-now, 0).Round(time.Millisecond))
	fmt.Fprintf(&b, "lines    %d (%d segments)\n", info.Lines, info.Segments)
	fmt.Fprintf(&b, "viewport %dx%d @%.2gx\n", s.width, s.height, s.ratio)
	b.WriteString("[drag] orbit  [wheel] zoom  [space] strike  [r] reset  [h] hud")
	return b.String()
}

// Close disposes every live bolt and hides the flash.
func (s *Storm) Close() {
	s.sched.Close()
}

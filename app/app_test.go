package app

import (
	"image/color"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thunderhead/hal"
	"thunderhead/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	cfg.Strike.Seed = 1
	return cfg
}

func newTestStorm(t *testing.T, cfg config.Config, w, h int) (*Storm, *hal.Host, *hal.ManualClock) {
	t.Helper()
	clock := hal.NewManualClock()
	host := hal.New(hal.HostConfig{Width: w, Height: h, PixelRatio: 1, Clock: clock, Log: zerolog.Nop()})
	s, err := New(host, cfg, zerolog.Nop())
	require.NoError(t, err)
	return s, host, clock
}

func TestNewBootstrapsScene(t *testing.T) {
	s, _, _ := newTestStorm(t, testConfig(t), 800, 600)

	cam := s.Camera()
	assert.Equal(t, float32(75), cam.FOVYDeg)
	assert.InDelta(t, 800.0/600.0, cam.Aspect, 1e-6)
	assert.InDelta(t, 0, cam.Position.X, 1e-4)
	assert.InDelta(t, 10, cam.Position.Y, 1e-4)
	assert.InDelta(t, 20, cam.Position.Z, 1e-4)
	assert.True(t, s.Controls().EnableDamping)

	assert.False(t, s.Flash().Visible)
	assert.Equal(t, float32(3), s.Flash().Intensity)
	assert.Equal(t, float32(50), s.Flash().Distance)
	assert.Len(t, s.Scene().Lights(), 1)
	assert.Len(t, s.Composer().Passes(), 2)

	w, h := s.Composer().Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestResizeUpdatesCameraAndOutput(t *testing.T) {
	s, host, _ := newTestStorm(t, testConfig(t), 800, 600)

	require.NotPanics(t, func() { s.Resize(1024, 768) })

	assert.InDelta(t, 1024.0/768.0, s.Camera().Aspect, 1e-6)
	w, h := s.Composer().Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	fb := host.Display().Framebuffer()
	assert.Equal(t, 1024, fb.Width())
	assert.Equal(t, 768, fb.Height())

	require.NoError(t, s.Step())
	assert.Equal(t, 1024, s.Composer().Output().Bounds().Dx())
	assert.Equal(t, 768, host.Snapshot().Bounds().Dy())

	s.Resize(0, 0)
	assert.InDelta(t, 1, s.Camera().Aspect, 1e-6)
}

func TestStepFollowsFramebufferSize(t *testing.T) {
	s, host, _ := newTestStorm(t, testConfig(t), 160, 120)

	host.Display().Framebuffer().Resize(200, 100, 2)
	require.NoError(t, s.Step())

	w, h, r := s.Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
	assert.Equal(t, 2.0, r)
	assert.InDelta(t, 2, s.Camera().Aspect, 1e-6)
	cw, ch := s.Composer().Size()
	assert.Equal(t, 400, cw)
	assert.Equal(t, 200, ch)
}

func TestDefaultBloomKeepsSkyBlack(t *testing.T) {
	cfg := testConfig(t)
	require.Positive(t, cfg.Bloom.Strength)
	require.NotZero(t, cfg.Light.Ambient)
	s, host, _ := newTestStorm(t, cfg, 160, 120)

	require.NoError(t, s.Step())
	require.Zero(t, s.Scheduler().Strikes())

	frame := host.Snapshot()
	for _, p := range [][2]int{{0, 0}, {80, 60}, {159, 119}} {
		assert.Equal(t, color.RGBA{A: 0xFF}, frame.RGBAAt(p[0], p[1]), "pixel %v", p)
	}
}

func TestStepStrikesAndCleansUp(t *testing.T) {
	cfg := testConfig(t)
	cfg.Bloom.Strength = 0
	s, host, clock := newTestStorm(t, cfg, 160, 120)

	require.NoError(t, s.Step())
	assert.Zero(t, s.Scheduler().Strikes(), "no strike at time zero")

	clock.Advance(time.Millisecond)
	require.NoError(t, s.Step())
	assert.Equal(t, 1, s.Scheduler().Strikes())
	assert.True(t, s.Flash().Visible)
	assert.Equal(t, 1, s.Scene().Len())

	frame := host.Snapshot()
	bright := false
	for i := 2; i < len(frame.Pix); i += 4 {
		if frame.Pix[i] > 0x80 {
			bright = true
			break
		}
	}
	assert.True(t, bright, "bolt or flash visible in the frame")

	clock.Set(300 * time.Millisecond)
	require.NoError(t, s.Step())
	assert.False(t, s.Flash().Visible)

	clock.Set(801 * time.Millisecond)
	require.NoError(t, s.Step())
	assert.Zero(t, s.Scene().Len())
	assert.Empty(t, s.Spawner().Live())
	assert.Equal(t, uint64(4), host.Presents())
	assert.Equal(t, uint64(4), s.Frames())
}

func TestKeyboardControls(t *testing.T) {
	cfg := testConfig(t)
	cfg.Bloom.Strength = 0
	s, host, clock := newTestStorm(t, cfg, 80, 60)
	clock.Set(time.Second)
	require.NoError(t, s.Step())
	strikes := s.Scheduler().Strikes()

	host.PushKey(hal.KeyEvent{Press: true, Rune: 'h'})
	host.PushKey(hal.KeyEvent{Press: true, Rune: ' '})
	require.NoError(t, s.Step())
	assert.True(t, s.HUD())
	assert.Equal(t, strikes+1, s.Scheduler().Strikes())
	assert.Contains(t, host.Overlay(), "strikes")

	host.PushKey(hal.KeyEvent{Code: hal.KeyF1, Press: true})
	require.NoError(t, s.Step())
	assert.False(t, s.HUD())
	assert.Empty(t, host.Overlay())

	host.PushKey(hal.KeyEvent{Code: hal.KeyEscape, Press: false})
	require.NoError(t, s.Step(), "key release is ignored")
	host.PushKey(hal.KeyEvent{Code: hal.KeyEscape, Press: true})
	assert.ErrorIs(t, s.Step(), hal.ErrQuit)
}

func TestPointerOrbitAndReset(t *testing.T) {
	cfg := testConfig(t)
	cfg.Bloom.Strength = 0
	cfg.Controls.Damping = false
	s, host, _ := newTestStorm(t, cfg, 80, 60)
	yaw, radius := s.Controls().Yaw, s.Controls().Radius

	host.PushPointer(hal.PointerEvent{DX: 100})
	host.PushPointer(hal.PointerEvent{Wheel: 1})
	require.NoError(t, s.Step())

	assert.InDelta(t, yaw-100*cfg.Controls.RotateSpeed, s.Controls().Yaw, 1e-5)
	assert.Less(t, s.Controls().Radius, radius)

	host.PushKey(hal.KeyEvent{Press: true, Rune: 'r'})
	require.NoError(t, s.Step())
	assert.InDelta(t, yaw, s.Controls().Yaw, 1e-6)
	assert.InDelta(t, radius, s.Controls().Radius, 1e-5)
	assert.InDelta(t, 20, s.Camera().Position.Z, 1e-3)
}

func TestNewAppRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Strike.Strands = 0
	host := hal.New(hal.HostConfig{Width: 10, Height: 10})

	step, err := NewApp(cfg)(host)
	assert.Nil(t, step)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestCloseDisposesBolts(t *testing.T) {
	cfg := testConfig(t)
	cfg.Bloom.Strength = 0
	s, _, clock := newTestStorm(t, cfg, 80, 60)
	clock.Set(time.Millisecond)
	require.NoError(t, s.Step())
	require.Equal(t, 1, s.Scene().Len())

	s.Close()
	assert.Zero(t, s.Scene().Len())
	assert.False(t, s.Flash().Visible)
}

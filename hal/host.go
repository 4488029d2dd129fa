package hal

import (
	"image"
	"sync"

	"github.com/rs/zerolog"
)

// HostConfig sizes the host surface.
type HostConfig struct {
	Width         int
	Height        int
	PixelRatio    float64
	MaxPixelRatio float64
	// Clock defaults to wall time since New.
	Clock Clock
	Log   zerolog.Logger
}

// WindowConfig sets up the window runner.
type WindowConfig struct {
	Title         string
	Width         int
	Height        int
	MaxPixelRatio float64
	Log           zerolog.Logger
}

// Host is the desktop/offscreen HAL: an in-memory framebuffer, buffered
// input queues and a clock.
type Host struct {
	log   zerolog.Logger
	fb    *hostFramebuffer
	kbd   *hostKeyboard
	ptr   *hostPointer
	clock Clock

	mu      sync.Mutex
	overlay string
}

// New returns a host HAL implementation.
func New(cfg HostConfig) *Host {
	clock := cfg.Clock
	if clock == nil {
		clock = newHostClock()
	}
	ratio := ClampPixelRatio(cfg.PixelRatio, cfg.MaxPixelRatio)
	return &Host{
		log:   cfg.Log,
		fb:    newHostFramebuffer(cfg.Width, cfg.Height, ratio),
		kbd:   newHostKeyboard(),
		ptr:   newHostPointer(),
		clock: clock,
	}
}

func (h *Host) Logger() zerolog.Logger { return h.log }
func (h *Host) Display() Display       { return hostDisplay{h: h} }
func (h *Host) Input() Input           { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *Host) Clock() Clock           { return h.clock }

// Snapshot returns a copy of the last blitted frame.
func (h *Host) Snapshot() *image.RGBA { return h.fb.snapshot(nil) }

// Presents counts frames presented so far.
func (h *Host) Presents() uint64 { return h.fb.Presents() }

// Overlay returns the current overlay text.
func (h *Host) Overlay() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.overlay
}

// PushKey queues a synthetic key event. It reports false if the queue is full.
func (h *Host) PushKey(ev KeyEvent) bool { return h.kbd.emit(ev) }

// PushPointer queues synthetic pointer motion. It reports false if the queue
// is full.
func (h *Host) PushPointer(ev PointerEvent) bool { return h.ptr.emit(ev) }

type hostDisplay struct {
	h *Host
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.h.fb }

func (d hostDisplay) SetOverlay(text string) {
	d.h.mu.Lock()
	defer d.h.mu.Unlock()
	d.h.overlay = text
}

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

// ClampPixelRatio caps a device pixel ratio at limit. Non-positive ratios
// count as 1; a non-positive limit means no cap.
func ClampPixelRatio(ratio, limit float64) float64 {
	if ratio <= 0 {
		ratio = 1
	}
	if limit > 0 && ratio > limit {
		ratio = limit
	}
	return ratio
}

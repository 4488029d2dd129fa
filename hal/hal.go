package hal

import (
	"errors"
	"image"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrWindowUnavailable is returned by RunWindow in builds without a
	// window backend.
	ErrWindowUnavailable = errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")

	// ErrQuit may be returned by an app step to stop the runner cleanly.
	ErrQuit = errors.New("quit")
)

// Framebuffer is an RGBA surface sized in logical pixels times a pixel
// ratio, plus a "present" hook.
type Framebuffer interface {
	// Width and Height are the logical (viewport) size.
	Width() int
	Height() int
	PixelRatio() float64
	// Bounds is the physical pixel rectangle: logical size times ratio.
	Bounds() image.Rectangle
	// Resize reports whether anything changed.
	Resize(width, height int, ratio float64) bool
	// Blit copies src into the buffer. Pixels outside Bounds are dropped.
	Blit(src *image.RGBA)
	Present() error
}

// Display provides access to the framebuffer and a text overlay.
type Display interface {
	Framebuffer() Framebuffer
	// SetOverlay replaces the text drawn over the frame. Empty hides it.
	SetOverlay(text string)
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEscape
	KeyHome
	KeyF1
)

// KeyEvent is a keyboard event. Text keys arrive with Code KeyUnknown and
// the typed Rune.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerEvent is one frame's worth of pointer motion: a drag delta in
// logical pixels and wheel notches (positive zooms in).
type PointerEvent struct {
	DX, DY float64
	Wheel  float64
}

type Pointer interface {
	Events() <-chan PointerEvent
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Clock reports elapsed animation time since start.
type Clock interface {
	Elapsed() time.Duration
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Logger() zerolog.Logger
	Display() Display
	Input() Input
	Clock() Clock
}

// NewApp builds an app against h and returns its per-frame step function.
type NewApp func(h HAL) (step func() error, err error)

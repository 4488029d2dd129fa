//go:build cgo || js

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(KeyEvent{Press: true, Rune: r})
	}

	keys := []struct {
		key  ebiten.Key
		code KeyCode
	}{
		{ebiten.KeyEscape, KeyEscape},
		{ebiten.KeyHome, KeyHome},
		{ebiten.KeyF1, KeyF1},
	}
	for _, m := range keys {
		if inpututil.IsKeyJustPressed(m.key) {
			k.emit(KeyEvent{Code: m.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(m.key) {
			k.emit(KeyEvent{Code: m.code, Press: false})
		}
	}
}

// poll turns left-button drags into deltas and forwards the wheel. Cursor
// positions are in screen pixels, so they are scaled back to logical ones.
func (p *hostPointer) poll(ratio float64) {
	var ev PointerEvent

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if p.dragging {
			ev.DX = float64(x-p.lastX) / ratio
			ev.DY = float64(y-p.lastY) / ratio
		}
		p.dragging = true
		p.lastX, p.lastY = x, y
	} else {
		p.dragging = false
	}

	_, wy := ebiten.Wheel()
	ev.Wheel = wy

	p.emit(ev)
}

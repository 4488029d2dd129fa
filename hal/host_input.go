package hal

const inputQueueLen = 64

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, inputQueueLen)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) bool {
	select {
	case k.ch <- ev:
		return true
	default:
		return false
	}
}

type hostPointer struct {
	ch chan PointerEvent

	// Drag tracking for the window backend.
	dragging bool
	lastX    int
	lastY    int
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, inputQueueLen)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev PointerEvent) bool {
	if ev == (PointerEvent{}) {
		return true
	}
	select {
	case p.ch <- ev:
		return true
	default:
		return false
	}
}

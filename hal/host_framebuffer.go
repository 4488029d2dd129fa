package hal

import (
	"image"
	"image/draw"
	"math"
	"sync"
)

type hostFramebuffer struct {
	mu       sync.Mutex
	width    int
	height   int
	ratio    float64
	img      *image.RGBA
	presents uint64
}

func newHostFramebuffer(width, height int, ratio float64) *hostFramebuffer {
	f := &hostFramebuffer{}
	f.Resize(width, height, ratio)
	return f
}

// NewFramebuffer returns an offscreen framebuffer.
func NewFramebuffer(width, height int, ratio float64) Framebuffer {
	return newHostFramebuffer(width, height, ratio)
}

// PhysicalSize scales a logical size by ratio, rounding up. Both results are
// at least 1.
func PhysicalSize(width, height int, ratio float64) (int, int) {
	return max(int(math.Ceil(float64(width)*ratio)), 1), max(int(math.Ceil(float64(height)*ratio)), 1)
}

func (f *hostFramebuffer) Width() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width
}

func (f *hostFramebuffer) Height() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.height
}

func (f *hostFramebuffer) PixelRatio() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ratio
}

func (f *hostFramebuffer) Bounds() image.Rectangle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img.Bounds()
}

func (f *hostFramebuffer) Resize(width, height int, ratio float64) bool {
	width, height = max(width, 1), max(height, 1)
	ratio = ClampPixelRatio(ratio, 0)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.img != nil && width == f.width && height == f.height && ratio == f.ratio {
		return false
	}
	f.width, f.height, f.ratio = width, height, ratio
	pw, ph := PhysicalSize(width, height, ratio)
	if f.img == nil || f.img.Bounds().Dx() != pw || f.img.Bounds().Dy() != ph {
		f.img = image.NewRGBA(image.Rect(0, 0, pw, ph))
	}
	return true
}

func (f *hostFramebuffer) Blit(src *image.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()
	draw.Draw(f.img, f.img.Bounds(), src, src.Bounds().Min, draw.Src)
}

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presents++
	return nil
}

func (f *hostFramebuffer) Presents() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}

// snapshot copies the frame into dst, reallocating it when the size differs.
func (f *hostFramebuffer) snapshot(dst *image.RGBA) *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	if dst == nil || dst.Bounds() != f.img.Bounds() {
		dst = image.NewRGBA(f.img.Bounds())
	}
	copy(dst.Pix, f.img.Pix)
	return dst
}

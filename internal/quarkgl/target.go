package quarkgl

import (
	"image"

	"github.com/fogleman/gg"
)

// Target is a minimal pixel target for software rendering.
//
// Implementations must clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// Blender is implemented by targets that can accumulate light additively.
type Blender interface {
	AddPixel(x, y int, c Color)
}

// Point2 is a position in target pixels.
type Point2 struct {
	X, Y float64
}

// Stroker is implemented by targets that draw antialiased polylines.
type Stroker interface {
	StrokePolyline(pts []Point2, c Color, width float64)
}

// ImageTarget renders into an *image.RGBA. Polylines are stroked with gg.
type ImageTarget struct {
	img *image.RGBA
	dc  *gg.Context
}

func NewImageTarget(w, h int) *ImageTarget {
	return WrapImage(image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1))))
}

// WrapImage renders into an existing image. The image is not copied.
func WrapImage(img *image.RGBA) *ImageTarget {
	return &ImageTarget{img: img}
}

func (t *ImageTarget) Image() *image.RGBA { return t.img }

func (t *ImageTarget) Size() (w, h int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the backing image if the size changed.
func (t *ImageTarget) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if cw, ch := t.Size(); cw == w && ch == h {
		return
	}
	t.img = image.NewRGBA(image.Rect(0, 0, w, h))
	t.dc = nil
}

func (t *ImageTarget) Clear(c Color) {
	pix := t.img.Pix
	if len(pix) < 4 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = c.R, c.G, c.B, 0xFF
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

func (t *ImageTarget) SetPixel(x, y int, c Color) {
	off, ok := t.offset(x, y)
	if !ok {
		return
	}
	t.img.Pix[off+0] = c.R
	t.img.Pix[off+1] = c.G
	t.img.Pix[off+2] = c.B
	t.img.Pix[off+3] = 0xFF
}

func (t *ImageTarget) AddPixel(x, y int, c Color) {
	off, ok := t.offset(x, y)
	if !ok {
		return
	}
	p := t.img.Pix
	p[off+0] = addSat(p[off+0], c.R)
	p[off+1] = addSat(p[off+1], c.G)
	p[off+2] = addSat(p[off+2], c.B)
	p[off+3] = 0xFF
}

func (t *ImageTarget) StrokePolyline(pts []Point2, c Color, width float64) {
	if len(pts) < 2 {
		return
	}
	if t.dc == nil {
		t.dc = gg.NewContextForRGBA(t.img)
		t.dc.SetLineCapRound()
		t.dc.SetLineJoinRound()
	}
	dc := t.dc
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
	dc.SetLineWidth(width)
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.Stroke()
}

func (t *ImageTarget) offset(x, y int) (int, bool) {
	w, h := t.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, false
	}
	return t.img.PixOffset(x, y), true
}

package quarkgl

import (
	"fmt"
	"image"
)

// Pass is one stage of a composer chain. Process may modify frame in place or
// return a new image; the composer feeds whatever it returns to the next pass.
type Pass interface {
	Process(frame *image.RGBA) (*image.RGBA, error)
	SetSize(w, h int)
}

// Composer runs a chain of passes over an internal frame buffer.
type Composer struct {
	buf    *image.RGBA
	passes []Pass
	out    *image.RGBA
}

func NewComposer(w, h int) *Composer {
	c := &Composer{}
	c.SetSize(w, h)
	return c
}

func (c *Composer) AddPass(p Pass) {
	w, h := c.Size()
	p.SetSize(w, h)
	c.passes = append(c.passes, p)
}

func (c *Composer) Passes() []Pass { return c.passes }

func (c *Composer) Size() (w, h int) {
	b := c.buf.Bounds()
	return b.Dx(), b.Dy()
}

// SetSize resizes the frame buffer and every pass. Sizes below 1 are clamped.
func (c *Composer) SetSize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if c.buf == nil || c.buf.Bounds().Dx() != w || c.buf.Bounds().Dy() != h {
		c.buf = image.NewRGBA(image.Rect(0, 0, w, h))
		c.out = nil
	}
	for _, p := range c.passes {
		p.SetSize(w, h)
	}
}

// Render runs all passes and returns the final frame. A failing pass stops
// the chain and leaves Output unchanged.
func (c *Composer) Render() (*image.RGBA, error) {
	frame := c.buf
	for i, p := range c.passes {
		var err error
		if frame, err = p.Process(frame); err != nil {
			return nil, fmt.Errorf("pass %d: %w", i, err)
		}
	}
	c.out = frame
	return frame, nil
}

// Output returns the frame produced by the last Render call, or nil.
func (c *Composer) Output() *image.RGBA { return c.out }

// RenderPass draws a scene into the frame.
type RenderPass struct {
	Renderer *Renderer
	Scene    *Scene
	Camera   *Camera

	target *ImageTarget
}

func NewRenderPass(r *Renderer, s *Scene, cam *Camera) *RenderPass {
	return &RenderPass{Renderer: r, Scene: s, Camera: cam}
}

func (p *RenderPass) SetSize(int, int) {}

func (p *RenderPass) Process(frame *image.RGBA) (*image.RGBA, error) {
	if p.target == nil || p.target.Image() != frame {
		p.target = WrapImage(frame)
	}
	p.Renderer.Render(p.target, p.Scene, p.Camera)
	return frame, nil
}

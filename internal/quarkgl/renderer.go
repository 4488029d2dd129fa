package quarkgl

import "math"

// RenderMode selects how line strips are rasterized.
type RenderMode uint8

const (
	// RenderSmooth strokes lines through the target's Stroker when available.
	RenderSmooth RenderMode = iota
	// RenderPixel uses Bresenham lines with additive blending.
	RenderPixel
)

const (
	glowGain  = 0.12
	nearClipW = 1e-3
)

// RenderInfo reports what the last Render call drew.
type RenderInfo struct {
	Lines    int
	Segments int
	Lights   int
}

// Renderer is a line renderer. Create it once and reuse it.
type Renderer struct {
	Mode       RenderMode
	PixelRatio float32

	info    RenderInfo
	scratch []Point2
}

func NewRenderer() *Renderer {
	return &Renderer{Mode: RenderSmooth, PixelRatio: 1}
}

func (r *Renderer) Info() RenderInfo { return r.info }

// Render draws the scene as seen by cam into t.
func (r *Renderer) Render(t Target, s *Scene, cam *Camera) {
	r.info = RenderInfo{}
	if t == nil || s == nil || cam == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}

	t.Clear(s.Background)

	vp := cam.ViewProjection()
	for _, l := range s.lights {
		if l == nil || !l.Visible {
			continue
		}
		r.drawGlow(t, w, h, vp, l)
		r.info.Lights++
	}

	r.drawObject(t, w, h, vp, s.root)
}

func (r *Renderer) drawObject(t Target, w, h int, vp Mat4, o *Object) {
	if o == nil || !o.Visible {
		return
	}
	if o.IsLine() {
		r.drawLine(t, w, h, vp, o)
	}
	for _, c := range o.children {
		r.drawObject(t, w, h, vp, c)
	}
}

func (r *Renderer) drawLine(t Target, w, h int, vp Mat4, o *Object) {
	g, m := o.Geometry, o.Material
	if g.Disposed() || m == nil || m.Disposed() || g.Len() < 2 {
		return
	}
	r.info.Lines++

	// Points behind the camera split the strip into separate runs.
	run := r.scratch[:0]
	flush := func() {
		if len(run) >= 2 {
			r.strokeRun(t, run, m)
			r.info.Segments += len(run) - 1
		}
		run = run[:0]
	}
	for _, p := range g.points {
		sp, ok := project(vp, p, w, h)
		if !ok {
			flush()
			continue
		}
		run = append(run, sp)
	}
	flush()
	r.scratch = run
}

func (r *Renderer) strokeRun(t Target, pts []Point2, m *LineMaterial) {
	if st, ok := t.(Stroker); ok && r.Mode == RenderSmooth {
		width := m.Width * r.PixelRatio
		if width <= 0 {
			width = 1
		}
		st.StrokePolyline(pts, m.Color, float64(width))
		return
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if offRaster(a) || offRaster(b) {
			continue
		}
		bresenham(t, round(a.X), round(a.Y), round(b.X), round(b.Y), m.Color)
	}
}

// drawGlow lights up the sky around a point light's projected position.
func (r *Renderer) drawGlow(t Target, w, h int, vp Mat4, l *PointLight) {
	bl, ok := t.(Blender)
	if !ok || l.Distance <= 0 || l.Intensity <= 0 {
		return
	}
	center, ok := project(vp, l.Position, w, h)
	if !ok {
		return
	}

	// Pixels spanned by one world unit at the light's depth.
	up, upOK := project(vp, l.Position.Add(V3(0, 1, 0)), w, h)
	pxPerUnit := float64(h) / 2
	if upOK {
		pxPerUnit = math.Hypot(up.X-center.X, up.Y-center.Y)
	}
	radius := float64(l.Distance) * pxPerUnit
	radius = math.Min(radius, math.Hypot(float64(w), float64(h)))
	if radius < 1 {
		return
	}

	x0, x1 := clampInt(int(center.X-radius), 0, w-1), clampInt(int(center.X+radius), 0, w-1)
	y0, y1 := clampInt(int(center.Y-radius), 0, h-1), clampInt(int(center.Y+radius), 0, h-1)
	for y := y0; y <= y1; y++ {
		dy := float64(y) - center.Y
		for x := x0; x <= x1; x++ {
			dx := float64(x) - center.X
			d := math.Sqrt(dx*dx+dy*dy) / radius
			if d >= 1 {
				continue
			}
			falloff := (1 - d) * (1 - d)
			bl.AddPixel(x, y, l.Color.Scale(l.Intensity*glowGain*float32(falloff)))
		}
	}
}

// project maps a world point to target pixels. It fails for points at or
// behind the camera plane.
func project(vp Mat4, p Vec3, w, h int) (Point2, bool) {
	c := vp.Transform(p.Point())
	if c.W <= nearClipW {
		return Point2{}, false
	}
	inv := 1 / c.W
	nx, ny := c.X*inv, c.Y*inv
	return Point2{
		X: float64((nx*0.5 + 0.5) * float32(w-1)),
		Y: float64((1 - (ny*0.5 + 0.5)) * float32(h-1)),
	}, true
}

func bresenham(t Target, x0, y0, x1, y1 int, c Color) {
	bl, additive := t.(Blender)
	plot := func(x, y int) {
		if additive {
			bl.AddPixel(x, y, c)
			return
		}
		t.SetPixel(x, y, c)
	}

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// offRaster rejects projections far enough out that stepping to them would
// stall the rasterizer.
func offRaster(p Point2) bool {
	const limit = 1 << 14
	return math.Abs(p.X) > limit || math.Abs(p.Y) > limit
}

func round(v float64) int { return int(math.Floor(v + 0.5)) }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

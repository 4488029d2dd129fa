package quarkgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestView() (*Scene, *Camera) {
	s := NewScene()
	cam := NewPerspectiveCamera(60, 1, 0.1, 100)
	cam.Position = V3(0, 0, 5)
	cam.Target = V3(0, 0, 0)
	return s, cam
}

func pixelAt(t *ImageTarget, x, y int) Color {
	c := t.Image().RGBAAt(x, y)
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func TestRendererDrawsLineThroughCenter(t *testing.T) {
	s, cam := newTestView()
	line := NewLine(NewGeometry([]Vec3{V3(0, -1, 0), V3(0, 1, 0)}), NewLineMaterial(Hex(0x88ccff)))
	s.Add(line)

	target := NewImageTarget(64, 64)
	r := NewRenderer()
	r.Mode = RenderPixel
	r.Render(target, s, cam)

	assert.Equal(t, Hex(0x88ccff), pixelAt(target, 32, 32))
	assert.Equal(t, RGB(0, 0, 0), pixelAt(target, 2, 2))
	assert.Equal(t, RenderInfo{Lines: 1, Segments: 1}, r.Info())
}

func TestRendererSkipsDisposedAndHidden(t *testing.T) {
	s, cam := newTestView()
	mat := NewLineMaterial(Hex(0xffffff))
	disposed := NewLine(NewGeometry([]Vec3{V3(-1, 0, 0), V3(1, 0, 0)}), mat)
	disposed.Geometry.Dispose()
	hidden := NewGroup("hidden")
	hidden.Visible = false
	hidden.Add(NewLine(NewGeometry([]Vec3{V3(0, -1, 0), V3(0, 1, 0)}), mat))
	s.Add(disposed)
	s.Add(hidden)

	target := NewImageTarget(32, 32)
	r := NewRenderer()
	r.Render(target, s, cam)

	assert.Zero(t, r.Info().Lines)
	assert.Equal(t, RGB(0, 0, 0), pixelAt(target, 16, 16))
}

func TestRendererSplitsStripBehindCamera(t *testing.T) {
	s, cam := newTestView()
	pts := []Vec3{V3(0, -1, 0), V3(0, 1, 0), V3(0, 0, 10), V3(1, 0, 0), V3(1, 1, 0)}
	s.Add(NewLine(NewGeometry(pts), NewLineMaterial(Hex(0xffffff))))

	r := NewRenderer()
	r.Render(NewImageTarget(32, 32), s, cam)

	assert.Equal(t, 2, r.Info().Segments)
}

func TestRendererFlashGlow(t *testing.T) {
	s, cam := newTestView()
	flash := NewPointLight(Hex(0xffffff), 3, 1)
	s.AddLight(flash)

	target := NewImageTarget(64, 64)
	r := NewRenderer()
	r.Render(target, s, cam)
	lit := pixelAt(target, 32, 32)
	assert.Greater(t, lit.R, uint8(0))
	assert.Equal(t, RGB(0, 0, 0), pixelAt(target, 0, 0))
	assert.Equal(t, 1, r.Info().Lights)

	flash.SetVisible(false)
	r.Render(target, s, cam)
	assert.Equal(t, RGB(0, 0, 0), pixelAt(target, 32, 32))
}

func TestRendererAmbientLeavesBackground(t *testing.T) {
	s, cam := newTestView()
	s.Background = Hex(0x000010)
	s.Ambient = AmbientLight{Color: Hex(0x222222), Intensity: 1}

	target := NewImageTarget(8, 8)
	NewRenderer().Render(target, s, cam)
	assert.Equal(t, Hex(0x000010), pixelAt(target, 4, 4))
}

func TestImageTargetStrokeAntialiased(t *testing.T) {
	target := NewImageTarget(16, 16)
	target.Clear(RGB(0, 0, 0))
	target.StrokePolyline([]Point2{{X: 2, Y: 8}, {X: 14, Y: 8}}, Hex(0xffffff), 2)

	assert.Greater(t, pixelAt(target, 8, 8).R, uint8(0))
	assert.Equal(t, RGB(0, 0, 0), pixelAt(target, 8, 1))
}

package quarkgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat4MulIdentity(t *testing.T) {
	a := Identity()
	b := Translate(V3(1, 2, 3))
	assert.Equal(t, b, a.Mul(b))
	assert.Equal(t, b, b.Mul(a))
}

func TestLookAtNotIdentity(t *testing.T) {
	m := LookAt(V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0))
	assert.NotEqual(t, Identity(), m)
}

func TestPerspectiveKeepsVisiblePointsInsideNDC(t *testing.T) {
	cam := NewPerspectiveCamera(75, 4.0/3.0, 0.1, 100)
	cam.Position = V3(0, 10, 20)
	cam.Target = V3(0, 0, 0)

	c := cam.ViewProjection().Transform(V3(0, 5, 0).Point())
	assert.Greater(t, c.W, float32(0))
	for _, v := range []float32{c.X / c.W, c.Y / c.W, c.Z / c.W} {
		assert.GreaterOrEqual(t, v, float32(-1))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestVec3Normalize(t *testing.T) {
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 1, V3(3, 4, 12).Normalize().Len(), 1e-6)
}

func TestColorSaturates(t *testing.T) {
	c := Hex(0x88ccff)
	assert.Equal(t, RGB(0x88, 0xCC, 0xFF), c)
	assert.Equal(t, RGB(0xFF, 0xFF, 0xFF), c.Add(c))
	assert.Equal(t, RGB(0xFF, 0xFF, 0xFF), c.Scale(3))
	assert.Equal(t, RGB(0, 0, 0), c.Scale(-1))
}

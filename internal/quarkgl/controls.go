package quarkgl

import "math"

const (
	pitchLimit      = math.Pi/2 - 0.01
	settleThreshold = 1e-4
)

// OrbitController orbits a camera around a target with optional damping.
//
// Input is queued with Rotate and Zoom and consumed by Update, once per frame.
// With damping on, each Update applies DampingFactor of the pending motion and
// keeps the rest, so the camera glides to a stop.
type OrbitController struct {
	Target Vec3
	Yaw    float32
	Pitch  float32
	Radius float32

	MinRadius float32
	MaxRadius float32

	EnableDamping bool
	DampingFactor float32

	dYaw    float32
	dPitch  float32
	dRadius float32
}

// NewOrbitController derives yaw, pitch and radius from the camera's current
// position relative to its target.
func NewOrbitController(cam *Camera) *OrbitController {
	c := &OrbitController{DampingFactor: 0.05}
	if cam == nil {
		c.Radius = 3
		return c
	}
	c.Target = cam.Target
	off := cam.Position.Sub(cam.Target)
	c.Radius = off.Len()
	if c.Radius > 0 {
		c.Pitch = -float32(math.Asin(float64(off.Y / c.Radius)))
		c.Yaw = float32(math.Atan2(float64(off.X), float64(off.Z)))
	}
	return c
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch float32) {
	c.dYaw += deltaYaw
	c.dPitch += deltaPitch
}

func (c *OrbitController) Zoom(delta float32) {
	c.dRadius += delta
}

// Update consumes pending input, writes the camera pose and reports whether the
// camera moved noticeably.
func (c *OrbitController) Update(cam *Camera) bool {
	f := float32(1)
	if c.EnableDamping {
		f = clamp(c.DampingFactor, 0, 1)
	}

	yaw, pitch, radius := c.dYaw*f, c.dPitch*f, c.dRadius*f
	c.dYaw -= yaw
	c.dPitch -= pitch
	c.dRadius -= radius

	c.Yaw += yaw
	c.Pitch = clamp(c.Pitch+pitch, -pitchLimit, pitchLimit)
	c.Radius += radius
	if c.MinRadius != 0 && c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.MaxRadius != 0 && c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
	if c.Radius <= 0 {
		c.Radius = 0.01
	}

	c.Apply(cam)
	moved := abs32(yaw)+abs32(pitch)+abs32(radius) > settleThreshold
	return moved
}

// Apply writes the orbit pose into the camera without consuming input.
func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	m := RotateY(c.Yaw).Mul(RotateX(c.Pitch))
	p := m.Transform(Vec4{Z: c.Radius, W: 1})

	cam.Position = c.Target.Add(V3(p.X, p.Y, p.Z))
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

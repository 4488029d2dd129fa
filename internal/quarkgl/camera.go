package quarkgl

// Camera is a perspective camera.
//
// Changing FOVYDeg, Near or Far requires UpdateProjection; SetAspect does it
// for you.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYDeg float32
	Aspect  float32
	Near    float32
	Far     float32

	proj Mat4
}

// NewPerspectiveCamera returns a camera at the origin looking down -Z.
func NewPerspectiveCamera(fovYDeg, aspect, near, far float32) *Camera {
	c := &Camera{
		Target:  V3(0, 0, -1),
		Up:      V3(0, 1, 0),
		FOVYDeg: fovYDeg,
		Aspect:  aspect,
		Near:    near,
		Far:     far,
	}
	c.UpdateProjection()
	return c
}

// SetAspect changes the aspect ratio and rebuilds the projection.
func (c *Camera) SetAspect(aspect float32) {
	if aspect <= 0 {
		aspect = 1
	}
	c.Aspect = aspect
	c.UpdateProjection()
}

func (c *Camera) UpdateProjection() {
	fov := c.FOVYDeg
	if fov <= 0 {
		fov = 50
	}
	c.proj = Perspective(Radians(fov), c.Aspect, c.Near, c.Far)
}

func (c *Camera) Projection() Mat4 { return c.proj }

func (c *Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return LookAt(c.Position, c.Target, up)
}

// ViewProjection returns projection*view.
func (c *Camera) ViewProjection() Mat4 {
	return c.proj.Mul(c.View())
}

package quarkgl

// AmbientLight lights lit materials evenly. Line materials are unlit and
// ignore it, so it never changes the background.
type AmbientLight struct {
	Color     Color
	Intensity float32
}

// PointLight emits from a position with linear falloff to zero at Distance.
// Line materials are unlit, so a point light shows up as a glow in the sky
// around its projected position.
type PointLight struct {
	Color     Color
	Intensity float32
	Distance  float32
	Position  Vec3
	Visible   bool
}

func NewPointLight(c Color, intensity, distance float32) *PointLight {
	return &PointLight{Color: c, Intensity: intensity, Distance: distance, Visible: true}
}

func (l *PointLight) SetVisible(v bool) { l.Visible = v }

// Scene is the root of a scene graph plus its lights.
type Scene struct {
	Background Color
	Ambient    AmbientLight

	root   *Object
	lights []*PointLight
}

func NewScene() *Scene {
	return &Scene{
		Background: RGB(0, 0, 0),
		root:       NewGroup("scene"),
	}
}

func (s *Scene) Add(o *Object)          { s.root.Add(o) }
func (s *Scene) Remove(o *Object) bool  { return s.root.Remove(o) }
func (s *Scene) Root() *Object          { return s.root }
func (s *Scene) Lights() []*PointLight  { return s.lights }
func (s *Scene) AddLight(l *PointLight) { s.lights = append(s.lights, l) }

// Len returns the number of top-level objects.
func (s *Scene) Len() int { return len(s.root.children) }

// Contains reports whether o is attached anywhere under the scene root.
func (s *Scene) Contains(o *Object) bool {
	for p := o; p != nil; p = p.parent {
		if p == s.root {
			return true
		}
	}
	return false
}

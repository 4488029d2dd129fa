package quarkgl

// Geometry holds the vertex positions of a polyline.
type Geometry struct {
	points   []Vec3
	disposed bool
}

// NewGeometry copies points into a new geometry.
func NewGeometry(points []Vec3) *Geometry {
	g := &Geometry{points: make([]Vec3, len(points))}
	copy(g.points, points)
	return g
}

func (g *Geometry) Points() []Vec3 { return g.points }
func (g *Geometry) Len() int       { return len(g.points) }
func (g *Geometry) Disposed() bool { return g.disposed }

// Dispose releases the vertex data. It reports false if the geometry was
// already disposed.
func (g *Geometry) Dispose() bool {
	if g == nil || g.disposed {
		return false
	}
	g.disposed = true
	g.points = nil
	return true
}

// LineMaterial is an unlit line color. One material may be shared by many
// line objects.
type LineMaterial struct {
	Color    Color
	Width    float32 // stroke width in output pixels before pixel ratio
	disposed bool
}

func NewLineMaterial(c Color) *LineMaterial {
	return &LineMaterial{Color: c, Width: 1}
}

func (m *LineMaterial) Disposed() bool { return m.disposed }

// Dispose marks the material released. It reports false if it already was.
func (m *LineMaterial) Dispose() bool {
	if m == nil || m.disposed {
		return false
	}
	m.disposed = true
	return true
}

// Object is a scene graph node. A node with a Geometry is drawn as a line
// strip; a node without one is a plain group.
type Object struct {
	Name     string
	Visible  bool
	Geometry *Geometry
	Material *LineMaterial

	parent   *Object
	children []*Object
}

func NewGroup(name string) *Object {
	return &Object{Name: name, Visible: true}
}

func NewLine(g *Geometry, m *LineMaterial) *Object {
	return &Object{Name: "line", Visible: true, Geometry: g, Material: m}
}

func (o *Object) IsLine() bool        { return o.Geometry != nil }
func (o *Object) Parent() *Object     { return o.parent }
func (o *Object) Children() []*Object { return o.children }

// Add attaches children, detaching each from its previous parent first.
func (o *Object) Add(children ...*Object) {
	for _, c := range children {
		if c == nil || c == o {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = o
		o.children = append(o.children, c)
	}
}

// Remove detaches a direct child and reports whether it was attached.
func (o *Object) Remove(child *Object) bool {
	for i, c := range o.children {
		if c != child {
			continue
		}
		copy(o.children[i:], o.children[i+1:])
		o.children[len(o.children)-1] = nil
		o.children = o.children[:len(o.children)-1]
		child.parent = nil
		return true
	}
	return false
}

// Traverse visits o and its descendants depth-first, parents first.
func (o *Object) Traverse(fn func(*Object)) {
	fn(o)
	for _, c := range o.children {
		c.Traverse(fn)
	}
}

package quarkgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectAddReparents(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	child := NewGroup("child")

	a.Add(child)
	require.Equal(t, a, child.Parent())

	b.Add(child)
	assert.Equal(t, b, child.Parent())
	assert.Empty(t, a.Children())
	assert.Len(t, b.Children(), 1)
}

func TestObjectRemove(t *testing.T) {
	g := NewGroup("g")
	x, y, z := NewGroup("x"), NewGroup("y"), NewGroup("z")
	g.Add(x, y, z)

	assert.True(t, g.Remove(y))
	assert.False(t, g.Remove(y))
	assert.Nil(t, y.Parent())
	assert.Equal(t, []*Object{x, z}, g.Children())
}

func TestGeometryDisposeOnce(t *testing.T) {
	src := []Vec3{V3(0, 0, 0), V3(1, 1, 1)}
	g := NewGeometry(src)
	src[0] = V3(9, 9, 9)
	assert.Equal(t, V3(0, 0, 0), g.Points()[0], "geometry owns a copy")

	assert.True(t, g.Dispose())
	assert.False(t, g.Dispose())
	assert.True(t, g.Disposed())
	assert.Zero(t, g.Len())

	m := NewLineMaterial(Hex(0xffffff))
	assert.True(t, m.Dispose())
	assert.False(t, m.Dispose())
}

func TestSceneContains(t *testing.T) {
	s := NewScene()
	group := NewGroup("bolt")
	line := NewLine(NewGeometry([]Vec3{{}, {Y: 1}}), NewLineMaterial(Hex(0x88ccff)))
	group.Add(line)

	assert.False(t, s.Contains(line))
	s.Add(group)
	assert.True(t, s.Contains(line))
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Remove(group))
	assert.False(t, s.Contains(line))
	assert.Zero(t, s.Len())
}

func TestTraverseVisitsParentsFirst(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	b := NewGroup("b")
	a.Add(b)
	root.Add(a)

	var names []string
	root.Traverse(func(o *Object) { names = append(names, o.Name) })
	assert.Equal(t, []string{"root", "a", "b"}, names)
}

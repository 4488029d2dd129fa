package lightning

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thunderhead/internal/quarkgl"
)

func newTestSpawner(t *testing.T, cfg Config) (*Spawner, *quarkgl.Scene, *Timers) {
	t.Helper()
	require.NoError(t, cfg.Validate())
	scene := quarkgl.NewScene()
	timers := NewTimers()
	return NewSpawner(scene, timers, NewRand(5), cfg, zerolog.Nop()), scene, timers
}

func TestNewStrandsJittersEachCopy(t *testing.T) {
	path := GeneratePath(NewRand(3), 10, quarkgl.V3(0, 10, 0), 4, 4)
	mat := quarkgl.NewLineMaterial(quarkgl.Hex(0x88ccff))

	group := NewStrands(NewRand(4), path, mat, 3, 0.05)

	require.Len(t, group.Children(), 3)
	for _, line := range group.Children() {
		require.True(t, line.IsLine())
		assert.Same(t, mat, line.Material)
		pts := line.Geometry.Points()
		require.Len(t, pts, len(path))
		for i, p := range pts {
			d := p.Sub(path[i])
			for _, v := range []float32{d.X, d.Y, d.Z} {
				assert.InDelta(t, 0, v, 0.0251)
			}
		}
	}
	a := group.Children()[0].Geometry.Points()
	b := group.Children()[1].Geometry.Points()
	assert.NotEqual(t, a, b, "strands are jittered independently")
}

func TestSpawnDisposesAfterLifetime(t *testing.T) {
	sp, scene, timers := newTestSpawner(t, DefaultConfig())
	main := GeneratePath(NewRand(1), 10, quarkgl.V3(0, 10, 0), 4, 4)
	branch := GeneratePath(NewRand(2), 5, main[2], 4, 4)

	b := sp.Spawn(main, branch)
	require.True(t, scene.Contains(b.Group))
	assert.Len(t, b.Strands(), 6)
	assert.Equal(t, 800*time.Millisecond, b.Expires())

	timers.Advance(799 * time.Millisecond)
	assert.False(t, b.Disposed())
	assert.True(t, scene.Contains(b.Group))

	timers.Advance(800 * time.Millisecond)
	assert.True(t, b.Disposed())
	assert.False(t, scene.Contains(b.Group))
	assert.Zero(t, scene.Len())
	assert.Empty(t, sp.Live())
	for _, line := range b.Strands() {
		assert.True(t, line.Geometry.Disposed())
		assert.True(t, line.Material.Disposed())
	}

	assert.False(t, b.Dispose(), "second dispose is a no-op")
}

func TestDisposeCancelsCleanup(t *testing.T) {
	sp, scene, timers := newTestSpawner(t, DefaultConfig())
	b := sp.Spawn(GeneratePath(NewRand(1), 3, quarkgl.V3(0, 10, 0), 4, 4))

	require.Equal(t, 1, timers.Pending())
	assert.True(t, b.Dispose())
	assert.Zero(t, timers.Pending())
	assert.Zero(t, scene.Len())
	assert.Zero(t, timers.Advance(time.Second))
}

func TestSpawnCapsLiveBolts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLiveBolts = 2
	sp, scene, _ := newTestSpawner(t, cfg)

	path := GeneratePath(NewRand(1), 3, quarkgl.V3(0, 10, 0), 4, 4)
	first := sp.Spawn(path)
	second := sp.Spawn(path)
	third := sp.Spawn(path)

	assert.True(t, first.Disposed())
	assert.False(t, second.Disposed())
	assert.False(t, third.Disposed())
	assert.Equal(t, []*Bolt{second, third}, sp.Live())
	assert.Equal(t, 2, scene.Len())

	sp.Close()
	assert.Empty(t, sp.Live())
	assert.Zero(t, scene.Len())
	assert.True(t, second.Disposed())
	assert.True(t, third.Disposed())
}

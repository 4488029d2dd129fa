package lightning

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"thunderhead/internal/quarkgl"
)

// Stage is where bolts are attached while they are visible.
// *quarkgl.Scene satisfies it.
type Stage interface {
	Add(*quarkgl.Object)
	Remove(*quarkgl.Object) bool
}

// NewStrands turns one path into a group of count line strands. Every point
// of every strand is offset by an independent draw from [-jitter/2, jitter/2)
// on each axis. All strands share material.
func NewStrands(rng Rand, path Path, material *quarkgl.LineMaterial, count int, jitter float32) *quarkgl.Object {
	group := quarkgl.NewGroup("strands")
	pts := make([]quarkgl.Vec3, len(path))
	for range max(count, 1) {
		for i, p := range path {
			pts[i] = quarkgl.V3(
				p.X+centered(rng, jitter),
				p.Y+centered(rng, jitter),
				p.Z+centered(rng, jitter),
			)
		}
		group.Add(quarkgl.NewLine(quarkgl.NewGeometry(pts), material))
	}
	return group
}

// Bolt is one strike's visual: a main path plus its branches, each drawn as
// a set of strands.
type Bolt struct {
	ID        uint64
	Group     *quarkgl.Object
	Paths     []Path
	SpawnedAt time.Duration

	stage     Stage
	materials []*quarkgl.LineMaterial
	cleanup   *Timer
	disposed  bool
	onDispose func(*Bolt)
}

// Strands returns the line objects of every path, in path order.
func (b *Bolt) Strands() []*quarkgl.Object {
	var out []*quarkgl.Object
	for _, path := range b.Group.Children() {
		out = append(out, path.Children()...)
	}
	return out
}

func (b *Bolt) Disposed() bool { return b.disposed }

// Expires returns when the bolt's cleanup is due.
func (b *Bolt) Expires() time.Duration { return b.cleanup.Due() }

// Dispose detaches the bolt from its stage and releases its geometry and
// materials. Only the first call does anything; it reports whether this was
// that call.
func (b *Bolt) Dispose() bool {
	if b.disposed {
		return false
	}
	b.disposed = true
	b.cleanup.Stop()
	b.stage.Remove(b.Group)
	for _, line := range b.Strands() {
		line.Geometry.Dispose()
	}
	for _, m := range b.materials {
		m.Dispose()
	}
	if b.onDispose != nil {
		b.onDispose(b)
	}
	return true
}

// Spawner builds bolts, attaches them to a stage and schedules their
// cleanup. Bolts may overlap; when more than MaxLiveBolts are live the
// oldest is disposed early.
type Spawner struct {
	stage  Stage
	timers *Timers
	rng    Rand
	cfg    Config
	log    zerolog.Logger

	nextID uint64
	live   []*Bolt
}

func NewSpawner(stage Stage, timers *Timers, rng Rand, cfg Config, log zerolog.Logger) *Spawner {
	return &Spawner{
		stage:  stage,
		timers: timers,
		rng:    rng,
		cfg:    cfg,
		log:    log.With().Str("component", "spawner").Logger(),
	}
}

// Spawn attaches a new bolt built from paths and schedules its disposal
// Lifetime from now.
func (s *Spawner) Spawn(paths ...Path) *Bolt {
	s.nextID++
	b := &Bolt{
		ID:        s.nextID,
		Group:     quarkgl.NewGroup(fmt.Sprintf("bolt-%d", s.nextID)),
		Paths:     paths,
		SpawnedAt: s.timers.Now(),
		stage:     s.stage,
		onDispose: s.forget,
	}
	for _, p := range paths {
		m := quarkgl.NewLineMaterial(quarkgl.Hex(s.cfg.Color))
		m.Width = s.cfg.Width
		b.materials = append(b.materials, m)
		b.Group.Add(NewStrands(s.rng, p, m, s.cfg.Strands, s.cfg.StrandJitter))
	}
	s.stage.Add(b.Group)
	b.cleanup = s.timers.AfterFunc(s.cfg.Lifetime, func() { b.Dispose() })

	s.live = append(s.live, b)
	if s.cfg.MaxLiveBolts > 0 {
		for len(s.live) > s.cfg.MaxLiveBolts {
			old := s.live[0]
			s.log.Debug().Uint64("bolt", old.ID).Msg("live bolt limit reached, disposing oldest")
			old.Dispose()
		}
	}

	s.log.Trace().
		Uint64("bolt", b.ID).
		Int("paths", len(paths)).
		Dur("expires", b.Expires()).
		Msg("bolt spawned")
	return b
}

// Live returns the bolts still attached, oldest first.
func (s *Spawner) Live() []*Bolt { return s.live }

// Close disposes every live bolt.
func (s *Spawner) Close() {
	for len(s.live) > 0 {
		s.live[0].Dispose()
	}
}

func (s *Spawner) forget(b *Bolt) {
	for i, l := range s.live {
		if l == b {
			s.live = append(s.live[:i], s.live[i+1:]...)
			return
		}
	}
}

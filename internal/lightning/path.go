package lightning

import (
	"math"

	"thunderhead/internal/quarkgl"
)

// Path is a polyline walked from a start point downward.
type Path []quarkgl.Vec3

func (p Path) Start() quarkgl.Vec3 { return p[0] }
func (p Path) End() quarkgl.Vec3   { return p[len(p)-1] }

// GeneratePath walks segments steps from start. Each step moves x and z by up
// to jitter/2 either way and drops y by a draw from (0, drop], so the result
// has segments+1 points, starts exactly at start and only ever descends: a
// step too small to change y in float32 moves it down by one ulp instead.
// Negative segments are treated as zero.
func GeneratePath(rng Rand, segments int, start quarkgl.Vec3, jitter, drop float32) Path {
	segments = max(segments, 0)
	points := make(Path, 0, segments+1)
	points = append(points, start)

	cur := start
	for range segments {
		cur.X += centered(rng, jitter)
		ny := cur.Y - drop*float32(1-rng.Float64())
		if ny >= cur.Y {
			ny = math.Nextafter32(cur.Y, float32(math.Inf(-1)))
		}
		cur.Y = ny
		cur.Z += centered(rng, jitter)
		points = append(points, cur)
	}
	return points
}

// Generator produces paths with fixed jitter and a default origin.
type Generator struct {
	rng    Rand
	origin quarkgl.Vec3
	jitter float32
	drop   float32
}

func NewGenerator(rng Rand, cfg Config) *Generator {
	return &Generator{rng: rng, origin: cfg.Origin, jitter: cfg.Jitter, drop: cfg.Drop}
}

func (g *Generator) Origin() quarkgl.Vec3 { return g.origin }

// Path walks from the configured origin.
func (g *Generator) Path(segments int) Path {
	return GeneratePath(g.rng, segments, g.origin, g.jitter, g.drop)
}

func (g *Generator) PathFrom(segments int, start quarkgl.Vec3) Path {
	return GeneratePath(g.rng, segments, start, g.jitter, g.drop)
}

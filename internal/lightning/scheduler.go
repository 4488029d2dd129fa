package lightning

import (
	"time"

	"github.com/rs/zerolog"
)

type State uint8

const (
	StateIdle State = iota
	StateStriking
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStriking:
		return "striking"
	default:
		return "unknown"
	}
}

// Flash is the light toggled by each strike. *quarkgl.PointLight satisfies it.
type Flash interface {
	SetVisible(bool)
}

// Scheduler fires strikes at randomized intervals of simulated time.
//
// A strike spawns one bolt (main path plus branches), shows the flash and
// schedules it off again. Bolts clean themselves up; the scheduler only
// tracks the flash.
type Scheduler struct {
	cfg     Config
	rng     Rand
	timers  *Timers
	spawner *Spawner
	flash   Flash
	paths   *Generator
	log     zerolog.Logger

	state    State
	next     time.Duration
	strikes  int
	flashOff *Timer
	last     *Bolt
}

// NewScheduler returns a scheduler whose first strike fires on the first
// Update after time zero.
func NewScheduler(cfg Config, rng Rand, timers *Timers, spawner *Spawner, flash Flash, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		rng:     rng,
		timers:  timers,
		spawner: spawner,
		flash:   flash,
		paths:   NewGenerator(rng, cfg),
		log:     log.With().Str("component", "scheduler").Logger(),
	}
}

func (s *Scheduler) State() State        { return s.state }
func (s *Scheduler) Next() time.Duration { return s.next }
func (s *Scheduler) Strikes() int        { return s.strikes }
func (s *Scheduler) LastBolt() *Bolt     { return s.last }

// Update advances timers to now, then strikes if now is past the stored
// threshold. It reports whether a strike fired.
func (s *Scheduler) Update(now time.Duration) bool {
	s.timers.Advance(now)
	if now <= s.next {
		return false
	}
	s.Strike(now)
	return true
}

// Strike fires immediately regardless of the threshold and moves the
// threshold to now plus a fresh interval.
func (s *Scheduler) Strike(now time.Duration) *Bolt {
	s.timers.Advance(now)

	main := s.paths.Path(s.cfg.MainSegments)
	paths := []Path{main}
	for i := 2; i < len(main)-2; i += s.cfg.BranchStride {
		if s.rng.Float64() < s.cfg.BranchChance {
			paths = append(paths, s.paths.PathFrom(s.cfg.BranchSegments, main[i]))
		}
	}
	s.last = s.spawner.Spawn(paths...)

	s.state = StateStriking
	s.flash.SetVisible(true)
	s.flashOff.Stop()
	s.flashOff = s.timers.AfterFunc(durationBetween(s.rng, s.cfg.FlashMin, s.cfg.FlashMax), s.endFlash)

	s.next = now + durationBetween(s.rng, s.cfg.MinInterval, s.cfg.MaxInterval)
	s.strikes++

	s.log.Debug().
		Int("strike", s.strikes).
		Int("branches", len(paths)-1).
		Dur("at", now).
		Dur("next", s.next).
		Msg("lightning strike")
	return s.last
}

func (s *Scheduler) endFlash() {
	s.flash.SetVisible(false)
	s.state = StateIdle
}

// Close cancels the pending flash-off, hides the flash and disposes every
// live bolt.
func (s *Scheduler) Close() {
	s.flashOff.Stop()
	s.endFlash()
	s.spawner.Close()
}

package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ObstacleStream spawns obstacles at a fixed interval, scrolls them at a
// constant speed and recycles them once they leave the playfield.
//
// Two views are kept in spawn order: live holds every obstacle on the
// playfield (for movement, recycling and rendering) and queue holds the ones
// not yet handed out by Next.
type ObstacleStream struct {
	stream    config.FlappyStream
	obstacles config.FlappyObstacles
	world     config.FlappyWorld

	sched *core.Scheduler
	pool  *ObstaclePool
	rng   *rand.Rand

	live    []*Obstacle
	queue   []*Obstacle
	timer   core.TimerID
	running bool
	spawned int
}

// NewObstacleStream creates a stream driven by sched that draws obstacles from
// pool. Gap placement is deterministic for a given seed.
func NewObstacleStream(cfg config.FlappyConfig, sched *core.Scheduler, pool *ObstaclePool, seed int64) *ObstacleStream {
	return &ObstacleStream{
		stream:    cfg.Stream,
		obstacles: cfg.Obstacles,
		world:     cfg.World,
		sched:     sched,
		pool:      pool,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// SpawnInterval returns the time between spawns: spacing / |speed|.
func (s *ObstacleStream) SpawnInterval() float64 {
	speed := s.stream.Speed
	if speed < 0 {
		speed = -speed
	}
	if speed == 0 {
		return 0
	}
	return s.stream.Spacing / speed
}

// Start spawns one obstacle immediately and schedules a repeating spawn.
// Starting a running stream is a no-op.
func (s *ObstacleStream) Start() {
	if s.running {
		return
	}
	s.running = true
	s.spawn(0)
	if interval := s.SpawnInterval(); interval > 0 {
		s.timer = s.sched.Every(interval, s.spawn)
	}
}

// Stop cancels spawning and freezes all obstacles in place. Idempotent.
func (s *ObstacleStream) Stop() {
	if s.timer != 0 {
		s.sched.Cancel(s.timer)
		s.timer = 0
	}
	s.running = false
}

// Reset stops the stream and returns every obstacle to the pool. Idempotent.
func (s *ObstacleStream) Reset() {
	s.Stop()
	for _, o := range s.live {
		s.pool.Release(o)
	}
	s.live = nil
	s.queue = nil
}

// Running reports whether the stream is spawning and scrolling.
func (s *ObstacleStream) Running() bool {
	return s.running
}

// Tick scrolls every live obstacle by speed*dt and recycles the ones whose
// trailing edge has passed the despawn edge.
func (s *ObstacleStream) Tick(dt float64) {
	if !s.running {
		return
	}
	dx := s.stream.Speed * dt
	for _, o := range s.live {
		o.X += dx
	}
	for len(s.live) > 0 && s.live[0].Right() < s.stream.DespawnX {
		o := s.live[0]
		s.live[0] = nil
		s.live = s.live[1:]
		if len(s.queue) > 0 && s.queue[0] == o {
			s.queue[0] = nil
			s.queue = s.queue[1:]
		}
		s.pool.Release(o)
	}
}

// Next hands out the oldest obstacle not yet handed out.
func (s *ObstacleStream) Next() (*Obstacle, bool) {
	if len(s.queue) == 0 {
		return nil, false
	}
	o := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	return o, true
}

// Live returns the obstacles currently on the playfield, oldest first.
// The slice must not be modified.
func (s *ObstacleStream) Live() []*Obstacle {
	return s.live
}

// Queued returns the number of obstacles not yet handed out by Next.
func (s *ObstacleStream) Queued() int {
	return len(s.queue)
}

// Spawned returns the number of obstacles spawned since creation.
func (s *ObstacleStream) Spawned() int {
	return s.spawned
}

// spawn places a new obstacle at the spawn edge. A spawn fired late by the
// scheduler is shifted by the distance it would already have travelled, so
// spacing stays exact regardless of frame timing.
func (s *ObstacleStream) spawn(late float64) {
	o := s.pool.Acquire()
	o.X = s.stream.SpawnX + s.stream.Speed*late
	o.Width = s.obstacles.Width
	o.GapBottom, o.GapTop = s.placeGap()
	s.live = append(s.live, o)
	s.queue = append(s.queue, o)
	s.spawned++
}

// placeGap picks a gap size and vertical position, keeping at least the
// configured margin of solid body above and below.
func (s *ObstacleStream) placeGap() (bottom, top float64) {
	gap := s.obstacles.MinGap
	if span := s.obstacles.MaxGap - s.obstacles.MinGap; span > 0 {
		gap += s.rng.Float64() * span
	}
	lo := s.world.GroundTop() + s.obstacles.Margin
	hi := s.world.Height - s.obstacles.Margin - gap
	bottom = lo
	if hi > lo {
		bottom = lo + s.rng.Float64()*(hi-lo)
	}
	return bottom, bottom + gap
}

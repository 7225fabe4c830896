package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// farExtent stands in for "unbounded" when building boxes for the solid
// bodies and the ground. Finite so box arithmetic never produces NaN.
const farExtent = 1e6

// Obstacle is a pair of solid bodies with a passable gap between them.
type Obstacle struct {
	X         float64 // Left edge
	GapTop    float64 // Lower edge of the upper body
	GapBottom float64 // Upper edge of the lower body
	Width     float64
	Passed    bool

	id uint64 // Assigned on acquire, cleared on release
}

// Right returns the trailing edge of the obstacle.
func (o *Obstacle) Right() float64 {
	return o.X + o.Width
}

// UpperBox returns the bounding box of the upper body. It extends far above
// the playfield so an actor cannot pass over it.
func (o *Obstacle) UpperBox() core.Box {
	return core.NewBox(o.X, o.GapTop, o.Width, farExtent)
}

// LowerBox returns the bounding box of the lower body.
func (o *Obstacle) LowerBox() core.Box {
	return core.NewBox(o.X, o.GapBottom-farExtent, o.Width, farExtent)
}

// GapCenter returns the vertical midpoint of the gap.
func (o *Obstacle) GapCenter() float64 {
	return (o.GapTop + o.GapBottom) / 2
}

// live reports whether the obstacle still belongs to the playfield.
func (o *Obstacle) live() bool {
	return o.id != 0
}

// ObstaclePool recycles obstacles to bound allocation under sustained play.
// Only ObstacleStream acquires from and releases to the pool.
type ObstaclePool struct {
	idle      []*Obstacle
	allocated int
	nextID    uint64
}

// NewObstaclePool creates an empty pool.
func NewObstaclePool() *ObstaclePool {
	return &ObstaclePool{}
}

// Acquire returns a zeroed obstacle, reusing an idle one when available.
func (p *ObstaclePool) Acquire() *Obstacle {
	var o *Obstacle
	if n := len(p.idle); n > 0 {
		o = p.idle[n-1]
		p.idle = p.idle[:n-1]
		*o = Obstacle{}
	} else {
		o = &Obstacle{}
		p.allocated++
	}
	p.nextID++
	o.id = p.nextID
	return o
}

// Release returns an obstacle to the pool. Releasing nil or an obstacle that
// is already idle is a no-op.
func (p *ObstaclePool) Release(o *Obstacle) {
	if o == nil || !o.live() {
		return
	}
	o.id = 0
	p.idle = append(p.idle, o)
}

// Idle returns the number of obstacles waiting for reuse.
func (p *ObstaclePool) Idle() int {
	return len(p.idle)
}

// Allocated returns the number of obstacles ever created by the pool.
func (p *ObstaclePool) Allocated() int {
	return p.allocated
}

package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ActorState is the discrete flight state of the actor.
type ActorState int

const (
	StateReady ActorState = iota
	StateRising
	StateFreeFalling
	StateDropping
	StateDead
)

// String returns the state name.
func (s ActorState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRising:
		return "rising"
	case StateFreeFalling:
		return "free-falling"
	case StateDropping:
		return "dropping"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// TargetSource hands out obstacles in spawn order.
type TargetSource interface {
	Next() (*Obstacle, bool)
}

// ActorListener consumes the outcome events of the actor.
type ActorListener interface {
	OnScored()
	OnCollided()
	OnLanded()
}

// ActorDeps are the collaborators of an actor. Nil fields fall back to no-ops.
type ActorDeps struct {
	Source    TargetSource
	Listener  ActorListener
	Scheduler *core.Scheduler
	Sounds    Sounds
	Visuals   Visuals
}

// Actor is the flight-physics state machine.
type Actor struct {
	X, Y      float64 // Centre of the hitbox
	VelocityY float64

	width, height float64
	gravity       float64
	riseSpeed     float64
	groundTop     float64
	effects       config.FlappyEffects

	state    ActorState
	target   *Obstacle
	targetID uint64
	retired  bool
	// frameDT is the length of the frame being ticked. The scheduler clock
	// still sits at the frame start while the actor runs.
	frameDT float64

	tilt tiltTween

	source   TargetSource
	listener ActorListener
	sched    *core.Scheduler
	sounds   Sounds
	visuals  Visuals
}

// NewActor creates an actor in the Ready state, hovering midway between the
// ground and the top of the playfield.
func NewActor(cfg config.FlappyConfig, deps ActorDeps) *Actor {
	a := &Actor{
		X:         cfg.Actor.X,
		Y:         (cfg.World.GroundTop() + cfg.World.Height) / 2,
		width:     cfg.Actor.Width,
		height:    cfg.Actor.Height,
		gravity:   cfg.Physics.Gravity,
		riseSpeed: cfg.Physics.InitialRiseSpeed,
		groundTop: cfg.World.GroundTop(),
		effects:   cfg.Effects,
		state:     StateReady,
		source:    deps.Source,
		listener:  deps.Listener,
		sched:     deps.Scheduler,
		sounds:    deps.Sounds,
		visuals:   deps.Visuals,
	}
	if a.listener == nil {
		a.listener = nopListener{}
	}
	if a.sched == nil {
		a.sched = core.NewScheduler()
	}
	if a.sounds == nil {
		a.sounds = NopSounds{}
	}
	if a.visuals == nil {
		a.visuals = NopVisuals{}
	}
	return a
}

// State returns the current flight state.
func (a *Actor) State() ActorState {
	return a.state
}

// Box returns the actor's current bounding box.
func (a *Actor) Box() core.Box {
	return core.BoxAround(a.X, a.Y, a.width, a.height)
}

// Target returns the obstacle currently checked for collision and scoring.
func (a *Actor) Target() *Obstacle {
	if a.target != nil && a.target.id != a.targetID {
		return nil
	}
	return a.target
}

// Tilt returns the current cosmetic rotation in degrees; positive is nose down.
func (a *Actor) Tilt() float64 {
	return a.tilt.value()
}

// Launch leaves the Ready state and starts rising. It reports false when the
// actor was not Ready.
func (a *Actor) Launch() bool {
	if a.state != StateReady {
		return false
	}
	a.acquireTarget()
	a.rise()
	return true
}

// Flap re-enters Rising while airborne. It reports false in any other state.
func (a *Actor) Flap() bool {
	if a.state != StateRising && a.state != StateFreeFalling {
		return false
	}
	a.rise()
	return true
}

// Retire detaches the actor from its run. Delayed effects scheduled by a
// retired actor do nothing when they fire.
func (a *Actor) Retire() {
	a.retired = true
}

// Tick advances the actor by dt seconds. Ready and Dead actors do not move.
func (a *Actor) Tick(dt float64) {
	a.frameDT = dt
	a.tilt.advance(dt)
	if a.state == StateReady || a.state == StateDead {
		return
	}
	a.integrate(dt)
	a.updateState()
	a.detectCollision()
	a.restOnGround()
}

func (a *Actor) integrate(dt float64) {
	a.VelocityY -= dt * a.gravity
	a.Y += dt * a.VelocityY
}

func (a *Actor) updateState() {
	switch a.state {
	case StateRising:
		if a.VelocityY < 0 {
			a.state = StateFreeFalling
			a.startTilt(a.effects.FallTilt, easeCubicIn)
		}
	case StateDropping:
		if a.touchesGround() {
			a.state = StateDead
			a.listener.OnLanded()
		}
	}
}

func (a *Actor) detectCollision() {
	if a.state != StateRising && a.state != StateFreeFalling {
		return
	}
	a.acquireTarget()

	box := a.Box()
	hitObstacle := false
	if a.target != nil {
		hitObstacle = box.Intersects(a.target.UpperBox()) || box.Intersects(a.target.LowerBox())
	}
	hitGround := a.touchesGround()

	if hitObstacle || hitGround {
		a.sounds.PlayHit()
		if hitGround {
			a.state = StateDead
		} else {
			a.drop()
		}
		a.visuals.StopFlapping()
		a.listener.OnCollided()
		if a.state == StateDead {
			a.listener.OnLanded()
		}
		return
	}

	if a.target != nil && a.X > a.target.Right() {
		a.target.Passed = true
		a.target = nil
		a.listener.OnScored()
		a.acquireTarget()
	}
}

// restOnGround snaps a grounded actor onto the ground surface.
func (a *Actor) restOnGround() {
	if a.state != StateDropping && a.state != StateDead {
		return
	}
	if a.touchesGround() {
		a.Y = a.groundTop + a.height/2
		if a.VelocityY < 0 {
			a.VelocityY = 0
		}
	}
}

func (a *Actor) rise() {
	a.state = StateRising
	a.VelocityY = a.riseSpeed
	a.startTilt(a.effects.RiseTilt, easeCubicOut)
	a.sounds.PlayRise()
}

func (a *Actor) drop() {
	a.state = StateDropping
	if a.VelocityY > 0 {
		a.VelocityY = 0
	}
	a.startTilt(a.effects.DropTilt, easeCubicIn)
	// Count the delay from the end of the frame that saw the collision.
	a.sched.After(a.effects.DropSoundDelay+a.frameDT, func(float64) {
		if !a.retired {
			a.sounds.PlayDrop()
		}
	})
}

// acquireTarget drops a target that has been recycled and asks the source
// for a new one when none is held. An empty source leaves the target nil
// until a later tick.
func (a *Actor) acquireTarget() {
	if a.target != nil && a.target.id != a.targetID {
		a.target = nil
	}
	if a.target != nil || a.source == nil {
		return
	}
	if o, ok := a.source.Next(); ok {
		a.target = o
		a.targetID = o.id
	}
}

func (a *Actor) touchesGround() bool {
	return a.Box().Intersects(groundBox(a.groundTop))
}

func (a *Actor) startTilt(t config.Tilt, ease func(float64) float64) {
	a.tilt.start(t.Angle, t.Duration, ease)
	a.visuals.Tilt(t.Angle, t.Duration)
}

// groundBox returns the bounding box of the ground, whose top edge is top.
func groundBox(top float64) core.Box {
	return core.NewBox(-farExtent, top-farExtent, 2*farExtent, farExtent)
}

// tiltTween eases the cosmetic rotation towards a target angle.
type tiltTween struct {
	from, to float64
	elapsed  float64
	duration float64
	ease     func(float64) float64
}

func (t *tiltTween) start(to, duration float64, ease func(float64) float64) {
	t.from = t.value()
	t.to = to
	t.elapsed = 0
	t.duration = duration
	t.ease = ease
}

func (t *tiltTween) advance(dt float64) {
	t.elapsed += dt
}

func (t *tiltTween) value() float64 {
	if t.duration <= 0 || t.elapsed >= t.duration || t.ease == nil {
		return t.to
	}
	return t.from + (t.to-t.from)*t.ease(t.elapsed/t.duration)
}

func easeCubicIn(p float64) float64 {
	return p * p * p
}

func easeCubicOut(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

type nopListener struct{}

func (nopListener) OnScored()   {}
func (nopListener) OnCollided() {}
func (nopListener) OnLanded()   {}

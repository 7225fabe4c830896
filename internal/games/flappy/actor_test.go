package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

type actorFixture struct {
	actor    *Actor
	source   *sliceSource
	listener *recordingListener
	sounds   *countingSounds
	visuals  *countingVisuals
	sched    *core.Scheduler
	pool     *ObstaclePool
}

func newActorFixture(x float64) *actorFixture {
	cfg := testConfig()
	cfg.Actor.X = x
	f := &actorFixture{
		source:   &sliceSource{},
		listener: &recordingListener{},
		sounds:   &countingSounds{},
		visuals:  &countingVisuals{},
		sched:    core.NewScheduler(),
		pool:     NewObstaclePool(),
	}
	f.actor = NewActor(cfg, ActorDeps{
		Source:    f.source,
		Listener:  f.listener,
		Scheduler: f.sched,
		Sounds:    f.sounds,
		Visuals:   f.visuals,
	})
	return f
}

// obstacle queues an obstacle with the given geometry.
func (f *actorFixture) obstacle(x, width, gapBottom, gapTop float64) *Obstacle {
	o := f.pool.Acquire()
	o.X, o.Width, o.GapBottom, o.GapTop = x, width, gapBottom, gapTop
	f.source.items = append(f.source.items, o)
	return o
}

func (f *actorFixture) tick(dt float64) {
	f.actor.Tick(dt)
	f.sched.Advance(dt)
}

func TestActorReadyDoesNotMove(t *testing.T) {
	f := newActorFixture(300)
	a := f.actor
	x, y := a.X, a.Y

	for i := 0; i < 120; i++ {
		f.tick(1.0 / 60.0)
	}

	if a.X != x || a.Y != y || a.VelocityY != 0 {
		t.Errorf("ready actor moved: (%v,%v) v=%v", a.X, a.Y, a.VelocityY)
	}
	if a.State() != StateReady {
		t.Errorf("state = %v, want ready", a.State())
	}
}

func TestActorLaunch(t *testing.T) {
	f := newActorFixture(300)

	if !f.actor.Launch() {
		t.Fatal("Launch() from ready should succeed")
	}
	if f.actor.State() != StateRising {
		t.Errorf("state = %v, want rising", f.actor.State())
	}
	if f.actor.VelocityY != 800 {
		t.Errorf("VelocityY = %v, want 800", f.actor.VelocityY)
	}
	if f.sounds.rise != 1 {
		t.Errorf("rise sounds = %d, want 1", f.sounds.rise)
	}
	if len(f.visuals.tilts) != 1 || f.visuals.tilts[0] != -30 {
		t.Errorf("tilts = %v, want [-30]", f.visuals.tilts)
	}
	if f.actor.Launch() {
		t.Error("second Launch() should be rejected")
	}
}

func TestActorGravityIsExactEuler(t *testing.T) {
	f := newActorFixture(300)
	f.actor.Launch()

	const dt = 1.0 / 60.0
	y := f.actor.Y
	v := 800.0
	for n := 1; n <= 40; n++ {
		f.tick(dt)
		v -= dt * 1000
		y += dt * v
		want := 800 - float64(n)*dt*1000
		if math.Abs(f.actor.VelocityY-want) > 1e-9 {
			t.Fatalf("tick %d: VelocityY = %v, want %v", n, f.actor.VelocityY, want)
		}
		if math.Abs(f.actor.Y-y) > 1e-9 {
			t.Fatalf("tick %d: Y = %v, want %v", n, f.actor.Y, y)
		}
	}
}

func TestActorStartsFallingWhenVelocityCrossesZero(t *testing.T) {
	f := newActorFixture(300)
	f.actor.Launch()

	// With gravity 1000 and rise speed 800 the velocity crosses zero at
	// t=0.8s, inside tick 27 (0.78s..0.81s).
	const dt = 0.03
	for n := 1; n <= 26; n++ {
		f.tick(dt)
		if f.actor.State() != StateRising {
			t.Fatalf("tick %d: state = %v, want rising", n, f.actor.State())
		}
	}
	f.tick(dt)
	if f.actor.State() != StateFreeFalling {
		t.Fatalf("tick 27: state = %v, want free-falling", f.actor.State())
	}
	if got := f.visuals.tilts[len(f.visuals.tilts)-1]; got != 90 {
		t.Errorf("fall tilt = %v, want 90", got)
	}
}

func TestActorFlap(t *testing.T) {
	f := newActorFixture(300)

	if f.actor.Flap() {
		t.Error("Flap() in ready should be rejected")
	}

	f.actor.Launch()
	for i := 0; i < 60; i++ {
		f.tick(1.0 / 60.0)
	}
	if f.actor.State() != StateFreeFalling {
		t.Fatalf("state = %v, want free-falling", f.actor.State())
	}
	if !f.actor.Flap() {
		t.Fatal("Flap() while falling should succeed")
	}
	if f.actor.State() != StateRising || f.actor.VelocityY != 800 {
		t.Errorf("after flap: state = %v, v = %v", f.actor.State(), f.actor.VelocityY)
	}
	if f.sounds.rise != 2 {
		t.Errorf("rise sounds = %d, want 2", f.sounds.rise)
	}
}

func TestActorScoresOnceAndAdvancesTarget(t *testing.T) {
	f := newActorFixture(500)
	first := f.obstacle(400, 80, 100, 2000)
	second := f.obstacle(1000, 80, 100, 2000)
	f.actor.Launch()

	f.tick(1.0 / 60.0)

	if f.listener.scored != 1 {
		t.Fatalf("scored = %d, want 1", f.listener.scored)
	}
	if !first.Passed {
		t.Error("first obstacle should be marked passed")
	}
	if f.actor.Target() != second {
		t.Error("target should advance to the next obstacle")
	}

	for i := 0; i < 10; i++ {
		f.tick(1.0 / 60.0)
	}
	if f.listener.scored != 1 {
		t.Errorf("scored = %d after more ticks, want 1", f.listener.scored)
	}
}

func TestActorToleratesMissingTarget(t *testing.T) {
	f := newActorFixture(500)
	f.actor.Launch()
	f.tick(1.0 / 60.0)

	if f.actor.Target() != nil {
		t.Fatal("no obstacle queued yet")
	}

	o := f.obstacle(1000, 80, 100, 2000)
	f.tick(1.0 / 60.0)
	if f.actor.Target() != o {
		t.Error("actor should pick up a target on a later tick")
	}
}

func TestActorDropsRecycledTarget(t *testing.T) {
	f := newActorFixture(500)
	o := f.obstacle(1000, 80, 100, 2000)
	f.actor.Launch()
	if f.actor.Target() != o {
		t.Fatal("launch should acquire the first obstacle")
	}

	f.pool.Release(o)
	reused := f.pool.Acquire()
	reused.X, reused.Width, reused.GapBottom, reused.GapTop = 480, 80, 900, 950

	if f.actor.Target() != nil {
		t.Error("a recycled target must not be reported")
	}
	f.tick(1.0 / 60.0)
	if f.listener.collided != 0 {
		t.Error("actor collided with a recycled obstacle")
	}
}

func TestActorObstacleCollisionDrops(t *testing.T) {
	f := newActorFixture(300)
	// Gap far above the actor: the lower body covers it.
	f.obstacle(280, 80, 800, 900)
	f.actor.Launch()

	f.tick(1.0 / 60.0)

	a := f.actor
	if a.State() != StateDropping {
		t.Fatalf("state = %v, want dropping", a.State())
	}
	if a.VelocityY > 0 {
		t.Errorf("VelocityY = %v, upward speed should be removed", a.VelocityY)
	}
	if f.listener.collided != 1 || f.listener.landed != 0 {
		t.Errorf("collided = %d landed = %d, want 1, 0", f.listener.collided, f.listener.landed)
	}
	if f.sounds.hit != 1 || f.visuals.stopFlapping != 1 {
		t.Errorf("hit = %d stopFlapping = %d, want 1, 1", f.sounds.hit, f.visuals.stopFlapping)
	}
	if f.sounds.drop != 0 {
		t.Fatal("drop sound should be delayed")
	}

	for i := 0; i < 10; i++ {
		f.tick(0.05)
	}
	if f.sounds.drop != 1 {
		t.Errorf("drop sounds = %d, want 1", f.sounds.drop)
	}
	if f.listener.collided != 1 {
		t.Errorf("a dropping actor must not collide again, collided = %d", f.listener.collided)
	}
}

func TestActorDropSoundDelayCountsFromCollisionFrame(t *testing.T) {
	tests := []struct {
		name      string
		dt        float64
		wantFrame int
	}{
		// Collision seen in frame 1; 0.3s later is the end of frame 4.
		{"tenth", 0.1, 4},
		{"fifth", 0.2, 3}, // 0.2 + 0.3 = 0.5, due inside frame 3
		{"60fps", 1.0 / 60.0, 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newActorFixture(300)
			f.obstacle(280, 80, 800, 900)
			f.actor.Launch()

			f.tick(tt.dt)
			if f.actor.State() != StateDropping {
				t.Fatalf("state = %v, want dropping", f.actor.State())
			}

			frame := 1
			for f.sounds.drop == 0 && frame < 100 {
				frame++
				f.tick(tt.dt)
			}
			if frame != tt.wantFrame {
				t.Errorf("drop sound in frame %d, want %d", frame, tt.wantFrame)
			}
		})
	}
}

func TestActorDropLandsAndRests(t *testing.T) {
	f := newActorFixture(300)
	f.obstacle(280, 80, 800, 900)
	f.actor.Launch()

	for i := 0; i < 600 && f.actor.State() != StateDead; i++ {
		f.tick(1.0 / 60.0)
	}

	a := f.actor
	if a.State() != StateDead {
		t.Fatalf("state = %v, want dead", a.State())
	}
	if f.listener.landed != 1 {
		t.Errorf("landed = %d, want 1", f.listener.landed)
	}
	want := 120 + 36.0/2
	if a.Y != want {
		t.Errorf("Y = %v, want resting at %v", a.Y, want)
	}
}

func TestActorGroundTakesPrecedence(t *testing.T) {
	f := newActorFixture(300)
	f.obstacle(280, 80, 800, 900)
	f.actor.Launch()

	a := f.actor
	a.state = StateFreeFalling
	a.VelocityY = -100
	a.Y = 120 + 18 + 0.5

	f.tick(0.01)

	if a.State() != StateDead {
		t.Fatalf("state = %v, want dead", a.State())
	}
	if f.listener.collided != 1 || f.listener.landed != 1 {
		t.Errorf("collided = %d landed = %d, want 1, 1", f.listener.collided, f.listener.landed)
	}
	if a.Y != 120+18 {
		t.Errorf("Y = %v, want snapped to 138", a.Y)
	}
}

func TestActorDeadIsFinal(t *testing.T) {
	f := newActorFixture(300)
	f.actor.Launch()
	for i := 0; i < 600 && f.actor.State() != StateDead; i++ {
		f.tick(1.0 / 60.0)
	}
	a := f.actor
	if a.State() != StateDead {
		t.Fatalf("state = %v, want dead", a.State())
	}
	x, y := a.X, a.Y

	if a.Flap() || a.Launch() {
		t.Error("a dead actor must ignore input")
	}
	for i := 0; i < 120; i++ {
		f.tick(1.0 / 60.0)
		if a.State() != StateDead {
			t.Fatalf("state changed after death: %v", a.State())
		}
	}
	if a.X != x || a.Y != y {
		t.Error("dead actor moved")
	}
	if f.listener.collided != 1 {
		t.Errorf("collided = %d, want 1", f.listener.collided)
	}
}

func TestActorRetiredSkipsDelayedDrop(t *testing.T) {
	f := newActorFixture(300)
	f.obstacle(280, 80, 800, 900)
	f.actor.Launch()
	f.tick(1.0 / 60.0)
	if f.actor.State() != StateDropping {
		t.Fatalf("state = %v, want dropping", f.actor.State())
	}

	f.actor.Retire()
	f.tick(1)

	if f.sounds.drop != 0 {
		t.Errorf("drop sounds = %d, want 0 for a retired actor", f.sounds.drop)
	}
}

func TestActorTiltEases(t *testing.T) {
	f := newActorFixture(300)
	f.actor.Launch()

	if got := f.actor.Tilt(); got != 0 {
		t.Errorf("tilt at launch = %v, want 0", got)
	}
	f.tick(0.15)
	if got := f.actor.Tilt(); got >= 0 || got <= -30 {
		t.Errorf("tilt mid-ease = %v, want between -30 and 0", got)
	}
	f.tick(0.2)
	if got := f.actor.Tilt(); got != -30 {
		t.Errorf("tilt after ease = %v, want -30", got)
	}
}

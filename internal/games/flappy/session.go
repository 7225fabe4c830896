package flappy

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// RunState is the lifecycle state of a session.
type RunState int

const (
	RunReady RunState = iota
	RunPlaying
	RunEnded
)

// String returns the run state name.
func (s RunState) String() string {
	switch s {
	case RunReady:
		return "ready"
	case RunPlaying:
		return "playing"
	case RunEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Deps are the collaborators of a session. Nil fields fall back to no-ops and
// an in-memory best score.
type Deps struct {
	Sounds     Sounds
	Visuals    Visuals
	Display    Display
	BestScores BestScores
	Logger     *log.Logger
}

// Session owns the score and run state, and wires the actor to the obstacle
// stream for one run at a time. The scheduler and the obstacle pool outlive
// individual runs.
type Session struct {
	cfg  config.FlappyConfig
	seed int64
	run  int

	sched  *core.Scheduler
	pool   *ObstaclePool
	stream *ObstacleStream
	actor  *Actor

	state        RunState
	score        int
	best         int
	hasBest      bool
	inputEnabled bool
	elapsed      float64

	sounds     Sounds
	visuals    Visuals
	display    Display
	bestScores BestScores
	logger     *log.Logger
}

// NewSession creates a session in the Ready state. Obstacle placement for run
// n is seeded with seed+n.
func NewSession(cfg config.FlappyConfig, seed int64, deps Deps) *Session {
	s := &Session{
		cfg:          cfg,
		seed:         seed,
		sched:        core.NewScheduler(),
		pool:         NewObstaclePool(),
		state:        RunReady,
		inputEnabled: true,
		sounds:       deps.Sounds,
		visuals:      deps.Visuals,
		display:      deps.Display,
		bestScores:   deps.BestScores,
		logger:       deps.Logger,
	}
	if s.sounds == nil {
		s.sounds = NopSounds{}
	}
	if s.visuals == nil {
		s.visuals = NopVisuals{}
	}
	if s.display == nil {
		s.display = NopDisplay{}
	}
	if s.bestScores == nil {
		s.bestScores = &MemoryBestScores{}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	if best, ok, err := s.bestScores.BestScore(); err != nil {
		s.logger.Warn("failed to read best score", "err", err)
	} else if ok {
		s.best, s.hasBest = best, true
	}

	s.newRun()
	return s
}

// newRun builds a fresh stream and actor for the current run index.
func (s *Session) newRun() {
	s.stream = NewObstacleStream(s.cfg, s.sched, s.pool, s.seed+int64(s.run))
	s.actor = NewActor(s.cfg, ActorDeps{
		Source:    s.stream,
		Listener:  s,
		Scheduler: s.sched,
		Sounds:    s.sounds,
		Visuals:   s.visuals,
	})
}

// StartRun begins a run: the score is reset, the stream starts and the actor
// launches. Starting from Ended restarts first; starting while Playing is a
// no-op that reports false.
func (s *Session) StartRun() bool {
	switch s.state {
	case RunPlaying:
		return false
	case RunEnded:
		s.Restart()
	}
	s.score = 0
	s.state = RunPlaying
	s.inputEnabled = true
	s.stream.Start()
	s.actor.Launch()
	s.display.OnScoreChanged(s.score)
	s.logger.Debug("run started", "run", s.run)
	return true
}

// Restart tears down the current run and returns to Ready. Pending delayed
// effects of the old run are cancelled and every obstacle is recycled.
func (s *Session) Restart() {
	s.actor.Retire()
	s.stream.Reset()
	s.sched.Clear()
	s.run++
	s.score = 0
	s.state = RunReady
	s.inputEnabled = true
	s.newRun()
	s.sounds.PlaySwoosh()
	s.display.OnScoreChanged(s.score)
	s.logger.Debug("run reset", "run", s.run)
}

// Activate handles one discrete input press. In Ready it asks the display to
// begin a run; while Playing it makes the actor flap; otherwise it is ignored.
func (s *Session) Activate() {
	switch s.state {
	case RunReady:
		s.display.OnBeginRequested()
	case RunPlaying:
		if s.inputEnabled {
			s.actor.Flap()
		}
	}
}

// Tick advances the simulation by dt seconds: actor physics and collision,
// then obstacle movement, then due timers.
func (s *Session) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	s.elapsed += dt
	s.actor.Tick(dt)
	s.stream.Tick(dt)
	s.sched.Advance(dt)
}

// OnScored implements ActorListener.
func (s *Session) OnScored() {
	if s.state != RunPlaying {
		return
	}
	s.score++
	s.sounds.PlayScore()
	s.display.OnScoreChanged(s.score)
}

// OnCollided implements ActorListener. Only the first call per run ends it.
func (s *Session) OnCollided() {
	if s.state != RunPlaying {
		return
	}
	s.state = RunEnded
	s.stream.Stop()
	s.inputEnabled = false
	s.visuals.Flash()

	best := s.settleBest()
	s.logger.Info("run ended", "run", s.run, "score", s.score, "best", best)
	s.display.OnRunEnded(s.score, best)
}

// OnLanded implements ActorListener.
func (s *Session) OnLanded() {
	s.logger.Debug("actor landed", "run", s.run)
}

// settleBest compares the final score with the persisted best and stores it
// when it improves.
func (s *Session) settleBest() int {
	stored, ok, err := s.bestScores.BestScore()
	if err != nil {
		s.logger.Warn("failed to read best score", "err", err)
		stored, ok = s.best, s.hasBest
	}
	best := stored
	if !ok || s.score > stored {
		best = s.score
		if err := s.bestScores.SetBestScore(best); err != nil {
			s.logger.Warn("failed to store best score", "err", err)
		} else if after, ok, err := s.bestScores.BestScore(); err == nil && ok && after > best {
			// Another session stored a higher best in the meantime.
			best = after
		}
	}
	s.best, s.hasBest = best, true
	return best
}

// RunState returns the lifecycle state.
func (s *Session) RunState() RunState { return s.state }

// Score returns the score of the current run.
func (s *Session) Score() int { return s.score }

// Best returns the best score known to the session.
func (s *Session) Best() int { return s.best }

// InputEnabled reports whether Activate reaches the actor.
func (s *Session) InputEnabled() bool { return s.inputEnabled }

// Actor returns the actor of the current run.
func (s *Session) Actor() *Actor { return s.actor }

// Stream returns the obstacle stream of the current run.
func (s *Session) Stream() *ObstacleStream { return s.stream }

// Pool returns the obstacle pool shared by all runs.
func (s *Session) Pool() *ObstaclePool { return s.pool }

// Scheduler returns the frame scheduler.
func (s *Session) Scheduler() *core.Scheduler { return s.sched }

// Elapsed returns the simulated seconds since the session was created.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Run returns the zero-based index of the current run.
func (s *Session) Run() int { return s.run }

// Config returns the configuration the session was built with.
func (s *Session) Config() config.FlappyConfig { return s.cfg }

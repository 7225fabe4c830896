package flappy

// Autopilot flaps whenever the actor is falling below the centre of the gap
// it is heading for. It drives headless simulations.
type Autopilot struct {
	// Bias lowers the aim point below the gap centre.
	Bias float64
}

// Aim returns the height the autopilot tries to hold: the centre of the
// targeted gap, else of the first obstacle still ahead, else of the sky.
func (p Autopilot) Aim(s *Session) float64 {
	a := s.Actor()
	if o := a.Target(); o != nil {
		return o.GapCenter() - p.Bias
	}
	for _, o := range s.Stream().Live() {
		if o.Right() >= a.X {
			return o.GapCenter() - p.Bias
		}
	}
	w := s.Config().World
	return (w.GroundTop()+w.Height)/2 - p.Bias
}

// Decide reports whether the actor should flap on this tick.
func (p Autopilot) Decide(s *Session) bool {
	if s.RunState() != RunPlaying || !s.InputEnabled() {
		return false
	}
	a := s.Actor()
	return a.VelocityY < 0 && a.Y < p.Aim(s)
}

// SimResult summarizes one simulated run.
type SimResult struct {
	Run       int
	Score     int
	Best      int
	Medal     Medal
	Obstacles int
	Duration  float64
	Survived  bool // Still flying when the time limit hit
}

// Simulate plays one run under the autopilot in steps of dt until the run
// ends or maxSeconds of simulated time pass. A non-positive dt means 1/60.
// A surviving run is reset so the session is ready for the next one.
func Simulate(s *Session, p Autopilot, dt, maxSeconds float64) SimResult {
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	if s.RunState() == RunPlaying {
		s.Restart()
	}
	s.StartRun()

	res := SimResult{Run: s.Run()}
	start := s.Elapsed()
	for s.RunState() == RunPlaying && s.Elapsed()-start < maxSeconds {
		if p.Decide(s) {
			s.Activate()
		}
		s.Tick(dt)
	}

	cfg := s.Config()
	res.Score = s.Score()
	res.Best = s.Best()
	res.Medal = MedalFor(res.Score, cfg.Medals.Silver, cfg.Medals.Gold)
	res.Obstacles = s.Stream().Spawned()
	res.Duration = s.Elapsed() - start
	if s.RunState() == RunPlaying {
		res.Survived = true
		s.Restart()
	}
	return res
}

package flappy

import "sync"

// Sounds receives fire-and-forget audio cues. Implementations must not block
// the simulation.
type Sounds interface {
	PlayRise()
	PlayHit()
	PlayDrop()
	PlayScore()
	PlaySwoosh()
}

// Visuals receives cosmetic animation cues.
type Visuals interface {
	// Tilt starts rotating the actor to angle degrees over the given seconds.
	Tilt(angle, seconds float64)
	// StopFlapping halts the wing animation after a collision.
	StopFlapping()
	// Flash blinks the playfield once when a run ends.
	Flash()
}

// Display receives score and run lifecycle notifications.
type Display interface {
	OnScoreChanged(score int)
	OnRunEnded(finalScore, bestScore int)
	// OnBeginRequested is called when the actor is activated before a run
	// has started. The surrounding menu decides whether to start the run.
	OnBeginRequested()
}

// BestScores is the persisted best-score slot.
type BestScores interface {
	// BestScore returns the stored best score; ok is false when none exists.
	BestScore() (score int, ok bool, err error)
	// SetBestScore stores score unless a higher best is already stored.
	SetBestScore(score int) error
}

// NopSounds discards all audio cues.
type NopSounds struct{}

func (NopSounds) PlayRise()   {}
func (NopSounds) PlayHit()    {}
func (NopSounds) PlayDrop()   {}
func (NopSounds) PlayScore()  {}
func (NopSounds) PlaySwoosh() {}

// NopVisuals discards all animation cues.
type NopVisuals struct{}

func (NopVisuals) Tilt(float64, float64) {}
func (NopVisuals) StopFlapping()         {}
func (NopVisuals) Flash()                {}

// NopDisplay discards all display notifications.
type NopDisplay struct{}

func (NopDisplay) OnScoreChanged(int)  {}
func (NopDisplay) OnRunEnded(int, int) {}
func (NopDisplay) OnBeginRequested()   {}

// MemoryBestScores keeps the best score in process memory.
type MemoryBestScores struct {
	mu    sync.Mutex
	score int
	set   bool
}

// BestScore implements BestScores.
func (m *MemoryBestScores) BestScore() (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, m.set, nil
}

// SetBestScore implements BestScores.
func (m *MemoryBestScores) SetBestScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set || score > m.score {
		m.score = score
		m.set = true
	}
	return nil
}

package flappy

import (
	"errors"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// testConfig returns the default tuning with a neutral difficulty.
func testConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Difficulty.Level = 0
	return cfg
}

type countingSounds struct {
	rise, hit, drop, score, swoosh int
}

func (s *countingSounds) PlayRise()   { s.rise++ }
func (s *countingSounds) PlayHit()    { s.hit++ }
func (s *countingSounds) PlayDrop()   { s.drop++ }
func (s *countingSounds) PlayScore()  { s.score++ }
func (s *countingSounds) PlaySwoosh() { s.swoosh++ }

type countingVisuals struct {
	tilts        []float64
	stopFlapping int
	flash        int
}

func (v *countingVisuals) Tilt(angle, _ float64) { v.tilts = append(v.tilts, angle) }
func (v *countingVisuals) StopFlapping()         { v.stopFlapping++ }
func (v *countingVisuals) Flash()                { v.flash++ }

type recordingDisplay struct {
	scores []int
	ended  [][2]int
	begins int
}

func (d *recordingDisplay) OnScoreChanged(score int) { d.scores = append(d.scores, score) }
func (d *recordingDisplay) OnRunEnded(final, best int) {
	d.ended = append(d.ended, [2]int{final, best})
}
func (d *recordingDisplay) OnBeginRequested() { d.begins++ }

type recordingListener struct {
	scored, collided, landed int
}

func (l *recordingListener) OnScored()   { l.scored++ }
func (l *recordingListener) OnCollided() { l.collided++ }
func (l *recordingListener) OnLanded()   { l.landed++ }

// sliceSource hands out a fixed list of obstacles.
type sliceSource struct {
	items []*Obstacle
}

func (s *sliceSource) Next() (*Obstacle, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	o := s.items[0]
	s.items = s.items[1:]
	return o, true
}

type countingStore struct {
	MemoryBestScores
	sets    int
	readErr error
}

func (c *countingStore) BestScore() (int, bool, error) {
	if c.readErr != nil {
		return 0, false, c.readErr
	}
	return c.MemoryBestScores.BestScore()
}

func (c *countingStore) SetBestScore(score int) error {
	c.sets++
	return c.MemoryBestScores.SetBestScore(score)
}

var errStoreDown = errors.New("store down")

// Package audio synthesizes the game's sound effects and plays them through
// the system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the output sample rate.
const SampleRate = beep.SampleRate(44100)

// Player plays sound effects. A Player that was never initialized, or whose
// device failed to open, stays silent.
type Player struct {
	mu          sync.Mutex
	gain        float64
	muted       bool
	initialized bool
	played      map[Effect]int
}

// NewPlayer creates a silent player with the given linear gain.
func NewPlayer(gain float64) *Player {
	return &Player{
		gain:   gain,
		played: make(map[Effect]int),
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/20)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	p.initialized = true
	return nil
}

// Close releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
}

// SetMuted silences or restores playback.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Played returns how many times an effect was requested while unmuted.
func (p *Player) Played(e Effect) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[e]
}

// Play queues an effect. It never blocks on the device.
func (p *Player) Play(e Effect) {
	p.mu.Lock()
	if p.muted {
		p.mu.Unlock()
		return
	}
	p.played[e]++
	live := p.initialized
	p.mu.Unlock()

	if live {
		speaker.Play(NewEffect(e, SampleRate, p.gain))
	}
}

func (p *Player) PlayRise()   { p.Play(EffectRise) }
func (p *Player) PlayHit()    { p.Play(EffectHit) }
func (p *Player) PlayDrop()   { p.Play(EffectDrop) }
func (p *Player) PlayScore()  { p.Play(EffectScore) }
func (p *Player) PlaySwoosh() { p.Play(EffectSwoosh) }

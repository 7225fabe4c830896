package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator wave shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sweep is an oscillator whose frequency glides linearly from one pitch to
// another over its duration.
type sweep struct {
	from, to float64
	wave     Wave
	rate     beep.SampleRate
	total    int
	pos      int
	phase    float64
	rng      *rand.Rand
}

// NewSweep creates an oscillator gliding from one frequency to another.
// A constant tone has from == to.
func NewSweep(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:  from,
		to:    to,
		wave:  wave,
		rate:  rate,
		total: rate.N(d),
		rng:   rand.New(rand.NewSource(int64(from*1000 + to))),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}

		var val float64
		switch s.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			if s.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (s.phase - 0.5)
		case WaveNoise:
			val = s.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		p := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*p
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear attack and release over d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if e.release > 0 && e.pos >= e.total-e.release {
			vol = math.Max(0, float64(e.total-e.pos)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream by a linear gain. math.Log2(0) is -Inf, so a
// zero gain produces a silent stream.
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// tone is a shaped oscillator with a short attack.
func tone(from, to float64, d, release time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewSweep(from, to, d, wave, rate), d, 5*time.Millisecond, release, rate)
}

// Effect identifies one of the synthesized sound effects.
type Effect int

const (
	EffectRise Effect = iota
	EffectHit
	EffectDrop
	EffectScore
	EffectSwoosh
)

// String returns the effect name.
func (e Effect) String() string {
	switch e {
	case EffectRise:
		return "rise"
	case EffectHit:
		return "hit"
	case EffectDrop:
		return "drop"
	case EffectScore:
		return "score"
	case EffectSwoosh:
		return "swoosh"
	default:
		return "unknown"
	}
}

// Effects lists every effect in declaration order.
var Effects = []Effect{EffectRise, EffectHit, EffectDrop, EffectScore, EffectSwoosh}

// Duration returns the length of an effect.
func (e Effect) Duration() time.Duration {
	switch e {
	case EffectRise:
		return 90 * time.Millisecond
	case EffectHit:
		return 120 * time.Millisecond
	case EffectDrop:
		return 350 * time.Millisecond
	case EffectScore:
		return 200 * time.Millisecond
	case EffectSwoosh:
		return 250 * time.Millisecond
	default:
		return 0
	}
}

// NewEffect synthesizes an effect at the given linear gain.
func NewEffect(e Effect, rate beep.SampleRate, gain float64) beep.Streamer {
	var s beep.Streamer
	switch e {
	case EffectRise:
		s = tone(420, 760, e.Duration(), 40*time.Millisecond, WaveSquare, rate)
	case EffectHit:
		s = beep.Mix(
			newVolume(tone(0, 0, e.Duration(), 80*time.Millisecond, WaveNoise, rate), 0.6),
			newVolume(tone(110, 60, e.Duration(), 60*time.Millisecond, WaveSine, rate), 0.8),
		)
	case EffectDrop:
		s = tone(520, 110, e.Duration(), 120*time.Millisecond, WaveSaw, rate)
	case EffectScore:
		half := e.Duration() / 2
		s = beep.Seq(
			tone(987.77, 987.77, half, 30*time.Millisecond, WaveSquare, rate),
			tone(1318.51, 1318.51, half, 60*time.Millisecond, WaveSquare, rate),
		)
	case EffectSwoosh:
		s = tone(0, 0, e.Duration(), 150*time.Millisecond, WaveNoise, rate)
	default:
		return nil
	}
	return newVolume(s, gain)
}

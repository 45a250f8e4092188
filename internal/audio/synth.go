package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// oscillator renders a fixed-length tone, optionally sliding from freq to
// endFreq over its duration.
type oscillator struct {
	freq    float64
	endFreq float64
	phase   float64
	pos     int
	length  int
	wave    Wave
	rate    beep.SampleRate
	seed    uint32
}

func newTone(freq, endFreq float64, d time.Duration, wave Wave, rate beep.SampleRate) *oscillator {
	if endFreq == 0 {
		endFreq = freq
	}
	return &oscillator{
		freq:    freq,
		endFreq: endFreq,
		length:  rate.N(d),
		wave:    wave,
		rate:    rate,
		seed:    0x9e3779b9,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveNoise:
			// xorshift keeps noise reproducible
			o.seed ^= o.seed << 13
			o.seed ^= o.seed >> 17
			o.seed ^= o.seed << 5
			v = float64(o.seed)/float64(math.MaxUint32)*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		t := float64(o.pos) / float64(o.length)
		f := o.freq + (o.endFreq-o.freq)*t
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	s       beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		s:       s,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := range n {
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			vol = max(0, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// note is one shaped tone.
type note struct {
	freq, endFreq float64
	d             time.Duration
	wave          Wave
}

func (n note) streamer(rate beep.SampleRate) beep.Streamer {
	osc := newTone(n.freq, n.endFreq, n.d, n.wave, rate)
	return newEnvelope(osc, n.d, 5*time.Millisecond, n.d/3, rate)
}

// volume scales s linearly; zero or less mutes it.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

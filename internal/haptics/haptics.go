package haptics

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// A terminal has no vibration motor, so haptics are rendered as short
// low-frequency thumps through the speaker. Close enough: the point is that
// the device reacts when the story shakes it.

const sampleRate = beep.SampleRate(48000)

// Engine owns the speaker and plays pulses into a shared mixer.
type Engine struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	enabled     bool
}

func New(enabled bool) *Engine {
	return &Engine{mixer: &beep.Mixer{}, enabled: enabled}
}

// Init sets up the audio system. Safe to call more than once.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initialized || !e.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(e.mixer)
	e.initialized = true
	return nil
}

// Pulse plays one thump. Intensity in [0,1] scales both loudness and pitch:
// harder pulses sit a little higher, the way a motor spins up.
func (e *Engine) Pulse(d time.Duration, intensity float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}
	freq := 55 + 35*intensity
	speaker.Lock()
	e.mixer.Add(newThump(freq, intensity, d))
	speaker.Unlock()
}

// Close silences everything.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
}

// thump is a decaying sine burst.
type thump struct {
	freq     float64
	gain     float64
	phase    float64
	position int
	total    int
}

func newThump(freq, gain float64, d time.Duration) beep.Streamer {
	return &thump{freq: freq, gain: gain, total: sampleRate.N(d)}
}

func (t *thump) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, false
		}
		decay := 1 - float64(t.position)/float64(t.total)
		val := math.Sin(2*math.Pi*t.phase) * t.gain * decay * decay
		samples[i][0] = val
		samples[i][1] = val
		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *thump) Err() error { return nil }

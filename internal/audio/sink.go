// Package audio synthesizes the game's sound effects and plays them in
// response to gameplay events.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

const (
	sampleRate    = beep.SampleRate(44100)
	defaultVolume = 0.3
)

// Options configure a Sink.
type Options struct {
	Muted  bool
	Volume float64 // 0..1, zero means the default
	Logger *log.Logger
}

// Sink is an invaders.NotificationSink that plays a tone per event.
// The speaker is opened lazily and a failure to open it leaves the sink
// silent.
type Sink struct {
	mu          sync.Mutex
	muted       bool
	volume      float64
	log         *log.Logger
	mixer       *beep.Mixer
	initialized bool
	initErr     error
	play        func(beep.Streamer)
	played      int
}

// NewSink creates a sound sink. Nothing touches the audio device until
// Init is called.
func NewSink(opts Options) *Sink {
	s := &Sink{
		muted:  opts.Muted,
		volume: opts.Volume,
		log:    opts.Logger,
		mixer:  &beep.Mixer{},
	}
	if s.volume <= 0 {
		s.volume = defaultVolume
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	s.play = s.playSpeaker
	return s
}

// Init opens the speaker. It is safe to call more than once; the first
// result is kept.
func (s *Sink) Init() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized || s.initErr != nil || s.muted {
		return s.initErr
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		s.initErr = err
		s.log.Warn("audio disabled", "err", err)
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// SetMuted toggles sound at runtime.
func (s *Sink) SetMuted(m bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.muted = m
	s.mu.Unlock()
}

// Muted reports whether the sink is muted.
func (s *Sink) Muted() bool {
	if s == nil {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Notify plays the sound for e. It never fails: sound is best effort.
func (s *Sink) Notify(e invaders.Event) error {
	if s == nil {
		return nil
	}
	snd := SoundFor(e)
	if snd == SoundNone {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muted || s.play == nil {
		return nil
	}
	if st := Build(snd, sampleRate, s.volume); st != nil {
		s.play(st)
		s.played++
	}
	return nil
}

func (s *Sink) playSpeaker(st beep.Streamer) {
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences anything still playing.
func (s *Sink) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}

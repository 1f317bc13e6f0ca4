// Package audio plays synthesized sounds for game events.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/surfjump/internal/core"
)

// Config controls the sound board.
type Config struct {
	SampleRate int
	Volume     float64 // linear, 1 = full scale
	Muted      bool
}

// DefaultConfig returns the default audio settings.
func DefaultConfig() Config {
	return Config{SampleRate: 44100, Volume: 0.4}
}

// Board turns game events into sounds. It is silent until Start succeeds.
type Board struct {
	mu     sync.Mutex
	cfg    Config
	rate   beep.SampleRate
	mixer  *beep.Mixer
	live   bool
	logger *log.Logger
}

// NewBoard creates a sound board. A nil logger discards output.
func NewBoard(cfg Config, logger *log.Logger) *Board {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Board{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Start opens the audio device and begins playback. A muted board never
// touches the device.
func (b *Board) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.live || b.cfg.Muted {
		return nil
	}
	if err := speaker.Init(b.rate, b.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.live = true
	b.logger.Debug("audio started", "rate", b.cfg.SampleRate)
	return nil
}

// Close stops playback and releases the device.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.live {
		return
	}
	speaker.Clear()
	speaker.Close()
	b.mixer.Clear()
	b.live = false
}

// Playing returns the number of sounds still in the mix.
func (b *Board) Playing() int {
	speaker.Lock()
	defer speaker.Unlock()
	return b.mixer.Len()
}

// OnEvent plays the sound for ev.
func (b *Board) OnEvent(ev core.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.live {
		return
	}
	s := b.Sound(ev)
	if s == nil {
		return
	}
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

// Sound builds the streamer for an event, or nil for events without a
// sound. Rate scales the pitch.
func (b *Board) Sound(ev core.Event) beep.Streamer {
	rate := ev.Rate
	if rate <= 0 {
		rate = 1
	}
	r := b.rate
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	var s beep.Streamer
	switch ev.Kind {
	case core.EventJump:
		s = note(330, 660, ms(90), WaveSquare, r)
	case core.EventLand:
		s = volume(note(0, 0, ms(60), WaveNoise, r), 0.5)
	case core.EventLanded:
		f := 660 * rate
		s = beep.Mix(
			volume(note(f, f, ms(140), WaveSine, r), 0.7),
			volume(note(2*f, 2*f, ms(140), WaveSine, r), 0.3),
		)
	case core.EventMissed:
		s = note(220, 110, ms(250), WaveSaw, r)
	case core.EventLevelUp:
		base := 523.25 * rate
		s = beep.Seq(
			note(base, base, ms(90), WaveSquare, r),
			note(base*1.5, base*1.5, ms(160), WaveSquare, r),
		)
	case core.EventLevelDown:
		s = beep.Seq(
			note(392, 392, ms(90), WaveSquare, r),
			note(262, 262, ms(160), WaveSquare, r),
		)
	case core.EventGameOver:
		s = note(196, 49, ms(600), WaveSaw, r)
	case core.EventSelect:
		s = beep.Seq(
			note(880, 880, ms(40), WaveSquare, r),
			note(1320, 1320, ms(60), WaveSquare, r),
		)
	default:
		return nil
	}
	return volume(s, b.cfg.Volume)
}

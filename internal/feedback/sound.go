package feedback

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// explosion is a short descending rumble.
var explosion = []struct {
	freq float64
	dur  time.Duration
}{
	{freq: 180, dur: 40 * time.Millisecond},
	{freq: 120, dur: 60 * time.Millisecond},
	{freq: 70, dur: 120 * time.Millisecond},
}

// Sound plays an audible cue on explosions and ignores messages.
type Sound struct {
	rate   beep.SampleRate
	logger *log.Logger // nil uses the standard logger
	failed sync.Once
}

// NewSound initialises the speaker. Callers should treat an error as
// "run without sound".
func NewSound() (*Sound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Sound{rate: sampleRate}, nil
}

func (s *Sound) Message(string) {}

func (s *Sound) Explode(mgl64.Vec3) {
	if st, ok := s.streamer(); ok {
		speaker.Play(st)
	}
}

func (s *Sound) Close() {
	speaker.Close()
}

// streamer builds the explosion cue. A failure is logged the first time
// only, and the cue is skipped.
func (s *Sound) streamer() (beep.Streamer, bool) {
	st, err := explosionStreamer(s.rate)
	if err != nil {
		s.failed.Do(func() {
			if s.logger != nil {
				s.logger.Printf("explosion sound disabled: %v", err)
				return
			}
			log.Printf("explosion sound disabled: %v", err)
		})
		return nil, false
	}
	return st, true
}

func explosionStreamer(sr beep.SampleRate) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(explosion))
	for _, p := range explosion {
		tone, err := generators.SineTone(sr, p.freq)
		if err != nil {
			return nil, fmt.Errorf("sine tone %v Hz: %w", p.freq, err)
		}
		parts = append(parts, beep.Take(sr.N(p.dur), tone))
	}
	return beep.Seq(parts...), nil
}

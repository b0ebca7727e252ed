// Package audio synthesizes the short cue tones and plays them through the
// system speaker.
package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"fitclock/internal/core/model"
)

const sampleRate = beep.SampleRate(44100)

// Player holds one pre-rendered tone per cue kind and replays it on demand.
type Player struct {
	mu      sync.Mutex
	buffers map[model.CueKind]*beep.Buffer
	ready   bool
}

// NewPlayer initializes the speaker and renders the cue tones. Audio
// failures disable playback but never fail construction: a clock without
// sound still ticks.
func NewPlayer() *Player {
	player := &Player{buffers: make(map[model.CueKind]*beep.Buffer)}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio disabled: speaker init failed: %v", err)
		return player
	}
	player.ready = true

	tones := map[model.CueKind]beep.Streamer{
		model.CueStart:   singleBeep(880, 150*time.Millisecond),
		model.CueHalfway: singleBeep(660, 150*time.Millisecond),
		model.CueEnd:     doubleBeep(990, 120*time.Millisecond),
	}
	for kind, tone := range tones {
		if tone == nil {
			continue
		}
		buffer := beep.NewBuffer(beep.Format{
			SampleRate:  sampleRate,
			NumChannels: 2,
			Precision:   2,
		})
		buffer.Append(tone)
		player.buffers[kind] = buffer
	}
	return player
}

// Play replays the tone for kind at a volume in 0..1. Unknown kinds and
// playback problems are swallowed; the timing loop never sees them.
func (player *Player) Play(kind model.CueKind, volume float64) {
	if !player.ready || volume <= 0 {
		return
	}
	if volume > 1 {
		volume = 1
	}

	buffer, ok := player.buffers[kind]
	if !ok {
		log.Printf("audio: no tone rendered for cue %q", kind)
		return
	}

	player.mu.Lock()
	defer player.mu.Unlock()

	// Base 2 with a log2 exponent makes the 0..1 slider a linear gain.
	speaker.Play(&effects.Volume{
		Streamer: buffer.Streamer(0, buffer.Len()),
		Base:     2,
		Volume:   math.Log2(volume),
	})
}

func singleBeep(freq int, length time.Duration) beep.Streamer {
	tone, err := generators.SinTone(sampleRate, freq)
	if err != nil {
		log.Printf("audio: tone synthesis failed for %d Hz: %v", freq, err)
		return nil
	}
	return beep.Take(sampleRate.N(length), tone)
}

// doubleBeep is the end-of-work signature: two bursts with a short gap.
func doubleBeep(freq int, length time.Duration) beep.Streamer {
	first := singleBeep(freq, length)
	second := singleBeep(freq, length)
	if first == nil || second == nil {
		return nil
	}
	return beep.Seq(first, beep.Silence(sampleRate.N(80*time.Millisecond)), second)
}

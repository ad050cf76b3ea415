package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Cue names one feedback sound
type Cue int

const (
	CueReseed Cue = iota
	CueShutter
)

// CuePlayer plays short feedback sounds for sketch actions. Play is a no-op
// until Initialize succeeds.
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewCuePlayer creates a player at a linear volume in [0,1]
func NewCuePlayer(volume float64) *CuePlayer {
	return &CuePlayer{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker and attaches the mixer
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup clears pending sounds and closes the speaker
func (p *CuePlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Play queues a cue on the mixer
func (p *CuePlayer) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	streamer := p.withVolume(NewCueStreamer(c, sampleRate))
	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
}

func (p *CuePlayer) withVolume(s beep.Streamer) beep.Streamer {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   linearToLog2(p.volume),
		Silent:   p.volume <= 0,
	}
}

// linearToLog2 converts a linear gain to the exponent effects.Volume expects
func linearToLog2(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(v)
}

// NewCueStreamer returns the finite streamer for a cue
func NewCueStreamer(c Cue, sr beep.SampleRate) beep.Streamer {
	switch c {
	case CueShutter:
		return beep.Take(sr.N(time.Millisecond*60), NewClickGenerator(sr))
	default:
		return beep.Take(sr.N(time.Millisecond*120), NewChirpGenerator(sr, 440, 1320))
	}
}

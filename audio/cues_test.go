package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns the sample count
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1.0 || buf[i][0] > 1.0 || math.IsNaN(buf[i][0]) {
				t.Fatalf("Sample %d out of range: %f", total+i, buf[i][0])
			}
			if buf[i][0] != buf[i][1] {
				t.Fatalf("Sample %d not mono: %f vs %f", total+i, buf[i][0], buf[i][1])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
}

// TestCueStreamersFinite verifies cues end after their fixed duration
func TestCueStreamersFinite(t *testing.T) {
	rate := beep.SampleRate(44100)

	if got, want := drain(t, NewCueStreamer(CueReseed, rate)), rate.N(time.Millisecond*120); got != want {
		t.Errorf("Expected reseed cue of %d samples, got %d", want, got)
	}
	if got, want := drain(t, NewCueStreamer(CueShutter, rate)), rate.N(time.Millisecond*60); got != want {
		t.Errorf("Expected shutter cue of %d samples, got %d", want, got)
	}
}

// TestChirpGeneratorEnvelope verifies the sweep starts silent
func TestChirpGeneratorEnvelope(t *testing.T) {
	g := NewChirpGenerator(beep.SampleRate(44100), 440, 1320)
	samples := make([][2]float64, 1)
	g.Stream(samples)

	if samples[0][0] != 0 {
		t.Errorf("Expected first sample to be silent, got %f", samples[0][0])
	}
	if g.Err() != nil {
		t.Errorf("Expected no error, got: %v", g.Err())
	}
}

// TestClickGeneratorDecays verifies the click energy falls off
func TestClickGeneratorDecays(t *testing.T) {
	rate := beep.SampleRate(44100)
	g := NewClickGenerator(rate)
	early := make([][2]float64, 441)
	late := make([][2]float64, 441)
	g.Stream(early)
	g.Stream(make([][2]float64, rate.N(time.Millisecond*40)))
	g.Stream(late)

	if energy(late) >= energy(early) {
		t.Errorf("Expected late energy %f below early energy %f", energy(late), energy(early))
	}
}

func energy(samples [][2]float64) float64 {
	var e float64
	for _, s := range samples {
		e += s[0] * s[0]
	}
	return e
}

// TestCuePlayerUninitializedIsNoop verifies playing without a device is safe
func TestCuePlayerUninitializedIsNoop(t *testing.T) {
	p := NewCuePlayer(0.5)
	p.Play(CueReseed)
	p.Play(CueShutter)
	p.Cleanup()
}

// TestLinearToLog2 verifies volume mapping
func TestLinearToLog2(t *testing.T) {
	if v := linearToLog2(1); v != 0 {
		t.Errorf("Expected full volume to map to 0, got %f", v)
	}
	if v := linearToLog2(0.5); v != -1 {
		t.Errorf("Expected half volume to map to -1, got %f", v)
	}
	if v := linearToLog2(0); v != 0 {
		t.Errorf("Expected silent volume to map to 0, got %f", v)
	}
}

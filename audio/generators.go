package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ChirpGenerator sweeps a sine from one frequency to another over its cycle
type ChirpGenerator struct {
	sr       beep.SampleRate
	from, to float64
	pos      int
	samples  int
	phase    float64
}

// NewChirpGenerator creates a rising (or falling) sweep over 120ms
func NewChirpGenerator(sr beep.SampleRate, from, to float64) *ChirpGenerator {
	return &ChirpGenerator{
		sr:      sr,
		from:    from,
		to:      to,
		samples: sr.N(time.Millisecond * 120),
	}
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		cyclePos := float64(g.pos%g.samples) / float64(g.samples)
		freq := g.from + (g.to-g.from)*cyclePos

		// Short attack, linear release
		envelope := math.Min(cyclePos/0.05, 1.0) * (1 - cyclePos)
		sample := 0.3 * envelope * math.Sin(2*math.Pi*g.phase)

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}

// ClickGenerator generates a camera-shutter style noise click
type ClickGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed uint32
}

// NewClickGenerator creates a click generator with a fixed noise seed
func NewClickGenerator(sr beep.SampleRate) *ClickGenerator {
	return &ClickGenerator{
		sr:   sr,
		seed: 0x2545f491,
	}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 80)

		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1

		thump := 0.4 * math.Sin(2*math.Pi*180*t)
		sample := envelope * (0.35*noise + thump)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error {
	return nil
}

// Package sketch holds the randomized tile state shared by the window and
// terminal frontends.
package sketch

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/trisketch/palette"
	"github.com/lixenwraith/trisketch/tile"
)

// Variant selects between the two sketches
type Variant int

const (
	// VariantMono draws foreground triangles and re-randomizes every tick
	VariantMono Variant = iota
	// VariantColor paints tiles from a palette and reseeds on demand
	VariantColor
)

func (v Variant) String() string {
	switch v {
	case VariantMono:
		return "mono"
	case VariantColor:
		return "color"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant maps a config/flag string to a Variant
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "mono", "":
		return VariantMono, nil
	case "color", "colour":
		return VariantColor, nil
	}
	return 0, fmt.Errorf("unknown variant %q", s)
}

// Seed ranges of the original sketches
const (
	InitialSeedRange = 100000
	ReseedRange      = 1000000
)

// SeedSource yields a fresh seed below n
type SeedSource func(n uint64) uint64

// EntropySeeds draws from the process-wide generator
func EntropySeeds(n uint64) uint64 {
	return rand.Uint64N(n)
}

// Options configure a Sketch
type Options struct {
	Variant    Variant
	Rows, Cols int
	Foreground palette.Color
	Palettes   palette.Set
	Seeds      SeedSource
	// Seed pins the initial seed when set
	Seed *uint64
}

// Sketch owns the tiles, the current seed and when to re-randomize
type Sketch struct {
	variant  Variant
	fg       palette.Color
	palettes palette.Set
	seeds    SeedSource

	tiles   []tile.Tile
	seed    uint64
	dirty   bool
	chosen  int
	updates uint64
}

// New builds the grid once and picks the initial seed
func New(opts Options) *Sketch {
	seeds := opts.Seeds
	if seeds == nil {
		seeds = EntropySeeds
	}

	s := &Sketch{
		variant: opts.Variant,
		fg:      opts.Foreground,
		seeds:   seeds,
		tiles:   tile.BuildGrid(opts.Rows, opts.Cols),
		dirty:   true,
		chosen:  -1,
	}
	if opts.Variant == VariantColor {
		s.palettes = opts.Palettes
	} else {
		for i := range s.tiles {
			s.tiles[i].Color = opts.Foreground
		}
	}

	if opts.Seed != nil {
		s.seed = *opts.Seed
	} else {
		s.seed = seeds(InitialSeedRange)
	}
	return s
}

// Update runs one randomization pass if this tick needs one and reports
// whether the tiles were rewritten
func (s *Sketch) Update() bool {
	if s.variant == VariantColor && !s.dirty {
		return false
	}
	s.chosen = Randomize(s.seed, s.tiles, s.palettes)
	s.dirty = false
	s.updates++
	return true
}

// Reseed replaces the seed from the entropy source. The mono sketch has no
// reseed key, so it reports false there and keeps its seed.
func (s *Sketch) Reseed() bool {
	if s.variant != VariantColor {
		return false
	}
	s.seed = s.seeds(ReseedRange)
	s.dirty = true
	return true
}

// ScreenshotName is the file a capture of the current frame is written to
func (s *Sketch) ScreenshotName(exe string) string {
	if s.variant == VariantColor {
		return fmt.Sprintf("%s%03d.png", exe, s.seed)
	}
	return exe + ".png"
}

// Tiles exposes the tile slice for rendering. Callers must not modify it.
func (s *Sketch) Tiles() []tile.Tile { return s.tiles }

func (s *Sketch) Seed() uint64 { return s.seed }

func (s *Sketch) Variant() Variant { return s.variant }

// PaletteIndex is the palette chosen by the last pass, -1 in mono mode
func (s *Sketch) PaletteIndex() int { return s.chosen }

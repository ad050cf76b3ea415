package sketch

import (
	"math/rand/v2"

	"github.com/lixenwraith/trisketch/palette"
	"github.com/lixenwraith/trisketch/tile"
)

// Randomize assigns every tile a rotation, and a color when palettes is
// non-empty, drawn from a PCG stream seeded with seed. Tiles are visited in
// slice order with rotation drawn before color, so equal inputs always give
// equal output. Returns the index of the chosen palette, or -1 in mono mode.
func Randomize(seed uint64, tiles []tile.Tile, palettes palette.Set) int {
	rng := rand.New(rand.NewPCG(seed, seed))

	chosen := -1
	var pal palette.Palette
	if len(palettes) > 0 {
		chosen = rng.IntN(len(palettes))
		pal = palettes[chosen]
	}

	for i := range tiles {
		tiles[i].Rotation = tile.RotationFromQuarter(rng.IntN(len(tile.Rotations)))
		if chosen >= 0 {
			tiles[i].Color = pal[rng.IntN(palette.Size)]
		}
	}
	return chosen
}

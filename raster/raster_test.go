package raster

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/trisketch/palette"
	"github.com/lixenwraith/trisketch/sketch"
	"github.com/lixenwraith/trisketch/tile"
)

func colorAt(img *image.RGBA, x, y int) palette.Color {
	px := img.RGBAAt(x, y)
	return palette.Color{R: px.R, G: px.G, B: px.B}
}

func countColor(img *image.RGBA, c palette.Color) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if colorAt(img, x, y) == c {
				n++
			}
		}
	}
	return n
}

// interiorPixel returns a pixel fully inside the tile's triangle
func interiorPixel(t tile.Tile, size float64) (int, int) {
	v := t.Vertices(size)
	cx := (v[0].X + v[1].X + v[2].X) / 3
	cy := (v[0].Y + v[1].Y + v[2].Y) / 3
	return int(math.Floor(cx)), int(math.Floor(cy))
}

func TestRenderBounds(t *testing.T) {
	opts := Options{Rows: 24, Cols: 24, Size: 20, Background: palette.Snow}
	img := Render(tile.BuildGrid(24, 24), opts)
	assert.Equal(t, 480, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestRenderSingleTileHalfCovered(t *testing.T) {
	opts := Options{Rows: 1, Cols: 1, Size: 10, Background: palette.Snow}
	img := Render(tile.BuildGrid(1, 1), opts)

	assert.Equal(t, palette.Black, colorAt(img, 9, 9), "lower-right corner is inside")
	assert.Equal(t, palette.Snow, colorAt(img, 0, 0), "upper-left corner is background")

	// 45 pixels on each side of the diagonal, the 10 it crosses are blended
	black := countColor(img, palette.Black)
	snow := countColor(img, palette.Snow)
	assert.InDelta(t, 45, black, 2)
	assert.InDelta(t, 45, snow, 2)
	assert.LessOrEqual(t, black+snow, 100)
}

func TestRenderRotationMovesTriangle(t *testing.T) {
	opts := Options{Rows: 1, Cols: 1, Size: 10, Background: palette.Snow}
	tiles := tile.BuildGrid(1, 1)
	tiles[0].Rotation = tile.RotationFromQuarter(2)

	img := Render(tiles, opts)
	assert.Equal(t, palette.Black, colorAt(img, 0, 0))
	assert.Equal(t, palette.Snow, colorAt(img, 9, 9))

	want := countColor(Render(tile.BuildGrid(1, 1), opts), palette.Black)
	for q := 0; q < 4; q++ {
		tiles[0].Rotation = tile.RotationFromQuarter(q)
		assert.Equal(t, want, countColor(Render(tiles, opts), palette.Black), "quarter %d", q)
	}
}

func TestRenderUsesTileColors(t *testing.T) {
	opts := Options{Rows: 16, Cols: 16, Size: 8, Background: palette.Snow}
	tiles := tile.BuildGrid(16, 16)
	set := palette.Builtin()
	idx := sketch.Randomize(42, tiles, set)

	img := Render(tiles, opts)
	for i, tl := range tiles {
		x, y := interiorPixel(tl, float64(opts.Size))
		c := colorAt(img, x, y)
		require.Equal(t, tl.Color, c, "tile %d at %d,%d", i, x, y)
		require.True(t, set[idx].Contains(c), "tile %d has %v", i, c)
	}
}

func TestFill(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	Fill(img, palette.FromUint32(0x2a9d8f))
	assert.Equal(t, 6, countColor(img, palette.FromUint32(0x2a9d8f)))
	assert.Equal(t, uint8(0xff), img.RGBAAt(2, 1).A)
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shots", "trisketch042.png")
	opts := Options{Rows: 2, Cols: 3, Size: 4, Background: palette.Snow}

	require.NoError(t, SavePNG(path, Render(tile.BuildGrid(2, 3), opts)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Width)
	assert.Equal(t, 8, cfg.Height)
}

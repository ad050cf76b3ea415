// Package raster draws the tile grid into an in-memory image. It backs the
// headless render command, the terminal preview and screenshot encoding.
package raster

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/lixenwraith/trisketch/palette"
	"github.com/lixenwraith/trisketch/tile"
)

// Options describe the target canvas
type Options struct {
	Rows, Cols int
	Size       int
	Background palette.Color
}

// Bounds returns the canvas size in pixels
func (o Options) Bounds() (w, h int) {
	return o.Cols * o.Size, o.Rows * o.Size
}

// Render clears to the background then fills one triangle per tile.
// Hypotenuse pixels are antialiased, leg edges fall on pixel boundaries.
func Render(tiles []tile.Tile, opts Options) *image.RGBA {
	w, h := opts.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	Fill(img, opts.Background)

	dc := gg.NewContextForRGBA(img)
	size := float64(opts.Size)
	for i := range tiles {
		t := &tiles[i]
		fillTriangle(dc, t.Vertices(size), t.Color)
	}
	return img
}

// Fill paints every pixel with c
func Fill(img *image.RGBA, c palette.Color) {
	dc := gg.NewContextForRGBA(img)
	setColor(dc, c)
	dc.Clear()
}

func fillTriangle(dc *gg.Context, v [3]tile.Point, c palette.Color) {
	dc.MoveTo(v[0].X, v[0].Y)
	dc.LineTo(v[1].X, v[1].Y)
	dc.LineTo(v[2].X, v[2].Y)
	dc.ClosePath()
	setColor(dc, c)
	dc.Fill()
}

func setColor(dc *gg.Context, c palette.Color) {
	dc.SetRGB255(int(c.R), int(c.G), int(c.B))
}

// SavePNG encodes img to path, creating parent directories as needed
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create screenshot dir: %w", err)
		}
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

package termview

import (
	"image"
	"image/color"

	"github.com/lixenwraith/trisketch/palette"
)

// quadrantChars maps 4-bit patterns to Unicode quadrant characters
// Bit order: 0=UL, 1=UR, 2=LL, 3=LR (1 = foreground)
var quadrantChars = [16]rune{
	' ', '▘', '▝', '▀',
	'▖', '▌', '▞', '▛',
	'▗', '▚', '▐', '▜',
	'▄', '▙', '▟', '█',
}

// Cell is one terminal character with its colors
type Cell struct {
	Rune   rune
	Fg, Bg palette.Color
}

// Frame is a grid of cells in row-major order
type Frame struct {
	Cells         []Cell
	Width, Height int
}

// At returns the cell at column x, row y
func (f *Frame) At(x, y int) Cell {
	return f.Cells[y*f.Width+x]
}

// FitCells picks the largest cell grid showing a srcW x srcH image inside a
// termW x termH area. Each cell covers 2x2 source samples, and cells are
// about twice as tall as wide, so pixel aspect carries over unchanged.
func FitCells(srcW, srcH, termW, termH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || termW <= 0 || termH <= 0 {
		return 0, 0
	}
	outW := termW
	outH := outW * srcH / (2 * srcW)
	if outH > termH {
		outH = termH
		outW = outH * 2 * srcW / srcH
	}
	return max(outW, 1), max(outH, 1)
}

// Convert samples img into outW x outH quadrant cells
func Convert(img image.Image, outW, outH int) *Frame {
	f := &Frame{Cells: make([]Cell, outW*outH), Width: outW, Height: outH}
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return f
	}

	// Effective pixel grid is 2x output dimensions
	gridW := outW * 2
	gridH := outH * 2
	offsets := [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			var pixels [4]palette.Color
			for i, off := range offsets {
				sx := bounds.Min.X + ((x*2+off[0])*srcW+srcW/2)/gridW
				sy := bounds.Min.Y + ((y*2+off[1])*srcH+srcH/2)/gridH
				sx = min(sx, bounds.Max.X-1)
				sy = min(sy, bounds.Max.Y-1)
				pixels[i] = toColor(img.At(sx, sy))
			}

			char, fg, bg := bestQuadrant(pixels)
			f.Cells[y*outW+x] = Cell{Rune: char, Fg: fg, Bg: bg}
		}
	}
	return f
}

func toColor(c color.Color) palette.Color {
	if pc, ok := c.(palette.Color); ok {
		return pc
	}
	if rgba, ok := c.(color.RGBA); ok {
		return palette.Color{R: rgba.R, G: rgba.G, B: rgba.B}
	}
	r, g, b, _ := c.RGBA()
	return palette.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// bestQuadrant searches all 16 patterns for the lowest color error
func bestQuadrant(pixels [4]palette.Color) (rune, palette.Color, palette.Color) {
	bestError := int(^uint(0) >> 1)
	bestPattern := 0
	var bestFg, bestBg palette.Color

	for pattern := 0; pattern < 16; pattern++ {
		fg, bg, err := patternColors(pixels, pattern)
		if err < bestError {
			bestError = err
			bestPattern = pattern
			bestFg = fg
			bestBg = bg
		}
	}
	return quadrantChars[bestPattern], bestFg, bestBg
}

// patternColors averages each group of a bit pattern and returns the total
// squared error against those averages
func patternColors(pixels [4]palette.Color, pattern int) (fg, bg palette.Color, totalError int) {
	var fgSum, bgSum [3]int
	var fgCount, bgCount int

	for i := 0; i < 4; i++ {
		p := pixels[i]
		if pattern&(1<<i) != 0 {
			fgSum[0] += int(p.R)
			fgSum[1] += int(p.G)
			fgSum[2] += int(p.B)
			fgCount++
		} else {
			bgSum[0] += int(p.R)
			bgSum[1] += int(p.G)
			bgSum[2] += int(p.B)
			bgCount++
		}
	}

	fg = average(fgSum, fgCount)
	bg = average(bgSum, bgCount)
	if fgCount == 0 {
		fg = bg
	}
	if bgCount == 0 {
		bg = fg
	}

	for i := 0; i < 4; i++ {
		ref := bg
		if pattern&(1<<i) != 0 {
			ref = fg
		}
		totalError += sqDist(pixels[i], ref)
	}
	return fg, bg, totalError
}

func average(sum [3]int, n int) palette.Color {
	if n == 0 {
		return palette.Color{}
	}
	return palette.Color{R: uint8(sum[0] / n), G: uint8(sum[1] / n), B: uint8(sum[2] / n)}
}

func sqDist(a, b palette.Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Package palette holds the fixed five-color palettes tiles are painted from.
package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Size is the number of colors in every palette
const Size = 5

// Color is an opaque 8-bit RGB triple
type Color struct {
	R, G, B uint8
}

// Predefined colors
var (
	Black = Color{0, 0, 0}
	Snow  = Color{255, 250, 250}
)

// RGBA implements color.Color
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Hex returns the color as #rrggbb
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FromUint32 unpacks a 0xRRGGBB value
func FromUint32(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// ParseHex parses "#rrggbb" (the leading '#' is optional)
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Palette is one fixed list of candidate tile colors
type Palette [Size]Color

// Contains reports whether c is one of the palette entries
func (p Palette) Contains(c Color) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// Hex returns the palette entries as hex strings
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}

// ParsePalette builds a palette from exactly Size distinct hex strings
func ParsePalette(hex []string) (Palette, error) {
	var p Palette
	if len(hex) != Size {
		return p, fmt.Errorf("palette needs %d colors, got %d", Size, len(hex))
	}
	for i, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			return p, fmt.Errorf("palette entry %d: %w", i, err)
		}
		for j := 0; j < i; j++ {
			if p[j] == c {
				return p, fmt.Errorf("palette entry %d repeats %s", i, c.Hex())
			}
		}
		p[i] = c
	}
	return p, nil
}

// Set is an immutable, ordered collection of palettes
type Set []Palette

// With returns a new set with extra palettes appended, leaving s untouched
func (s Set) With(extra ...Palette) Set {
	out := make(Set, 0, len(s)+len(extra))
	out = append(out, s...)
	return append(out, extra...)
}

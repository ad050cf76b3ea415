// Package tile builds the fixed grid of triangle tiles.
//
// Tile geometry lives in tile units: a tile is the unit square centered on
// its grid cell, and the y axis grows downward as on screen.
package tile

import (
	"math"

	"github.com/lixenwraith/trisketch/palette"
)

// Point is a 2D offset
type Point struct {
	X, Y float64
}

// Rotations are the only angles a tile may take, in radians
var Rotations = [4]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}

// DefaultShape is the right triangle every tile starts with, covering the
// lower-right half of the cell
var DefaultShape = [3]Point{
	{X: 0.5, Y: 0.5},
	{X: -0.5, Y: 0.5},
	{X: 0.5, Y: -0.5},
}

// Tile is one grid cell rendered as a rotated right triangle
type Tile struct {
	X, Y     int
	Rotation float64
	Color    palette.Color
	Points   [3]Point
}

// RotationFromQuarter maps a quarter-turn count in [0,4) to radians
func RotationFromQuarter(q int) float64 {
	return Rotations[q&3]
}

// BuildGrid returns rows*cols tiles in row-major order
func BuildGrid(rows, cols int) []Tile {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	tiles := make([]Tile, 0, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			tiles = append(tiles, Tile{
				X:      x,
				Y:      y,
				Color:  palette.Black,
				Points: DefaultShape,
			})
		}
	}
	return tiles
}

// Center returns the tile center in pixels for a given tile size
func (t *Tile) Center(size float64) Point {
	return Point{
		X: (float64(t.X) + 0.5) * size,
		Y: (float64(t.Y) + 0.5) * size,
	}
}

// Vertices returns the triangle corners in pixel space after rotation
func (t *Tile) Vertices(size float64) [3]Point {
	c := t.Center(size)
	sin, cos := math.Sincos(t.Rotation)

	var out [3]Point
	for i, p := range t.Points {
		rx := p.X*cos - p.Y*sin
		ry := p.X*sin + p.Y*cos
		// Snap float noise from sin/cos of quarter turns back onto the grid
		out[i] = Point{
			X: c.X + snap(rx)*size,
			Y: c.Y + snap(ry)*size,
		}
	}
	return out
}

func snap(v float64) float64 {
	const eps = 1e-9
	r := math.Round(v*2) / 2
	if math.Abs(v-r) < eps {
		return r
	}
	return v
}

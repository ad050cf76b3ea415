// Command trisketch-color paints randomly rotated triangles from a randomly
// chosen palette. R reseeds, S saves the frame as trisketch-color<seed>.png.
package main

import (
	"github.com/lixenwraith/trisketch/cli"
	"github.com/lixenwraith/trisketch/sketch"
)

func main() {
	cli.Execute(sketch.VariantColor)
}

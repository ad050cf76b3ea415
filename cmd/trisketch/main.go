// Command trisketch draws a grid of randomly rotated black triangles.
// S saves the current frame as trisketch.png.
package main

import (
	"github.com/lixenwraith/trisketch/cli"
	"github.com/lixenwraith/trisketch/sketch"
)

func main() {
	cli.Execute(sketch.VariantMono)
}

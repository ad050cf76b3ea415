// Package window presents a session in an ebiten window
package window

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/trisketch/engine"
	"github.com/lixenwraith/trisketch/palette"
	"github.com/lixenwraith/trisketch/tile"
)

// errClosed ends RunGame without reporting a failure
var errClosed = errors.New("window closed")

// whiteSubImage is the solid source texture for triangle fills. The 1px
// border keeps sampling away from the texture edge.
var whiteSubImage *ebiten.Image

func solidSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// App implements ebiten.Game for a session
type App struct {
	session *engine.Session
	width   int
	height  int

	vertices []ebiten.Vertex
	indices  []uint16

	captureRequested bool
	captureErr       error
}

// NewApp prepares vertex buffers for every tile of the session
func NewApp(s *engine.Session) *App {
	n := len(s.Sketch.Tiles())
	return &App{
		session:  s,
		width:    s.Config.Width(),
		height:   s.Config.Height(),
		vertices: make([]ebiten.Vertex, 0, n*3),
		indices:  make([]uint16, 0, n*3),
	}
}

func (a *App) Update() error {
	if a.captureErr != nil {
		return a.captureErr
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return errClosed
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.session.Reseed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.captureRequested = true
	}

	a.session.Tick()
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.session.Config.BackgroundColor())
	a.buildVertices()
	op := &ebiten.DrawTrianglesOptions{}
	// Vertices and indices are 1:1, and each chunk's indices are already
	// relative to the chunk start
	for start := 0; start < len(a.indices); start += maxIndicesPerCall {
		end := min(start+maxIndicesPerCall, len(a.indices))
		screen.DrawTriangles(a.vertices[start:end], a.indices[start:end], solidSource(), op)
	}

	if a.captureRequested {
		a.captureRequested = false
		if _, err := a.session.SaveScreenshot(capture(screen)); err != nil {
			a.captureErr = err
		}
	}
}

func (a *App) Layout(outsideW, outsideH int) (int, int) {
	return a.width, a.height
}

// maxIndicesPerCall keeps indices within uint16 range
const maxIndicesPerCall = 3 * 20000

func (a *App) buildVertices() {
	a.vertices = a.vertices[:0]
	a.indices = a.indices[:0]
	size := float64(a.session.Config.Size)

	tiles := a.session.Sketch.Tiles()
	for i := range tiles {
		t := &tiles[i]
		a.vertices = appendTriangle(a.vertices, t.Vertices(size), t.Color)
		base := len(a.indices)
		a.indices = append(a.indices, uint16(base%maxIndicesPerCall), uint16((base+1)%maxIndicesPerCall), uint16((base+2)%maxIndicesPerCall))
	}
}

func appendTriangle(dst []ebiten.Vertex, v [3]tile.Point, c palette.Color) []ebiten.Vertex {
	r := float32(c.R) / 0xff
	g := float32(c.G) / 0xff
	b := float32(c.B) / 0xff
	for _, p := range v {
		dst = append(dst, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: 1,
		})
	}
	return dst
}

// capture copies the presented frame into an image the size of the window
func capture(screen *ebiten.Image) *image.RGBA {
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	return img
}

// Run opens the window and blocks until it is closed
func Run(s *engine.Session) error {
	ebiten.SetWindowTitle(engine.ExecutableName())
	ebiten.SetWindowSize(s.Config.Width(), s.Config.Height())
	ebiten.SetTPS(s.Config.TPS)

	app := NewApp(s)
	err := ebiten.RunGame(app)
	if errors.Is(err, errClosed) {
		log.Info().Msg("window closed")
		return nil
	}
	return err
}

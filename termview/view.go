// Package termview previews a session in the terminal with quadrant block
// characters, two pixels per cell in each direction
package termview

import (
	"fmt"
	"image"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/trisketch/engine"
	"github.com/lixenwraith/trisketch/palette"
	"github.com/lixenwraith/trisketch/sketch"
)

// statusRows are kept free below the image for the key hints
const statusRows = 1

// View owns a tcell screen and the session it draws
type View struct {
	screen  tcell.Screen
	session *engine.Session

	frame       *image.RGBA
	frameSeed   uint64
	frameValid  bool
	status      string
	statusStyle tcell.Style
}

// NewView wraps an initialized screen
func NewView(screen tcell.Screen, s *engine.Session) *View {
	return &View{
		screen:      screen,
		session:     s,
		statusStyle: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	}
}

// HandleEvent applies one event and reports whether the loop should continue
func (v *View) HandleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventResize:
		v.screen.Sync()
		v.Draw()
	}
	return true, nil
}

func (v *View) handleKey(ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return false, nil
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false, nil
		case 'r', 'R':
			if v.session.Reseed() {
				v.Tick()
			}
		case 's', 'S':
			path, err := v.session.SaveScreenshot(v.currentFrame())
			if err != nil {
				return false, err
			}
			v.status = "saved " + path
			v.Draw()
		}
	}
	return true, nil
}

// Tick runs the sketch update and redraws when the picture changed
func (v *View) Tick() {
	v.session.Tick()
	if !v.frameValid || v.frameSeed != v.session.Sketch.Seed() {
		v.Draw()
	}
}

// currentFrame rasterizes the tiles once per seed. Randomization is fully
// determined by the seed, so a cached frame stays exact.
func (v *View) currentFrame() *image.RGBA {
	seed := v.session.Sketch.Seed()
	if !v.frameValid || v.frameSeed != seed {
		v.frame = v.session.Render()
		v.frameSeed = seed
		v.frameValid = true
	}
	return v.frame
}

// Draw paints the current frame centered on screen plus the status line
func (v *View) Draw() {
	img := v.currentFrame()
	termW, termH := v.screen.Size()
	v.screen.Clear()

	b := img.Bounds()
	outW, outH := FitCells(b.Dx(), b.Dy(), termW, termH-statusRows)
	if outW > 0 && outH > 0 {
		f := Convert(img, outW, outH)
		offX := max((termW-outW)/2, 0)
		offY := max((termH-statusRows-outH)/2, 0)
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				c := f.At(x, y)
				v.screen.SetContent(offX+x, offY+y, c.Rune, nil, cellStyle(c))
			}
		}
	}

	v.drawStatus(termW, termH)
	v.screen.Show()
}

func (v *View) drawStatus(termW, termH int) {
	if termH <= 0 {
		return
	}
	text := v.hints()
	if v.status != "" {
		text += "  " + v.status
	}
	runes := []rune(text)
	row := termH - 1
	for x := 0; x < termW; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		v.screen.SetContent(x, row, r, nil, v.statusStyle)
	}
}

func (v *View) hints() string {
	s := v.session.Sketch
	if s.Variant() == sketch.VariantColor {
		return fmt.Sprintf(" seed %d  R reseed  S save  Q quit", s.Seed())
	}
	return fmt.Sprintf(" seed %d  S save  Q quit", s.Seed())
}

func cellStyle(c Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcellColor(c.Fg)).
		Background(tcellColor(c.Bg))
}

func tcellColor(c palette.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Run takes over the terminal until the user quits
func Run(s *engine.Session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// Restore the terminal before reporting a crash so the trace is readable
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTRISKETCH CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	return Loop(screen, s, time.Second/time.Duration(s.Config.TPS))
}

// Loop drives the view from screen events and a tick interval
func Loop(screen tcell.Screen, s *engine.Session, interval time.Duration) error {
	v := NewView(screen, s)
	v.Tick()

	// PollEvent blocks, so it gets its own goroutine and only forwards events
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			cont, err := v.HandleEvent(ev)
			if err != nil {
				log.Error().Err(err).Msg("terminal view stopped")
				return err
			}
			if !cont {
				return nil
			}
		case <-ticker.C:
			v.Tick()
		}
	}
}

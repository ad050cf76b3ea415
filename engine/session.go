// Package engine ties the sketch state to its side effects: reseed and
// screenshot commands, feedback cues and logging. Frontends own the event
// loop and call into a Session from that single goroutine.
package engine

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/trisketch/audio"
	"github.com/lixenwraith/trisketch/config"
	"github.com/lixenwraith/trisketch/raster"
	"github.com/lixenwraith/trisketch/sketch"
)

// CuePlayer is the subset of audio.CuePlayer a session needs
type CuePlayer interface {
	Play(c audio.Cue)
}

type silentCues struct{}

func (silentCues) Play(audio.Cue) {}

// Session is the per-process sketch context
type Session struct {
	Config config.Config
	Sketch *sketch.Sketch

	exe  string
	cues CuePlayer
}

// SessionOptions carries the optional collaborators of a session
type SessionOptions struct {
	// Exe names screenshots; defaults to the running executable's stem
	Exe   string
	Cues  CuePlayer
	Seed  *uint64
	Seeds sketch.SeedSource
}

// NewSession builds the grid for cfg. cfg must already be validated.
func NewSession(cfg config.Config, opts SessionOptions) *Session {
	cues := opts.Cues
	if cues == nil {
		cues = silentCues{}
	}
	exe := opts.Exe
	if exe == "" {
		exe = ExecutableName()
	}

	s := sketch.New(sketch.Options{
		Variant:    cfg.SketchVariant(),
		Rows:       cfg.Rows,
		Cols:       cfg.Cols,
		Foreground: cfg.ForegroundColor(),
		Palettes:   cfg.PaletteSet(),
		Seeds:      opts.Seeds,
		Seed:       opts.Seed,
	})

	log.Info().
		Str("variant", cfg.Variant).
		Int("rows", cfg.Rows).
		Int("cols", cfg.Cols).
		Int("width", cfg.Width()).
		Int("height", cfg.Height()).
		Uint64("seed", s.Seed()).
		Msg("sketch ready")

	return &Session{
		Config: cfg,
		Sketch: s,
		exe:    exe,
		cues:   cues,
	}
}

// Tick runs the per-update randomization pass and reports whether tiles changed
func (s *Session) Tick() bool {
	changed := s.Sketch.Update()
	if changed && s.Sketch.Variant() == sketch.VariantColor {
		log.Debug().Uint64("seed", s.Sketch.Seed()).Int("palette", s.Sketch.PaletteIndex()).Msg("tiles randomized")
	}
	return changed
}

// Reseed handles the reseed key
func (s *Session) Reseed() bool {
	if !s.Sketch.Reseed() {
		return false
	}
	log.Info().Uint64("seed", s.Sketch.Seed()).Msg("reseeded")
	s.cues.Play(audio.CueReseed)
	return true
}

// ScreenshotPath is where a capture taken now would be written
func (s *Session) ScreenshotPath() string {
	return filepath.Join(s.Config.OutputDir, s.Sketch.ScreenshotName(s.exe))
}

// SaveScreenshot writes frame to ScreenshotPath
func (s *Session) SaveScreenshot(frame image.Image) (string, error) {
	path := s.ScreenshotPath()
	log.Info().Str("path", path).Msg("saving screenshot")
	if err := raster.SavePNG(path, frame); err != nil {
		return path, err
	}
	s.cues.Play(audio.CueShutter)
	return path, nil
}

// RasterOptions describes the canvas for the software rasterizer
func (s *Session) RasterOptions() raster.Options {
	return raster.Options{
		Rows:       s.Config.Rows,
		Cols:       s.Config.Cols,
		Size:       s.Config.Size,
		Background: s.Config.BackgroundColor(),
	}
}

// Render rasterizes the current tiles
func (s *Session) Render() *image.RGBA {
	return raster.Render(s.Sketch.Tiles(), s.RasterOptions())
}

// ExecutableName returns the file stem of the running binary
func ExecutableName() string {
	path, err := os.Executable()
	if err != nil || path == "" {
		path = os.Args[0]
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

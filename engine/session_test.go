package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/trisketch/audio"
	"github.com/lixenwraith/trisketch/config"
	"github.com/lixenwraith/trisketch/sketch"
)

type recordingCues struct {
	played []audio.Cue
}

func (r *recordingCues) Play(c audio.Cue) { r.played = append(r.played, c) }

func newColorSession(t *testing.T, cues CuePlayer) *Session {
	t.Helper()
	cfg := config.Default(sketch.VariantColor)
	cfg.OutputDir = t.TempDir()
	require.NoError(t, cfg.Validate())

	next := uint64(5)
	return NewSession(cfg, SessionOptions{
		Exe:  "trisketch-color",
		Cues: cues,
		Seeds: func(n uint64) uint64 {
			next += 10
			return next % n
		},
	})
}

func TestSessionReseedPlaysCue(t *testing.T) {
	cues := &recordingCues{}
	s := newColorSession(t, cues)
	assert.Equal(t, uint64(15), s.Sketch.Seed())

	require.True(t, s.Tick())
	assert.False(t, s.Tick())

	require.True(t, s.Reseed())
	assert.Equal(t, uint64(25), s.Sketch.Seed())
	assert.True(t, s.Tick())
	assert.Equal(t, []audio.Cue{audio.CueReseed}, cues.played)
}

func TestSessionScreenshot(t *testing.T) {
	cues := &recordingCues{}
	s := newColorSession(t, cues)
	s.Tick()

	path, err := s.SaveScreenshot(s.Render())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Config.OutputDir, "trisketch-color015.png"), path)

	_, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, []audio.Cue{audio.CueShutter}, cues.played)
}

func TestSessionMono(t *testing.T) {
	cfg := config.Default(sketch.VariantMono)
	cfg.OutputDir = "shots"
	seed := uint64(42)
	s := NewSession(cfg, SessionOptions{Exe: "trisketch", Seed: &seed})

	assert.False(t, s.Reseed())
	assert.True(t, s.Tick())
	assert.True(t, s.Tick())
	assert.Equal(t, filepath.Join("shots", "trisketch.png"), s.ScreenshotPath())

	img := s.Render()
	assert.Equal(t, 480, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestSessionScreenshotFailure(t *testing.T) {
	s := newColorSession(t, nil)
	blocker := filepath.Join(s.Config.OutputDir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	s.Config.OutputDir = filepath.Join(blocker, "sub")

	_, err := s.SaveScreenshot(s.Render())
	assert.Error(t, err)
}

func TestExecutableName(t *testing.T) {
	name := ExecutableName()
	assert.NotEmpty(t, name)
	assert.Equal(t, "", filepath.Ext(name))
}

// Package config loads sketch settings from variant presets, an optional TOML
// file and environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/trisketch/palette"
	"github.com/lixenwraith/trisketch/sketch"
)

// Environment overrides
const (
	EnvAudioEnabled = "TRISKETCH_AUDIO_ENABLED"
	EnvMasterVolume = "TRISKETCH_MASTER_VOLUME"
)

// AudioConfig controls the feedback cues
type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// Config is the full set of sketch settings
type Config struct {
	Variant    string      `toml:"variant"`
	Rows       int         `toml:"rows"`
	Cols       int         `toml:"cols"`
	Size       int         `toml:"size"`
	TPS        int         `toml:"tps"`
	Background string      `toml:"background"`
	Foreground string      `toml:"foreground"`
	OutputDir  string      `toml:"output_dir"`
	Palettes   [][]string  `toml:"palettes"`
	Audio      AudioConfig `toml:"audio"`
}

// Default returns the preset for a variant
func Default(v sketch.Variant) Config {
	cfg := Config{
		Variant:    v.String(),
		TPS:        60,
		Background: palette.Snow.Hex(),
		Foreground: palette.Black.Hex(),
		OutputDir:  ".",
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
	}
	switch v {
	case sketch.VariantColor:
		cfg.Rows, cfg.Cols, cfg.Size = 16, 16, 48
	default:
		cfg.Rows, cfg.Cols, cfg.Size = 24, 24, 20
	}
	return cfg
}

// Load starts from the variant preset, overlays the TOML file at path when
// path is non-empty, then applies environment overrides. A preset is
// re-derived when the file switches variant.
func Load(path string, v sketch.Variant) (Config, error) {
	cfg := Default(v)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		cfg, err = decode(data, cfg)
		if err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

func decode(data []byte, base Config) (Config, error) {
	var probe struct {
		Variant string `toml:"variant"`
	}
	if err := toml.Unmarshal(data, &probe); err != nil {
		return base, err
	}
	if probe.Variant != "" && probe.Variant != base.Variant {
		v, err := sketch.ParseVariant(probe.Variant)
		if err != nil {
			return base, err
		}
		base = Default(v)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&base); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return base, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return base, err
	}
	return base, nil
}

func applyEnv(cfg *Config) {
	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Audio.Enabled = val
		}
	}

	// 0-100 mapped to 0.0-1.0
	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Audio.Volume = min(max(float64(val)/100.0, 0), 1)
		}
	}
}

// Validate rejects settings the sketch cannot draw
func (c Config) Validate() error {
	if _, err := sketch.ParseVariant(c.Variant); err != nil {
		return err
	}
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Cols, c.Rows)
	}
	if c.Size <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.Size)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	}
	if _, err := palette.ParseHex(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, err := palette.ParseHex(c.Foreground); err != nil {
		return fmt.Errorf("foreground: %w", err)
	}
	for i, p := range c.Palettes {
		if _, err := palette.ParsePalette(p); err != nil {
			return fmt.Errorf("palettes[%d]: %w", i, err)
		}
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume must be within [0,1], got %v", c.Audio.Volume)
	}
	return nil
}

// SketchVariant returns the parsed variant. Call after Validate.
func (c Config) SketchVariant() sketch.Variant {
	v, _ := sketch.ParseVariant(c.Variant)
	return v
}

// BackgroundColor returns the parsed background. Call after Validate.
func (c Config) BackgroundColor() palette.Color {
	col, _ := palette.ParseHex(c.Background)
	return col
}

// ForegroundColor returns the parsed foreground. Call after Validate.
func (c Config) ForegroundColor() palette.Color {
	col, _ := palette.ParseHex(c.Foreground)
	return col
}

// PaletteSet is the builtin set followed by any configured palettes
func (c Config) PaletteSet() palette.Set {
	extra := make([]palette.Palette, 0, len(c.Palettes))
	for _, hex := range c.Palettes {
		if p, err := palette.ParsePalette(hex); err == nil {
			extra = append(extra, p)
		}
	}
	return palette.Builtin().With(extra...)
}

// Width is the canvas width in pixels
func (c Config) Width() int { return c.Cols * c.Size }

// Height is the canvas height in pixels
func (c Config) Height() int { return c.Rows * c.Size }

// Encode renders the config as TOML
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// Package cli builds the cobra command tree shared by the sketch binaries
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/trisketch/audio"
	"github.com/lixenwraith/trisketch/config"
	"github.com/lixenwraith/trisketch/engine"
	"github.com/lixenwraith/trisketch/logging"
	"github.com/lixenwraith/trisketch/raster"
	"github.com/lixenwraith/trisketch/sketch"
	"github.com/lixenwraith/trisketch/termview"
	"github.com/lixenwraith/trisketch/window"
)

// Version is set at build time with -ldflags
var Version = "dev"

type rootFlags struct {
	configFile string
	seed       uint64
	seedSet    bool
	logLevel   string
	logFile    string
	mute       bool
}

// fixedSeed returns the --seed value, or nil when the flag was not given
func (f *rootFlags) fixedSeed() *uint64 {
	if !f.seedSet {
		return nil
	}
	s := f.seed
	return &s
}

// NewRootCommand returns the command tree for a binary whose default
// variant is v. Running the root without a subcommand opens the window.
func NewRootCommand(v sketch.Variant) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           engine.ExecutableName(),
		Short:         fmt.Sprintf("Random triangle tiles (%s)", v),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			flags.seedSet = cmd.Flags().Changed("seed")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(flags, v)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "path to TOML config file")
	pf.Uint64Var(&flags.seed, "seed", 0, "fixed initial seed (random when not given)")
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level: trace, debug, info, warn, error, none")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file")
	pf.BoolVar(&flags.mute, "mute", false, "disable audio cues")

	root.AddCommand(
		windowCommand(flags, v),
		termCommand(flags, v),
		renderCommand(flags, v),
		palettesCommand(flags, v),
		configCommand(flags, v),
		versionCommand(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute(v sketch.Variant) {
	if err := NewRootCommand(v).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func windowCommand(flags *rootFlags, v sketch.Variant) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Open the sketch in a window (R reseeds, S saves a screenshot)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(flags, v)
		},
	}
}

func termCommand(flags *rootFlags, v sketch.Variant) *cobra.Command {
	return &cobra.Command{
		Use:   "term",
		Short: "Preview the sketch in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSetup(flags, v, true, func(cfg config.Config) error {
				cues, stop := startCues(cfg, flags)
				defer stop()
				s := engine.NewSession(cfg, engine.SessionOptions{Cues: cues, Seed: flags.fixedSeed()})
				return termview.Run(s)
			})
		},
	}
}

func renderCommand(flags *rootFlags, v sketch.Variant) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame to a PNG without opening a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSetup(flags, v, false, func(cfg config.Config) error {
				s := engine.NewSession(cfg, engine.SessionOptions{Seed: flags.fixedSeed()})
				s.Tick()
				img := s.Render()
				if out == "" {
					path, err := s.SaveScreenshot(img)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), path)
					return nil
				}
				if err := raster.SavePNG(out, img); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PNG path (default: screenshot name in output_dir)")
	return cmd
}

func palettesCommand(flags *rootFlags, v sketch.Variant) *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List the palette set",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configFile, v)
			if err != nil {
				return err
			}
			for i, p := range cfg.PaletteSet() {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i, strings.Join(p.Hex(), " "))
			}
			return nil
		},
	}
}

func configCommand(flags *rootFlags, v sketch.Variant) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configFile, v)
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", engine.ExecutableName(), Version)
		},
	}
}

func runWindow(flags *rootFlags, v sketch.Variant) error {
	return withSetup(flags, v, false, func(cfg config.Config) error {
		cues, stop := startCues(cfg, flags)
		defer stop()
		s := engine.NewSession(cfg, engine.SessionOptions{Cues: cues, Seed: flags.fixedSeed()})
		return window.Run(s)
	})
}

// withSetup runs fn with logging configured. A failure is logged before the
// log file is closed so it reaches --log-file.
func withSetup(flags *rootFlags, v sketch.Variant, quiet bool, fn func(config.Config) error) error {
	cfg, closer, err := setup(flags, v, quiet)
	if err != nil {
		return err
	}
	defer closer()

	if err := fn(cfg); err != nil {
		log.Error().Err(err).Msg("exiting")
		return err
	}
	return nil
}

// setup loads config and configures logging. quiet discards console logs
// for frontends that own stdout.
func setup(flags *rootFlags, v sketch.Variant, quiet bool) (config.Config, func(), error) {
	closer, err := logging.Setup(logging.Options{
		Level: flags.logLevel,
		File:  flags.logFile,
		Quiet: quiet,
	})
	if err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := config.Load(flags.configFile, v)
	if err != nil {
		log.Error().Err(err).Msg("exiting")
		closer()
		return cfg, nil, err
	}
	return cfg, closer, nil
}

// startCues opens the audio device when enabled. Failure leaves the sketch
// silent rather than aborting.
func startCues(cfg config.Config, flags *rootFlags) (engine.CuePlayer, func()) {
	if flags.mute || !cfg.Audio.Enabled {
		return nil, func() {}
	}
	player := audio.NewCuePlayer(cfg.Audio.Volume)
	if err := player.Initialize(); err != nil {
		log.Warn().Err(err).Msg("audio initialization failed, continuing without audio")
		return nil, func() {}
	}
	return player, player.Cleanup
}

package logging

import (
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// MaxLogSize is the size a log file may reach before it is rotated
const MaxLogSize = 10 * 1024 * 1024

// maxLogBackups bounds the rotated files kept next to the active log
const maxLogBackups = 5

var logLevelMatches = map[string]zerolog.Level{
	"NONE":  zerolog.Disabled,
	"TRACE": zerolog.TraceLevel,
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
	"FATAL": zerolog.FatalLevel,
}

// Options select level and destination
type Options struct {
	Level string
	// File, when set, receives all output instead of stdout
	File string
	// Quiet discards output when no file is given. The terminal frontend
	// sets it because tcell owns stdout.
	Quiet bool
}

// ParseLevel maps a level name to zerolog, defaulting to info
func ParseLevel(level string) zerolog.Level {
	if l, ok := logLevelMatches[strings.ToUpper(level)]; ok {
		return l
	}
	return zerolog.InfoLevel
}

// Setup configures the global zerolog logger and returns a closer for any
// opened log file
func Setup(opts Options) (func(), error) {
	zerolog.SetGlobalLevel(ParseLevel(opts.Level))

	switch {
	case opts.File != "":
		f := newRotatingFile(opts.File)
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		return func() { _ = f.Close() }, nil
	case opts.Quiet:
		log.Logger = zerolog.New(io.Discard)
	case isTerminalAttached():
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "2006-01-02 15:04:05",
		}).With().Timestamp().Logger()
	default:
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	return func() {}, nil
}

func isTerminalAttached() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) && runtime.GOOS != "windows"
}

// newRotatingFile appends to path and moves it aside as
// <name>-<timestamp>.log once it grows past MaxLogSize. Missing parent
// directories are created on first write.
func newRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    MaxLogSize / (1024 * 1024),
		MaxBackups: maxLogBackups,
		LocalTime:  true,
	}
}

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("none"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestSetupFileWritesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trisketch.log")
	closer, err := Setup(Options{Level: "info", File: path})
	require.NoError(t, err)

	log.Info().Uint64("seed", 42).Msg("reseeded")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"seed":42`)
	assert.Contains(t, string(data), "reseeded")
}

func TestSetupRotatesLargeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trisketch.log")
	require.NoError(t, os.WriteFile(path, make([]byte, MaxLogSize+1), 0644))

	closer, err := Setup(Options{File: path})
	require.NoError(t, err)
	defer closer()
	log.Info().Msg("after rotation")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != "trisketch.log" && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
		}
	}
	assert.True(t, rotatedFound, "expected a rotated log file")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(MaxLogSize))
}

func TestSetupQuiet(t *testing.T) {
	closer, err := Setup(Options{Quiet: true})
	require.NoError(t, err)
	defer closer()
	log.Info().Msg("discarded")
}

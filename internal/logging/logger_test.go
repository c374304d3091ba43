package logging

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(ParseLevel("debug"), config.LogConfig{}, &buf)
	require.NoError(t, err)

	logger.Named("idle").Debug("sample", zap.Duration("idle", 0))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Contains(t, out, "jiggler.idle")
	assert.Contains(t, out, "sample")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(ParseLevel("warn"), config.LogConfig{}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(ParseLevel("chatty"), config.LogConfig{}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	_ = logger.Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewFileWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "jiggler.log")
	logger, err := New(ParseLevel("info"), config.LogConfig{File: path, MaxSizeMB: 1}, nil)
	require.NoError(t, err)

	logger.Info("started", zap.String("state", "Monitoring"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimSpace(strings.Split(string(data), "\n")[0])
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "started", entry["msg"])
	assert.Equal(t, "Monitoring", entry["state"])
}

func TestNewWithoutOutputsIsNop(t *testing.T) {
	logger, err := New(ParseLevel("info"), config.LogConfig{}, nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() { logger.Info("dropped") })
}

func TestInstallRedirectsStdLog(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(ParseLevel("info"), config.LogConfig{}, &buf)
	require.NoError(t, err)

	restore := Install(logger)
	log.Print("from stdlib")
	restore()
	_ = logger.Sync()

	assert.Contains(t, buf.String(), "from stdlib")
}

func TestNewFollowsLevelChanges(t *testing.T) {
	var buf bytes.Buffer
	level := ParseLevel("warn")
	logger, err := New(level, config.LogConfig{}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	level.SetLevel(zap.InfoLevel)
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, ParseLevel("debug").Level())
	assert.Equal(t, zap.InfoLevel, ParseLevel("").Level())
	assert.Equal(t, zap.InfoLevel, ParseLevel("loud").Level())
}

package iologger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/treetax/pkg/config"
	"github.com/gnames/treetax/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseLevel verifies level names.
func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"noise": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

// TestNewWithWriter_Level verifies records below the level are
// dropped.
func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, config.LogConfig{Level: "warn", Format: "text"})

	log.Info("quiet")
	log.Warn("loud", "name", "A")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "msg=loud name=A")
}

// TestNewWithWriter_JSON verifies the json format.
func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, config.LogConfig{Level: "debug", Format: "json"})
	log.Debug("record", "tax_id", 3)

	var res map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, "record", res["msg"])
	assert.Equal(t, "DEBUG", res["level"])
	assert.Equal(t, 3.0, res["tax_id"])
}

// TestNew_File verifies logging into a file.
func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")
	cfg := config.LogConfig{Level: "info", Format: "text",
		Destination: "file", File: path}

	log, closer, err := New(cfg, t.TempDir())
	require.NoError(t, err)
	log.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")

	// the file is truncated by the next run
	_, closer, err = New(cfg, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, closer.Close())
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

// TestNew_DefaultFile verifies the default log file location.
func TestNew_DefaultFile(t *testing.T) {
	home := t.TempDir()
	cfg := config.LogConfig{Destination: "file"}

	_, closer, err := New(cfg, home)
	require.NoError(t, err)
	require.NoError(t, closer.Close())
	assert.FileExists(t, config.LogFilePath(home))
}

// TestNew_FileError verifies the error when the log file cannot be
// created.
func TestNew_FileError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	cfg := config.LogConfig{Destination: "file",
		File: filepath.Join(blocker, "run.log")}

	_, _, err := New(cfg, t.TempDir())
	require.Error(t, err)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}

// TestNew_Streams verifies stream destinations need no closing.
func TestNew_Streams(t *testing.T) {
	for _, dest := range []string{"stderr", "stdout", ""} {
		log, closer, err := New(config.LogConfig{Destination: dest}, "")
		require.NoError(t, err)
		assert.NotNil(t, log)
		assert.NoError(t, closer.Close())
	}
}

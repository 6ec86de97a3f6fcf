package logging

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir points the logger at a temp directory and resets global state.
func setupTestDir(t *testing.T) {
	t.Helper()

	origLogDir := logDir
	origRunID := runID

	Configure(t.TempDir())
	runID = ""
	runIDOnce = sync.Once{}

	t.Cleanup(func() {
		Configure(origLogDir)
		runID = origRunID
		runIDOnce = sync.Once{}
	})
}

func TestNewLogger(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("lifecycle")
	require.NoError(t, err)
	defer logger.Close()

	assert.Equal(t, "lifecycle", logger.component)
	assert.NotEmpty(t, logger.RunID())
	assert.True(t, strings.HasSuffix(logger.LogPath(), logger.RunID()+"-pagecheck.log"))

	_, err = os.Stat(logger.LogPath())
	assert.NoError(t, err)
}

func TestLoggerFormatting(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	require.NoError(t, err)

	logger.Debugf("Debug message")
	logger.Infof("Info message %d", 123)
	logger.Warnf("Warning message")
	logger.Errorf("Error message")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)

	for _, pattern := range []string{
		"[test] [DEBUG] Debug message",
		"[test] [INFO] Info message 123",
		"[test] [WARN] Warning message",
		"[test] [ERROR] Error message",
	} {
		assert.Contains(t, string(content), pattern)
	}
}

func TestMultipleComponentsShareFile(t *testing.T) {
	setupTestDir(t)

	runner, err := NewLogger("runner")
	require.NoError(t, err)
	defer runner.Close()

	lifecycle, err := NewLogger("lifecycle")
	require.NoError(t, err)
	defer lifecycle.Close()

	assert.Equal(t, runner.RunID(), lifecycle.RunID())
	assert.Equal(t, runner.LogPath(), lifecycle.LogPath())
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("cli", &buf)

	logger.With("scenario").Infof("started %s", "login")

	assert.Contains(t, buf.String(), "[scenario] [INFO] started login")
}

func TestCloseIdempotent(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	require.NoError(t, err)

	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}

func TestFallbackLogger(t *testing.T) {
	setupTestDir(t)

	// A regular file where the directory should be makes MkdirAll fail
	blocker := t.TempDir() + "/blocked"
	require.NoError(t, os.WriteFile(blocker, nil, 0600))
	Configure(blocker + "/logs")

	logger, err := NewLogger("test")
	require.Error(t, err)
	require.NotNil(t, logger)
	assert.Empty(t, logger.LogPath())
	assert.NoError(t, logger.Close())
}

func TestWriter(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("driver")
	require.NoError(t, err)

	_, err = fmt.Fprintln(logger.Writer(), "Downloading Chromium")
	require.NoError(t, err)
	logger.Infof("driver started")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(content), "Downloading Chromium\n")
	assert.Contains(t, string(content), "[driver] [INFO] driver started")
}

func TestWriter_WithoutFile(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("cli", &buf)

	_, err := fmt.Fprint(logger.Writer(), "raw")
	require.NoError(t, err)
	assert.Equal(t, "raw", buf.String())
}

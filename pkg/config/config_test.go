package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobal(t *testing.T) {
	t.Helper()
	globalMu.Lock()
	globalSettings = nil
	globalMu.Unlock()
	t.Cleanup(func() {
		globalMu.Lock()
		globalSettings = nil
		globalMu.Unlock()
	})
}

func TestInitialize(t *testing.T) {
	clearEnv(t)
	resetGlobal(t)
	chdir(t, t.TempDir())

	assert.False(t, IsInitialized())
	assert.Panics(t, func() { Global() })

	path := writeFile(t, "pagecheck.yaml", "engine: safari\n")
	require.NoError(t, Initialize(path))

	assert.True(t, IsInitialized())
	assert.Equal(t, "safari", Global().Engine)
}

func TestInitialize_ConfigFromEnv(t *testing.T) {
	clearEnv(t)
	resetGlobal(t)
	chdir(t, t.TempDir())

	t.Setenv(EnvConfigFile, writeFile(t, "ci.yaml", "headless: true\n"))
	require.NoError(t, Initialize(""))
	assert.True(t, Global().Headless)
}

func TestInitialize_InvalidFile(t *testing.T) {
	clearEnv(t)
	resetGlobal(t)
	chdir(t, t.TempDir())

	err := Initialize(writeFile(t, "bad.yaml", "slow_mo: -5ms\n"))
	assert.Error(t, err)
	assert.False(t, IsInitialized())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

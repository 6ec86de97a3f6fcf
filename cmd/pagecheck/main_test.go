package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"testing"

	"github.com/entrhq/pagecheck/pkg/config"
	"github.com/entrhq/pagecheck/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	fs := flag.NewFlagSet("pagecheck", flag.ContinueOnError)
	return parseFlags(fs, args)
}

func TestParseFlags(t *testing.T) {
	cfg := parse(t, "-engine", "firefox", "-headless", "-run", "login*, homepage-title", "-results", "out")

	assert.Equal(t, "firefox", cfg.Engine)
	assert.True(t, cfg.Headless)
	assert.True(t, cfg.HeadlessSet)
	assert.Equal(t, "out", cfg.ResultsDir)
	assert.Equal(t, "login*, homepage-title", cfg.Run)
}

func TestApplyTo(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, s *config.Settings)
	}{
		{
			name: "no flags keep settings",
			args: nil,
			check: func(t *testing.T, s *config.Settings) {
				assert.Equal(t, "webkit", s.Engine)
				assert.True(t, s.Headless)
				assert.Empty(t, s.Scenarios)
			},
		},
		{
			name: "headless=false overrides file",
			args: []string{"-headless=false"},
			check: func(t *testing.T, s *config.Settings) {
				assert.False(t, s.Headless)
			},
		},
		{
			name: "engine and patterns",
			args: []string{"-engine", "FIREFOX", "-run", "login*,,homepage-title"},
			check: func(t *testing.T, s *config.Settings) {
				assert.Equal(t, "FIREFOX", s.Engine)
				assert.Equal(t, []string{"login*", "homepage-title"}, s.Scenarios)
			},
		},
		{
			name: "results dir",
			args: []string{"-results", "out"},
			check: func(t *testing.T, s *config.Settings) {
				assert.Equal(t, "out", s.Results.Dir)
				assert.Equal(t, "out/screenshots", s.ScreenshotDir())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := config.DefaultSettings()
			settings.Engine = "webkit"
			settings.Headless = true

			require.NoError(t, parse(t, tt.args...).applyTo(settings))
			tt.check(t, settings)
		})
	}
}

func TestSplitPatterns(t *testing.T) {
	assert.Nil(t, splitPatterns(""))
	assert.Nil(t, splitPatterns(" , "))
	assert.Equal(t, []string{"a", "b*"}, splitPatterns("a, b*"))
}

func TestListScenarios(t *testing.T) {
	registry := scenario.Builtin()
	selected, err := registry.Match("login*")
	require.NoError(t, err)

	var buf bytes.Buffer
	listScenarios(&buf, registry, selected)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.True(t, bytes.HasPrefix(lines[0], []byte("  homepage-title")))
	assert.True(t, bytes.HasPrefix(lines[1], []byte("* login ")))
	assert.True(t, bytes.HasPrefix(lines[2], []byte("* login-rejected")))
}

func TestRunList(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")
	chdir(t, t.TempDir())

	var buf bytes.Buffer
	ok, err := run(context.Background(), &Config{List: true, Run: "homepage*"}, &buf)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "* homepage-title")
}

func TestRunNoMatch(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")
	chdir(t, t.TempDir())

	ok, err := run(context.Background(), &Config{Run: "checkout"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "no scenario matches")
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

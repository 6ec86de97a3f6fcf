// Package e2etest runs page-object tests against a real browser.
//
// A Harness owns one browser session for a top-level test and hands out one
// isolated page per NewPage call. Everything is released through t.Cleanup,
// and a test that fails leaves a screenshot and DOM snapshot behind.
package e2etest

import (
	"fmt"
	"testing"

	"github.com/entrhq/pagecheck/pkg/browser"
	"github.com/entrhq/pagecheck/pkg/browser/browsertest"
	"github.com/entrhq/pagecheck/pkg/config"
	"github.com/entrhq/pagecheck/pkg/lifecycle"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

// Harness is a browser session bound to a test.
type Harness struct {
	Lifecycle *lifecycle.Lifecycle
	Session   *lifecycle.Session
	Settings  *config.Settings
}

// Settings returns the default settings for browser tests: headless unless
// PAGECHECK_HEADLESS says otherwise, with results under dir.
func Settings(t testing.TB, dir string) *config.Settings {
	t.Helper()
	settings := config.DefaultSettings()
	settings.Headless = true
	settings.SlowMo = 0
	require.NoError(t, settings.ApplyEnv())
	settings.Results.Dir = dir
	return settings
}

// Start starts the Playwright driver and a browser session for t. It skips
// t in -short mode and when real-browser tests are not enabled.
func Start(t testing.TB, settings *config.Settings) *Harness {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	browsertest.RequireE2E(t)

	if settings == nil {
		settings = Settings(t, t.TempDir())
	}

	driver := browser.NewDriver(browser.DriverOptions{
		Browsers: []browser.Engine{settings.EngineVariant()},
	})
	require.NoError(t, driver.Start())
	t.Cleanup(func() {
		if err := driver.Stop(); err != nil {
			t.Logf("stopping playwright: %v", err)
		}
	})

	return StartWith(t, driver, settings)
}

// StartWith starts a browser session on provider. Start is the usual entry
// point; StartWith lets a test supply its own engines.
func StartWith(t testing.TB, provider browser.EngineProvider, settings *config.Settings) *Harness {
	t.Helper()

	l := lifecycle.New(provider,
		lifecycle.WithLogger(testLogger{t}),
		lifecycle.WithScreenshotDir(settings.ScreenshotDir()),
	)

	session, err := l.StartSession(settings.Engine, settings.LaunchOptions())
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := l.EndSession(); err != nil {
			t.Errorf("ending browser session: %v", err)
		}
	})

	return &Harness{
		Lifecycle: l,
		Session:   session,
		Settings:  settings,
	}
}

// NewPage opens an isolated context with a single page for t. The context is
// closed when t finishes, after a failure screenshot if t failed.
func (h *Harness) NewPage(t testing.TB) playwright.Page {
	t.Helper()

	page, err := h.Lifecycle.CreateContext(h.Settings.ContextOptions())
	require.NoError(t, err)

	t.Cleanup(func() {
		if t.Failed() {
			h.captureFailure(t, page)
		}
		if err := h.Lifecycle.CloseContext(); err != nil {
			t.Errorf("closing browser context: %v", err)
		}
	})
	return page
}

func (h *Harness) captureFailure(t testing.TB, page playwright.Page) {
	name := t.Name() + "-failure"
	if path, err := h.Lifecycle.CaptureScreenshot(page, name); err != nil {
		t.Logf("failure screenshot: %v", err)
	} else {
		t.Logf("failure screenshot: %s", path)
	}
	if path, err := h.Lifecycle.CaptureSnapshot(page, name); err != nil {
		t.Logf("failure snapshot: %v", err)
	} else {
		t.Logf("failure snapshot: %s", path)
	}
}

// Screenshot saves a full-page screenshot of page and returns its path.
func (h *Harness) Screenshot(t testing.TB, page playwright.Page, name string) string {
	t.Helper()
	path, err := h.Lifecycle.CaptureScreenshot(page, name)
	require.NoError(t, err)
	return path
}

// testLogger sends lifecycle logs to the test log.
type testLogger struct {
	t testing.TB
}

func (l testLogger) log(level, format string, v ...interface{}) {
	l.t.Helper()
	l.t.Logf("[%s] %s", level, fmt.Sprintf(format, v...))
}

func (l testLogger) Debugf(format string, v ...interface{}) { l.log("DEBUG", format, v...) }
func (l testLogger) Infof(format string, v ...interface{})  { l.log("INFO", format, v...) }
func (l testLogger) Warnf(format string, v ...interface{})  { l.log("WARN", format, v...) }
func (l testLogger) Errorf(format string, v ...interface{}) { l.log("ERROR", format, v...) }

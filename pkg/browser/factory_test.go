package browser_test

import (
	"errors"
	"testing"
	"time"

	"github.com/entrhq/pagecheck/pkg/browser"
	"github.com/entrhq/pagecheck/pkg/browser/browsertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunch(t *testing.T) {
	tests := []struct {
		name   string
		engine browser.Engine
	}{
		{"FIREFOX", browser.Firefox},
		{"safari", browser.WebKit},
		{"", browser.Chromium},
		{"netscape", browser.Chromium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := browsertest.NewProvider()

			b, engine, err := browser.Launch(provider, tt.name, browser.DefaultLaunchOptions())
			require.NoError(t, err)
			require.NotNil(t, b)
			assert.Equal(t, tt.engine, engine)

			launches := provider.Type(tt.engine).Launches()
			require.Len(t, launches, 1)
			require.NotNil(t, launches[0].Headless)
			assert.False(t, *launches[0].Headless)
			require.NotNil(t, launches[0].SlowMo)
			assert.Equal(t, 50.0, *launches[0].SlowMo)
		})
	}
}

func TestLaunch_Headless(t *testing.T) {
	provider := browsertest.NewProvider()

	_, _, err := browser.Launch(provider, "chromium", browser.LaunchOptions{Headless: true})
	require.NoError(t, err)

	launches := provider.Type(browser.Chromium).Launches()
	require.Len(t, launches, 1)
	assert.True(t, *launches[0].Headless)
	assert.Nil(t, launches[0].SlowMo)
}

func TestLaunch_FailureIsNotRetried(t *testing.T) {
	provider := browsertest.NewProvider()
	launchErr := errors.New("executable doesn't exist")
	provider.Type(browser.Firefox).LaunchErr = launchErr

	b, engine, err := browser.Launch(provider, "firefox", browser.DefaultLaunchOptions())
	assert.Nil(t, b)
	assert.Equal(t, browser.Firefox, engine)
	assert.ErrorIs(t, err, launchErr)
	assert.Contains(t, err.Error(), "failed to launch firefox")
	assert.Len(t, provider.Type(browser.Firefox).Launches(), 1)
}

func TestLaunch_ProviderError(t *testing.T) {
	provider := browsertest.NewProvider()
	provider.Err = browser.ErrDriverNotStarted

	_, _, err := browser.Launch(provider, "webkit", browser.DefaultLaunchOptions())
	assert.ErrorIs(t, err, browser.ErrDriverNotStarted)
}

func TestBuildContext(t *testing.T) {
	b := &browsertest.Browser{Journal: &browsertest.Journal{}}

	ctx, err := browser.BuildContext(b)
	require.NoError(t, err)
	require.NotNil(t, ctx)

	opts := b.ContextOptions()
	require.Len(t, opts, 1)
	require.NotNil(t, opts[0].Viewport)
	assert.Equal(t, 1920, opts[0].Viewport.Width)
	assert.Equal(t, 1080, opts[0].Viewport.Height)
	require.NotNil(t, opts[0].UserAgent)
	assert.Equal(t, "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36", *opts[0].UserAgent)
	assert.Nil(t, opts[0].BaseURL)
}

func TestNewContext_Options(t *testing.T) {
	b := &browsertest.Browser{Journal: &browsertest.Journal{}}

	_, err := browser.NewContext(b, browser.ContextOptions{
		Viewport:          &browser.Viewport{Width: 800, Height: 600},
		BaseURL:           "https://example.test",
		IgnoreHTTPSErrors: true,
		Timeout:           5 * time.Second,
	})
	require.NoError(t, err)

	opts := b.ContextOptions()[0]
	assert.Equal(t, 800, opts.Viewport.Width)
	assert.Equal(t, 600, opts.Viewport.Height)
	assert.Nil(t, opts.UserAgent)
	assert.Equal(t, "https://example.test", *opts.BaseURL)
	assert.True(t, *opts.IgnoreHttpsErrors)
	assert.Equal(t, 5000.0, b.FakeContexts()[0].DefaultTimeout())
}

func TestNewContext_DefaultViewport(t *testing.T) {
	b := &browsertest.Browser{Journal: &browsertest.Journal{}}

	_, err := browser.NewContext(b, browser.ContextOptions{})
	require.NoError(t, err)

	opts := b.ContextOptions()[0]
	assert.Equal(t, browser.DefaultViewportWidth, opts.Viewport.Width)
	assert.Equal(t, browser.DefaultViewportHeight, opts.Viewport.Height)
}

func TestNewContext_Errors(t *testing.T) {
	_, err := browser.NewContext(nil, browser.DefaultContextOptions())
	assert.ErrorIs(t, err, browser.ErrNoBrowser)

	createErr := errors.New("browser has been closed")
	b := &browsertest.Browser{Journal: &browsertest.Journal{}, NewContextErr: createErr}
	_, err = browser.NewContext(b, browser.DefaultContextOptions())
	assert.ErrorIs(t, err, createErr)
}

func TestDriver_NotStarted(t *testing.T) {
	driver := browser.NewDriver(browser.DriverOptions{})

	_, err := driver.BrowserType(browser.Chromium)
	assert.ErrorIs(t, err, browser.ErrDriverNotStarted)
	assert.NoError(t, driver.Stop())
}

func TestDriver_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	browsertest.RequireE2E(t)

	driver := browser.NewDriver(browser.DriverOptions{Browsers: []browser.Engine{browser.Chromium}})
	require.NoError(t, driver.Install())
	require.NoError(t, driver.Start())
	defer driver.Stop()

	b, engine, err := browser.Launch(driver, "chrome", browser.LaunchOptions{Headless: true})
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, browser.Chromium, engine)

	ctx, err := browser.BuildContext(b)
	require.NoError(t, err)
	defer ctx.Close()

	page, err := ctx.NewPage()
	require.NoError(t, err)
	assert.Equal(t, "about:blank", page.URL())
}

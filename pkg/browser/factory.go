package browser

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// ErrNoBrowser is returned when a context is requested without a browser.
var ErrNoBrowser = errors.New("no browser")

// Launch selects the engine named by name and launches it. A launch failure
// is returned as-is: it is not a transient condition and is never retried.
func Launch(provider EngineProvider, name string, opts LaunchOptions) (playwright.Browser, Engine, error) {
	engine := SelectEngine(name)

	browserType, err := provider.BrowserType(engine)
	if err != nil {
		return nil, engine, err
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.SlowMo > 0 {
		launchOpts.SlowMo = playwright.Float(milliseconds(opts.SlowMo))
	}

	b, err := browserType.Launch(launchOpts)
	if err != nil {
		return nil, engine, fmt.Errorf("failed to launch %s: %w", engine, err)
	}
	return b, engine, nil
}

// BuildContext creates a context with the fixed 1920x1080 viewport and the
// fixed desktop user agent.
func BuildContext(b playwright.Browser) (playwright.BrowserContext, error) {
	return NewContext(b, DefaultContextOptions())
}

// NewContext creates an isolated browsing context on b.
func NewContext(b playwright.Browser, opts ContextOptions) (playwright.BrowserContext, error) {
	if b == nil {
		return nil, ErrNoBrowser
	}

	ctx, err := b.NewContext(contextOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	if opts.Timeout > 0 {
		ctx.SetDefaultTimeout(milliseconds(opts.Timeout))
	}
	return ctx, nil
}

// contextOptions translates ContextOptions to Playwright's options. A nil
// viewport falls back to DefaultViewport.
func contextOptions(opts ContextOptions) playwright.BrowserNewContextOptions {
	viewport := opts.Viewport
	if viewport == nil {
		viewport = DefaultViewport()
	}

	pwOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  viewport.Width,
			Height: viewport.Height,
		},
	}
	if opts.UserAgent != "" {
		pwOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	if opts.BaseURL != "" {
		pwOpts.BaseURL = playwright.String(opts.BaseURL)
	}
	if opts.IgnoreHTTPSErrors {
		pwOpts.IgnoreHttpsErrors = playwright.Bool(true)
	}
	return pwOpts
}

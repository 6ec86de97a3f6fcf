package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Engine is one of the supported rendering engines.
type Engine string

const (
	Chromium Engine = "chromium"
	Firefox  Engine = "firefox"
	WebKit   Engine = "webkit"
)

// Engines lists every supported engine.
var Engines = []Engine{Chromium, Firefox, WebKit}

// String returns the engine name.
func (e Engine) String() string {
	return string(e)
}

// EngineProvider hands out the Playwright launcher for an engine.
type EngineProvider interface {
	BrowserType(engine Engine) (playwright.BrowserType, error)
}

// LaunchOptions configures how a browser engine process is started.
type LaunchOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// SlowMo delays every browser action, useful when watching a run
	SlowMo time.Duration
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// ContextOptions configures a new browsing context.
type ContextOptions struct {
	// Viewport sets the page viewport, DefaultViewport when nil
	Viewport *Viewport

	// UserAgent overrides the engine's user agent when non-empty
	UserAgent string

	// BaseURL resolves relative navigation targets
	BaseURL string

	// IgnoreHTTPSErrors accepts self-signed certificates
	IgnoreHTTPSErrors bool

	// Timeout is the default timeout for page actions, engine default when 0
	Timeout time.Duration
}

// Default values for launching browsers and building contexts
const (
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
	DefaultSlowMo         = 50 * time.Millisecond
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// DefaultViewport returns the fixed 1920x1080 viewport.
func DefaultViewport() *Viewport {
	return &Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
}

// DefaultLaunchOptions returns the factory launch configuration: a visible
// window and a 50ms delay per action.
func DefaultLaunchOptions() LaunchOptions {
	return LaunchOptions{
		Headless: false,
		SlowMo:   DefaultSlowMo,
	}
}

// DefaultContextOptions returns the fixed viewport and desktop user agent.
func DefaultContextOptions() ContextOptions {
	return ContextOptions{
		Viewport:  DefaultViewport(),
		UserAgent: DefaultUserAgent,
	}
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

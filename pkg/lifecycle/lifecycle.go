package lifecycle

import (
	"fmt"
	"sync"
	"time"

	"github.com/entrhq/pagecheck/pkg/browser"
	"github.com/playwright-community/playwright-go"
)

// Logger is the logging surface the lifecycle reports through.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// DiscardLogger drops every message.
var DiscardLogger Logger = nopLogger{}

// Session is one running browser engine process. It is handed to every test
// of a class and is not modified after StartSession returns it.
type Session struct {
	// Engine is the engine variant the session runs
	Engine browser.Engine

	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Options the browser was launched with
	Options browser.LaunchOptions

	// StartedAt is when the engine was launched
	StartedAt time.Time
}

// DefaultScreenshotDir is where screenshots and snapshots are written.
const DefaultScreenshotDir = "test-results/screenshots"

// Option configures a Lifecycle.
type Option func(*Lifecycle)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger Logger) Option {
	return func(l *Lifecycle) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithScreenshotDir sets the artifact directory.
func WithScreenshotDir(dir string) Option {
	return func(l *Lifecycle) {
		if dir != "" {
			l.screenshotDir = dir
		}
	}
}

// Lifecycle owns one Session and at most one Context with its Page.
type Lifecycle struct {
	mu            sync.Mutex
	provider      browser.EngineProvider
	logger        Logger
	screenshotDir string

	state   State
	session *Session
	context playwright.BrowserContext
	page    playwright.Page
}

// New creates a lifecycle that launches engines from provider.
func New(provider browser.EngineProvider, opts ...Option) *Lifecycle {
	l := &Lifecycle{
		provider:      provider,
		logger:        nopLogger{},
		screenshotDir: DefaultScreenshotDir,
		state:         Uninitialized,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Session returns the active session.
func (l *Lifecycle) Session() (*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case SessionActive, ContextActive:
		return l.session, nil
	case Closed:
		return nil, ErrClosed
	default:
		return nil, ErrNoSession
	}
}

// StartSession launches the engine named by engine. A launch failure is
// returned immediately and leaves the lifecycle uninitialized.
func (l *Lifecycle) StartSession(engine string, opts browser.LaunchOptions) (*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case Closed:
		return nil, ErrClosed
	case SessionActive, ContextActive:
		return nil, ErrSessionActive
	}

	b, selected, err := browser.Launch(l.provider, engine, opts)
	if err != nil {
		l.logger.Errorf("Session start failed (engine=%s): %v", selected, err)
		return nil, err
	}

	l.session = &Session{
		Engine:    selected,
		Browser:   b,
		Options:   opts,
		StartedAt: time.Now(),
	}
	l.state = SessionActive
	l.logger.Infof("Session started: engine=%s headless=%t slow_mo=%s", selected, opts.Headless, opts.SlowMo)
	return l.session, nil
}

// CreateContext opens an isolated context on the active session and returns
// its page.
func (l *Lifecycle) CreateContext(opts browser.ContextOptions) (playwright.Page, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case Uninitialized:
		return nil, ErrNoSession
	case Closed:
		return nil, ErrClosed
	case ContextActive:
		return nil, ErrContextActive
	}

	ctx, err := browser.NewContext(l.session.Browser, opts)
	if err != nil {
		return nil, err
	}

	page, err := ctx.NewPage()
	if err != nil {
		if closeErr := ctx.Close(); closeErr != nil {
			l.logger.Warnf("Closing context after page failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	l.context = ctx
	l.page = page
	l.state = ContextActive
	l.logger.Debugf("Context opened on %s", l.session.Engine)
	return page, nil
}

// Page returns the page of the open context.
func (l *Lifecycle) Page() (playwright.Page, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case ContextActive:
		return l.page, nil
	case Closed:
		return nil, ErrClosed
	case Uninitialized:
		return nil, ErrNoSession
	default:
		return nil, ErrNoContext
	}
}

// CloseContext releases the open page and context. It is a no-op when no
// context is open. Both releases are attempted; the first error is returned.
func (l *Lifecycle) CloseContext() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != ContextActive {
		return nil
	}
	return l.closeContextLocked()
}

func (l *Lifecycle) closeContextLocked() error {
	var first error

	if err := l.page.Close(); err != nil {
		l.logger.Warnf("Closing page: %v", err)
		first = fmt.Errorf("failed to close page: %w", err)
	}
	if err := l.context.Close(); err != nil {
		l.logger.Warnf("Closing context: %v", err)
		if first == nil {
			first = fmt.Errorf("failed to close context: %w", err)
		}
	}

	l.page = nil
	l.context = nil
	l.state = SessionActive
	l.logger.Debugf("Context closed")
	return first
}

// EndSession releases the session, closing an open context first. Every
// release is attempted and logged; the first failure is returned. Calling
// EndSession again is a no-op.
func (l *Lifecycle) EndSession() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case Closed:
		return nil
	case Uninitialized:
		l.state = Closed
		return nil
	}

	var first error
	if l.state == ContextActive {
		l.logger.Warnf("Ending session with an open context")
		first = l.closeContextLocked()
	}

	if err := l.session.Browser.Close(); err != nil {
		l.logger.Warnf("Closing browser: %v", err)
		if first == nil {
			first = fmt.Errorf("failed to close browser: %w", err)
		}
	}

	l.logger.Infof("Session ended: engine=%s duration=%s", l.session.Engine, time.Since(l.session.StartedAt).Round(time.Millisecond))
	l.session = nil
	l.state = Closed
	return first
}

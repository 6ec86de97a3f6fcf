package browser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// ErrDriverNotStarted is returned when a launcher is requested before Start.
var ErrDriverNotStarted = errors.New("playwright driver not started")

// DriverOptions configures the Playwright driver.
type DriverOptions struct {
	// Browsers to download on Install, all engines when empty
	Browsers []Engine

	// Verbose streams driver output to Output
	Verbose bool

	// Output receives driver output when Verbose is set, stdout/stderr when nil
	Output io.Writer
}

// Driver manages the Playwright driver process and implements EngineProvider.
type Driver struct {
	mu      sync.Mutex
	opts    DriverOptions
	pw      *playwright.Playwright
	started bool
}

// NewDriver creates a driver. Nothing is started until Start is called.
func NewDriver(opts DriverOptions) *Driver {
	return &Driver{opts: opts}
}

func (d *Driver) runOptions() *playwright.RunOptions {
	opts := &playwright.RunOptions{
		Verbose: d.opts.Verbose,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if d.opts.Verbose {
		opts.Stdout = os.Stdout
		opts.Stderr = os.Stderr
		if d.opts.Output != nil {
			opts.Stdout = d.opts.Output
			opts.Stderr = d.opts.Output
		}
	}
	for _, engine := range d.opts.Browsers {
		opts.Browsers = append(opts.Browsers, engine.String())
	}
	return opts
}

// Install downloads the Playwright driver and browsers.
func (d *Driver) Install() error {
	if err := playwright.Install(d.runOptions()); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}
	return nil
}

// Start runs the Playwright driver. Calling Start on a started driver is a
// no-op.
func (d *Driver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started {
		return nil
	}

	pw, err := playwright.Run(d.runOptions())
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	d.pw = pw
	d.started = true
	return nil
}

// BrowserType returns the launcher for engine.
func (d *Driver) BrowserType(engine Engine) (playwright.BrowserType, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return nil, ErrDriverNotStarted
	}

	switch engine {
	case Firefox:
		return d.pw.Firefox, nil
	case WebKit:
		return d.pw.WebKit, nil
	default:
		return d.pw.Chromium, nil
	}
}

// Stop terminates the driver process. Safe to call when not started.
func (d *Driver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return nil
	}
	d.started = false

	if err := d.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}

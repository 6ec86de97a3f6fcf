// Package browsertest provides in-memory Playwright fakes for unit tests.
//
// Each fake embeds the Playwright interface it stands in for and overrides
// only the methods pagecheck calls. Calling anything else panics on the nil
// embedded interface, which flags an unexpected interaction in a test.
package browsertest

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/entrhq/pagecheck/pkg/browser"
	"github.com/playwright-community/playwright-go"
)

// ErrElementNotFound mimics Playwright's timeout waiting for a selector.
var ErrElementNotFound = errors.New("timeout: waiting for locator")

// Journal records lifecycle events across fakes in the order they happen.
type Journal struct {
	mu      sync.Mutex
	entries []string
}

// Record appends an event.
func (j *Journal) Record(format string, args ...interface{}) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

// Entries returns a copy of the recorded events.
func (j *Journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

// Provider implements browser.EngineProvider.
type Provider struct {
	Journal *Journal
	Err     error

	mu    sync.Mutex
	types map[browser.Engine]*BrowserType
}

// NewProvider creates a provider whose engines launch healthy browsers.
func NewProvider() *Provider {
	journal := &Journal{}
	p := &Provider{Journal: journal, types: make(map[browser.Engine]*BrowserType)}
	for _, engine := range browser.Engines {
		p.types[engine] = &BrowserType{Engine: engine, Journal: journal}
	}
	return p
}

// BrowserType implements browser.EngineProvider.
func (p *Provider) BrowserType(engine browser.Engine) (playwright.BrowserType, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Type(engine), nil
}

// Type returns the fake launcher for engine.
func (p *Provider) Type(engine browser.Engine) *BrowserType {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.types[engine]
}

// BrowserType fakes playwright.BrowserType.
type BrowserType struct {
	playwright.BrowserType

	Engine    browser.Engine
	Journal   *Journal
	LaunchErr error

	mu       sync.Mutex
	launches []playwright.BrowserTypeLaunchOptions
	browsers []*Browser
}

// Name implements playwright.BrowserType.
func (t *BrowserType) Name() string {
	return t.Engine.String()
}

// Launch implements playwright.BrowserType.
func (t *BrowserType) Launch(options ...playwright.BrowserTypeLaunchOptions) (playwright.Browser, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(options) > 0 {
		t.launches = append(t.launches, options[0])
	} else {
		t.launches = append(t.launches, playwright.BrowserTypeLaunchOptions{})
	}
	if t.LaunchErr != nil {
		return nil, t.LaunchErr
	}

	t.Journal.Record("launch %s", t.Engine)
	b := &Browser{Engine: t.Engine, Journal: t.Journal}
	t.browsers = append(t.browsers, b)
	return b, nil
}

// Launches returns the options of every Launch call.
func (t *BrowserType) Launches() []playwright.BrowserTypeLaunchOptions {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]playwright.BrowserTypeLaunchOptions(nil), t.launches...)
}

// Browsers returns every browser launched so far.
func (t *BrowserType) Browsers() []*Browser {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*Browser(nil), t.browsers...)
}

// Browser fakes playwright.Browser.
type Browser struct {
	playwright.Browser

	Engine        browser.Engine
	Journal       *Journal
	NewContextErr error
	NewPageErr    error
	CloseErr      error

	// PageFactory configures the pages handed out by new contexts
	PageFactory func() *Page

	mu       sync.Mutex
	options  []playwright.BrowserNewContextOptions
	contexts []*Context
	closed   bool
}

// NewContext implements playwright.Browser.
func (b *Browser) NewContext(options ...playwright.BrowserNewContextOptions) (playwright.BrowserContext, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.NewContextErr != nil {
		return nil, b.NewContextErr
	}
	opts := playwright.BrowserNewContextOptions{}
	if len(options) > 0 {
		opts = options[0]
	}
	b.options = append(b.options, opts)

	b.Journal.Record("new context")
	c := &Context{Journal: b.Journal, NewPageErr: b.NewPageErr, newPage: b.PageFactory}
	b.contexts = append(b.contexts, c)
	return c, nil
}

// Close implements playwright.Browser.
func (b *Browser) Close(options ...playwright.BrowserCloseOptions) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.Journal.Record("close browser")
	return b.CloseErr
}

// Closed reports whether Close was called.
func (b *Browser) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// ContextOptions returns the options of every NewContext call.
func (b *Browser) ContextOptions() []playwright.BrowserNewContextOptions {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]playwright.BrowserNewContextOptions(nil), b.options...)
}

// FakeContexts returns every context created so far.
func (b *Browser) FakeContexts() []*Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Context(nil), b.contexts...)
}

// Context fakes playwright.BrowserContext.
type Context struct {
	playwright.BrowserContext

	Journal    *Journal
	NewPageErr error
	CloseErr   error

	newPage        func() *Page
	mu             sync.Mutex
	pages          []*Page
	closed         bool
	defaultTimeout float64
}

// NewPage implements playwright.BrowserContext.
func (c *Context) NewPage() (playwright.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.NewPageErr != nil {
		return nil, c.NewPageErr
	}
	p := NewPage()
	if c.newPage != nil {
		p = c.newPage()
	}
	p.Journal = c.Journal
	c.Journal.Record("new page")
	c.pages = append(c.pages, p)
	return p, nil
}

// SetDefaultTimeout implements playwright.BrowserContext.
func (c *Context) SetDefaultTimeout(timeout float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultTimeout = timeout
}

// DefaultTimeout returns the value passed to SetDefaultTimeout.
func (c *Context) DefaultTimeout() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defaultTimeout
}

// Close implements playwright.BrowserContext.
func (c *Context) Close(options ...playwright.BrowserContextCloseOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.Journal.Record("close context")
	return c.CloseErr
}

// Closed reports whether Close was called.
func (c *Context) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// FakePages returns every page created so far.
func (c *Context) FakePages() []*Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Page(nil), c.pages...)
}

// Action is one interaction issued against a fake page.
type Action struct {
	Kind     string
	Selector string
	Value    string
}

// Page fakes playwright.Page. Elements present on the page are declared in
// Elements; interacting with any other selector fails like a Playwright
// timeout.
type Page struct {
	playwright.Page

	Journal *Journal

	// Elements maps selectors present on the page to their text content
	Elements map[string]string

	// Errors forces an interaction with a selector to fail
	Errors map[string]error

	// Navigations maps a clicked selector to the URL the click leads to
	Navigations map[string]string

	CurrentURL    string
	PageTitle     string
	HTML          string
	GotoErr       error
	ScreenshotErr error
	CloseErr      error

	mu      sync.Mutex
	actions []Action
	closed  bool
}

// NewPage returns an empty page at about:blank.
func NewPage() *Page {
	return &Page{
		Elements:    make(map[string]string),
		Errors:      make(map[string]error),
		Navigations: make(map[string]string),
		CurrentURL:  "about:blank",
	}
}

func (p *Page) interact(kind, selector, value string) error {
	p.actions = append(p.actions, Action{Kind: kind, Selector: selector, Value: value})
	if err := p.Errors[selector]; err != nil {
		return err
	}
	if _, ok := p.Elements[selector]; !ok {
		return fmt.Errorf("%s %q: %w", kind, selector, ErrElementNotFound)
	}
	return nil
}

// Fill implements playwright.Page.
func (p *Page) Fill(selector, value string, options ...playwright.PageFillOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.interact("fill", selector, value); err != nil {
		return err
	}
	p.Elements[selector] = value
	return nil
}

// Click implements playwright.Page.
func (p *Page) Click(selector string, options ...playwright.PageClickOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.interact("click", selector, ""); err != nil {
		return err
	}
	if target, ok := p.Navigations[selector]; ok {
		p.CurrentURL = target
	}
	return nil
}

// TextContent implements playwright.Page.
func (p *Page) TextContent(selector string, options ...playwright.PageTextContentOptions) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.interact("text", selector, ""); err != nil {
		return "", err
	}
	return p.Elements[selector], nil
}

// Goto implements playwright.Page.
func (p *Page) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions = append(p.actions, Action{Kind: "goto", Value: url})
	if p.GotoErr != nil {
		return nil, p.GotoErr
	}
	p.CurrentURL = url
	return nil, nil
}

// WaitForLoadState implements playwright.Page.
func (p *Page) WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions = append(p.actions, Action{Kind: "wait"})
	return nil
}

// URL implements playwright.Page.
func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.CurrentURL
}

// Title implements playwright.Page.
func (p *Page) Title() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.PageTitle, nil
}

// Content implements playwright.Page.
func (p *Page) Content() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.HTML, nil
}

// PNG is the payload fake screenshots write.
var PNG = []byte("\x89PNG\r\n\x1a\n")

// Screenshot implements playwright.Page. When a path is given the fake
// writes PNG to it, as Playwright does.
func (p *Page) Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var opts playwright.PageScreenshotOptions
	if len(options) > 0 {
		opts = options[0]
	}
	fullPage := opts.FullPage != nil && *opts.FullPage
	p.actions = append(p.actions, Action{Kind: "screenshot", Value: fmt.Sprintf("full=%t", fullPage)})

	if p.ScreenshotErr != nil {
		return nil, p.ScreenshotErr
	}
	if opts.Path != nil {
		if err := os.WriteFile(*opts.Path, PNG, 0600); err != nil {
			return nil, err
		}
	}
	return PNG, nil
}

// Close implements playwright.Page.
func (p *Page) Close(options ...playwright.PageCloseOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.Journal.Record("close page")
	return p.CloseErr
}

// Closed reports whether Close was called.
func (p *Page) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Actions returns every interaction issued so far.
func (p *Page) Actions() []Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Action(nil), p.actions...)
}

// ActionKinds returns the interactions as "kind selector" strings.
func (p *Page) ActionKinds() []string {
	var kinds []string
	for _, a := range p.Actions() {
		kinds = append(kinds, strings.TrimSpace(a.Kind+" "+a.Selector))
	}
	return kinds
}

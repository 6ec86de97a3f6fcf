package lifecycle

import (
	"github.com/entrhq/pagecheck/pkg/browser"
	"github.com/playwright-community/playwright-go"
)

// WithSession starts a session, runs fn and ends the session on every exit
// path. fn's error wins over a teardown error.
func (l *Lifecycle) WithSession(engine string, opts browser.LaunchOptions, fn func(*Session) error) (err error) {
	session, err := l.StartSession(engine, opts)
	if err != nil {
		return err
	}
	defer func() {
		err = l.keepFirst(err, l.EndSession())
	}()
	return fn(session)
}

// WithPage opens a context, runs fn with its page and closes the context on
// every exit path. fn's error wins over a teardown error.
func (l *Lifecycle) WithPage(opts browser.ContextOptions, fn func(playwright.Page) error) (err error) {
	page, err := l.CreateContext(opts)
	if err != nil {
		return err
	}
	defer func() {
		err = l.keepFirst(err, l.CloseContext())
	}()
	return fn(page)
}

// keepFirst returns err unless it is nil, logging a teardown error it hides.
func (l *Lifecycle) keepFirst(err, teardownErr error) error {
	if err == nil {
		return teardownErr
	}
	if teardownErr != nil {
		l.logger.Warnf("Suppressed teardown error: %v", teardownErr)
	}
	return err
}

// Package lifecycle owns the browser resources of an end-to-end test run.
//
// A Lifecycle moves through a small state machine:
//
//	Uninitialized -> SessionActive -> (ContextActive <-> SessionActive)* -> Closed
//
// StartSession launches one browser engine process (the Session) which is
// shared sequentially by every test of a class. CreateContext opens an
// isolated browsing context with a single page for one test, and
// CloseContext releases it before the next test starts. EndSession releases
// the Session. Resources are always released in reverse creation order:
// page, then context, then browser.
//
// Illegal transitions return one of the sentinel errors (ErrNoSession,
// ErrSessionActive, ErrContextActive, ErrClosed) before any resource is
// created. Teardown is best-effort: secondary errors are logged and never
// mask the failure that preceded them.
//
// WithSession and WithPage are the scoped forms: they acquire a resource,
// run a function and release the resource on every exit path.
package lifecycle

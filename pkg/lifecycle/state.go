package lifecycle

import "errors"

// State is a position in the lifecycle state machine.
type State int

const (
	Uninitialized State = iota
	SessionActive
	ContextActive
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case SessionActive:
		return "session-active"
	case ContextActive:
		return "context-active"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

var (
	// ErrNoSession is returned when an operation needs a running Session.
	ErrNoSession = errors.New("no active browser session")

	// ErrSessionActive is returned when starting a second Session.
	ErrSessionActive = errors.New("browser session already active")

	// ErrContextActive is returned when opening a second Context.
	ErrContextActive = errors.New("browser context already open")

	// ErrNoContext is returned when an operation needs an open Context.
	ErrNoContext = errors.New("no open browser context")

	// ErrClosed is returned once the lifecycle has ended.
	ErrClosed = errors.New("lifecycle closed")
)

package scenario

import (
	"errors"
	"fmt"

	"github.com/entrhq/pagecheck/pkg/config"
	"github.com/entrhq/pagecheck/pkg/lifecycle"
	"github.com/playwright-community/playwright-go"
)

// Scenario is one named end-to-end check.
type Scenario struct {
	Name        string
	Description string
	Run         func(env *Env) error
}

// Env is everything a scenario invocation may use. A fresh Env is built for
// every scenario; the Session is shared with the other scenarios of the run
// and must not be closed by the scenario.
type Env struct {
	Session  *lifecycle.Session
	Page     playwright.Page
	Settings *config.Settings
	Logger   lifecycle.Logger

	capture   func(page playwright.Page, name string) (string, error)
	artifacts []string
}

// Screenshot saves a full-page screenshot of the scenario's page.
func (e *Env) Screenshot(name string) error {
	path, err := e.capture(e.Page, name)
	if err != nil {
		return err
	}
	e.artifacts = append(e.artifacts, path)
	return nil
}

// AssertionError is a failed expectation, as opposed to an interaction that
// could not be performed.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return e.Message
}

// Assertf returns an AssertionError.
func Assertf(format string, args ...interface{}) error {
	return &AssertionError{Message: fmt.Sprintf(format, args...)}
}

// SkipError marks a scenario that could not run in the current settings.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	return "skipped: " + e.Reason
}

// Skip returns a SkipError.
func Skip(reason string) error {
	return &SkipError{Reason: reason}
}

// ErrorKind classifies a scenario failure.
type ErrorKind string

const (
	KindNone        ErrorKind = ""
	KindSetup       ErrorKind = "setup"
	KindInteraction ErrorKind = "interaction"
	KindAssertion   ErrorKind = "assertion"
)

// Classify returns the kind of err.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var assertErr *AssertionError
	if errors.As(err, &assertErr) {
		return KindAssertion
	}
	for _, setupErr := range []error{lifecycle.ErrNoSession, lifecycle.ErrSessionActive, lifecycle.ErrContextActive, lifecycle.ErrNoContext, lifecycle.ErrClosed} {
		if errors.Is(err, setupErr) {
			return KindSetup
		}
	}
	return KindInteraction
}

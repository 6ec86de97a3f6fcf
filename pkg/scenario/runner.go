package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/pagecheck/pkg/config"
	"github.com/entrhq/pagecheck/pkg/lifecycle"
)

// Runner executes scenarios sequentially on one browser session. Each
// scenario gets its own context and page, torn down before the next starts.
type Runner struct {
	lifecycle *lifecycle.Lifecycle
	settings  *config.Settings
	logger    lifecycle.Logger
	runID     string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunID tags the summary with id.
func WithRunID(id string) RunnerOption {
	return func(r *Runner) { r.runID = id }
}

// NewRunner creates a runner that drives l with settings. A nil logger
// discards output.
func NewRunner(l *lifecycle.Lifecycle, settings *config.Settings, logger lifecycle.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = lifecycle.DiscardLogger
	}
	r := &Runner{
		lifecycle: l,
		settings:  settings,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the session, runs every scenario and ends the session. A session
// that cannot start aborts the run. Cancelling ctx skips the scenarios that
// have not started yet.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) (summary *Summary, err error) {
	session, err := r.lifecycle.StartSession(r.settings.Engine, r.settings.LaunchOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	summary = &Summary{
		RunID:     r.runID,
		Engine:    session.Engine,
		StartedAt: session.StartedAt,
	}

	defer func() {
		if endErr := r.lifecycle.EndSession(); endErr != nil {
			r.logger.Warnf("Ending session: %v", endErr)
			if err == nil && summary.OK() {
				err = endErr
			}
		}
		summary.Duration = time.Since(summary.StartedAt)
	}()

	for _, s := range scenarios {
		if ctxErr := ctx.Err(); ctxErr != nil {
			r.logger.Warnf("Skipping %s: %v", s.Name, ctxErr)
			summary.Results = append(summary.Results, Result{
				Name:   s.Name,
				Status: StatusSkipped,
				Error:  ctxErr.Error(),
			})
			continue
		}

		result := r.runOne(session, s)
		r.logger.Infof("Scenario %s %s in %s", s.Name, result.Status, result.Duration.Round(time.Millisecond))
		summary.Results = append(summary.Results, result)
	}

	return summary, nil
}

func (r *Runner) runOne(session *lifecycle.Session, s Scenario) Result {
	started := time.Now()
	r.logger.Infof("Scenario %s started", s.Name)

	page, err := r.lifecycle.CreateContext(r.settings.ContextOptions())
	if err != nil {
		return newResult(s.Name, started, err, nil)
	}

	env := &Env{
		Session:  session,
		Page:     page,
		Settings: r.settings,
		Logger:   r.logger,
		capture:  r.lifecycle.CaptureScreenshot,
	}

	err = r.invoke(s, env)

	result := newResult(s.Name, started, err, env.artifacts)
	if result.Status == StatusFailed {
		r.logger.Errorf("Scenario %s failed (%s): %v", s.Name, result.Kind, err)
		result.Artifacts = append(result.Artifacts, r.captureFailure(env, s.Name)...)
	}

	if closeErr := r.lifecycle.CloseContext(); closeErr != nil {
		if result.Status == StatusPassed {
			return newResult(s.Name, started, closeErr, result.Artifacts)
		}
		r.logger.Warnf("Suppressed teardown error for %s: %v", s.Name, closeErr)
	}
	return result
}

// invoke runs the scenario, turning a panic into a failure so the context is
// still released and the remaining scenarios still run.
func (r *Runner) invoke(s Scenario, env *Env) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scenario panicked: %v", p)
		}
	}()
	return s.Run(env)
}

// captureFailure saves a screenshot and DOM snapshot of a failed scenario.
// Capture errors are logged only.
func (r *Runner) captureFailure(env *Env, name string) []string {
	var artifacts []string

	if path, err := r.lifecycle.CaptureScreenshot(env.Page, name+"-failure"); err != nil {
		r.logger.Warnf("Failure screenshot for %s: %v", name, err)
	} else {
		artifacts = append(artifacts, path)
	}

	if path, err := r.lifecycle.CaptureSnapshot(env.Page, name+"-failure"); err != nil {
		r.logger.Warnf("Failure snapshot for %s: %v", name, err)
	} else {
		artifacts = append(artifacts, path)
	}
	return artifacts
}

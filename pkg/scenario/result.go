package scenario

import (
	"errors"
	"fmt"
	"time"

	"github.com/entrhq/pagecheck/pkg/browser"
)

// Status is the outcome of a scenario.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result is the outcome of one scenario.
type Result struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Duration  time.Duration `json:"duration_ns"`
	Kind      ErrorKind     `json:"error_kind,omitempty"`
	Error     string        `json:"error,omitempty"`
	Artifacts []string      `json:"artifacts,omitempty"`

	Err error `json:"-"`
}

func newResult(name string, started time.Time, err error, artifacts []string) Result {
	result := Result{
		Name:      name,
		Status:    StatusPassed,
		Duration:  time.Since(started),
		Artifacts: artifacts,
	}
	if err == nil {
		return result
	}

	var skip *SkipError
	if errors.As(err, &skip) {
		result.Status = StatusSkipped
		result.Error = skip.Reason
		return result
	}

	result.Status = StatusFailed
	result.Err = err
	result.Error = err.Error()
	result.Kind = Classify(err)
	return result
}

// Summary aggregates the results of a run.
type Summary struct {
	RunID     string         `json:"run_id"`
	Engine    browser.Engine `json:"engine"`
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration_ns"`
	Results   []Result       `json:"results"`
}

func (s *Summary) count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Passed returns the number of passed scenarios.
func (s *Summary) Passed() int { return s.count(StatusPassed) }

// Failed returns the number of failed scenarios.
func (s *Summary) Failed() int { return s.count(StatusFailed) }

// Skipped returns the number of skipped scenarios.
func (s *Summary) Skipped() int { return s.count(StatusSkipped) }

// OK reports whether no scenario failed.
func (s *Summary) OK() bool {
	return s.Failed() == 0
}

// String returns a one-line summary.
func (s *Summary) String() string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped in %s",
		s.Passed(), s.Failed(), s.Skipped(), s.Duration.Round(time.Millisecond))
}

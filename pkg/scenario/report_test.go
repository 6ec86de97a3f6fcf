package scenario_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/entrhq/pagecheck/pkg/browser"
	"github.com/entrhq/pagecheck/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *scenario.Summary {
	return &scenario.Summary{
		RunID:     "3f2c",
		Engine:    browser.Firefox,
		StartedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Duration:  3 * time.Second,
		Results: []scenario.Result{
			{Name: "homepage-title", Status: scenario.StatusPassed, Duration: time.Second, Artifacts: []string{"shots/homepage.png"}},
			{
				Name:      "login",
				Status:    scenario.StatusFailed,
				Duration:  2 * time.Second,
				Kind:      scenario.KindAssertion,
				Error:     "login was rejected: Your password is invalid!",
				Err:       errors.New("login was rejected: Your password is invalid!"),
				Artifacts: []string{"shots/login-failure.png"},
			},
			{Name: "login-rejected", Status: scenario.StatusSkipped, Error: "no login url configured"},
		},
	}
}

func TestSummaryCounts(t *testing.T) {
	summary := sampleSummary()

	assert.Equal(t, 1, summary.Passed())
	assert.Equal(t, 1, summary.Failed())
	assert.Equal(t, 1, summary.Skipped())
	assert.False(t, summary.OK())
	assert.Equal(t, "1 passed, 1 failed, 1 skipped in 3s", summary.String())

	summary.Results = summary.Results[:1]
	assert.True(t, summary.OK())
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, scenario.Render(&buf, sampleSummary()))

	out := buf.String()
	for _, want := range []string{
		"firefox",
		"homepage-title",
		"login was rejected: Your password is invalid!",
		"shots/login-failure.png",
		"1 passed, 1 failed, 1 skipped",
	} {
		assert.Contains(t, out, want)
	}
}

func TestReportWriter_WriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	require.NoError(t, scenario.NewReportWriter(dir).WriteAll(sampleSummary()))

	data, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)

	var report struct {
		RunID   string `json:"run_id"`
		Engine  string `json:"engine"`
		Results []struct {
			Name      string   `json:"name"`
			Status    string   `json:"status"`
			Kind      string   `json:"error_kind"`
			Error     string   `json:"error"`
			Artifacts []string `json:"artifacts"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "3f2c", report.RunID)
	assert.Equal(t, "firefox", report.Engine)
	require.Len(t, report.Results, 3)
	assert.Equal(t, "failed", report.Results[1].Status)
	assert.Equal(t, "assertion", report.Results[1].Kind)
	assert.Equal(t, []string{"shots/login-failure.png"}, report.Results[1].Artifacts)

	md, err := os.ReadFile(filepath.Join(dir, "summary.md"))
	require.NoError(t, err)
	for _, want := range []string{
		"# pagecheck run summary",
		"**Engine:** firefox",
		"| login | ❌ failed | 2s |",
		"### login",
		"- `shots/login-failure.png`",
		"- **Skipped:** 1",
	} {
		assert.Contains(t, string(md), want)
	}
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/entrhq/pagecheck/pkg/browser"
	"github.com/entrhq/pagecheck/pkg/config"
	"github.com/entrhq/pagecheck/pkg/lifecycle"
	"github.com/entrhq/pagecheck/pkg/logging"
	"github.com/entrhq/pagecheck/pkg/scenario"
)

// run executes the selected scenarios and reports whether all of them passed.
func run(ctx context.Context, cfg *Config, stdout io.Writer) (bool, error) {
	if err := config.Initialize(cfg.ConfigFile); err != nil {
		return false, err
	}
	settings := config.Global()
	if err := cfg.applyTo(settings); err != nil {
		return false, fmt.Errorf("invalid configuration: %w", err)
	}

	registry := scenario.Builtin()
	selected, err := registry.Match(settings.Scenarios...)
	if err != nil {
		return false, err
	}

	if cfg.List {
		listScenarios(stdout, registry, selected)
		return true, nil
	}
	if len(selected) == 0 {
		return false, fmt.Errorf("no scenario matches %v", settings.Scenarios)
	}

	logging.Configure(settings.LogDir())
	logger, err := logging.NewLogger("pagecheck")
	if err != nil {
		fmt.Fprintf(stdout, "Warning: %v\n", err)
	}
	defer logger.Close()

	// Driver and install output go to the run log
	driver := browser.NewDriver(browser.DriverOptions{
		Browsers: []browser.Engine{settings.EngineVariant()},
		Verbose:  true,
		Output:   logger.Writer(),
	})
	if cfg.Install {
		logger.Infof("Installing playwright driver and %s", settings.EngineVariant())
		if err := driver.Install(); err != nil {
			return false, err
		}
	}
	if err := driver.Start(); err != nil {
		return false, err
	}
	defer func() {
		if err := driver.Stop(); err != nil {
			logger.Warnf("Stopping driver: %v", err)
		}
	}()

	l := lifecycle.New(driver,
		lifecycle.WithLogger(logger.With("lifecycle")),
		lifecycle.WithScreenshotDir(settings.ScreenshotDir()),
	)
	runner := scenario.NewRunner(l, settings, logger.With("runner"), scenario.WithRunID(logger.RunID()))

	logger.Infof("Running %d scenario(s) on %s", len(selected), settings.EngineVariant())
	summary, err := runner.Run(ctx, selected)
	if summary == nil {
		return false, err
	}
	if err != nil {
		logger.Errorf("Run finished with error: %v", err)
	}

	if renderErr := scenario.Render(stdout, summary); renderErr != nil {
		logger.Warnf("Rendering summary: %v", renderErr)
	}
	if settings.Results.Report {
		if reportErr := scenario.NewReportWriter(settings.Results.Dir).WriteAll(summary); reportErr != nil {
			logger.Errorf("Writing reports: %v", reportErr)
		}
	}
	if path := logger.LogPath(); path != "" {
		fmt.Fprintf(stdout, "Log: %s\n", path)
	}

	return summary.OK() && err == nil, nil
}

func listScenarios(w io.Writer, registry *scenario.Registry, selected []scenario.Scenario) {
	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		chosen[s.Name] = true
	}
	for _, s := range registry.All() {
		marker := " "
		if chosen[s.Name] {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-16s %s\n", marker, s.Name, s.Description)
	}
}

// Package main provides the pagecheck command, which runs browser scenarios
// against a web application and writes screenshots and reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/entrhq/pagecheck/pkg/config"
)

const version = "0.1.0"

// Config holds the command line options
type Config struct {
	ConfigFile  string
	Engine      string
	Headless    bool
	HeadlessSet bool
	Run         string
	ResultsDir  string
	Install     bool
	List        bool
	ShowVersion bool
}

func main() {
	cfg := parseFlags(flag.CommandLine, os.Args[1:])

	if cfg.ShowVersion {
		fmt.Printf("pagecheck v%s\n", version)
		return
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, finishing current scenario...")
		cancel()
	}()

	ok, err := run(ctx, cfg, os.Stdout)
	cancel()
	if err != nil {
		log.Fatalf("pagecheck: %v", err)
	}
	if !ok {
		os.Exit(1)
	}
}

// parseFlags parses command line flags
func parseFlags(fs *flag.FlagSet, args []string) *Config {
	cfg := &Config{}

	fs.StringVar(&cfg.ConfigFile, "config", "", "Path to settings file (YAML), or set "+config.EnvConfigFile)
	fs.StringVar(&cfg.Engine, "engine", "", "Browser engine: chromium, firefox or webkit")
	fs.BoolVar(&cfg.Headless, "headless", false, "Hide the browser window")
	fs.StringVar(&cfg.Run, "run", "", "Comma-separated glob patterns selecting scenarios")
	fs.StringVar(&cfg.ResultsDir, "results", "", "Directory for screenshots, logs and reports")
	fs.BoolVar(&cfg.Install, "install", false, "Install the Playwright driver and browser before running")
	fs.BoolVar(&cfg.List, "list", false, "List scenarios and exit")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "pagecheck - end-to-end browser checks\n\n")
		fmt.Fprintf(out, "Usage: pagecheck [options]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nEnvironment Variables:\n")
		fmt.Fprintf(out, "  %-22s Browser engine\n", config.EnvEngine)
		fmt.Fprintf(out, "  %-22s true to hide the browser window\n", config.EnvHeadless)
		fmt.Fprintf(out, "  %-22s Landing page of the homepage scenario\n", config.EnvBaseURL)
		fmt.Fprintf(out, "  %-22s Login screen of the login scenarios\n", config.EnvLoginURL)
		fmt.Fprintf(out, "  %-22s Login credentials\n", config.EnvUsername+"/PASSWORD")
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  pagecheck -install -headless\n")
		fmt.Fprintf(out, "  pagecheck -engine firefox -run 'login*'\n")
		fmt.Fprintf(out, "  pagecheck -config pagecheck.yaml -results out\n")
	}

	// ExitOnError is the only mode used, so the error is always nil here
	_ = fs.Parse(args)

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "headless" {
			cfg.HeadlessSet = true
		}
	})
	return cfg
}

// applyTo overrides settings with the flags that were given.
func (c *Config) applyTo(settings *config.Settings) error {
	if c.Engine != "" {
		settings.Engine = c.Engine
	}
	if c.HeadlessSet {
		settings.Headless = c.Headless
	}
	if c.ResultsDir != "" {
		settings.Results.Dir = c.ResultsDir
	}
	if patterns := splitPatterns(c.Run); len(patterns) > 0 {
		settings.Scenarios = patterns
	}
	return settings.Validate()
}

func splitPatterns(s string) []string {
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/entrhq/pagecheck/pkg/browser"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the settings file
const (
	EnvEngine        = "PAGECHECK_ENGINE"
	EnvHeadless      = "PAGECHECK_HEADLESS"
	EnvBaseURL       = "PAGECHECK_BASE_URL"
	EnvLoginURL      = "PAGECHECK_LOGIN_URL"
	EnvUsername      = "PAGECHECK_USERNAME"
	EnvPassword      = "PAGECHECK_PASSWORD"
	EnvResultsDir    = "PAGECHECK_RESULTS_DIR"
	DefaultEnvFile   = ".env"
	DefaultResultDir = "test-results"
)

// Default values for settings
const (
	defaultEngine        = "chromium"
	defaultSlowMo        = 100 * time.Millisecond
	defaultTimeout       = 30 * time.Second
	defaultBaseURL       = "https://playwright.dev"
	defaultExpectedTitle = "Playwright"
)

// Settings configures a pagecheck run.
type Settings struct {
	// Engine is the free-text engine name, see browser.SelectEngine
	Engine string `yaml:"engine" json:"engine"`

	// Headless hides the browser window
	Headless bool `yaml:"headless" json:"headless"`

	// SlowMo delays each browser action so a run can be watched
	SlowMo time.Duration `yaml:"slow_mo" json:"slow_mo"`

	// Timeout is the default timeout for page actions
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	Viewport  browser.Viewport `yaml:"viewport" json:"viewport"`
	UserAgent string           `yaml:"user_agent" json:"user_agent"`

	// BaseURL is the landing page the homepage scenario opens
	BaseURL string `yaml:"base_url" json:"base_url"`

	// ExpectedTitle must appear in the landing page title
	ExpectedTitle string `yaml:"expected_title" json:"expected_title"`

	Login LoginConfig `yaml:"login" json:"login"`

	Results ResultsConfig `yaml:"results" json:"results"`

	// Scenarios are glob patterns selecting which scenarios run, all when empty
	Scenarios []string `yaml:"scenarios" json:"scenarios"`
}

// LoginConfig points the login scenario at an application.
type LoginConfig struct {
	URL      string `yaml:"url" json:"url"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"-"`
}

// ResultsConfig defines where run artifacts go.
type ResultsConfig struct {
	Dir string `yaml:"dir" json:"dir"`

	// Report enables report.json and summary.md
	Report bool `yaml:"report" json:"report"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() *Settings {
	return &Settings{
		Engine:        defaultEngine,
		Headless:      false,
		SlowMo:        defaultSlowMo,
		Timeout:       defaultTimeout,
		Viewport:      *browser.DefaultViewport(),
		UserAgent:     browser.DefaultUserAgent,
		BaseURL:       defaultBaseURL,
		ExpectedTitle: defaultExpectedTitle,
		Results: ResultsConfig{
			Dir:    DefaultResultDir,
			Report: true,
		},
	}
}

// Load reads settings from path on top of the defaults, then applies the
// environment and validates. An empty path skips the file.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := settings.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

// LoadEnvFiles loads KEY=value files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, file := range files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from PAGECHECK_* environment variables.
func (s *Settings) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvEngine); ok && v != "" {
		s.Engine = v
	}
	if v, ok := os.LookupEnv(EnvHeadless); ok && v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvHeadless, err)
		}
		s.Headless = headless
	}
	if v, ok := os.LookupEnv(EnvBaseURL); ok && v != "" {
		s.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvLoginURL); ok && v != "" {
		s.Login.URL = v
	}
	if v, ok := os.LookupEnv(EnvUsername); ok && v != "" {
		s.Login.Username = v
	}
	if v, ok := os.LookupEnv(EnvPassword); ok {
		s.Login.Password = v
	}
	if v, ok := os.LookupEnv(EnvResultsDir); ok && v != "" {
		s.Results.Dir = v
	}
	return nil
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", s.Viewport.Width, s.Viewport.Height)
	}
	if s.SlowMo < 0 {
		return fmt.Errorf("slow_mo must not be negative")
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if s.Results.Dir == "" {
		return fmt.Errorf("results directory is required")
	}
	if s.Login.URL != "" && s.Login.Username == "" {
		return fmt.Errorf("login username is required when login url is set")
	}
	return nil
}

// EngineVariant returns the engine the settings select.
func (s *Settings) EngineVariant() browser.Engine {
	return browser.SelectEngine(s.Engine)
}

// LaunchOptions returns the browser launch options.
func (s *Settings) LaunchOptions() browser.LaunchOptions {
	return browser.LaunchOptions{
		Headless: s.Headless,
		SlowMo:   s.SlowMo,
	}
}

// ContextOptions returns the options for each test's browsing context.
func (s *Settings) ContextOptions() browser.ContextOptions {
	viewport := s.Viewport
	return browser.ContextOptions{
		Viewport:  &viewport,
		UserAgent: s.UserAgent,
		Timeout:   s.Timeout,
	}
}

// ScreenshotDir returns <results>/screenshots.
func (s *Settings) ScreenshotDir() string {
	return filepath.Join(s.Results.Dir, "screenshots")
}

// LogDir returns <results>/logs.
func (s *Settings) LogDir() string {
	return filepath.Join(s.Results.Dir, "logs")
}

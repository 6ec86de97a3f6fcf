package config

import (
	"os"
	"sync"
)

// EnvConfigFile names the settings file Initialize falls back to.
const EnvConfigFile = "PAGECHECK_CONFIG"

var (
	// globalSettings is the process-wide settings instance
	globalSettings *Settings
	globalMu       sync.Mutex
)

// Initialize loads .env, then the settings file at path (or the file named by
// PAGECHECK_CONFIG when path is empty), and installs the result as the
// global settings. This should be called once at startup.
func Initialize(path string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if err := LoadEnvFiles(); err != nil {
		return err
	}
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	settings, err := Load(path)
	if err != nil {
		return err
	}

	globalSettings = settings
	return nil
}

// Global returns the global settings.
// Panics if Initialize has not been called.
func Global() *Settings {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalSettings == nil {
		panic("config not initialized: call config.Initialize first")
	}
	return globalSettings
}

// IsInitialized returns true if the global settings have been loaded.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalSettings != nil
}

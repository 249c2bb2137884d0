// Package config handles application configuration.
//
// Configuration is split into two categories:
//   - Asset facts: decimals, native flags, and reserves live in the
//     registry (built-in or loaded from registry.path) and are never
//     overridable per key, because amount math must match the chain.
//   - App settings: data locations, fixture sources, UI defaults, logging.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds app-level runtime configuration.
type Config struct {
	// Core
	DataDir string `conf:"datadir"`

	// Asset registry source
	Registry RegistryConfig

	// Balance source
	Balances BalancesConfig

	// Form defaults
	UI UIConfig

	// Logging
	Log LogConfig
}

// RegistryConfig holds asset registry settings.
type RegistryConfig struct {
	Path string `conf:"registry.path"` // YAML registry file; empty = built-in set
}

// BalancesConfig holds balance source settings.
type BalancesConfig struct {
	Path    string        `conf:"balances.path"`    // YAML fixture file; empty = all zero
	Latency time.Duration `conf:"balances.latency"` // Artificial delay per fetch
}

// UIConfig holds the initial form state.
type UIConfig struct {
	Chain   string `conf:"ui.chain"`   // Preselected chain ID
	Asset   string `conf:"ui.asset"`   // Preselected asset symbol (requires ui.chain)
	Address string `conf:"ui.address"` // Prefilled sender address
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.klingsend
//	macOS:   ~/Library/Application Support/Klingsend
//	Windows: %APPDATA%\Klingsend
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klingsend"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Klingsend")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Klingsend")
		}
		return filepath.Join(home, "AppData", "Roaming", "Klingsend")
	default:
		return filepath.Join(home, ".klingsend")
	}
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "klingsend.conf")
}

// SettingsFile returns the GUI settings file path.
func (c *Config) SettingsFile() string {
	return filepath.Join(c.DataDir, "settings.json")
}

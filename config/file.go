package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// LoadFile loads app configuration from a .conf file.
// Format: key = value (one per line, # for comments)
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse key = value
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setConfigValue sets an app config value by key.
func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	// Core
	case "datadir":
		cfg.DataDir = value

	// Asset registry
	case "registry.path", "registry":
		cfg.Registry.Path = value

	// Balances
	case "balances.path", "balances":
		cfg.Balances.Path = value
	case "balances.latency":
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		cfg.Balances.Latency = d

	// Form defaults
	case "ui.chain":
		cfg.UI.Chain = value
	case "ui.asset":
		cfg.UI.Asset = value
	case "ui.address":
		cfg.UI.Address = value

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	default:
		// Unknown keys are ignored
	}
	return nil
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// WriteDefaultConfig writes a default app configuration file.
func WriteDefaultConfig(path string) error {
	content := `# Klingsend Configuration
#
# This file contains APP settings only.
# Asset facts (decimals, native flags, reserves) come from the built-in
# registry or from the file named by registry.path, never from here.

# Data directory (default: ~/.klingsend)
# datadir = ~/.klingsend

# ============================================================================
# Asset Registry
# ============================================================================

# YAML registry file replacing the built-in chain/asset set
# registry.path = ~/.klingsend/registry.yaml

# ============================================================================
# Balances
# ============================================================================

# YAML balance fixtures (without this every balance reads as zero)
# balances.path = ~/.klingsend/balances.yaml

# Artificial delay applied to each balance fetch
balances.latency = 500ms

# ============================================================================
# Form Defaults
# ============================================================================

# Preselect a chain and asset on startup
# ui.chain = klingnet
# ui.asset = KGX

# Prefill the sender address
# ui.address =

# ============================================================================
# Logging
# ============================================================================

log.level = info
# log.file =
log.json = false
`
	return os.WriteFile(path, []byte(content), 0644)
}

package config

import (
	"fmt"
	"strings"
	"time"
)

// MaxBalanceLatency caps the artificial balance fetch delay. Anything
// longer makes the form look hung rather than loading.
const MaxBalanceLatency = 30 * time.Second

// Validate checks app config for obvious operator mistakes and
// normalizes values: log levels and chain IDs are lowercased, asset
// symbols are uppercased.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return fmt.Errorf("datadir must not be empty")
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	switch cfg.Log.Level {
	case "":
		cfg.Log.Level = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error")
	}

	if cfg.Balances.Latency < 0 {
		return fmt.Errorf("balances.latency must not be negative")
	}
	if cfg.Balances.Latency > MaxBalanceLatency {
		return fmt.Errorf("balances.latency must be at most %s", MaxBalanceLatency)
	}

	cfg.UI.Chain = strings.ToLower(strings.TrimSpace(cfg.UI.Chain))
	cfg.UI.Asset = strings.ToUpper(strings.TrimSpace(cfg.UI.Asset))
	cfg.UI.Address = strings.TrimSpace(cfg.UI.Address)
	if cfg.UI.Asset != "" && cfg.UI.Chain == "" {
		return fmt.Errorf("ui.asset requires ui.chain")
	}

	return nil
}

// Klingsend terminal send form.
//
// Usage:
//
//	klingsend [--chain=... --asset=...]  Run the send form
//	klingsend --help                     Show help
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Klingon-tech/klingsend/config"
	"github.com/Klingon-tech/klingsend/internal/balance"
	"github.com/Klingon-tech/klingsend/internal/log"
	"github.com/Klingon-tech/klingsend/internal/registry"
)

func main() {
	cfg, _, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The form owns the whole terminal, so logs always go to a file.
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = filepath.Join(cfg.LogsDir(), "klingsend.log")
	}
	if err := log.InitFile(cfg.Log.Level, cfg.Log.JSON, logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	provider, err := loadBalances(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.App.Info().
		Int("chains", len(reg.Chains())).
		Str("registry", cfg.Registry.Path).
		Str("balances", cfg.Balances.Path).
		Msg("starting send form")

	m := newModel(cfg, reg, provider)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadRegistry returns the registry named by the config, or the built-in
// set when no path is given.
func loadRegistry(cfg *config.Config) (*registry.Registry, error) {
	if cfg.Registry.Path == "" {
		return registry.Default(), nil
	}
	reg, err := registry.LoadFile(cfg.Registry.Path)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}
	return reg, nil
}

// loadBalances returns the balance provider for the config: fixture-backed
// when balances.path is set, otherwise empty (every balance reads as zero).
func loadBalances(cfg *config.Config) (*balance.MemoryProvider, error) {
	var provider *balance.MemoryProvider
	if cfg.Balances.Path == "" {
		provider = balance.NewMemory()
	} else {
		p, err := balance.LoadFixtures(cfg.Balances.Path)
		if err != nil {
			return nil, fmt.Errorf("loading balances: %w", err)
		}
		provider = p
	}
	provider.SetLatency(cfg.Balances.Latency)
	return provider, nil
}

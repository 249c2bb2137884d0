package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Klingon-tech/klingsend/config"
	"github.com/Klingon-tech/klingsend/internal/balance"
	"github.com/Klingon-tech/klingsend/internal/form"
	"github.com/Klingon-tech/klingsend/internal/log"
	"github.com/Klingon-tech/klingsend/internal/registry"
)

// appSettings is the persistent form state written to settings.json, so
// the form reopens the way it was left.
type appSettings struct {
	Chain   string `json:"chain"`
	Asset   string `json:"asset"`
	Address string `json:"address"`
}

// App manages application lifecycle and settings.
type App struct {
	ctx context.Context
	cfg *config.Config

	reg      *registry.Registry
	provider *balance.MemoryProvider
	field    *fieldMirror
	ctl      *form.Controller

	form *FormService
}

// NewApp loads the configuration and builds the form controller.
func NewApp() (*App, error) {
	return newAppAt(config.DefaultDataDir())
}

func newAppAt(dataDir string) (*App, error) {
	cfg, err := config.LoadFromFile(dataDir)
	if err != nil {
		return nil, err
	}

	// The window owns all user-visible output, so logs go to a file.
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = filepath.Join(cfg.LogsDir(), "klingsend-qt.log")
	}
	if err := log.InitFile(cfg.Log.Level, cfg.Log.JSON, logFile); err != nil {
		return nil, err
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}
	provider, err := loadBalances(cfg)
	if err != nil {
		return nil, err
	}

	logger := log.WithComponent("qt")
	logger.Info().
		Int("chains", len(reg.Chains())).
		Str("registry", cfg.Registry.Path).
		Str("balances", cfg.Balances.Path).
		Msg("form ready")

	app := &App{
		cfg:      cfg,
		reg:      reg,
		provider: provider,
		field:    &fieldMirror{},
	}
	app.ctl = form.New(reg, provider, app.field)
	app.form = &FormService{app: app}
	app.loadSettings()
	return app, nil
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

func (a *App) shutdown(_ context.Context) {}

// ── Settings persistence ─────────────────────────────────────────────

func (a *App) loadSettings() {
	data, err := os.ReadFile(a.cfg.SettingsFile())
	if err != nil {
		a.applyConfigDefaults()
		return // first launch or missing file — use config defaults
	}
	var s appSettings
	if err := json.Unmarshal(data, &s); err != nil {
		a.applyConfigDefaults()
		return
	}
	if s.Address != "" {
		a.ctl.SetAddress(s.Address)
	}
	if s.Chain != "" && s.Asset != "" {
		// A selection that no longer resolves in the registry is dropped.
		_ = a.ctl.SelectAsset(s.Chain, s.Asset)
	}
}

// applyConfigDefaults seeds the form from klingsend.conf when there is no
// saved session yet.
func (a *App) applyConfigDefaults() {
	if a.cfg.UI.Address != "" {
		a.ctl.SetAddress(a.cfg.UI.Address)
	}
	if a.cfg.UI.Chain != "" && a.cfg.UI.Asset != "" {
		_ = a.ctl.SelectAsset(a.cfg.UI.Chain, a.cfg.UI.Asset)
	}
}

func (a *App) saveSettings() {
	chainID, symbol, _ := a.ctl.Selection()
	s := appSettings{
		Chain:   chainID,
		Asset:   symbol,
		Address: a.ctl.Address(),
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return
	}
	// Ensure directory exists.
	_ = os.MkdirAll(filepath.Dir(a.cfg.SettingsFile()), 0700)
	_ = os.WriteFile(a.cfg.SettingsFile(), data, 0600)
}

// ── App info ─────────────────────────────────────────────────────────

// GetDataDir returns the directory settings and logs live in.
func (a *App) GetDataDir() string {
	return a.cfg.DataDir
}

// GetRegistrySource reports where the asset metadata came from.
func (a *App) GetRegistrySource() string {
	if a.cfg.Registry.Path == "" {
		return "built-in"
	}
	return a.cfg.Registry.Path
}

// GetBalanceSource reports where balances come from.
func (a *App) GetBalanceSource() string {
	if a.cfg.Balances.Path == "" {
		return "empty (all balances zero)"
	}
	return a.cfg.Balances.Path
}

// ── Config loading helpers ───────────────────────────────────────────

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

package main

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Klingon-tech/klingsend/config"
	"github.com/Klingon-tech/klingsend/internal/balance"
	"github.com/Klingon-tech/klingsend/internal/form"
	"github.com/Klingon-tech/klingsend/internal/registry"
)

// fetchTimeout bounds a single balance fetch.
const fetchTimeout = 10 * time.Second

// Focusable fields, in tab order.
const (
	focusAsset = iota
	focusAddress
	focusAmount
	focusCount
)

// assetRef identifies one selectable asset in registry order.
type assetRef struct {
	chainID string
	symbol  string
}

// fieldMirror is the amount field's sink. The view renders whatever was
// last pushed here, so typed input and the max action share one path into
// the visible field.
type fieldMirror struct {
	mu   sync.Mutex
	text string
}

func (f *fieldMirror) SetAmount(text string) {
	f.mu.Lock()
	f.text = text
	f.mu.Unlock()
}

func (f *fieldMirror) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}

// balanceDoneMsg reports a finished balance fetch. The controller has
// already applied or dropped the result; the message only drives rendering.
type balanceDoneMsg struct {
	err error
}

type model struct {
	ctl    *form.Controller
	field  *fieldMirror
	reg    *registry.Registry
	assets []assetRef

	selected int // index into assets, -1 = nothing selected
	focus    int

	addrInput textinput.Model
	spin      spinner.Model

	width  int
	status string
}

func newModel(cfg *config.Config, reg *registry.Registry, provider *balance.MemoryProvider) model {
	field := &fieldMirror{}
	ctl := form.New(reg, provider, field)

	var assets []assetRef
	for _, chain := range reg.Chains() {
		for _, a := range chain.Assets {
			assets = append(assets, assetRef{chainID: chain.ID, symbol: a.Symbol})
		}
	}

	ti := textinput.New()
	ti.Placeholder = "kgx1..."
	ti.CharLimit = 90
	ti.Prompt = ""
	if cfg.UI.Address != "" {
		ti.SetValue(cfg.UI.Address)
		ctl.SetAddress(cfg.UI.Address)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colAccent)

	m := model{
		ctl:       ctl,
		field:     field,
		reg:       reg,
		assets:    assets,
		selected:  -1,
		focus:     focusAsset,
		addrInput: ti,
		spin:      sp,
	}

	if cfg.UI.Chain != "" && cfg.UI.Asset != "" {
		for i, ref := range assets {
			if ref.chainID == cfg.UI.Chain && ref.symbol == cfg.UI.Asset {
				if err := ctl.SelectAsset(ref.chainID, ref.symbol); err == nil {
					m.selected = i
				}
				break
			}
		}
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.selected >= 0 {
		return tea.Batch(m.fetchBalance(), m.spin.Tick)
	}
	return nil
}

// fetchBalance resolves the current selection's balance in the background.
// Staleness is the controller's problem; the message just repaints.
func (m model) fetchBalance() tea.Cmd {
	ctl := m.ctl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return balanceDoneMsg{err: ctl.RefreshBalance(ctx)}
	}
}

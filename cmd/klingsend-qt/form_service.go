package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Klingon-tech/klingsend/internal/address"
	"github.com/Klingon-tech/klingsend/pkg/entry"
)

// fetchTimeout bounds a single balance fetch.
const fetchTimeout = 10 * time.Second

// fieldMirror is the amount field's sink. The frontend applies exactly the
// text pushed here, so typed input and the max action render through one
// path and a rejected edit can never reach the DOM field.
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

// FormService exposes the send form to the frontend. The amount input
// forwards every beforeinput event to ProposeEdit and renders only the
// text that committed.
type FormService struct {
	app *App
}

// ChainInfo identifies a selectable network.
type ChainInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssetInfo describes one selectable asset.
type AssetInfo struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals uint8  `json:"decimals"`
	Native   bool   `json:"native"`
}

// EditRequest mirrors one beforeinput event on the amount field. For
// insertions Current is the field text before the edit; for deletions it
// is the already reduced text.
type EditRequest struct {
	Current  string `json:"current"`
	Inserted string `json:"inserted"`
	Kind     string `json:"kind"` // "insert" or "delete"
}

// EditResult reports whether the edit committed and the text to render.
type EditResult struct {
	Accepted bool   `json:"accepted"`
	Text     string `json:"text"`
}

// MaxResult reports whether the max action filled the field.
type MaxResult struct {
	Filled bool   `json:"filled"`
	Text   string `json:"text"`
}

// FormState is everything the frontend renders.
type FormState struct {
	Chain        string `json:"chain"`
	Asset        string `json:"asset"`
	AssetName    string `json:"asset_name"`
	Decimals     uint8  `json:"decimals"`
	Address      string `json:"address"`
	AddressHint  string `json:"address_hint"` // non-empty when the address cannot belong to the chain
	Amount       string `json:"amount"`
	BalanceLabel string `json:"balance_label"`
	BalanceState string `json:"balance_state"` // "none", "pending" or "ready"
}

// AmountPreview shows the accepted amount in base units.
type AmountPreview struct {
	Valid bool   `json:"valid"`
	Units string `json:"units"`
	Denom string `json:"denom"`
}

// ── Pickers ──────────────────────────────────────────────────────────

// ListChains returns the registry's chains in declaration order.
func (f *FormService) ListChains() []ChainInfo {
	chains := f.app.reg.Chains()
	out := make([]ChainInfo, len(chains))
	for i, c := range chains {
		out[i] = ChainInfo{ID: c.ID, Name: c.Name}
	}
	return out
}

// ListAssets returns a chain's assets in declaration order.
func (f *FormService) ListAssets(chainID string) []AssetInfo {
	assets := f.app.reg.Assets(chainID)
	out := make([]AssetInfo, len(assets))
	for i, a := range assets {
		out[i] = AssetInfo{
			Symbol:   a.Symbol,
			Name:     a.Name,
			Decimals: a.Decimals,
			Native:   a.Native,
		}
	}
	return out
}

// ── Selection & address ──────────────────────────────────────────────

// SelectAsset switches the form to an asset and persists the choice. The
// field clears and the balance goes pending; the frontend follows up with
// RefreshBalance.
func (f *FormService) SelectAsset(chainID, symbol string) (*FormState, error) {
	if err := f.app.ctl.SelectAsset(chainID, symbol); err != nil {
		return nil, err
	}
	f.app.saveSettings()
	return f.State(), nil
}

// ClearSelection returns the form to its no-selection state.
func (f *FormService) ClearSelection() *FormState {
	f.app.ctl.ClearSelection()
	f.app.saveSettings()
	return f.State()
}

// SetAddress updates the funded address and persists it.
func (f *FormService) SetAddress(address string) *FormState {
	f.app.ctl.SetAddress(address)
	f.app.saveSettings()
	return f.State()
}

// ── Amount entry ─────────────────────────────────────────────────────

// ProposeEdit runs one edit through the guard. Rejection is not an error;
// the frontend re-renders Text either way and the field simply does not
// move on a veto.
func (f *FormService) ProposeEdit(req EditRequest) (*EditResult, error) {
	kind := entry.EditKind(req.Kind)
	if kind != entry.EditInsert && kind != entry.EditDelete {
		return nil, fmt.Errorf("unknown edit kind %q", req.Kind)
	}
	accepted := f.app.ctl.ProposeEdit(entry.EditProposal{
		Current:  req.Current,
		Inserted: req.Inserted,
		Kind:     kind,
	})
	return &EditResult{Accepted: accepted, Text: f.app.field.Value()}, nil
}

// UseMax fills the field with the largest transferable amount. Filled is
// false while no balance has resolved; the field text is unchanged then.
func (f *FormService) UseMax() *MaxResult {
	filled := f.app.ctl.UseMax()
	return &MaxResult{Filled: filled, Text: f.app.field.Value()}
}

// Preview parses the accepted text into base units at the selected asset's
// precision.
func (f *FormService) Preview() *AmountPreview {
	units, ok := f.app.ctl.Amount()
	if !ok {
		return &AmountPreview{}
	}
	p := &AmountPreview{Valid: true, Units: units.String()}
	if asset, ok := f.app.ctl.SelectedAsset(); ok {
		p.Denom = asset.Denom
	}
	return p
}

// ── State ────────────────────────────────────────────────────────────

// State returns the full render state of the form.
func (f *FormService) State() *FormState {
	ctl := f.app.ctl
	s := &FormState{
		Address:      ctl.Address(),
		Amount:       f.app.field.Value(),
		BalanceLabel: ctl.BalanceLabel(),
		BalanceState: ctl.BalanceState().String(),
	}
	if asset, ok := ctl.SelectedAsset(); ok {
		chainID, _, _ := ctl.Selection()
		s.Chain = chainID
		s.Asset = asset.Symbol
		s.AssetName = asset.Name
		s.Decimals = asset.Decimals
		s.AddressHint = f.addressHint(chainID, s.Address)
	}
	return s
}

// addressHint flags a committed address that cannot belong to the selected
// chain. Chains without an HRP in the registry skip the check.
func (f *FormService) addressHint(chainID, addr string) string {
	if addr == "" {
		return ""
	}
	chain, ok := f.app.reg.Chain(chainID)
	if !ok || chain.HRP == "" {
		return ""
	}
	if err := address.Check(addr, chain.HRP); err != nil {
		return fmt.Sprintf("not a %s address", chain.HRP)
	}
	return ""
}

// RefreshBalance fetches the balance for the current selection and returns
// the state once it resolves. Without a selection it returns the state
// unchanged.
func (f *FormService) RefreshBalance() (*FormState, error) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	if err := f.app.ctl.RefreshBalance(ctx); err != nil {
		return nil, err
	}
	return f.State(), nil
}

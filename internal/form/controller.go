// Package form wires the amount-entry rules to the rest of the transfer
// form: asset metadata, the balance source, and the shared field state.
// Hosts translate their input events into edit proposals and render from
// the controller's state; all acceptance rules live in pkg/entry.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"

	"github.com/Klingon-tech/klingsend/internal/balance"
	"github.com/Klingon-tech/klingsend/internal/log"
	"github.com/Klingon-tech/klingsend/internal/registry"
	"github.com/Klingon-tech/klingsend/pkg/amount"
	"github.com/Klingon-tech/klingsend/pkg/entry"
)

// ErrUnknownAsset is returned when a selection does not resolve in the
// metadata source.
var ErrUnknownAsset = errors.New("unknown asset")

// Metadata resolves an asset's decimals and identity for a selection.
type Metadata interface {
	Asset(chainID, symbol string) (registry.Asset, bool)
}

// Sink receives every committed amount, from typing and from the max action
// alike, so downstream consumers cannot tell the two apart.
type Sink interface {
	SetAmount(text string)
}

// Controller owns the amount field of the transfer form. Methods are safe
// for concurrent use; balance fetches resolve on their own goroutines. The
// Sink is always invoked outside the controller's lock.
type Controller struct {
	meta     Metadata
	balances balance.Provider
	sink     Sink

	mu       sync.Mutex
	chainID  string
	symbol   string
	asset    registry.Asset
	hasAsset bool
	address  string
	text     string
	view     entry.BalanceView
	fetchGen uint64
}

// New creates a controller over the given collaborators.
func New(meta Metadata, balances balance.Provider, sink Sink) *Controller {
	return &Controller{
		meta:     meta,
		balances: balances,
		sink:     sink,
		view:     entry.BalanceView{State: entry.BalanceNone, Units: sdkmath.ZeroInt()},
	}
}

// SelectAsset switches the form to the given asset. The field clears (the
// cleared value flows through the Sink like any other commit) and the
// balance goes pending until the next RefreshBalance resolves it.
func (c *Controller) SelectAsset(chainID, symbol string) error {
	asset, ok := c.meta.Asset(chainID, symbol)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownAsset, chainID, symbol)
	}

	c.mu.Lock()
	c.chainID = chainID
	c.symbol = symbol
	c.asset = asset
	c.hasAsset = true
	c.text = ""
	c.view = entry.BalanceView{State: entry.BalancePending, Units: sdkmath.ZeroInt()}
	c.fetchGen++
	c.mu.Unlock()

	log.Form.Debug().
		Str("chain", chainID).
		Str("asset", symbol).
		Uint8("decimals", asset.Decimals).
		Bool("native", asset.Native).
		Msg("asset selected")

	c.sink.SetAmount("")
	return nil
}

// ClearSelection returns the form to its initial no-selection state.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.chainID = ""
	c.symbol = ""
	c.asset = registry.Asset{}
	c.hasAsset = false
	c.text = ""
	c.view = entry.BalanceView{State: entry.BalanceNone, Units: sdkmath.ZeroInt()}
	c.fetchGen++
	c.mu.Unlock()

	log.Form.Debug().Msg("selection cleared")
	c.sink.SetAmount("")
}

// Selection returns the current chain and asset symbol.
func (c *Controller) Selection() (chainID, symbol string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chainID, c.symbol, c.hasAsset
}

// SelectedAsset returns the metadata of the current selection.
func (c *Controller) SelectedAsset() (registry.Asset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.asset, c.hasAsset
}

// SetAddress changes the wallet address balances are fetched for. A changed
// address invalidates any resolved balance.
func (c *Controller) SetAddress(addr string) {
	c.mu.Lock()
	if addr == c.address {
		c.mu.Unlock()
		return
	}
	c.address = addr
	if c.hasAsset {
		c.view = entry.BalanceView{State: entry.BalancePending, Units: sdkmath.ZeroInt()}
	}
	c.fetchGen++
	c.mu.Unlock()

	log.Form.Debug().Str("address", addr).Msg("address changed")
}

// Address returns the current wallet address.
func (c *Controller) Address() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.address
}

// Text returns the accepted field text.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// ProposeEdit runs the input guard over one edit. Accepted edits commit:
// the field text updates and the new value flows through the Sink. Vetoed
// edits change nothing and are only visible at debug level; the user sees
// the field simply not move.
func (c *Controller) ProposeEdit(p entry.EditProposal) bool {
	c.mu.Lock()
	var decimals uint8
	if c.hasAsset {
		decimals = c.asset.Decimals
	}
	if !entry.Allow(p, decimals) {
		c.mu.Unlock()
		log.Form.Debug().
			Str("current", p.Current).
			Str("inserted", p.Inserted).
			Str("kind", string(p.Kind)).
			Uint8("decimals", decimals).
			Msg("edit vetoed")
		return false
	}
	text := p.Proposed()
	c.text = text
	c.mu.Unlock()

	c.sink.SetAmount(text)
	return true
}

// UseMax fills the field with the largest transferable amount. It is a
// silent no-op unless an asset is selected and its balance has resolved;
// the caller learns whether anything happened from the return value. The
// filled value flows through the Sink exactly like typed input.
func (c *Controller) UseMax() bool {
	c.mu.Lock()
	if !c.hasAsset || c.view.State != entry.BalanceReady {
		state := c.view.State
		c.mu.Unlock()
		log.Form.Debug().Stringer("balance", state).Msg("max ignored, prerequisites missing")
		return false
	}
	text := entry.ComputeMax(c.view.Units, c.asset.Decimals, c.asset.Native, c.asset.Reserve)
	c.text = text
	c.mu.Unlock()

	log.Form.Debug().Str("amount", text).Msg("max applied")
	c.sink.SetAmount(text)
	return true
}

// BalanceLabel renders the balance line for the current state.
func (c *Controller) BalanceLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var decimals uint8
	if c.hasAsset {
		decimals = c.asset.Decimals
	}
	return entry.ResolveBalanceLabel(c.view, decimals)
}

// BalanceState exposes the tagged balance state for hosts that render a
// spinner or similar while pending.
func (c *Controller) BalanceState() entry.BalanceState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.State
}

// RefreshBalance fetches the balance for the current selection and applies
// it unless the selection or address changed while the fetch was in flight;
// stale results are dropped. Without a selection it does nothing. On fetch
// errors the balance stays pending.
func (c *Controller) RefreshBalance(ctx context.Context) error {
	c.mu.Lock()
	if !c.hasAsset {
		c.mu.Unlock()
		return nil
	}
	gen := c.fetchGen
	chainID := c.chainID
	address := c.address
	denom := c.asset.Denom
	c.view = entry.BalanceView{State: entry.BalancePending, Units: sdkmath.ZeroInt()}
	c.mu.Unlock()

	units, err := c.balances.Balance(ctx, chainID, address, denom)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetchGen != gen {
		log.Form.Debug().Str("denom", denom).Msg("stale balance dropped")
		return nil
	}
	if err != nil {
		log.Form.Warn().Err(err).Str("denom", denom).Msg("balance fetch failed")
		return err
	}
	c.view = entry.BalanceView{State: entry.BalanceReady, Units: units}
	log.Form.Debug().Str("denom", denom).Str("units", units.String()).Msg("balance resolved")
	return nil
}

// Amount parses the accepted field text into base units at the selected
// asset's precision. It reports false while the field is empty, holds a
// partial entry like a lone separator, or no asset is selected.
func (c *Controller) Amount() (sdkmath.Int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasAsset || c.text == "" {
		return sdkmath.ZeroInt(), false
	}
	units, err := amount.Parse(c.text, c.asset.Decimals)
	if err != nil {
		return sdkmath.ZeroInt(), false
	}
	return units, true
}

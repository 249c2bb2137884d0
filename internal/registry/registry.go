// Package registry holds the asset metadata the transfer form works from:
// which chains exist, which assets each chain carries, every asset's decimal
// precision, and the fee reserve withheld from the max action on a chain's
// native gas asset.
package registry

import (
	sdkmath "cosmossdk.io/math"
)

// Asset describes one transferable asset on a chain.
type Asset struct {
	Symbol   string // display ticker, unique within its chain
	Name     string
	Denom    string // base-unit denomination the balance source is keyed by
	Decimals uint8
	Native   bool        // the chain's gas asset
	Reserve  sdkmath.Int // fee reserve in base units; zero unless Native
}

// Chain groups the assets reachable on one network.
type Chain struct {
	ID     string
	Name   string
	HRP    string // bech32 prefix of the chain's addresses; empty disables address checks
	Assets []Asset
}

// Registry resolves chains and assets for the form. Listing order follows
// the order chains and assets were declared in, so UIs render stably.
type Registry struct {
	chains []Chain
	index  map[string]int
}

// New builds a Registry from the given chains, normalizing unset reserves
// to zero and validating the whole set.
func New(chains []Chain) (*Registry, error) {
	for ci := range chains {
		for ai := range chains[ci].Assets {
			if chains[ci].Assets[ai].Reserve.IsNil() {
				chains[ci].Assets[ai].Reserve = sdkmath.ZeroInt()
			}
		}
	}
	if err := Validate(chains); err != nil {
		return nil, err
	}

	r := &Registry{
		chains: chains,
		index:  make(map[string]int, len(chains)),
	}
	for i, c := range chains {
		r.index[c.ID] = i
	}
	return r, nil
}

// Chains returns all chains in declaration order.
func (r *Registry) Chains() []Chain {
	return r.chains
}

// Chain looks up a chain by ID.
func (r *Registry) Chain(id string) (Chain, bool) {
	i, ok := r.index[id]
	if !ok {
		return Chain{}, false
	}
	return r.chains[i], true
}

// Assets returns the assets of a chain in declaration order, or nil when
// the chain is unknown.
func (r *Registry) Assets(chainID string) []Asset {
	c, ok := r.Chain(chainID)
	if !ok {
		return nil
	}
	return c.Assets
}

// Asset looks up one asset by chain ID and symbol.
func (r *Registry) Asset(chainID, symbol string) (Asset, bool) {
	c, ok := r.Chain(chainID)
	if !ok {
		return Asset{}, false
	}
	for _, a := range c.Assets {
		if a.Symbol == symbol {
			return a, true
		}
	}
	return Asset{}, false
}

// Native returns a chain's gas asset. Validation guarantees exactly one
// exists per registered chain.
func (r *Registry) Native(chainID string) (Asset, bool) {
	c, ok := r.Chain(chainID)
	if !ok {
		return Asset{}, false
	}
	for _, a := range c.Assets {
		if a.Native {
			return a, true
		}
	}
	return Asset{}, false
}

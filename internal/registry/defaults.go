package registry

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// Built-in fee reserves, in base units of each chain's gas asset.
const (
	// 0.25 KGX at 12 decimals.
	mainnetReserve = 250_000_000_000
	// 1 TKGX at 12 decimals; testnet fees are spiky.
	testnetReserve = 1_000_000_000_000
)

// Default returns the built-in registry: the Klingon chains and the bridged
// assets the exchange supports out of the box. A registry file replaces
// this set entirely when configured.
func Default() *Registry {
	chains := []Chain{
		{
			ID:   "klingnet",
			Name: "Klingnet",
			HRP:  "kgx",
			Assets: []Asset{
				{
					Symbol:   "KGX",
					Name:     "Klingon",
					Denom:    "kgx",
					Decimals: 12,
					Native:   true,
					Reserve:  sdkmath.NewInt(mainnetReserve),
				},
				{
					Symbol:   "KBTC",
					Name:     "Klingon Bitcoin",
					Denom:    "kbtc",
					Decimals: 8,
				},
				{
					Symbol:   "KETH",
					Name:     "Klingon Ether",
					Denom:    "keth",
					Decimals: 18,
				},
				{
					Symbol:   "KUSD",
					Name:     "Klingon Dollar",
					Denom:    "kusd",
					Decimals: 6,
				},
				{
					Symbol:   "KPT",
					Name:     "Klingon Points",
					Denom:    "kpt",
					Decimals: 0,
				},
			},
		},
		{
			ID:   "klingnet-testnet",
			Name: "Klingnet Testnet",
			HRP:  "tkgx",
			Assets: []Asset{
				{
					Symbol:   "TKGX",
					Name:     "Testnet Klingon",
					Denom:    "tkgx",
					Decimals: 12,
					Native:   true,
					Reserve:  sdkmath.NewInt(testnetReserve),
				},
				{
					Symbol:   "TKUSD",
					Name:     "Testnet Klingon Dollar",
					Denom:    "tkusd",
					Decimals: 6,
				},
			},
		},
	}

	r, err := New(chains)
	if err != nil {
		panic(fmt.Sprintf("built-in registry invalid: %v", err))
	}
	return r
}

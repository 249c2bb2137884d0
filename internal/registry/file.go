package registry

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Klingon-tech/klingsend/internal/log"
	"github.com/Klingon-tech/klingsend/pkg/amount"
)

// ErrBadReserve marks a reserve field that is not a base-unit integer string.
var ErrBadReserve = errors.New("invalid reserve amount")

// Registry file layout:
//
//	chains:
//	  - id: klingnet
//	    name: Klingnet
//	    hrp: kgx
//	    assets:
//	      - symbol: KGX
//	        name: Klingon
//	        denom: kgx
//	        decimals: 12
//	        native: true
//	        reserve: "250000000000"
//
// Reserve is a base-unit integer string so precision never depends on the
// YAML number parser. hrp is optional; without it the hosts skip address
// checking for the chain.
type fileRegistry struct {
	Chains []fileChain `yaml:"chains"`
}

type fileChain struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	HRP    string      `yaml:"hrp"`
	Assets []fileAsset `yaml:"assets"`
}

type fileAsset struct {
	Symbol   string `yaml:"symbol"`
	Name     string `yaml:"name"`
	Denom    string `yaml:"denom"`
	Decimals uint8  `yaml:"decimals"`
	Native   bool   `yaml:"native"`
	Reserve  string `yaml:"reserve"`
}

// LoadFile reads a registry file. A configured file replaces the built-in
// set entirely; there is no merging.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry file: %w", err)
	}
	r, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("registry file %s: %w", path, err)
	}
	log.Registry.Debug().Str("path", path).Int("chains", len(r.Chains())).Msg("registry loaded")
	return r, nil
}

// Load parses YAML registry data and validates it.
func Load(data []byte) (*Registry, error) {
	var fr fileRegistry
	if err := yaml.Unmarshal(data, &fr); err != nil {
		return nil, fmt.Errorf("registry parse: %w", err)
	}

	chains := make([]Chain, 0, len(fr.Chains))
	for _, fc := range fr.Chains {
		c := Chain{ID: fc.ID, Name: fc.Name, HRP: fc.HRP}
		for _, fa := range fc.Assets {
			a := Asset{
				Symbol:   fa.Symbol,
				Name:     fa.Name,
				Denom:    fa.Denom,
				Decimals: fa.Decimals,
				Native:   fa.Native,
			}
			if fa.Reserve != "" {
				units, err := amount.ParseUnits(fa.Reserve)
				if err != nil {
					return nil, fmt.Errorf("%w: asset %s: %v", ErrBadReserve, fa.Symbol, err)
				}
				a.Reserve = units
			}
			c.Assets = append(c.Assets, a)
		}
		chains = append(chains, c)
	}

	return New(chains)
}

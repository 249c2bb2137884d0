package balance

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Klingon-tech/klingsend/internal/log"
	"github.com/Klingon-tech/klingsend/pkg/amount"
)

// ErrBadFixture marks a fixture entry whose units field is not a base-unit
// integer string.
var ErrBadFixture = errors.New("invalid balance fixture")

// Fixture file layout:
//
//	balances:
//	  - chain: klingnet
//	    address: kgx1qy352eufqy352eu
//	    denom: kgx
//	    units: "25000000000000"
//
// Units are base-unit integer strings, same rule as registry reserves.
type fixtureFile struct {
	Balances []fixtureEntry `yaml:"balances"`
}

type fixtureEntry struct {
	Chain   string `yaml:"chain"`
	Address string `yaml:"address"`
	Denom   string `yaml:"denom"`
	Units   string `yaml:"units"`
}

// LoadFixtures reads a YAML fixture file into a fresh MemoryProvider.
func LoadFixtures(path string) (*MemoryProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("balance fixtures: %w", err)
	}
	p, err := ParseFixtures(data)
	if err != nil {
		return nil, fmt.Errorf("balance fixtures %s: %w", path, err)
	}
	log.Balance.Debug().Str("path", path).Int("balances", len(p.balances)).Msg("fixtures loaded")
	return p, nil
}

// ParseFixtures parses YAML fixture data into a fresh MemoryProvider.
func ParseFixtures(data []byte) (*MemoryProvider, error) {
	var ff fixtureFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("fixture parse: %w", err)
	}

	p := NewMemory()
	for i, e := range ff.Balances {
		if e.Chain == "" || e.Address == "" || e.Denom == "" {
			return nil, fmt.Errorf("%w: entry %d is missing chain, address, or denom", ErrBadFixture, i)
		}
		units, err := amount.ParseUnits(e.Units)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrBadFixture, i, err)
		}
		p.Set(e.Chain, e.Address, e.Denom, units)
	}
	return p, nil
}

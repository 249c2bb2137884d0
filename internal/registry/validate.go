package registry

import (
	"errors"
	"fmt"
)

// MaxDecimals bounds the precision any registered asset may declare.
const MaxDecimals = 30

// Registry validation errors.
var (
	ErrNoChains         = errors.New("registry has no chains")
	ErrEmptyChainID     = errors.New("chain ID is empty")
	ErrBadChainID       = errors.New("chain ID must be lowercase alphanumeric with dashes")
	ErrBadHRP           = errors.New("chain HRP must be 1-8 lowercase letters")
	ErrDuplicateChain   = errors.New("duplicate chain ID")
	ErrNoAssets         = errors.New("chain has no assets")
	ErrBadSymbol        = errors.New("asset symbol must be 1-12 uppercase letters or digits")
	ErrBadDenom         = errors.New("asset denom must be 1-64 lowercase letters, digits, or -/._")
	ErrDuplicateSymbol  = errors.New("duplicate asset symbol")
	ErrDuplicateDenom   = errors.New("duplicate asset denom")
	ErrDecimalsRange    = errors.New("decimals out of range")
	ErrNoNative         = errors.New("chain has no native asset")
	ErrMultipleNative   = errors.New("chain has multiple native assets")
	ErrReserveNonNative = errors.New("reserve set on non-native asset")
	ErrReserveNegative  = errors.New("negative reserve")
)

// Validate checks a chain set for the mistakes a hand-edited registry file
// can contain. Reserves must already be normalized (non-nil).
func Validate(chains []Chain) error {
	if len(chains) == 0 {
		return ErrNoChains
	}

	seenChains := make(map[string]struct{}, len(chains))
	for _, c := range chains {
		if c.ID == "" {
			return ErrEmptyChainID
		}
		if !validChainID(c.ID) {
			return fmt.Errorf("%w: %q", ErrBadChainID, c.ID)
		}
		if c.HRP != "" && !validHRP(c.HRP) {
			return fmt.Errorf("%w: %q", ErrBadHRP, c.HRP)
		}
		if _, ok := seenChains[c.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateChain, c.ID)
		}
		seenChains[c.ID] = struct{}{}

		if err := validateAssets(c); err != nil {
			return fmt.Errorf("chain %q: %w", c.ID, err)
		}
	}
	return nil
}

func validateAssets(c Chain) error {
	if len(c.Assets) == 0 {
		return ErrNoAssets
	}

	natives := 0
	seenSymbols := make(map[string]struct{}, len(c.Assets))
	seenDenoms := make(map[string]struct{}, len(c.Assets))
	for _, a := range c.Assets {
		if !validSymbol(a.Symbol) {
			return fmt.Errorf("%w: %q", ErrBadSymbol, a.Symbol)
		}
		if !validDenom(a.Denom) {
			return fmt.Errorf("%w: %q", ErrBadDenom, a.Denom)
		}
		if _, ok := seenSymbols[a.Symbol]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateSymbol, a.Symbol)
		}
		seenSymbols[a.Symbol] = struct{}{}
		if _, ok := seenDenoms[a.Denom]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateDenom, a.Denom)
		}
		seenDenoms[a.Denom] = struct{}{}

		if a.Decimals > MaxDecimals {
			return fmt.Errorf("%w: %s has %d, max %d", ErrDecimalsRange, a.Symbol, a.Decimals, MaxDecimals)
		}
		if a.Reserve.IsNegative() {
			return fmt.Errorf("%w: %s", ErrReserveNegative, a.Symbol)
		}
		if a.Native {
			natives++
		} else if !a.Reserve.IsZero() {
			return fmt.Errorf("%w: %s", ErrReserveNonNative, a.Symbol)
		}
	}

	if natives == 0 {
		return ErrNoNative
	}
	if natives > 1 {
		return ErrMultipleNative
	}
	return nil
}

func validChainID(s string) bool {
	if len(s) == 0 || len(s) > 32 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		ok := c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-'
		if !ok {
			return false
		}
	}
	return true
}

func validHRP(s string) bool {
	if len(s) == 0 || len(s) > 8 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func validSymbol(s string) bool {
	if len(s) == 0 || len(s) > 12 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		ok := c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
		if !ok {
			return false
		}
	}
	return true
}

func validDenom(s string) bool {
	if len(s) == 0 || len(s) > 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		ok := c >= 'a' && c <= 'z' || c >= '0' && c <= '9' ||
			c == '-' || c == '/' || c == '.' || c == '_'
		if !ok {
			return false
		}
	}
	return true
}

// Package amount converts between integer base-unit amounts and the decimal
// strings shown in the transfer form. All arithmetic is exact integer math;
// nothing here rounds.
package amount

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// Separators holds the fractional separator characters accepted in display
// amounts. Both mean the same thing; a well-formed amount contains at most
// one character from the class.
const Separators = ".,"

// Amount parsing errors.
var (
	ErrEmpty      = errors.New("empty amount")
	ErrNegative   = errors.New("negative amount")
	ErrMalformed  = errors.New("malformed amount")
	ErrTooPrecise = errors.New("too many fractional digits")
	ErrOverflow   = errors.New("amount overflow")
)

// IsSeparator reports whether b belongs to the separator class.
func IsSeparator(b byte) bool {
	return b == '.' || b == ','
}

// SeparatorIndex returns the index of the first separator in s, or -1 when
// s contains none.
func SeparatorIndex(s string) int {
	return strings.IndexAny(s, Separators)
}

// FractionLength returns the number of characters after the first separator
// in s, or 0 when s has no separator. It counts whatever is there, valid
// digits or not; shape validation is the caller's concern.
func FractionLength(s string) int {
	i := SeparatorIndex(s)
	if i < 0 {
		return 0
	}
	return len(s) - i - 1
}

// pow10 returns 10^decimals.
func pow10(decimals uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}

// Format converts units (base units, non-negative) to a decimal string at
// the given precision: the decimal point shifts left by decimals places,
// the fraction is zero-padded to decimals digits, trailing fraction zeros
// are trimmed, and a zero fraction drops the separator entirely. Output
// always uses "." as the separator.
func Format(units sdkmath.Int, decimals uint8) string {
	if decimals == 0 {
		return units.String()
	}

	whole, frac := new(big.Int).QuoRem(units.BigInt(), pow10(decimals), new(big.Int))

	if frac.Sign() == 0 {
		return whole.String()
	}

	fracStr := fmt.Sprintf("%0*d", int(decimals), frac)
	for len(fracStr) > 0 && fracStr[len(fracStr)-1] == '0' {
		fracStr = fracStr[:len(fracStr)-1]
	}

	return whole.String() + "." + fracStr
}

// Parse converts a decimal string to base units at the given precision.
// Either separator is accepted, but only one may appear. The fractional
// part must not exceed decimals digits; Parse rejects rather than truncates,
// so Format and Parse are exact inverses. A bare separator with digits on
// one side ("1." or ".5") is fine; a lone separator is not.
func Parse(s string, decimals uint8) (sdkmath.Int, error) {
	if s == "" {
		return sdkmath.ZeroInt(), ErrEmpty
	}
	if strings.HasPrefix(s, "-") {
		return sdkmath.ZeroInt(), ErrNegative
	}

	var wholeStr, fracStr string
	if sep := SeparatorIndex(s); sep < 0 {
		wholeStr = s
	} else {
		wholeStr = s[:sep]
		fracStr = s[sep+1:]
		if SeparatorIndex(fracStr) >= 0 {
			return sdkmath.ZeroInt(), fmt.Errorf("%w: multiple separators in %q", ErrMalformed, s)
		}
	}
	if wholeStr == "" && fracStr == "" {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: %q", ErrMalformed, s)
	}

	for i := 0; i < len(wholeStr); i++ {
		if wholeStr[i] < '0' || wholeStr[i] > '9' {
			return sdkmath.ZeroInt(), fmt.Errorf("%w: invalid character %q in %q", ErrMalformed, wholeStr[i], s)
		}
	}
	for i := 0; i < len(fracStr); i++ {
		if fracStr[i] < '0' || fracStr[i] > '9' {
			return sdkmath.ZeroInt(), fmt.Errorf("%w: invalid character %q in %q", ErrMalformed, fracStr[i], s)
		}
	}

	if len(fracStr) > int(decimals) {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: %d digits, max %d", ErrTooPrecise, len(fracStr), decimals)
	}
	fracStr += strings.Repeat("0", int(decimals)-len(fracStr))

	// Base 10 explicitly: padded strings like "050" must never be read as
	// octal.
	combined := wholeStr + fracStr
	bi, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	if bi.BitLen() > sdkmath.MaxBitLen {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	return sdkmath.NewIntFromBigInt(bi), nil
}

// ParseUnits reads a base-unit integer string: digits only, base 10, no
// separator. Balances and fee reserves arrive in this form. Leading zeros
// are allowed and never read as octal.
func ParseUnits(s string) (sdkmath.Int, error) {
	if s == "" {
		return sdkmath.ZeroInt(), ErrEmpty
	}
	if strings.HasPrefix(s, "-") {
		return sdkmath.ZeroInt(), ErrNegative
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return sdkmath.ZeroInt(), fmt.Errorf("%w: invalid character %q in %q", ErrMalformed, s[i], s)
		}
	}

	bi, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	if bi.BitLen() > sdkmath.MaxBitLen {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	return sdkmath.NewIntFromBigInt(bi), nil
}

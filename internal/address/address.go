// Package address checks typed wallet addresses against the bech32 form
// Klingon chains use. The form never derives or stores keys; it only needs
// to tell the user when the address they typed cannot belong to the chain
// whose balance they are looking at.
package address

import (
	"errors"
	"fmt"
)

// PayloadSize is the length of the key-hash payload inside an address.
const PayloadSize = 20

// Address check errors.
var (
	ErrEmpty      = errors.New("empty address")
	ErrNotBech32  = errors.New("not a bech32 address")
	ErrBadPayload = errors.New("wrong payload length")
	ErrWrongChain = errors.New("address belongs to a different chain")
)

// Check reports whether addr is a well-formed address for the chain with
// the given bech32 prefix. An empty hrp skips the prefix comparison, so a
// registry chain without one still gets shape and checksum checking.
func Check(addr, hrp string) error {
	if addr == "" {
		return ErrEmpty
	}
	got, payload, err := bech32Decode(addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotBech32, err)
	}
	if len(payload) != PayloadSize {
		return fmt.Errorf("%w: %d bytes, want %d", ErrBadPayload, len(payload), PayloadSize)
	}
	if hrp != "" && got != hrp {
		return fmt.Errorf("%w: prefix %q, want %q", ErrWrongChain, got, hrp)
	}
	return nil
}

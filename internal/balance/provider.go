// Package balance supplies raw balances to the transfer form. The form only
// depends on the Provider interface; this package ships map-backed
// implementations for demos and tests, since real chain queries are the
// host application's business.
package balance

import (
	"context"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
)

// Provider yields the raw base-unit balance of one asset for one address.
// An address that never held the asset has a zero balance, not an error.
// The call blocks; callers run it from their own goroutine or command and
// cancel via ctx.
type Provider interface {
	Balance(ctx context.Context, chainID, address, denom string) (sdkmath.Int, error)
}

// MemoryProvider keeps balances in a map. The optional latency simulates a
// remote fetch so the form's pending state is actually visible; the
// optional error lets tests exercise failure paths.
type MemoryProvider struct {
	mu       sync.Mutex
	balances map[string]sdkmath.Int
	latency  time.Duration
	err      error
}

// NewMemory creates an empty in-memory balance provider.
func NewMemory() *MemoryProvider {
	return &MemoryProvider{
		balances: make(map[string]sdkmath.Int),
	}
}

// SetLatency makes each Balance call wait before answering.
func (m *MemoryProvider) SetLatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency = d
}

// SetError makes every Balance call fail with err until cleared with nil.
func (m *MemoryProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Set stores the balance for a chain/address/denom combination.
func (m *MemoryProvider) Set(chainID, address, denom string, units sdkmath.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[key(chainID, address, denom)] = units
}

// Balance implements Provider. Unknown combinations answer zero.
func (m *MemoryProvider) Balance(ctx context.Context, chainID, address, denom string) (sdkmath.Int, error) {
	m.mu.Lock()
	latency := m.latency
	injected := m.err
	units, ok := m.balances[key(chainID, address, denom)]
	m.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return sdkmath.ZeroInt(), ctx.Err()
		}
	}

	if injected != nil {
		return sdkmath.ZeroInt(), injected
	}
	if !ok {
		return sdkmath.ZeroInt(), nil
	}
	return units, nil
}

func key(chainID, address, denom string) string {
	return chainID + "/" + address + "/" + denom
}

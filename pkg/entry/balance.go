package entry

import (
	sdkmath "cosmossdk.io/math"

	"github.com/Klingon-tech/klingsend/pkg/amount"
)

// BalanceState tags the presence of a usable balance so every consumer has
// to handle all three cases explicitly.
type BalanceState uint8

const (
	// BalanceNone means no asset or chain is selected.
	BalanceNone BalanceState = iota
	// BalancePending means the selection is known but the balance has not
	// resolved yet.
	BalancePending
	// BalanceReady means Units holds the fetched balance.
	BalanceReady
)

// String returns a human-readable name for the balance state.
func (s BalanceState) String() string {
	switch s {
	case BalanceNone:
		return "none"
	case BalancePending:
		return "pending"
	case BalanceReady:
		return "ready"
	default:
		return "unknown"
	}
}

// BalanceView is a tagged balance. Units is meaningful only when State is
// BalanceReady.
type BalanceView struct {
	State BalanceState
	Units sdkmath.Int
}

// PendingLabel is shown while a known selection waits for its balance.
const PendingLabel = "..."

// ResolveBalanceLabel renders the balance line of the form: "0" before any
// selection, PendingLabel while the balance is unresolved, and the
// formatted balance once it is known. No reserve is subtracted here; the
// label shows what the user holds, not what ComputeMax would fill in.
func ResolveBalanceLabel(v BalanceView, decimals uint8) string {
	switch v.State {
	case BalanceReady:
		return amount.Format(v.Units, decimals)
	case BalancePending:
		return PendingLabel
	default:
		return "0"
	}
}

package entry

import (
	sdkmath "cosmossdk.io/math"

	"github.com/Klingon-tech/klingsend/pkg/amount"
)

// ComputeMax returns the largest transferable amount as a decimal string.
// For the chain's native gas asset (nativeReserved) a fixed reserve of base
// units is withheld so the user can still pay fees, but only when the
// balance actually exceeds the reserve; otherwise the full balance is used
// and the result is never negative. Conversion follows amount.Format
// exactly, so writing the result back into the field loses nothing.
//
// Callers must know balance, decimals, and the asset identity before
// calling; the form controller is the gate that enforces this.
func ComputeMax(balance sdkmath.Int, decimals uint8, nativeReserved bool, reserve sdkmath.Int) string {
	usable := balance
	if nativeReserved && balance.GT(reserve) {
		usable = balance.Sub(reserve)
	}
	return amount.Format(usable, decimals)
}

package paper

import "math"

// FeeAmount converts a notional and a fee percentage into an absolute fee.
// No rounding is applied; display layers round. Non-finite inputs are
// rejected so NaN can never reach the account balance.
func FeeAmount(notional, feePct float64) (float64, error) {
	if !isFinite(notional) || !isFinite(feePct) {
		return 0, ErrInvalidInput
	}
	return (feePct / 100.0) * notional, nil
}

// RawPnL is the gross profit of a long position closed at exit.
func RawPnL(entry, exit, size float64) float64 {
	return (exit - entry) * size
}

// PnLAfterFee deducts the absolute fee from a gross profit.
func PnLAfterFee(raw, fee float64) float64 {
	return raw - fee
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

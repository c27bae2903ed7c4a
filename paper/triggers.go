package paper

// evaluate decides whether the incoming price closes an open position.
// Stop-loss is checked before take-profit: when a price gap crosses both
// thresholds in the same tick the position closes as a StopLoss. That
// ordering is a fixed policy, not an accident of evaluation order.
func evaluate(p Position, price float64) (CloseReason, bool) {
	switch {
	case price <= p.StopLoss:
		return ReasonStopLoss, true
	case price >= p.TakeProfit:
		return ReasonTakeProfit, true
	}
	return "", false
}

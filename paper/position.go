package paper

// CloseReason explains why a position left the book.
type CloseReason string

const (
	ReasonStopLoss   CloseReason = "StopLoss"
	ReasonTakeProfit CloseReason = "TakeProfit"
	ReasonManual     CloseReason = "ManualClose"
)

// Position is one open long paper trade. StopLoss and TakeProfit are
// absolute prices computed once at open time and never adjusted. Size is
// derived as Notional / EntryPrice at open and never recomputed.
type Position struct {
	Pair       string  `json:"pair"`
	EntryPrice float64 `json:"entry_price"`
	Size       float64 `json:"size"`
	OpenTS     int64   `json:"open_ts"`
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`
	FeePct     float64 `json:"fee_pct"`
	Notional   float64 `json:"notional"`
}

// ClosedTrade is the realized result of a close, manual or automatic.
type ClosedTrade struct {
	TradeID    string      `json:"trade_id"`
	Pair       string      `json:"pair"`
	EntryPrice float64     `json:"entry_price"`
	ExitPrice  float64     `json:"exit_price"`
	Size       float64     `json:"size"`
	Notional   float64     `json:"notional"`
	Fee        float64     `json:"fee"`
	PnL        float64     `json:"pnl"` // net of fee
	Reason     CloseReason `json:"reason"`
	OpenTS     int64       `json:"open_ts"`
	CloseTS    int64       `json:"close_ts"`
}

package journal

import "time"

// TradeRecord is one realized paper trade.
type TradeRecord struct {
	TradeID    string
	Pair       string
	Size       float64
	Notional   float64
	EntryPrice float64
	ExitPrice  float64
	Fee        float64
	NetPnL     float64
	OpenTime   time.Time
	CloseTime  time.Time
	Reason     string
}

// EquitySample is the account balance observed at an open/close boundary.
type EquitySample struct {
	Time    time.Time
	Balance float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySample) error
	Close() error
}

package journal

// Nop discards all records. Useful when journaling is disabled.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error   { return nil }
func (Nop) RecordEquity(EquitySample) error { return nil }
func (Nop) Close() error                    { return nil }

package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSQLiteJournalTradeRoundTrip(t *testing.T) {
	t.Parallel()

	j := newSQLite(t)

	rec := TradeRecord{
		TradeID:    "01HX0000000000000000000001",
		Pair:       "BTC/EUR",
		Size:       0.002,
		Notional:   100,
		EntryPrice: 50000,
		ExitPrice:  48500,
		Fee:        0.1,
		NetPnL:     -3.1,
		OpenTime:   time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		CloseTime:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Reason:     "StopLoss",
	}
	require.NoError(t, j.RecordTrade(rec))

	got, err := j.GetTrade(rec.TradeID)
	require.NoError(t, err)
	assert.Equal(t, rec.Pair, got.Pair)
	assert.InDelta(t, rec.NetPnL, got.NetPnL, 1e-9)
	assert.Equal(t, rec.Reason, got.Reason)
	assert.True(t, got.CloseTime.Equal(rec.CloseTime))
}

func TestSQLiteJournalGetTradeMissing(t *testing.T) {
	t.Parallel()

	j := newSQLite(t)
	_, err := j.GetTrade("nope")
	assert.Error(t, err)
}

func TestSQLiteJournalListTrades(t *testing.T) {
	t.Parallel()

	j := newSQLite(t)

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, j.RecordTrade(TradeRecord{
			TradeID:   string(rune('A' + i)),
			Pair:      "BTC/EUR",
			OpenTime:  base,
			CloseTime: base.Add(time.Duration(i) * time.Hour),
			Reason:    "ManualClose",
		}))
	}

	got, err := j.ListTrades(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first.
	assert.Equal(t, "C", got[0].TradeID)
	assert.Equal(t, "B", got[1].TradeID)
}

func TestSQLiteJournalEquityBetween(t *testing.T) {
	t.Parallel()

	j := newSQLite(t)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, j.RecordEquity(EquitySample{
			Time:    base.Add(time.Duration(i) * time.Hour),
			Balance: 1000 + float64(i),
		}))
	}

	got, err := j.ListEquityBetween(base.Add(1*time.Hour), base.Add(4*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1001.0, got[0].Balance)
	assert.Equal(t, 1003.0, got[2].Balance)
}

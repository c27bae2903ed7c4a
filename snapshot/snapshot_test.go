package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TradeAdvisor/whale-radar-main/paper"
)

func testAccount() paper.AccountState {
	acct := paper.NewAccountState(10000, time.Unix(1700000000, 0))
	acct.Balance = 10004.9
	acct.Positions["BTC/EUR"] = paper.Position{
		Pair:       "BTC/EUR",
		EntryPrice: 50000,
		Size:       0.002,
		OpenTS:     1700000100,
		StopLoss:   49000,
		TakeProfit: 52500,
		FeePct:     0.1,
		Notional:   100,
	}
	acct.EquityCurve = append(acct.EquityCurve, paper.EquityPoint{TS: 1700000200, Equity: 10004.9})
	return acct.Clone()
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manual_trades.json")
	require.NoError(t, Save(path, testAccount()))

	acct, err := Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, 10000.0, acct.InitialBalance)
	assert.Equal(t, 10004.9, acct.Balance)
	require.Contains(t, acct.Positions, "BTC/EUR")
	pos := acct.Positions["BTC/EUR"]
	assert.Equal(t, 0.1, pos.FeePct)
	assert.Equal(t, 100.0, pos.Notional)
	require.Len(t, acct.EquityCurve, 2)
	assert.Equal(t, paper.EquityPoint{TS: 1700000200, Equity: 10004.9}, acct.EquityCurve[1])
}

func TestSaveWritesTupleEquityCurve(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manual_trades.json")
	require.NoError(t, Save(path, testAccount()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw struct {
		EquityCurve []json.RawMessage `json:"equity_curve"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw.EquityCurve, 2)
	assert.JSONEq(t, `[1700000000, 10000]`, string(raw.EquityCurve[0]))
}

const legacySnapshot = `{
  "initial_balance": 10000,
  "balance": 10000,
  "trades": {
    "BTC/EUR": {
      "pair": "BTC/EUR",
      "entry_price": 50000,
      "size": 0.002,
      "open_ts": 1700000100,
      "stop_loss": 49000,
      "take_profit": 52500
    }
  },
  "equity_curve": [[1700000000, 10000]]
}`

func TestLoadRejectsLegacySnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manual_trades.json")
	require.NoError(t, os.WriteFile(path, []byte(legacySnapshot), 0644))

	_, err := Load(path, false)
	assert.ErrorIs(t, err, ErrLegacySnapshot)
}

func TestLoadMigratesLegacySnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manual_trades.json")
	require.NoError(t, os.WriteFile(path, []byte(legacySnapshot), 0644))

	acct, err := Load(path, true)
	require.NoError(t, err)

	pos := acct.Positions["BTC/EUR"]
	assert.Equal(t, 0.1, pos.FeePct)
	assert.InDelta(t, 100.0, pos.Notional, 1e-9) // entry_price * size
}

func TestLoadMissingFileReportsNotExist(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"), false)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manual_trades.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := Load(path, false)
	assert.Error(t, err)
}

func TestSaveReplacesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manual_trades.json")
	require.NoError(t, Save(path, testAccount()))

	updated := testAccount()
	updated.Balance = 9999
	require.NoError(t, Save(path, updated))

	acct, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, 9999.0, acct.Balance)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

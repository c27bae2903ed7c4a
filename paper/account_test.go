package paper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquityPointTupleEncoding(t *testing.T) {
	t.Parallel()

	p := EquityPoint{TS: 1700000000, Equity: 1004.9}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `[1700000000, 1004.9]`, string(data))

	var back EquityPoint
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p, back)
}

func TestEquityPointRejectsMalformedTuple(t *testing.T) {
	t.Parallel()

	var p EquityPoint
	assert.Error(t, json.Unmarshal([]byte(`{"ts": 1}`), &p))
}

func TestNewAccountStateSeedsEquityCurve(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0)
	a := NewAccountState(10000, now)

	assert.Equal(t, 10000.0, a.InitialBalance)
	assert.Equal(t, 10000.0, a.Balance)
	assert.Empty(t, a.Positions)
	require.Len(t, a.EquityCurve, 1)
	assert.Equal(t, EquityPoint{TS: now.Unix(), Equity: 10000}, a.EquityCurve[0])
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	a := NewAccountState(1000, time.Unix(1700000000, 0))
	a.Positions["BTC/EUR"] = Position{Pair: "BTC/EUR", EntryPrice: 50000, Size: 0.002}

	cp := a.Clone()

	a.Balance = 1
	a.Positions["ETH/EUR"] = Position{Pair: "ETH/EUR"}
	a.EquityCurve = append(a.EquityCurve, EquityPoint{TS: 2, Equity: 2})

	assert.Equal(t, 1000.0, cp.Balance)
	assert.Len(t, cp.Positions, 1)
	assert.Len(t, cp.EquityCurve, 1)
}

package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickStoreSetGet(t *testing.T) {
	t.Parallel()

	s := NewTickStore()

	_, err := s.Get("BTC/EUR")
	assert.ErrorIs(t, err, ErrNoPrice)

	now := time.Now()
	s.Set(Tick{Pair: "BTC/EUR", Last: 50000, Time: now})
	s.Set(Tick{Pair: "BTC/EUR", Last: 50100, Time: now.Add(time.Second)})

	tick, err := s.Get("BTC/EUR")
	assert.NoError(t, err)
	assert.Equal(t, 50100.0, tick.Last)

	assert.ElementsMatch(t, []string{"BTC/EUR"}, s.Pairs())
}

func TestNormalizePair(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"XBT/EUR":  "BTC/EUR",
		"XETH/USD": "ETH/USD",
		"XDG/EUR":  "DOGE/EUR",
		"SOL/EUR":  "SOL/EUR",
		"weird":    "weird",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePair(in), in)
	}
}

package paper

import (
	"encoding/json"
	"fmt"
	"time"
)

// EquityPoint is one sample of the account balance. It serializes as a
// [timestamp, equity] tuple to stay wire-compatible with existing
// equity-curve files.
type EquityPoint struct {
	TS     int64
	Equity float64
}

func (p EquityPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{float64(p.TS), p.Equity})
}

func (p *EquityPoint) UnmarshalJSON(data []byte) error {
	var tuple [2]float64
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("equity point: %w", err)
	}
	p.TS = int64(tuple[0])
	p.Equity = tuple[1]
	return nil
}

// AccountState is the aggregate the engine owns: balance, the open-position
// book keyed by pair, and the equity history. It is created once at startup
// (loaded from a snapshot or defaulted) and only ever mutated under the
// engine's lock.
type AccountState struct {
	InitialBalance float64
	Balance        float64
	Positions      map[string]Position
	EquityCurve    []EquityPoint
}

// NewAccountState returns a fresh account seeded with a single equity point
// at the starting balance.
func NewAccountState(initialBalance float64, now time.Time) *AccountState {
	return &AccountState{
		InitialBalance: initialBalance,
		Balance:        initialBalance,
		Positions:      make(map[string]Position),
		EquityCurve:    []EquityPoint{{TS: now.Unix(), Equity: initialBalance}},
	}
}

// Clone returns a deep copy safe to hand to readers and the persistence
// writer while the original keeps mutating.
func (a *AccountState) Clone() AccountState {
	cp := AccountState{
		InitialBalance: a.InitialBalance,
		Balance:        a.Balance,
		Positions:      make(map[string]Position, len(a.Positions)),
		EquityCurve:    make([]EquityPoint, len(a.EquityCurve)),
	}
	for pair, pos := range a.Positions {
		cp.Positions[pair] = pos
	}
	copy(cp.EquityCurve, a.EquityCurve)
	return cp
}

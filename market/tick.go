package market

import (
	"errors"
	"sync"
	"time"
)

// Tick is the latest observed trade price for an instrument. Paper fills
// happen at Last; there is no bid/ask spread in this simulator.
type Tick struct {
	Pair string
	Last float64
	Time time.Time
}

var ErrNoPrice = errors.New("no price for instrument")

// TickStore keeps the most recent Tick per instrument.
type TickStore struct {
	mu    sync.RWMutex
	ticks map[string]Tick
}

func NewTickStore() *TickStore {
	return &TickStore{ticks: make(map[string]Tick)}
}

func (s *TickStore) Set(t Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks[t.Pair] = t
}

func (s *TickStore) Get(pair string) (Tick, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.ticks[pair]
	if !ok {
		return Tick{}, ErrNoPrice
	}
	return t, nil
}

// Pairs returns the instruments that have at least one observed tick.
func (s *TickStore) Pairs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pairs := make([]string, 0, len(s.ticks))
	for p := range s.ticks {
		pairs = append(pairs, p)
	}
	return pairs
}

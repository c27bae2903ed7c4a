package paper

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TradeAdvisor/whale-radar-main/journal"
	"github.com/TradeAdvisor/whale-radar-main/market"
	"github.com/TradeAdvisor/whale-radar-main/pkg/id"
)

// SnapshotWriter persists account snapshots without blocking the caller.
// Implementations must apply scheduled snapshots in order. The engine
// schedules while holding its mutex, so calls arrive serialized and in
// mutation order.
type SnapshotWriter interface {
	Schedule(AccountState)
}

// Engine owns the account aggregate and is its single writer. Manual
// open/close requests and price ticks from the feed all serialize through
// its mutex, so a manual close and a stop trigger can never both close the
// same position: the existence check and the removal share one critical
// section.
type Engine struct {
	mu    sync.Mutex
	acct  *AccountState
	ticks *market.TickStore

	journal journal.Journal
	store   SnapshotWriter
	log     *logrus.Entry

	now func() time.Time
}

func NewEngine(acct *AccountState, j journal.Journal, w SnapshotWriter, log *logrus.Logger) *Engine {
	return &Engine{
		acct:    acct,
		ticks:   market.NewTickStore(),
		journal: j,
		store:   w,
		log:     log.WithField("component", "paper"),
		now:     time.Now,
	}
}

// Prices exposes the latest-tick store for read-only display paths.
func (e *Engine) Prices() *market.TickStore {
	return e.ticks
}

// Snapshot returns a deep copy of the account. Readers observe either the
// pre-close or post-close state of any concurrent operation, never a
// partial one.
func (e *Engine) Snapshot() AccountState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.acct.Clone()
}

// Open creates a long position for pair at the given price. Size and the
// absolute stop-loss/take-profit thresholds are derived once here. On any
// validation failure nothing is mutated.
func (e *Engine) Open(pair string, price, notional, feePct, slPct, tpPct float64) (Position, error) {
	if !isFinite(price) || !isFinite(notional) || !isFinite(feePct) || !isFinite(slPct) || !isFinite(tpPct) {
		return Position{}, ErrInvalidInput
	}
	if price <= 0 {
		return Position{}, fmt.Errorf("open %s: %w", pair, ErrInvalidPrice)
	}
	if notional <= 0 {
		return Position{}, fmt.Errorf("open %s: %w", pair, ErrInvalidNotional)
	}
	if feePct < 0 || feePct > 5 {
		return Position{}, fmt.Errorf("open %s: %w (%.2f)", pair, ErrInvalidFeePct, feePct)
	}

	e.mu.Lock()
	if _, exists := e.acct.Positions[pair]; exists {
		e.mu.Unlock()
		return Position{}, fmt.Errorf("open %s: %w", pair, ErrDuplicatePosition)
	}

	pos := Position{
		Pair:       pair,
		EntryPrice: price,
		Size:       notional / price,
		OpenTS:     e.now().Unix(),
		StopLoss:   price * (1 - slPct/100),
		TakeProfit: price * (1 + tpPct/100),
		FeePct:     feePct,
		Notional:   notional,
	}
	e.acct.Positions[pair] = pos
	// Schedule is non-blocking, and running it under the lock keeps the
	// writer's queue in mutation order: an older snapshot can never be
	// handed over after a newer one.
	e.store.Schedule(e.acct.Clone())
	e.mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"pair":        pair,
		"entry_price": price,
		"size":        pos.Size,
		"notional":    notional,
		"stop_loss":   pos.StopLoss,
		"take_profit": pos.TakeProfit,
		"fee_pct":     feePct,
	}).Info("position opened")
	return pos, nil
}

// Close removes the open position for pair at the given price, credits the
// fee-adjusted PnL to the balance, and appends an equity point.
func (e *Engine) Close(pair string, price float64, reason CloseReason) (ClosedTrade, error) {
	if !isFinite(price) {
		return ClosedTrade{}, ErrInvalidInput
	}
	if price <= 0 {
		return ClosedTrade{}, fmt.Errorf("close %s: %w", pair, ErrInvalidPrice)
	}

	e.mu.Lock()
	pos, exists := e.acct.Positions[pair]
	if !exists {
		e.mu.Unlock()
		return ClosedTrade{}, fmt.Errorf("close %s: %w", pair, ErrPositionNotFound)
	}
	trade, snap, err := e.closeLocked(pos, price, reason)
	e.mu.Unlock()
	if err != nil {
		return ClosedTrade{}, err
	}

	e.finishClose(trade, snap)
	return trade, nil
}

// UpdatePrice records the tick and runs the stop/take-profit evaluation for
// pair. Instruments without an open position exit early: the evaluation set
// is exactly the open-position set, never the whole instrument universe.
// A single tick produces at most one close.
func (e *Engine) UpdatePrice(pair string, price float64, ts time.Time) {
	if price <= 0 || !isFinite(price) {
		return
	}
	e.ticks.Set(market.Tick{Pair: pair, Last: price, Time: ts})

	e.mu.Lock()
	pos, exists := e.acct.Positions[pair]
	if !exists {
		e.mu.Unlock()
		return
	}
	reason, hit := evaluate(pos, price)
	if !hit {
		e.mu.Unlock()
		return
	}
	trade, snap, err := e.closeLocked(pos, price, reason)
	e.mu.Unlock()
	if err != nil {
		e.log.WithError(err).WithField("pair", pair).Error("auto close failed")
		return
	}

	e.finishClose(trade, snap)
}

// closeLocked performs the mutation half of a close and schedules the
// post-close snapshot. The caller holds the lock. All mutations happen
// after the fee computation can no longer fail,
// so a failure leaves the account untouched.
func (e *Engine) closeLocked(pos Position, price float64, reason CloseReason) (ClosedTrade, AccountState, error) {
	fee, err := FeeAmount(pos.Notional, pos.FeePct)
	if err != nil {
		return ClosedTrade{}, AccountState{}, fmt.Errorf("close %s: %w", pos.Pair, err)
	}
	raw := RawPnL(pos.EntryPrice, price, pos.Size)
	net := PnLAfterFee(raw, fee)

	now := e.now()
	e.acct.Balance += net
	delete(e.acct.Positions, pos.Pair)
	e.acct.EquityCurve = append(e.acct.EquityCurve, EquityPoint{TS: now.Unix(), Equity: e.acct.Balance})

	trade := ClosedTrade{
		TradeID:    id.New(),
		Pair:       pos.Pair,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  price,
		Size:       pos.Size,
		Notional:   pos.Notional,
		Fee:        fee,
		PnL:        net,
		Reason:     reason,
		OpenTS:     pos.OpenTS,
		CloseTS:    now.Unix(),
	}
	snap := e.acct.Clone()
	// Scheduled before the lock is released so the writer sees snapshots
	// in mutation order even when closes of different pairs race.
	e.store.Schedule(snap)
	return trade, snap, nil
}

// finishClose handles the side effects of a completed close outside the
// lock: journaling and logging. Journal failures are logged and dropped;
// the in-memory state is already correct and the snapshot was scheduled
// under the lock.
func (e *Engine) finishClose(trade ClosedTrade, snap AccountState) {
	if err := e.journal.RecordTrade(journal.TradeRecord{
		TradeID:    trade.TradeID,
		Pair:       trade.Pair,
		Size:       trade.Size,
		Notional:   trade.Notional,
		EntryPrice: trade.EntryPrice,
		ExitPrice:  trade.ExitPrice,
		Fee:        trade.Fee,
		NetPnL:     trade.PnL,
		OpenTime:   time.Unix(trade.OpenTS, 0).UTC(),
		CloseTime:  time.Unix(trade.CloseTS, 0).UTC(),
		Reason:     string(trade.Reason),
	}); err != nil {
		e.log.WithError(err).WithField("trade_id", trade.TradeID).Error("journal trade failed")
	}
	if err := e.journal.RecordEquity(journal.EquitySample{
		Time:    time.Unix(trade.CloseTS, 0).UTC(),
		Balance: snap.Balance,
	}); err != nil {
		e.log.WithError(err).Error("journal equity failed")
	}

	e.log.WithFields(logrus.Fields{
		"pair":       trade.Pair,
		"exit_price": trade.ExitPrice,
		"fee":        trade.Fee,
		"net_pnl":    trade.PnL,
		"reason":     trade.Reason,
		"balance":    snap.Balance,
	}).Info("position closed")
}

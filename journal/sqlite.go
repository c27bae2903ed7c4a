package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, pair, size, notional, entry_price, exit_price, fee, net_pnl, open_time, close_time, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Pair, t.Size, t.Notional, t.EntryPrice,
		t.ExitPrice, t.Fee, t.NetPnL, t.OpenTime, t.CloseTime, t.Reason,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquitySample) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (time, balance) VALUES (?, ?)`,
		e.Time, e.Balance,
	)
	return err
}

// GetTrade returns a single realized trade by ID.
func (j *SQLiteJournal) GetTrade(tradeID string) (TradeRecord, error) {
	row := j.db.QueryRow(`
		SELECT trade_id, pair, size, notional, entry_price, exit_price, fee, net_pnl, open_time, close_time, reason
		FROM trades
		WHERE trade_id = ?`, tradeID)

	var rec TradeRecord
	err := row.Scan(
		&rec.TradeID, &rec.Pair, &rec.Size, &rec.Notional,
		&rec.EntryPrice, &rec.ExitPrice, &rec.Fee, &rec.NetPnL,
		&rec.OpenTime, &rec.CloseTime, &rec.Reason,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTrades returns the most recent realized trades, newest first.
func (j *SQLiteJournal) ListTrades(limit int) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, pair, size, notional, entry_price, exit_price, fee, net_pnl, open_time, close_time, reason
		FROM trades
		ORDER BY close_time DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID, &rec.Pair, &rec.Size, &rec.Notional,
			&rec.EntryPrice, &rec.ExitPrice, &rec.Fee, &rec.NetPnL,
			&rec.OpenTime, &rec.CloseTime, &rec.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListEquityBetween returns equity samples with time in [start, end).
func (j *SQLiteJournal) ListEquityBetween(start, end time.Time) ([]EquitySample, error) {
	rows, err := j.db.Query(`
		SELECT time, balance
		FROM equity
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySample
	for rows.Next() {
		var s EquitySample
		if err := rows.Scan(&s.Time, &s.Balance); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

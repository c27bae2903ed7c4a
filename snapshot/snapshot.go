// Package snapshot persists the paper-trading account as a single JSON
// document and loads it back at startup.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TradeAdvisor/whale-radar-main/paper"
)

// ErrLegacySnapshot marks a snapshot written before fee_pct and notional
// were recorded per position. Loading one without an explicit migration is
// a startup error, never a silent default.
var ErrLegacySnapshot = errors.New("snapshot predates fee_pct/notional; rerun with migration enabled")

// legacyFeePct is the fee applied to positions migrated from old snapshots.
const legacyFeePct = 0.1

// fileState is the on-disk schema.
type fileState struct {
	InitialBalance float64                 `json:"initial_balance"`
	Balance        float64                 `json:"balance"`
	Trades         map[string]filePosition `json:"trades"`
	EquityCurve    []paper.EquityPoint     `json:"equity_curve"`
}

// filePosition decodes fee_pct and notional through pointers so a missing
// field is distinguishable from a zero.
type filePosition struct {
	Pair       string   `json:"pair"`
	EntryPrice float64  `json:"entry_price"`
	Size       float64  `json:"size"`
	OpenTS     int64    `json:"open_ts"`
	StopLoss   float64  `json:"stop_loss"`
	TakeProfit float64  `json:"take_profit"`
	FeePct     *float64 `json:"fee_pct"`
	Notional   *float64 `json:"notional"`
}

// Load reads an account snapshot. Positions missing fee_pct or notional are
// rejected unless migrate is true, in which case they get fee_pct 0.1 and
// notional = entry_price * size before being accepted.
func Load(path string, migrate bool) (*paper.AccountState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fs fileState
	if err := json.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}

	acct := &paper.AccountState{
		InitialBalance: fs.InitialBalance,
		Balance:        fs.Balance,
		Positions:      make(map[string]paper.Position, len(fs.Trades)),
		EquityCurve:    fs.EquityCurve,
	}
	for pair, fp := range fs.Trades {
		pos, err := upgrade(fp, migrate)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: position %s: %w", path, pair, err)
		}
		acct.Positions[pair] = pos
	}
	return acct, nil
}

func upgrade(fp filePosition, migrate bool) (paper.Position, error) {
	if fp.FeePct == nil || fp.Notional == nil {
		if !migrate {
			return paper.Position{}, ErrLegacySnapshot
		}
		feePct := legacyFeePct
		notional := fp.EntryPrice * fp.Size
		fp.FeePct = &feePct
		fp.Notional = &notional
	}
	return paper.Position{
		Pair:       fp.Pair,
		EntryPrice: fp.EntryPrice,
		Size:       fp.Size,
		OpenTS:     fp.OpenTS,
		StopLoss:   fp.StopLoss,
		TakeProfit: fp.TakeProfit,
		FeePct:     *fp.FeePct,
		Notional:   *fp.Notional,
	}, nil
}

// Save writes the snapshot atomically: marshal to a temp file in the target
// directory, then rename over the destination. A crash mid-write leaves the
// previous snapshot intact.
func Save(path string, acct paper.AccountState) error {
	fs := fileState{
		InitialBalance: acct.InitialBalance,
		Balance:        acct.Balance,
		Trades:         make(map[string]filePosition, len(acct.Positions)),
		EquityCurve:    acct.EquityCurve,
	}
	for pair, pos := range acct.Positions {
		feePct := pos.FeePct
		notional := pos.Notional
		fs.Trades[pair] = filePosition{
			Pair:       pos.Pair,
			EntryPrice: pos.EntryPrice,
			Size:       pos.Size,
			OpenTS:     pos.OpenTS,
			StopLoss:   pos.StopLoss,
			TakeProfit: pos.TakeProfit,
			FeePct:     &feePct,
			Notional:   &notional,
		}
	}

	data, err := json.MarshalIndent(fs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

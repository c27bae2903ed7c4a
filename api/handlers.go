package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/TradeAdvisor/whale-radar-main/market"
	"github.com/TradeAdvisor/whale-radar-main/paper"
)

// OpenRequest is the manual open command. FeePct is optional; when omitted
// the configured default applies.
type OpenRequest struct {
	Pair          string   `json:"pair" binding:"required"`
	Notional      float64  `json:"notional" binding:"required"`
	FeePct        *float64 `json:"fee_pct"`
	StopLossPct   float64  `json:"stop_loss_pct" binding:"required"`
	TakeProfitPct float64  `json:"take_profit_pct" binding:"required"`
}

type CloseRequest struct {
	Pair string `json:"pair" binding:"required"`
}

// TradeView is an open position marked to the latest observed price.
type TradeView struct {
	Pair         string  `json:"pair"`
	EntryPrice   float64 `json:"entry_price"`
	Size         float64 `json:"size"`
	OpenTS       int64   `json:"open_ts"`
	StopLoss     float64 `json:"stop_loss"`
	TakeProfit   float64 `json:"take_profit"`
	CurrentPrice float64 `json:"current_price"`
	PnLAbs       float64 `json:"pnl_abs"`
	PnLPct       float64 `json:"pnl_pct"`
	FeePct       float64 `json:"fee_pct"`
	Notional     float64 `json:"notional"`
}

type TradesResponse struct {
	Balance        float64     `json:"balance"`
	InitialBalance float64     `json:"initial_balance"`
	Trades         []TradeView `json:"trades"`
}

func (s *Server) listTrades(c *gin.Context) {
	snap := s.engine.Snapshot()

	views := make([]TradeView, 0, len(snap.Positions))
	for pair, pos := range snap.Positions {
		current := pos.EntryPrice
		if tick, err := s.engine.Prices().Get(pair); err == nil {
			current = tick.Last
		}
		pnl := (current - pos.EntryPrice) * pos.Size
		pnlPct := 0.0
		if pos.EntryPrice > 0 {
			pnlPct = (current - pos.EntryPrice) / pos.EntryPrice * 100
		}
		views = append(views, TradeView{
			Pair:         pair,
			EntryPrice:   pos.EntryPrice,
			Size:         pos.Size,
			OpenTS:       pos.OpenTS,
			StopLoss:     pos.StopLoss,
			TakeProfit:   pos.TakeProfit,
			CurrentPrice: current,
			PnLAbs:       pnl,
			PnLPct:       pnlPct,
			FeePct:       pos.FeePct,
			Notional:     pos.Notional,
		})
	}

	c.JSON(http.StatusOK, TradesResponse{
		Balance:        snap.Balance,
		InitialBalance: snap.InitialBalance,
		Trades:         views,
	})
}

func (s *Server) openTrade(c *gin.Context) {
	var req OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Notional < s.limits.MinNotional {
		c.JSON(http.StatusBadRequest, gin.H{"error": "notional below minimum"})
		return
	}
	feePct := s.limits.DefaultFeePct
	if req.FeePct != nil {
		feePct = *req.FeePct
	}
	if feePct > s.limits.MaxFeePct {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fee_pct above maximum"})
		return
	}

	tick, err := s.engine.Prices().Get(req.Pair)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": market.ErrNoPrice.Error()})
		return
	}

	pos, err := s.engine.Open(req.Pair, tick.Last, req.Notional, feePct, req.StopLossPct, req.TakeProfitPct)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pos)
}

func (s *Server) closeTrade(c *gin.Context) {
	var req CloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tick, err := s.engine.Prices().Get(req.Pair)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": market.ErrNoPrice.Error()})
		return
	}

	trade, err := s.engine.Close(req.Pair, tick.Last, paper.ReasonManual)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trade)
}

// listPairs reports instruments with at least one observed price, sorted
// for a stable dropdown.
func (s *Server) listPairs(c *gin.Context) {
	pairs := s.engine.Prices().Pairs()
	sort.Strings(pairs)
	c.JSON(http.StatusOK, gin.H{"pairs": pairs})
}

func (s *Server) equityCurve(c *gin.Context) {
	snap := s.engine.Snapshot()
	c.JSON(http.StatusOK, gin.H{"equity_curve": snap.EquityCurve})
}

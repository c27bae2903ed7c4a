// Package api exposes the manual-trading desk over HTTP: opening and
// closing paper positions and viewing the account marked to the latest
// observed prices.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/TradeAdvisor/whale-radar-main/config"
	"github.com/TradeAdvisor/whale-radar-main/paper"
)

type Server struct {
	engine *paper.Engine
	limits config.TradingConfig
	log    *logrus.Entry
	srv    *http.Server
}

func NewServer(addr string, engine *paper.Engine, limits config.TradingConfig, log *logrus.Logger) *Server {
	s := &Server{
		engine: engine,
		limits: limits,
		log:    log.WithField("component", "api"),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	s.registerRoutes(r)

	s.srv = &http.Server{Addr: addr, Handler: r}
	return s
}

func (s *Server) registerRoutes(r *gin.Engine) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/trades", s.listTrades)
		apiGroup.POST("/trades", s.openTrade)
		apiGroup.POST("/trades/close", s.closeTrade)
		apiGroup.GET("/equity", s.equityCurve)
		apiGroup.GET("/pairs", s.listPairs)
	}
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.srv.Addr).Info("http server listening")
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler exposes the router for httptest.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, paper.ErrDuplicatePosition):
		return http.StatusConflict
	case errors.Is(err, paper.ErrPositionNotFound):
		return http.StatusNotFound
	case errors.Is(err, paper.ErrInvalidNotional),
		errors.Is(err, paper.ErrInvalidFeePct),
		errors.Is(err, paper.ErrInvalidPrice),
		errors.Is(err, paper.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

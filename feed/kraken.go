// Package feed streams live ticker prices from the Kraken public websocket
// into the paper-trading engine.
package feed

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/TradeAdvisor/whale-radar-main/market"
)

// PriceSink consumes normalized ticks. The engine implements it.
type PriceSink interface {
	UpdatePrice(pair string, price float64, ts time.Time)
}

type Client struct {
	url   string
	pairs []string
	sink  PriceSink
	log   *logrus.Entry

	reconnectMin time.Duration
	reconnectMax time.Duration
}

func NewClient(url string, pairs []string, sink PriceSink, log *logrus.Logger) *Client {
	return &Client{
		url:          url,
		pairs:        pairs,
		sink:         sink,
		log:          log.WithField("component", "feed"),
		reconnectMin: 1 * time.Second,
		reconnectMax: 30 * time.Second,
	}
}

// Run connects and consumes ticker messages until ctx is cancelled,
// reconnecting with capped exponential backoff on any read or dial error.
func (c *Client) Run(ctx context.Context) error {
	backoff := c.reconnectMin
	for {
		subscribed, err := c.connectAndRead(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if subscribed {
			// The connection was live; start the next backoff sequence
			// from the minimum instead of wherever the last one ended.
			backoff = c.reconnectMin
		}
		c.log.WithError(err).WithField("backoff", backoff).Warn("feed disconnected, reconnecting")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > c.reconnectMax {
			backoff = c.reconnectMax
		}
	}
}

// connectAndRead dials, subscribes, and consumes frames until the
// connection drops. The bool reports whether the subscribe went through,
// so the caller can tell a live connection that died from one that never
// came up.
func (c *Client) connectAndRead(ctx context.Context) (bool, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return false, err
	}
	defer conn.Close()
	conn.SetReadLimit(1 << 20)

	sub := map[string]any{
		"event":        "subscribe",
		"pair":         c.pairs,
		"subscription": map[string]string{"name": "ticker"},
	}
	if err := conn.WriteJSON(sub); err != nil {
		return false, err
	}
	c.log.WithField("pairs", c.pairs).Info("subscribed to ticker feed")

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return true, err
		}
		c.handleMessage(data)
	}
}

// handleMessage parses one raw websocket frame. Event objects (heartbeat,
// systemStatus, subscriptionStatus) are skipped; ticker payloads arrive as
// arrays of [channelID, dict, "ticker", wsname].
func (c *Client) handleMessage(data []byte) {
	if len(data) == 0 || data[0] != '[' {
		return
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil || len(parts) != 4 {
		return
	}

	var channel string
	if err := json.Unmarshal(parts[2], &channel); err != nil || channel != "ticker" {
		return
	}
	var wsname string
	if err := json.Unmarshal(parts[3], &wsname); err != nil {
		return
	}

	var payload struct {
		C []string `json:"c"` // [last trade price, lot volume]
	}
	if err := json.Unmarshal(parts[1], &payload); err != nil || len(payload.C) == 0 {
		return
	}
	price, err := strconv.ParseFloat(payload.C[0], 64)
	if err != nil || price <= 0 {
		c.log.WithField("pair", wsname).Debug("skipping unparsable ticker price")
		return
	}

	c.sink.UpdatePrice(market.NormalizePair(wsname), price, time.Now())
}

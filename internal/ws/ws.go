// Package ws owns the single duplex connection to the scanner websocket.
//
// The connection does not auto-reconnect: an earlier reconnect-on-close
// policy caused duplicate subscriptions and was deliberately removed. A
// closed connection stays closed until an explicit Reconnect.
package ws

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	imetrics "github.com/you/dex-scanner/internal/metrics"
	"github.com/you/dex-scanner/internal/types"
)

// Handler receives decoded push events from the read loop.
type Handler interface {
	OnScannerPairs(types.ScannerPairsPayload)
	OnTick(types.TickPayload)
	OnPairStats(types.PairStatsPayload)
	OnDisconnect(err error)
}

type Conn struct {
	URL    string
	Dialer *websocket.Dialer
	log    *zap.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	lastErr error
}

func New(url string, log *zap.Logger) *Conn {
	return &Conn{
		URL: strings.TrimRight(url, "/"),
		Dialer: &websocket.Dialer{
			HandshakeTimeout:  15 * time.Second,
			EnableCompression: true,
		},
		log: log,
	}
}

// Connect dials the endpoint. Idempotent: a no-op if already open.
func (c *Conn) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return nil
	}
	conn, _, err := c.Dialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		c.lastErr = err
		return err
	}
	c.conn = conn
	c.lastErr = nil
	c.log.Info("websocket connected", zap.String("url", c.URL))
	return nil
}

// Reconnect closes any existing handle and dials fresh.
func (c *Conn) Reconnect(ctx context.Context) error {
	_ = c.Close()
	return c.Connect(ctx)
}

// Close shuts the connection and clears the handle.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Conn) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *Conn) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Send serializes one outbound envelope. When the connection is not open
// the message is dropped with a warning — never queued.
func (c *Conn) Send(msg types.OutgoingMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		c.log.Warn("websocket not connected, dropping message", zap.String("event", msg.Event))
		return nil
	}
	return c.conn.WriteJSON(msg)
}

func (c *Conn) SubscribeScanner(f types.Filters) error {
	return c.Send(types.OutgoingMessage{Event: types.EventScannerFilter, Data: f})
}

func (c *Conn) UnsubscribeScanner() error {
	return c.Send(types.OutgoingMessage{Event: types.EventUnsubscribeScanner, Data: struct{}{}})
}

func (c *Conn) SubscribePair(sub types.PairSubscription) error {
	return c.Send(types.OutgoingMessage{Event: types.EventSubscribePair, Data: sub})
}

func (c *Conn) UnsubscribePair(sub types.PairSubscription) error {
	return c.Send(types.OutgoingMessage{Event: types.EventUnsubscribePair, Data: sub})
}

func (c *Conn) SubscribePairStats(sub types.PairSubscription) error {
	return c.Send(types.OutgoingMessage{Event: types.EventSubscribePairStats, Data: sub})
}

func (c *Conn) UnsubscribePairStats(sub types.PairSubscription) error {
	return c.Send(types.OutgoingMessage{Event: types.EventUnsubscribePairStats, Data: sub})
}

// Run reads inbound frames and dispatches them by event until the context
// is cancelled or the connection drops. Malformed frames are dropped with a
// diagnostic; they never stop the loop.
func (c *Conn) Run(ctx context.Context, h Handler) error {
	for {
		select {
		case <-ctx.Done():
			_ = c.Close()
			return ctx.Err()
		default:
		}

		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return c.LastError()
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			c.lastErr = err
			c.conn = nil
			c.mu.Unlock()
			imetrics.WSErrors.Inc()
			c.log.Warn("websocket read failed, connection closed", zap.Error(err))
			h.OnDisconnect(err)
			return err
		}

		c.dispatch(data, h)
	}
}

func (c *Conn) dispatch(data []byte, h Handler) {
	var msg types.IncomingMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.log.Warn("dropping malformed websocket frame", zap.Error(err))
		imetrics.WSErrors.Inc()
		return
	}
	imetrics.WSMessages.WithLabelValues(msg.Event).Inc()

	switch msg.Event {
	case types.EventScannerPairs:
		var p types.ScannerPairsPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			c.log.Warn("dropping malformed scanner-pairs payload", zap.Error(err))
			return
		}
		h.OnScannerPairs(p)
	case types.EventTick:
		var p types.TickPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			c.log.Warn("dropping malformed tick payload", zap.Error(err))
			return
		}
		h.OnTick(p)
	case types.EventPairStats:
		var p types.PairStatsPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			c.log.Warn("dropping malformed pair-stats payload", zap.Error(err))
			return
		}
		h.OnPairStats(p)
	default:
		c.log.Debug("unhandled websocket event", zap.String("event", msg.Event))
	}
}

package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/you/dex-scanner/internal/types"
)

type collectHandler struct {
	mu         sync.Mutex
	pairs      []types.ScannerPairsPayload
	ticks      []types.TickPayload
	stats      []types.PairStatsPayload
	disconnect error
}

func (h *collectHandler) OnScannerPairs(p types.ScannerPairsPayload) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pairs = append(h.pairs, p)
}

func (h *collectHandler) OnTick(p types.TickPayload) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ticks = append(h.ticks, p)
}

func (h *collectHandler) OnPairStats(p types.PairStatsPayload) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats = append(h.stats, p)
}

func (h *collectHandler) OnDisconnect(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disconnect = err
}

// wsServer upgrades one client and feeds every frame it sends back out as a
// recorded inbound message; frames pushes the given raw payloads first.
func wsServer(t *testing.T, frames []string, recv chan<- []byte) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		for _, f := range frames {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(f)))
		}
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if recv != nil {
				recv <- data
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestRunDispatchesEvents(t *testing.T) {
	frames := []string{
		`{"event":"scanner-pairs","data":{"results":{"pairs":[{"pairAddress":"0xa"}]}}}`,
		`{"event":"tick","data":{"pair":{"pair":"0xa"},"swaps":[{"priceToken1Usd":"1.5"}]}}`,
		`{"event":"pair-stats","data":{"pair":{"pairAddress":"0xa","dexPaid":true}}}`,
		`{"event":"something-else","data":{}}`,
		`not json at all`,
		`{"event":"tick","data":{"pair":{"pair":"0xb"},"swaps":[]}}`,
	}
	srv := wsServer(t, frames, nil)
	defer srv.Close()

	c := New(wsURL(srv), zap.NewNop())
	require.NoError(t, c.Connect(context.Background()))
	defer c.Close()

	h := &collectHandler{}
	go func() { _ = c.Run(context.Background(), h) }()

	assert.Eventually(t, func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		return len(h.pairs) == 1 && len(h.ticks) == 2 && len(h.stats) == 1
	}, 2*time.Second, 10*time.Millisecond)

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.Equal(t, "0xa", h.pairs[0].Results.Pairs[0].PairAddress)
	assert.Equal(t, "1.5", h.ticks[0].Swaps[0].PriceToken1Usd)
	assert.True(t, h.stats[0].Pair.DexPaid)
}

func TestSubscribeEnvelopes(t *testing.T) {
	recv := make(chan []byte, 16)
	srv := wsServer(t, nil, recv)
	defer srv.Close()

	c := New(wsURL(srv), zap.NewNop())
	require.NoError(t, c.Connect(context.Background()))
	defer c.Close()

	require.NoError(t, c.SubscribeScanner(types.TrendingFilters()))
	require.NoError(t, c.SubscribePair(types.PairSubscription{Pair: "0xa", Token: "0xt", Chain: types.ChainETH}))
	require.NoError(t, c.UnsubscribeScanner())

	var got []types.IncomingMessage
	for i := 0; i < 3; i++ {
		select {
		case data := <-recv:
			var m types.IncomingMessage
			require.NoError(t, json.Unmarshal(data, &m))
			got = append(got, m)
		case <-time.After(2 * time.Second):
			t.Fatal("server did not receive all envelopes")
		}
	}

	assert.Equal(t, types.EventScannerFilter, got[0].Event)
	assert.Equal(t, types.EventSubscribePair, got[1].Event)
	var sub types.PairSubscription
	require.NoError(t, json.Unmarshal(got[1].Data, &sub))
	assert.Equal(t, "0xa", sub.Pair)
	assert.Equal(t, types.ChainETH, sub.Chain)
	assert.Equal(t, types.EventUnsubscribeScanner, got[2].Event)
}

func TestSendBeforeConnectDrops(t *testing.T) {
	c := New("ws://127.0.0.1:1", zap.NewNop())
	assert.NoError(t, c.Send(types.OutgoingMessage{Event: "x"}))
	assert.False(t, c.IsConnected())
}

func TestConnectIsIdempotent(t *testing.T) {
	srv := wsServer(t, nil, nil)
	defer srv.Close()

	c := New(wsURL(srv), zap.NewNop())
	require.NoError(t, c.Connect(context.Background()))
	require.NoError(t, c.Connect(context.Background()))
	assert.True(t, c.IsConnected())
	require.NoError(t, c.Close())
	assert.False(t, c.IsConnected())
}

func TestServerCloseEndsRunWithoutReconnect(t *testing.T) {
	// the upgrade hijacks the conn out of httptest's bookkeeping, so the
	// test has to close the websocket itself to simulate a server drop
	serverConns := make(chan *websocket.Conn, 1)
	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		require.NoError(t, err)
		require.NoError(t, conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"event":"tick","data":{"pair":{"pair":"0xa"},"swaps":[]}}`)))
		serverConns <- conn
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c := New(wsURL(srv), zap.NewNop())
	require.NoError(t, c.Connect(context.Background()))

	h := &collectHandler{}
	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background(), h) }()

	assert.Eventually(t, func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		return len(h.ticks) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, (<-serverConns).Close())

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("read loop did not exit on server close")
	}

	assert.False(t, c.IsConnected(), "connection must stay down until an explicit reconnect")
	h.mu.Lock()
	assert.Error(t, h.disconnect)
	h.mu.Unlock()
}

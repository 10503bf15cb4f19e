// Package dash is the local presentation layer: a polling HTML table over
// the engine's snapshot plus intent endpoints for filters, tabs and the
// viewport-driven pagination trigger. It holds no state of its own.
package dash

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/you/dex-scanner/internal/convert"
	"github.com/you/dex-scanner/internal/engine"
	"github.com/you/dex-scanner/internal/format"
	"github.com/you/dex-scanner/internal/types"
)

// Engine is the slice of the reconciliation engine the dashboard drives.
type Engine interface {
	Snapshot() engine.Snapshot
	UpdateFilters(types.FilterUpdate)
	SetTab(types.Tab)
	OnVisibleRange(first, last int)
}

// Row is one display-ready table row.
type Row struct {
	Rank         int    `json:"rank"`
	TokenName    string `json:"tokenName"`
	TokenSymbol  string `json:"tokenSymbol"`
	TokenAddress string `json:"tokenAddress"`
	PairAddress  string `json:"pairAddress"`
	Chain        string `json:"chain"`
	Exchange     string `json:"exchange"`

	Price     string `json:"price"`
	MarketCap string `json:"marketCap"`
	Volume    string `json:"volume"`

	Change5M  string `json:"change5m"`
	Change1H  string `json:"change1h"`
	Change6H  string `json:"change6h"`
	Change24H string `json:"change24h"`

	Age       string `json:"age"`
	Buys      string `json:"buys"`
	Sells     string `json:"sells"`
	Liquidity string `json:"liquidity"`
	LiqChange string `json:"liqChange"`

	Audit   types.Audit       `json:"audit"`
	Social  types.SocialLinks `json:"social"`
	DexPaid bool              `json:"dexPaid"`
}

type scannerResponse struct {
	State     string        `json:"state"`
	Error     string        `json:"error,omitempty"`
	Tab       types.Tab     `json:"tab"`
	Filters   types.Filters `json:"filters"`
	TotalRows int           `json:"totalRows"`
	HasMore   bool          `json:"hasMore"`
	Rows      []Row         `json:"rows"`
}

func toRow(t types.TokenEntry) Row {
	age := t.Age
	if !t.TokenCreated.IsZero() {
		age = format.Age(t.TokenCreated)
	}
	return Row{
		Rank:         t.Rank,
		TokenName:    t.TokenName,
		TokenSymbol:  t.TokenSymbol,
		TokenAddress: convert.DisplayAddress(t.Chain, t.TokenAddress),
		PairAddress:  convert.DisplayAddress(t.Chain, t.PairAddress),
		Chain:        string(t.Chain),
		Exchange:     t.Exchange,
		Price:        format.Price(t.PriceUsd),
		MarketCap:    format.MarketCap(t.Mcap),
		Volume:       format.Volume(t.VolumeUsd),
		Change5M:     format.Percentage(t.PriceChangePcs.M5),
		Change1H:     format.Percentage(t.PriceChangePcs.H1),
		Change6H:     format.Percentage(t.PriceChangePcs.H6),
		Change24H:    format.Percentage(t.PriceChangePcs.H24),
		Age:          age,
		Buys:         format.Transactions(t.Transactions.Buys),
		Sells:        format.Transactions(t.Transactions.Sells),
		Liquidity:    format.Volume(t.Liquidity.Current),
		LiqChange:    format.Percentage(t.Liquidity.ChangePc),
		Audit:        t.Audit,
		Social:       t.SocialLinks,
		DexPaid:      t.DexPaid,
	}
}

type Server struct {
	eng Engine
	log *zap.Logger
}

func NewServer(eng Engine, log *zap.Logger) *Server {
	return &Server{eng: eng, log: log}
}

func (s *Server) handleScanner(w http.ResponseWriter, _ *http.Request) {
	snap := s.eng.Snapshot()
	resp := scannerResponse{
		State:     string(snap.State),
		Tab:       snap.Tab,
		Filters:   snap.Filters,
		TotalRows: snap.TotalRows,
		HasMore:   snap.HasMore,
		Rows:      make([]Row, 0, len(snap.Tokens)),
	}
	if snap.Err != nil {
		resp.Error = snap.Err.Error()
	}
	for _, t := range snap.Tokens {
		resp.Rows = append(resp.Rows, toRow(t))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// filtersRequest mirrors the SPA's partial filter updates: absent fields
// are untouched, empty string / zero clears an optional.
type filtersRequest struct {
	Chain     *string  `json:"chain"`
	RankBy    *string  `json:"rankBy"`
	OrderBy   *string  `json:"orderBy"`
	IsNotHP   *bool    `json:"isNotHP"`
	MinVol24H *float64 `json:"minVol24H"`
	MaxAge    *int     `json:"maxAge"`
	Page      *int     `json:"page"`
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req filtersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad filters payload", http.StatusBadRequest)
		return
	}

	var u types.FilterUpdate
	if req.Chain != nil {
		if *req.Chain == "" {
			u.ClearChain = true
		} else {
			c := types.Chain(strings.ToUpper(*req.Chain))
			u.Chain = &c
		}
	}
	u.RankBy = req.RankBy
	u.OrderBy = req.OrderBy
	u.IsNotHP = req.IsNotHP
	if req.MinVol24H != nil {
		if *req.MinVol24H <= 0 {
			u.ClearMinVol = true
		} else {
			u.MinVol24H = req.MinVol24H
		}
	}
	if req.MaxAge != nil {
		if *req.MaxAge <= 0 {
			u.ClearMaxAge = true
		} else {
			u.MaxAge = req.MaxAge
		}
	}
	u.Page = req.Page

	s.eng.UpdateFilters(u)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTab(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Tab types.Tab `json:"tab"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad tab payload", http.StatusBadRequest)
		return
	}
	if req.Tab != types.TabTrending && req.Tab != types.TabNew {
		http.Error(w, "unknown tab", http.StatusBadRequest)
		return
	}
	s.eng.SetTab(req.Tab)
	w.WriteHeader(http.StatusNoContent)
}

// handleViewport is the visible-range reporter: the page tells the engine
// which row span is on screen and the engine decides whether to paginate.
func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		First int `json:"first"`
		Last  int `json:"last"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad viewport payload", http.StatusBadRequest)
		return
	}
	s.eng.OnVisibleRange(req.First, req.Last)
	w.WriteHeader(http.StatusNoContent)
}

// Start serves the dashboard until ctx ends.
func (s *Server) Start(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/scanner", s.handleScanner)
	mux.HandleFunc("/api/filters", s.handleFilters)
	mux.HandleFunc("/api/tab", s.handleTab)
	mux.HandleFunc("/api/viewport", s.handleViewport)
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, indexHTML)
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           withCORS(mux),
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() { <-ctx.Done(); _ = srv.Close() }()

	s.log.Info("dashboard listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.log.Error("dashboard http server error", zap.Error(err))
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

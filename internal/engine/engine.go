// Package engine maintains the authoritative reconciled token list: REST
// page loads, full-list refreshes, per-pair ticks and per-pair stat updates
// all merge into one render-stable slice, keyed by pair address.
package engine

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/you/dex-scanner/internal/convert"
	imetrics "github.com/you/dex-scanner/internal/metrics"
	"github.com/you/dex-scanner/internal/scanner"
	"github.com/you/dex-scanner/internal/types"
)

// State is the fetch lifecycle of the current query session.
type State string

const (
	StateIdle           State = "idle"
	StateLoadingInitial State = "loading-initial"
	StateReady          State = "ready"
	StateLoadingMore    State = "loading-more"
	StateError          State = "error"
)

// Fetcher loads one scanner page; satisfied by *scanner.Client.
type Fetcher interface {
	FetchPage(ctx context.Context, f types.Filters) (types.ScannerPage, error)
}

// Subscriber reacts to list/session changes with subscription traffic.
// Nil disables subscriptions (tests).
type Subscriber interface {
	ScannerFilterChanged(types.Filters)
	TrackPairs([]types.TokenEntry)
}

type Engine struct {
	log   *zap.Logger
	fetch Fetcher
	subs  Subscriber

	// rows from the bottom of the list at which a visible-range report
	// triggers the next page
	loadThreshold int

	ctx context.Context

	mu        sync.Mutex
	tab       types.Tab
	filters   types.Filters
	overrides types.FilterUpdate // user chain/threshold picks, re-applied on tab switch
	session   uint64
	state     State
	err       error
	tokens    []types.TokenEntry
	byPair    map[string]int
	totalRows int
	hasMore   bool
	loaded    bool // data has been shown at least once this process
}

func New(fetch Fetcher, subs Subscriber, loadThreshold int, log *zap.Logger) *Engine {
	if loadThreshold <= 0 {
		loadThreshold = 10
	}
	return &Engine{
		log:           log,
		fetch:         fetch,
		subs:          subs,
		loadThreshold: loadThreshold,
		ctx:           context.Background(),
		state:         StateIdle,
		byPair:        map[string]int{},
		hasMore:       true,
	}
}

// Start opens the first session on the given tab. The context bounds every
// fetch the engine issues from here on.
func (e *Engine) Start(ctx context.Context, tab types.Tab) {
	e.mu.Lock()
	e.ctx = ctx
	e.mu.Unlock()
	e.SetTab(tab)
}

// SetTab swaps in the tab's base preset, re-applies the user's accumulated
// chain/threshold selections on top, and opens a fresh session.
func (e *Engine) SetTab(tab types.Tab) {
	e.mu.Lock()
	e.tab = tab
	f := types.Preset(tab).Apply(e.overrides)
	e.beginSessionLocked(f)
	e.mu.Unlock()
}

// UpdateFilters merges a partial filter change. Anything beyond a page bump
// resets to page 1, clears the held list and opens a fresh session; a
// page-only update fetches that page in append mode.
func (e *Engine) UpdateFilters(u types.FilterUpdate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if u.PageOnly() {
		e.loadPageLocked(*u.Page)
		return
	}

	e.rememberOverridesLocked(u)
	e.beginSessionLocked(e.filters.Apply(u))
}

// LoadMore fetches the next page if one remains and no append is in
// flight. The loading-more flag is the debounce: a scroll gesture cannot
// queue a second fetch.
func (e *Engine) LoadMore() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadPageLocked(e.filters.Page + 1)
}

// OnVisibleRange is the viewport renderer's capability hook: the engine
// only learns that rows near the bottom became visible, never how they are
// drawn.
func (e *Engine) OnVisibleRange(first, last int) {
	_ = first
	e.mu.Lock()
	defer e.mu.Unlock()
	if last >= len(e.tokens)-e.loadThreshold {
		e.loadPageLocked(e.filters.Page + 1)
	}
}

// Tab returns the active tab.
func (e *Engine) Tab() types.Tab {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tab
}

// Filters returns the active filter state.
func (e *Engine) Filters() types.Filters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filters
}

// rememberOverridesLocked folds the sticky parts of an update (chain,
// thresholds, honeypot toggle) into the per-user override set that
// survives tab switches. Sort order and page are tab-local.
func (e *Engine) rememberOverridesLocked(u types.FilterUpdate) {
	o := &e.overrides
	if u.ClearChain {
		o.Chain, o.ClearChain = nil, true
	} else if u.Chain != nil {
		c := *u.Chain
		o.Chain, o.ClearChain = &c, false
	}
	if u.IsNotHP != nil {
		v := *u.IsNotHP
		o.IsNotHP = &v
	}
	if u.ClearMinVol {
		o.MinVol24H, o.ClearMinVol = nil, true
	} else if u.MinVol24H != nil {
		v := *u.MinVol24H
		o.MinVol24H, o.ClearMinVol = &v, false
	}
	if u.ClearMaxAge {
		o.MaxAge, o.ClearMaxAge = nil, true
	} else if u.MaxAge != nil {
		v := *u.MaxAge
		o.MaxAge, o.ClearMaxAge = &v, false
	}
}

// beginSessionLocked replaces the filter state wholesale and starts over:
// list cleared, page 1 fetched, scanner stream resubscribed. In-flight
// fetches from the previous session will complete against a stale session
// id and be discarded.
func (e *Engine) beginSessionLocked(f types.Filters) {
	e.filters = f
	e.session++
	e.tokens = nil
	e.byPair = map[string]int{}
	e.totalRows = 0
	e.hasMore = true
	e.err = nil
	e.state = StateLoadingInitial

	if e.subs != nil {
		e.subs.ScannerFilterChanged(f)
	}

	session := e.session
	filters := e.filters
	go e.runFetch(session, filters, false)
}

func (e *Engine) loadPageLocked(page int) {
	if !e.hasMore || page <= e.filters.Page {
		return
	}
	if e.state == StateLoadingMore || e.state == StateLoadingInitial {
		return
	}
	e.filters.Page = page
	e.state = StateLoadingMore

	session := e.session
	filters := e.filters
	go e.runFetch(session, filters, true)
}

func (e *Engine) runFetch(session uint64, f types.Filters, appendMode bool) {
	page, err := e.fetch.FetchPage(e.ctx, f)
	e.completeFetch(session, f.Page, page, err, appendMode)
}

func (e *Engine) completeFetch(session uint64, pageNum int, page types.ScannerPage, err error, appendMode bool) {
	e.mu.Lock()

	// a newer filter change supersedes this fetch; drop the result
	if session != e.session {
		e.mu.Unlock()
		if err == nil {
			e.log.Debug("discarding stale fetch result", zap.Int("page", pageNum))
		}
		return
	}

	if err != nil {
		// prior entries stay visible; transient failures must not blank
		// a good list
		e.state = StateError
		e.err = err
		e.mu.Unlock()
		imetrics.FetchErrors.Inc()
		e.log.Warn("scanner fetch failed", zap.Int("page", pageNum), zap.Error(err))
		return
	}

	var fresh []types.TokenEntry
	if appendMode {
		base := len(e.tokens)
		for i, res := range page.Pairs {
			fresh = append(fresh, convert.ToTokenEntry(res, base+i))
		}
		e.tokens = append(e.tokens, fresh...)
	} else {
		for i, res := range page.Pairs {
			fresh = append(fresh, convert.ToTokenEntry(res, i))
		}
		e.tokens = fresh
	}
	e.reindexLocked()

	e.totalRows = page.TotalRows
	e.hasMore = scanner.HasMore(pageNum, page.TotalRows)
	e.state = StateReady
	e.err = nil
	e.loaded = true

	imetrics.TokensHeld.Set(float64(len(e.tokens)))
	imetrics.TotalRows.Set(float64(e.totalRows))

	subs := e.subs
	e.mu.Unlock()

	if subs != nil && len(fresh) > 0 {
		subs.TrackPairs(fresh)
	}
}

func (e *Engine) reindexLocked() {
	e.byPair = make(map[string]int, len(e.tokens))
	for i, t := range e.tokens {
		e.byPair[t.PairAddress] = i
	}
}

// Snapshot is a copied view of the engine's output for renderers.
type Snapshot struct {
	Tokens    []types.TokenEntry
	TotalRows int
	HasMore   bool
	State     State
	Err       error
	Filters   types.Filters
	Tab       types.Tab
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	tokens := make([]types.TokenEntry, len(e.tokens))
	copy(tokens, e.tokens)
	return Snapshot{
		Tokens:    tokens,
		TotalRows: e.totalRows,
		HasMore:   e.hasMore,
		State:     e.state,
		Err:       e.err,
		Filters:   e.filters,
		Tab:       e.tab,
	}
}

// zeroPrice guards refresh merges: a transient zero-valued push must not
// clobber a good price.
func zeroPrice(d decimal.Decimal) bool { return d.IsZero() }

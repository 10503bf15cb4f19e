package engine

import (
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/you/dex-scanner/internal/convert"
	imetrics "github.com/you/dex-scanner/internal/metrics"
	"github.com/you/dex-scanner/internal/types"
)

// OnScannerPairs applies a full-list refresh: held entries also present in
// the batch are re-derived (price/mcap preserved when the push carries
// zeros), entries absent from the batch are dropped, and batch entries not
// yet held are appended with ranks continuing from the held length.
func (e *Engine) OnScannerPairs(p types.ScannerPairsPayload) {
	pairs := p.Results.Pairs

	e.mu.Lock()

	incoming := make(map[string]types.ScannerResult, len(pairs))
	for _, res := range pairs {
		incoming[res.PairAddress] = res
	}

	updated := make([]types.TokenEntry, 0, len(e.tokens))
	for _, held := range e.tokens {
		res, ok := incoming[held.PairAddress]
		if !ok {
			continue
		}
		next := convert.ToTokenEntry(res, held.Rank-1)
		if zeroPrice(next.PriceUsd) && !zeroPrice(held.PriceUsd) {
			next.PriceUsd = held.PriceUsd
		}
		if next.Mcap == 0 && held.Mcap != 0 {
			next.Mcap = held.Mcap
		}
		updated = append(updated, next)
	}

	held := make(map[string]struct{}, len(e.tokens))
	for _, t := range e.tokens {
		held[t.PairAddress] = struct{}{}
	}
	var fresh []types.TokenEntry
	for _, res := range pairs {
		if _, ok := held[res.PairAddress]; ok {
			continue
		}
		fresh = append(fresh, convert.ToTokenEntry(res, len(updated)+len(fresh)))
	}

	e.tokens = append(updated, fresh...)
	e.reindexLocked()
	imetrics.TokensHeld.Set(float64(len(e.tokens)))

	subs := e.subs
	e.mu.Unlock()

	if subs != nil && len(fresh) > 0 {
		subs.TrackPairs(fresh)
	}
}

// OnTick folds a trade print into its entry: price from the latest
// non-outlier swap, market cap recomputed from the retained total supply,
// one buy or sell counted, traded USD accumulated into volume. Ticks for
// pairs not held are no-ops.
func (e *Engine) OnTick(p types.TickPayload) {
	var swap *types.Swap
	for i := range p.Swaps {
		if !p.Swaps[i].IsOutlier {
			swap = &p.Swaps[i]
		}
	}
	if swap == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.byPair[p.Pair.Pair]
	if !ok {
		return
	}
	t := &e.tokens[idx]

	price, err := decimal.NewFromString(swap.PriceToken1Usd)
	if err != nil {
		e.log.Warn("dropping tick with bad price",
			zap.String("pair", p.Pair.Pair),
			zap.String("price", swap.PriceToken1Usd),
		)
		return
	}
	t.PriceUsd = price

	supply, err := decimal.NewFromString(t.Raw.Token1TotalSupplyFormatted)
	if err == nil {
		t.Mcap, _ = supply.Mul(price).Float64()
	}

	// buy/sell attribution keeps the upstream polarity (token1 on the
	// input side counts as a buy), pending product clarification
	if swap.TokenInAddress == t.TokenAddress {
		t.Transactions.Buys++
	} else {
		t.Transactions.Sells++
	}

	if amt, err := strconv.ParseFloat(swap.AmountToken1Usd, 64); err == nil {
		t.VolumeUsd += amt
	}
}

// OnPairStats overwrites audit flags, social links and the paid-listing
// flag; trading numerics stay untouched. Unknown pairs are no-ops.
func (e *Engine) OnPairStats(p types.PairStatsPayload) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.byPair[p.Pair.PairAddress]
	if !ok {
		return
	}
	t := &e.tokens[idx]

	t.Audit = types.Audit{
		Mintable:         p.Pair.MintAuthorityRenounced,
		Freezable:        p.Pair.FreezeAuthorityRenounced,
		Honeypot:         !p.Pair.Token1IsHoneypot,
		ContractVerified: p.Pair.IsVerified,
	}
	t.SocialLinks = types.SocialLinks{
		Discord:  p.Pair.LinkDiscord,
		Telegram: p.Pair.LinkTelegram,
		Twitter:  p.Pair.LinkTwitter,
		Website:  p.Pair.LinkWebsite,
	}
	t.DexPaid = p.Pair.DexPaid
}

// OnDisconnect records a transport failure. It becomes the engine's error
// state only while nothing has ever loaded; once data exists the list is
// worth more than the banner.
func (e *Engine) OnDisconnect(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err == nil {
		return
	}
	if !e.loaded {
		e.state = StateError
		e.err = err
		return
	}
	e.log.Warn("realtime connection lost, keeping loaded data", zap.Error(err))
}

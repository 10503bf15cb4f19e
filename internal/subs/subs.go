// Package subs tracks which pairs hold live tick/stats subscriptions.
//
// The tracker is capacity-bounded: when a newly listed pair pushes the set
// past its limit the least-recently-seen pair is evicted and unsubscribed.
// This replaces unconditional monotonic growth, which leaked subscriptions
// for every pair that ever scrolled through the list.
package subs

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	imetrics "github.com/you/dex-scanner/internal/metrics"
	"github.com/you/dex-scanner/internal/types"
)

// Sender issues subscription traffic; satisfied by *ws.Conn.
type Sender interface {
	SubscribePair(types.PairSubscription) error
	SubscribePairStats(types.PairSubscription) error
	UnsubscribePair(types.PairSubscription) error
	UnsubscribePairStats(types.PairSubscription) error
}

type Tracker struct {
	cache  *lru.Cache[string, types.PairSubscription]
	sender Sender
	log    *zap.Logger
}

func key(sub types.PairSubscription) string {
	return sub.Pair + "|" + string(sub.Chain)
}

func NewTracker(capacity int, sender Sender, log *zap.Logger) (*Tracker, error) {
	t := &Tracker{sender: sender, log: log}
	cache, err := lru.NewWithEvict(capacity, func(_ string, sub types.PairSubscription) {
		imetrics.SubEvictions.Inc()
		if err := sender.UnsubscribePair(sub); err != nil {
			log.Warn("unsubscribe-pair failed", zap.String("pair", sub.Pair), zap.Error(err))
		}
		if err := sender.UnsubscribePairStats(sub); err != nil {
			log.Warn("unsubscribe-pair-stats failed", zap.String("pair", sub.Pair), zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}
	t.cache = cache
	return t, nil
}

// Track subscribes every entry not already tracked and refreshes recency
// for those that are. Adding past capacity evicts and unsubscribes the
// stalest pair.
func (t *Tracker) Track(entries []types.TokenEntry) {
	for _, e := range entries {
		sub := types.PairSubscription{Pair: e.PairAddress, Token: e.TokenAddress, Chain: e.Chain}
		k := key(sub)
		if _, ok := t.cache.Get(k); ok {
			continue
		}
		if err := t.sender.SubscribePair(sub); err != nil {
			t.log.Warn("subscribe-pair failed", zap.String("pair", sub.Pair), zap.Error(err))
		}
		if err := t.sender.SubscribePairStats(sub); err != nil {
			t.log.Warn("subscribe-pair-stats failed", zap.String("pair", sub.Pair), zap.Error(err))
		}
		t.cache.Add(k, sub)
	}
}

// Resubscribe re-issues subscriptions for every tracked pair, oldest first.
// Used after an explicit reconnect, where the server has forgotten us.
func (t *Tracker) Resubscribe() {
	for _, k := range t.cache.Keys() {
		sub, ok := t.cache.Peek(k)
		if !ok {
			continue
		}
		if err := t.sender.SubscribePair(sub); err != nil {
			t.log.Warn("resubscribe pair failed", zap.String("pair", sub.Pair), zap.Error(err))
		}
		if err := t.sender.SubscribePairStats(sub); err != nil {
			t.log.Warn("resubscribe pair-stats failed", zap.String("pair", sub.Pair), zap.Error(err))
		}
	}
}

func (t *Tracker) Len() int { return t.cache.Len() }

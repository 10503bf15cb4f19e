// Package redisfeed mirrors the reconciled token list into Redis so other
// processes (alerting, archival) can read the scanner's view without
// holding their own websocket.
package redisfeed

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/you/dex-scanner/internal/config"
	"github.com/you/dex-scanner/internal/engine"
)

// Source provides the list to mirror; satisfied by *engine.Engine.
type Source interface {
	Snapshot() engine.Snapshot
}

type Publisher struct {
	rdb       *redis.Client
	rankedKey string
	metaNS    string
	log       *zap.Logger
}

func NewPublisher(cfg *config.Config, log *zap.Logger) *Publisher {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
	})
	return &Publisher{
		rdb:       rdb,
		rankedKey: cfg.Redis.RankedKey,
		metaNS:    cfg.Redis.MetaNS,
		log:       log,
	}
}

func (p *Publisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

// Publish replaces the ranked ZSET wholesale and upserts per-pair meta
// hashes. The ZSET is scored by rank so consumers read the list in the
// server's order.
func (p *Publisher) Publish(ctx context.Context, snap engine.Snapshot) error {
	pipe := p.rdb.TxPipeline()
	pipe.Del(ctx, p.rankedKey)

	now := time.Now().UnixMilli()
	for _, t := range snap.Tokens {
		pipe.ZAdd(ctx, p.rankedKey, redis.Z{
			Score:  float64(t.Rank),
			Member: t.PairAddress,
		})
		pipe.HSet(ctx, p.metaNS+t.PairAddress, map[string]interface{}{
			"symbol":    t.TokenSymbol,
			"name":      t.TokenName,
			"chain":     string(t.Chain),
			"exchange":  t.Exchange,
			"price_usd": t.PriceUsd.String(),
			"mcap":      t.Mcap,
			"volume":    t.VolumeUsd,
			"buys":      t.Transactions.Buys,
			"sells":     t.Transactions.Sells,
			"ts_ms":     now,
		})
	}

	_, err := pipe.Exec(ctx)
	return err
}

// Run mirrors snapshots on a fixed interval until the context ends.
func (p *Publisher) Run(ctx context.Context, src Source, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			snap := src.Snapshot()
			if len(snap.Tokens) == 0 {
				continue
			}
			if err := p.Publish(ctx, snap); err != nil {
				p.log.Warn("redis mirror publish failed", zap.Error(err))
			}
		}
	}
}

// Close releases the underlying client.
func (p *Publisher) Close() error { return p.rdb.Close() }

package redisfeed

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/you/dex-scanner/internal/config"
	"github.com/you/dex-scanner/internal/engine"
	"github.com/you/dex-scanner/internal/types"
)

func testPublisher(t *testing.T) (*Publisher, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cfg := &config.Config{}
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.RankedKey = "scanner:ranked"
	cfg.Redis.MetaNS = "scanner:pair:"
	p := NewPublisher(cfg, zap.NewNop())
	t.Cleanup(func() { _ = p.Close() })
	return p, mr
}

func token(pair string, rank int, price string) types.TokenEntry {
	return types.TokenEntry{
		PairAddress: pair,
		TokenSymbol: "TKN",
		TokenName:   "Token",
		Chain:       types.ChainETH,
		Exchange:    "Uniswap",
		PriceUsd:    decimal.RequireFromString(price),
		Mcap:        1000,
		VolumeUsd:   250,
		Rank:        rank,
		Transactions: types.Transactions{
			Buys:  3,
			Sells: 1,
		},
	}
}

func TestPublishWritesRankedSetAndMeta(t *testing.T) {
	p, mr := testPublisher(t)

	snap := engine.Snapshot{Tokens: []types.TokenEntry{
		token("0xa", 1, "1.25"),
		token("0xb", 2, "0.0005"),
	}}
	require.NoError(t, p.Publish(context.Background(), snap))

	members, err := mr.ZMembers("scanner:ranked")
	require.NoError(t, err)
	assert.Equal(t, []string{"0xa", "0xb"}, members)

	score, err := mr.ZScore("scanner:ranked", "0xb")
	require.NoError(t, err)
	assert.Equal(t, 2.0, score)

	assert.Equal(t, "1.25", mr.HGet("scanner:pair:0xa", "price_usd"))
	assert.Equal(t, "0.0005", mr.HGet("scanner:pair:0xb", "price_usd"))
	assert.Equal(t, "TKN", mr.HGet("scanner:pair:0xa", "symbol"))
	assert.Equal(t, "ETH", mr.HGet("scanner:pair:0xa", "chain"))
	assert.Equal(t, "3", mr.HGet("scanner:pair:0xa", "buys"))
}

func TestPublishReplacesRankedSetWholesale(t *testing.T) {
	p, mr := testPublisher(t)

	first := engine.Snapshot{Tokens: []types.TokenEntry{
		token("0xa", 1, "1"),
		token("0xb", 2, "2"),
	}}
	require.NoError(t, p.Publish(context.Background(), first))

	// 0xb fell off the list between publishes
	second := engine.Snapshot{Tokens: []types.TokenEntry{
		token("0xa", 1, "1"),
		token("0xc", 2, "3"),
	}}
	require.NoError(t, p.Publish(context.Background(), second))

	members, err := mr.ZMembers("scanner:ranked")
	require.NoError(t, err)
	assert.Equal(t, []string{"0xa", "0xc"}, members)
}

func TestPingAgainstLiveServer(t *testing.T) {
	p, mr := testPublisher(t)
	assert.NoError(t, p.Ping(context.Background()))
	mr.Close()
	assert.Error(t, p.Ping(context.Background()))
}

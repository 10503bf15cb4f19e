package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply_NonPageChangeResetsPage(t *testing.T) {
	f := TrendingFilters()
	f.Page = 4

	minVol := 50000.0
	out := f.Apply(FilterUpdate{MinVol24H: &minVol})
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 50000.0, *out.MinVol24H)
}

func TestApply_PageOnlyKeepsEverythingElse(t *testing.T) {
	f := TrendingFilters()
	f.Page = 2

	page := 3
	out := f.Apply(FilterUpdate{Page: &page})
	assert.Equal(t, 3, out.Page)
	assert.Equal(t, "volume", out.RankBy)
	assert.Equal(t, *f.MinVol24H, *out.MinVol24H)
}

func TestPageOnly(t *testing.T) {
	page := 2
	assert.True(t, FilterUpdate{Page: &page}.PageOnly())

	chain := ChainSOL
	assert.False(t, FilterUpdate{Page: &page, Chain: &chain}.PageOnly())
	assert.False(t, FilterUpdate{Page: &page, ClearMaxAge: true}.PageOnly())
	assert.False(t, FilterUpdate{}.PageOnly())
}

func TestApply_ClearOptionals(t *testing.T) {
	f := NewTokensFilters()
	out := f.Apply(FilterUpdate{ClearMaxAge: true})
	assert.Nil(t, out.MaxAge)
	assert.Equal(t, 1, out.Page)
}

func TestQuery_SerializesNonNullFieldsOnly(t *testing.T) {
	chain := ChainETH
	minVol := 10000.0
	f := Filters{
		Chain:     &chain,
		RankBy:    "volume",
		OrderBy:   "desc",
		IsNotHP:   true,
		MinVol24H: &minVol,
		Page:      2,
	}
	q := f.Query()
	assert.Equal(t, "ETH", q.Get("chain"))
	assert.Equal(t, "volume", q.Get("rankBy"))
	assert.Equal(t, "desc", q.Get("orderBy"))
	assert.Equal(t, "true", q.Get("isNotHP"))
	assert.Equal(t, "10000", q.Get("minVol24H"))
	assert.Equal(t, "2", q.Get("page"))
	assert.False(t, q.Has("maxAge"))
	assert.False(t, q.Has("timeFrame"))
}

func TestPresets(t *testing.T) {
	tr := TrendingFilters()
	assert.Equal(t, "volume", tr.RankBy)
	assert.Equal(t, "desc", tr.OrderBy)
	assert.True(t, tr.IsNotHP)
	assert.NotNil(t, tr.MinVol24H)
	assert.Nil(t, tr.MaxAge)

	nw := NewTokensFilters()
	assert.Equal(t, "age", nw.RankBy)
	assert.NotNil(t, nw.MaxAge)
	assert.Equal(t, 168, *nw.MaxAge)

	assert.Equal(t, tr.RankBy, Preset(TabTrending).RankBy)
	assert.Equal(t, nw.RankBy, Preset(TabNew).RankBy)
	assert.Equal(t, tr.RankBy, Preset(Tab("bogus")).RankBy)
}

func TestChainName(t *testing.T) {
	assert.Equal(t, ChainETH, ChainName(1))
	assert.Equal(t, ChainBSC, ChainName(56))
	assert.Equal(t, ChainBASE, ChainName(8453))
	assert.Equal(t, ChainSOL, ChainName(900))
	assert.Equal(t, ChainETH, ChainName(31337))
}

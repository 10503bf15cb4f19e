package types

import (
	"net/url"
	"strconv"
)

// Tab selects the base filter preset.
type Tab string

const (
	TabTrending Tab = "trending"
	TabNew      Tab = "new"
)

// Filters is the scanner query state. Nil pointer fields mean "no
// constraint" and are omitted from the serialized query.
type Filters struct {
	Chain     *Chain   `json:"chain,omitempty"`
	RankBy    string   `json:"rankBy"`
	OrderBy   string   `json:"orderBy"`
	TimeFrame string   `json:"timeFrame,omitempty"`
	IsNotHP   bool     `json:"isNotHP"`
	MinVol24H *float64 `json:"minVol24H,omitempty"`
	MaxAge    *int     `json:"maxAge,omitempty"`
	Page      int      `json:"page"`
}

// FilterUpdate is a partial change merged onto the current Filters. Nil
// means "leave as is"; ClearChain / ClearMinVol / ClearMaxAge reset the
// corresponding optional back to "any".
type FilterUpdate struct {
	Chain       *Chain
	ClearChain  bool
	RankBy      *string
	OrderBy     *string
	IsNotHP     *bool
	MinVol24H   *float64
	ClearMinVol bool
	MaxAge      *int
	ClearMaxAge bool
	Page        *int
}

// PageOnly reports whether the update touches nothing but the page number.
// Page-only updates append; anything else starts a fresh session.
func (u FilterUpdate) PageOnly() bool {
	return u.Page != nil &&
		u.Chain == nil && !u.ClearChain &&
		u.RankBy == nil && u.OrderBy == nil && u.IsNotHP == nil &&
		u.MinVol24H == nil && !u.ClearMinVol &&
		u.MaxAge == nil && !u.ClearMaxAge
}

// TrendingFilters is the base preset for the trending tab: highest 24h
// volume first, honeypots excluded.
func TrendingFilters() Filters {
	minVol := 1000.0
	return Filters{
		RankBy:    "volume",
		OrderBy:   "desc",
		IsNotHP:   true,
		MinVol24H: &minVol,
		Page:      1,
	}
}

// NewTokensFilters is the base preset for the new-tokens tab: youngest
// pairs first, capped at a week old.
func NewTokensFilters() Filters {
	maxAge := 24 * 7
	return Filters{
		RankBy:  "age",
		OrderBy: "desc",
		IsNotHP: true,
		MaxAge:  &maxAge,
		Page:    1,
	}
}

// Preset returns the base filters for a tab; unknown tabs get trending.
func Preset(tab Tab) Filters {
	if tab == TabNew {
		return NewTokensFilters()
	}
	return TrendingFilters()
}

// Apply merges a partial update and returns the new state. Per the scanner
// contract, touching any field other than page forces page back to 1.
func (f Filters) Apply(u FilterUpdate) Filters {
	out := f
	if u.ClearChain {
		out.Chain = nil
	} else if u.Chain != nil {
		c := *u.Chain
		out.Chain = &c
	}
	if u.RankBy != nil {
		out.RankBy = *u.RankBy
	}
	if u.OrderBy != nil {
		out.OrderBy = *u.OrderBy
	}
	if u.IsNotHP != nil {
		out.IsNotHP = *u.IsNotHP
	}
	if u.ClearMinVol {
		out.MinVol24H = nil
	} else if u.MinVol24H != nil {
		v := *u.MinVol24H
		out.MinVol24H = &v
	}
	if u.ClearMaxAge {
		out.MaxAge = nil
	} else if u.MaxAge != nil {
		v := *u.MaxAge
		out.MaxAge = &v
	}
	if u.PageOnly() {
		out.Page = *u.Page
	} else {
		out.Page = 1
	}
	return out
}

// Query serializes every non-null field as a string query parameter, the
// exact shape GET /scanner expects.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.Chain != nil {
		q.Set("chain", string(*f.Chain))
	}
	if f.RankBy != "" {
		q.Set("rankBy", f.RankBy)
	}
	if f.OrderBy != "" {
		q.Set("orderBy", f.OrderBy)
	}
	if f.TimeFrame != "" {
		q.Set("timeFrame", f.TimeFrame)
	}
	q.Set("isNotHP", strconv.FormatBool(f.IsNotHP))
	if f.MinVol24H != nil {
		q.Set("minVol24H", strconv.FormatFloat(*f.MinVol24H, 'f', -1, 64))
	}
	if f.MaxAge != nil {
		q.Set("maxAge", strconv.Itoa(*f.MaxAge))
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	return q
}

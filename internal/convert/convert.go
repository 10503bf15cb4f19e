// Package convert maps raw scanner wire records into display-ready token
// entries. Conversion is deterministic for a given input (the age string
// aside, which tracks the wall clock) and never fails: malformed numerics
// degrade to zero.
package convert

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/you/dex-scanner/internal/format"
	"github.com/you/dex-scanner/internal/types"
)

func parseNum(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// resolveMcap walks the market-cap fields in fixed priority order and picks
// the first strictly-positive parse; all-zero or unparsable yields 0.
func resolveMcap(res types.ScannerResult) float64 {
	for _, s := range []string{res.CurrentMcap, res.InitialMcap, res.PairMcapUsd, res.PairMcapUsdInitial} {
		if v := parseNum(s); v > 0 {
			return v
		}
	}
	return 0
}

// ToTokenEntry converts one wire record at the given zero-based list index.
func ToTokenEntry(res types.ScannerResult, index int) types.TokenEntry {
	chain := types.ChainName(res.ChainID)

	exchange := res.VirtualRouterType
	if exchange == "" {
		exchange = res.RouterAddress
	}
	if exchange == "" {
		exchange = "Unknown"
	}

	age := "< 1m"
	var created time.Time
	if t, err := time.Parse(time.RFC3339, res.Age); err == nil {
		created = t
		age = format.Age(t)
	}

	return types.TokenEntry{
		TokenName:    res.Token1Name,
		TokenSymbol:  res.Token1Symbol,
		TokenAddress: res.Token1Address,
		PairAddress:  res.PairAddress,
		Chain:        chain,
		Exchange:     exchange,
		PriceUsd:     parseDecimal(res.Price),
		VolumeUsd:    parseNum(res.Volume),
		Mcap:         resolveMcap(res),
		PriceChangePcs: types.PriceChanges{
			M5:  parseNum(res.Diff5M),
			H1:  parseNum(res.Diff1H),
			H6:  parseNum(res.Diff6H),
			H24: parseNum(res.Diff24H),
		},
		Transactions: types.Transactions{
			Buys:  res.Buys,
			Sells: res.Sells,
		},
		// Upstream semantics are inverted twice here (auth-disabled flags
		// stored as mintable/freezable, honeyPot negated); kept verbatim
		// until product clarifies the intended polarity.
		Audit: types.Audit{
			Mintable:         res.IsMintAuthDisabled,
			Freezable:        res.IsFreezeAuthDisabled,
			Honeypot:         !res.HoneyPot,
			ContractVerified: res.ContractVerified,
		},
		TokenCreated: created,
		Liquidity: types.Liquidity{
			Current:  parseNum(res.Liquidity),
			ChangePc: parseNum(res.PercentChangeInLiquidity),
		},
		Rank: index + 1,
		Age:  age,
		SocialLinks: types.SocialLinks{
			Discord:  res.DiscordLink,
			Telegram: res.TelegramLink,
			Twitter:  res.TwitterLink,
			Website:  res.WebLink,
		},
		DexPaid: res.DexPaid,
		Raw:     res,
	}
}

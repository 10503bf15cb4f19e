package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Chain is one of the networks the scanner backend covers.
type Chain string

const (
	ChainETH  Chain = "ETH"
	ChainSOL  Chain = "SOL"
	ChainBASE Chain = "BASE"
	ChainBSC  Chain = "BSC"
)

// ChainName maps a numeric chain id to its name. Unknown ids fall back to
// ETH — a documented lossy default, not an error.
func ChainName(id int) Chain {
	switch id {
	case 1:
		return ChainETH
	case 56:
		return ChainBSC
	case 8453:
		return ChainBASE
	case 900:
		return ChainSOL
	}
	return ChainETH
}

// EVM reports whether addresses on the chain are hex EVM addresses.
func (c Chain) EVM() bool { return c != ChainSOL }

// ScannerResult is one raw wire record from GET /scanner and from the
// scanner-pairs push event. Field names follow the upstream JSON exactly;
// numeric fields arrive as decimal strings.
type ScannerResult struct {
	PairAddress   string `json:"pairAddress"`
	Token1Name    string `json:"token1Name"`
	Token1Symbol  string `json:"token1Symbol"`
	Token1Address string `json:"token1Address"`
	ChainID       int    `json:"chainId"`

	Price  string `json:"price"`
	Volume string `json:"volume"`

	CurrentMcap        string `json:"currentMcap"`
	InitialMcap        string `json:"initialMcap"`
	PairMcapUsd        string `json:"pairMcapUsd"`
	PairMcapUsdInitial string `json:"pairMcapUsdInitial"`

	Diff5M  string `json:"diff5M"`
	Diff1H  string `json:"diff1H"`
	Diff6H  string `json:"diff6H"`
	Diff24H string `json:"diff24H"`

	Buys  int `json:"buys"`
	Sells int `json:"sells"`

	IsMintAuthDisabled   bool `json:"isMintAuthDisabled"`
	IsFreezeAuthDisabled bool `json:"isFreezeAuthDisabled"`
	HoneyPot             bool `json:"honeyPot"`
	ContractVerified     bool `json:"contractVerified"`
	DexPaid              bool `json:"dexPaid"`

	// Age is the pair creation timestamp (RFC3339), not a duration.
	Age string `json:"age"`

	Liquidity                  string `json:"liquidity"`
	PercentChangeInLiquidity   string `json:"percentChangeInLiquidity"`
	Token1TotalSupplyFormatted string `json:"token1TotalSupplyFormatted"`

	VirtualRouterType string `json:"virtualRouterType"`
	RouterAddress     string `json:"routerAddress"`

	DiscordLink  string `json:"discordLink"`
	TelegramLink string `json:"telegramLink"`
	TwitterLink  string `json:"twitterLink"`
	WebLink      string `json:"webLink"`
}

// PriceChanges holds the four percentage-change windows.
type PriceChanges struct {
	M5  float64 `json:"5m"`
	H1  float64 `json:"1h"`
	H6  float64 `json:"6h"`
	H24 float64 `json:"24h"`
}

type Transactions struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

type Audit struct {
	Mintable         bool `json:"mintable"`
	Freezable        bool `json:"freezable"`
	Honeypot         bool `json:"honeypot"`
	ContractVerified bool `json:"contractVerified"`
}

type Liquidity struct {
	Current  float64 `json:"current"`
	ChangePc float64 `json:"changePc"`
}

type SocialLinks struct {
	Discord  string `json:"discord,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

// TokenEntry is the authoritative in-memory unit the reconciliation engine
// maintains. Identity is PairAddress. PriceUsd is kept as an exact decimal;
// it is the one field where float rounding visibly corrupts the display.
type TokenEntry struct {
	TokenName      string
	TokenSymbol    string
	TokenAddress   string
	PairAddress    string
	Chain          Chain
	Exchange       string
	PriceUsd       decimal.Decimal
	VolumeUsd      float64
	Mcap           float64
	PriceChangePcs PriceChanges
	Transactions   Transactions
	Audit          Audit
	TokenCreated   time.Time
	Liquidity      Liquidity
	Rank           int
	Age            string
	SocialLinks    SocialLinks
	DexPaid        bool

	// Raw retains the originating wire record; tick merges recompute the
	// market cap from its token1TotalSupplyFormatted.
	Raw ScannerResult
}

// ScannerPage is one decoded REST response page.
type ScannerPage struct {
	Pairs     []ScannerResult `json:"pairs"`
	TotalRows int             `json:"totalRows"`
}

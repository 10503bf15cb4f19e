package types

import "encoding/json"

// Outbound websocket event names.
const (
	EventScannerFilter        = "scanner-filter"
	EventUnsubscribeScanner   = "unsubscribe-scanner-filter"
	EventSubscribePair        = "subscribe-pair"
	EventUnsubscribePair      = "unsubscribe-pair"
	EventSubscribePairStats   = "subscribe-pair-stats"
	EventUnsubscribePairStats = "unsubscribe-pair-stats"
)

// Inbound websocket event names.
const (
	EventScannerPairs = "scanner-pairs"
	EventTick         = "tick"
	EventPairStats    = "pair-stats"
)

// OutgoingMessage is the `{event, data}` envelope for every message sent to
// the scanner websocket.
type OutgoingMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// PairSubscription keys per-pair tick/stats subscriptions.
type PairSubscription struct {
	Pair  string `json:"pair"`
	Token string `json:"token"`
	Chain Chain  `json:"chain"`
}

// IncomingMessage is the inbound envelope; Data stays raw until the event
// discriminator has picked a payload shape.
type IncomingMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ScannerPairsPayload is the data of a scanner-pairs full-list refresh.
type ScannerPairsPayload struct {
	Results struct {
		Pairs []ScannerResult `json:"pairs"`
	} `json:"results"`
}

// Swap is one trade print inside a tick event.
type Swap struct {
	PriceToken1Usd  string `json:"priceToken1Usd"`
	AmountToken1Usd string `json:"amountToken1Usd"`
	TokenInAddress  string `json:"tokenInAddress"`
	IsOutlier       bool   `json:"isOutlier"`
}

// TickPayload is the data of a per-pair tick event.
type TickPayload struct {
	Pair struct {
		Pair  string `json:"pair"`
		Token string `json:"token"`
		Chain Chain  `json:"chain"`
	} `json:"pair"`
	Swaps []Swap `json:"swaps"`
}

// PairStatsPayload is the data of a pair-stats audit/social refresh.
type PairStatsPayload struct {
	Pair struct {
		PairAddress              string `json:"pairAddress"`
		MintAuthorityRenounced   bool   `json:"mintAuthorityRenounced"`
		FreezeAuthorityRenounced bool   `json:"freezeAuthorityRenounced"`
		Token1IsHoneypot         bool   `json:"token1IsHoneypot"`
		IsVerified               bool   `json:"isVerified"`
		LinkDiscord              string `json:"linkDiscord"`
		LinkTelegram             string `json:"linkTelegram"`
		LinkTwitter              string `json:"linkTwitter"`
		LinkWebsite              string `json:"linkWebsite"`
		DexPaid                  bool   `json:"dexPaid"`
	} `json:"pair"`
}

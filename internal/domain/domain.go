package domain

import "fmt"

// MarketType selects one of the two simulated markets.
type MarketType string

const (
	MarketCrypto MarketType = "CRYPTO"
	MarketForex  MarketType = "FOREX"
)

var SupportedMarkets = []MarketType{MarketCrypto, MarketForex}

func (m MarketType) IsValid() bool {
	return m == MarketCrypto || m == MarketForex
}

// CryptoAssetID is the fixed asset identifier for the crypto market.
// The forex asset identifier is a user-editable symbol.
const (
	CryptoAssetID      = "BTC/USDT"
	DefaultForexSymbol = "EURUSD"
)

type SignalAction string

const (
	ActionBuy  SignalAction = "BUY"
	ActionSell SignalAction = "SELL"
	ActionHold SignalAction = "HOLD"
)

func (a SignalAction) IsValid() bool {
	return a == ActionBuy || a == ActionSell || a == ActionHold
}

var SupportedTimeframes = []string{"1m", "5m", "15m", "1h"}

func IsSupportedTimeframe(tf string) bool {
	for _, supported := range SupportedTimeframes {
		if tf == supported {
			return true
		}
	}
	return false
}

// HistoryWindowCapacity is the fixed size of each market's rolling
// price window. OracleLookback is how many of the most recent prices
// are handed to the oracle per request.
const (
	HistoryWindowCapacity = 21
	OracleLookback        = 10
)

// PricePoint is one sample of a market's simulated series. Immutable
// once created; Time carries the display-formatted timestamp.
type PricePoint struct {
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

// MarketSignal is a completed trading signal. Owned by the signal log
// after creation; never mutated after insertion.
type MarketSignal struct {
	Timestamp  string       `json:"timestamp"`
	Asset      string       `json:"asset"`
	Timeframe  string       `json:"timeframe"`
	Action     SignalAction `json:"action"`
	Confidence int          `json:"confidence"`
	Reasoning  string       `json:"reasoning"`
	Price      float64      `json:"price"`
}

// SignalDraft is what the oracle returns before the caller stamps
// timestamp and request-time price onto it.
type SignalDraft struct {
	Action     SignalAction `json:"action"`
	Confidence int          `json:"confidence"`
	Reasoning  string       `json:"reasoning"`
}

// Validate enforces the oracle's data contract. A draft that fails
// here is treated the same as a transport failure.
func (d SignalDraft) Validate() error {
	if !d.Action.IsValid() {
		return fmt.Errorf("unrecognized action: %q", d.Action)
	}
	if d.Confidence < 0 || d.Confidence > 100 {
		return fmt.Errorf("confidence %d out of range [0,100]", d.Confidence)
	}
	return nil
}

// MarketSnapshot is the current state of one market for display.
type MarketSnapshot struct {
	Market MarketType `json:"market"`
	Asset  string     `json:"asset"`
	Price  float64    `json:"price"`
}

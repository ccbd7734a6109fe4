package oracle

import (
	"context"

	"yqt-signal-desk/internal/domain"
)

// Request carries the market context gathered at request time. The
// caller trims RecentPrices to the oracle lookback before calling.
type Request struct {
	Asset        string
	CurrentPrice float64
	Timeframe    string
	RecentPrices []float64
}

// Oracle produces a trading signal draft for the given market context.
// It is stateless; any transport, provider, or response-shape problem
// surfaces as a single error the controller treats uniformly.
type Oracle interface {
	GenerateSignal(ctx context.Context, req Request) (domain.SignalDraft, error)
}

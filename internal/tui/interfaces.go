package tui

import (
	"context"

	"yqt-signal-desk/internal/controller"
	"yqt-signal-desk/internal/domain"
)

// MarketQuerier provides simulated market data to the TUI.
type MarketQuerier interface {
	GetMarkets(ctx context.Context) []domain.MarketSnapshot
	GetHistory(ctx context.Context, market domain.MarketType, n int) ([]domain.PricePoint, error)
	SetForexSymbol(ctx context.Context, symbol string) string
}

// SignalQuerier drives the signal request workflow from the TUI.
type SignalQuerier interface {
	RequestSignal(ctx context.Context, market domain.MarketType, timeframe string) (bool, error)
	Status(ctx context.Context) (controller.State, int)
	CurrentSignal(ctx context.Context) (domain.MarketSignal, bool)
}

// LogQuerier provides signal log access to the TUI.
type LogQuerier interface {
	ListLog(ctx context.Context, limit int) []domain.MarketSignal
	ExportLog(ctx context.Context) (filename, content string)
}

// Services bundles all service dependencies injected into the TUI.
type Services struct {
	Markets  MarketQuerier
	Signals  SignalQuerier
	Log      LogQuerier
	Username string
}

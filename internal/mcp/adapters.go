package mcp

import (
	"context"

	"yqt-signal-desk/internal/controller"
	"yqt-signal-desk/internal/domain"
)

// MarketReader exposes read operations for simulated market data.
type MarketReader interface {
	GetMarkets(ctx context.Context) []domain.MarketSnapshot
	GetHistory(ctx context.Context, market domain.MarketType, n int) ([]domain.PricePoint, error)
}

// SignalDesk exposes the signal request workflow and the log.
type SignalDesk interface {
	RequestSignal(ctx context.Context, market domain.MarketType, timeframe string) (bool, error)
	Status(ctx context.Context) (controller.State, int)
	CurrentSignal(ctx context.Context) (domain.MarketSignal, bool)
	ListLog(ctx context.Context, limit int) []domain.MarketSignal
	ExportLog(ctx context.Context) (string, string)
}

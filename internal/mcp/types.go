package mcp

import (
	"fmt"
	"strings"

	"yqt-signal-desk/internal/controller"
	"yqt-signal-desk/internal/domain"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 200
)

type marketsListInput struct{}

type marketsListOutput struct {
	Markets []domain.MarketSnapshot `json:"markets"`
}

type marketHistoryInput struct {
	Market string `json:"market" jsonschema:"market type: CRYPTO or FOREX"`
	Limit  int    `json:"limit,omitempty" jsonschema:"number of points to return, max 21"`
}

type marketHistoryOutput struct {
	Market  domain.MarketType   `json:"market"`
	History []domain.PricePoint `json:"history"`
}

type signalRequestInput struct {
	Market    string `json:"market" jsonschema:"market type: CRYPTO or FOREX"`
	Timeframe string `json:"timeframe" jsonschema:"analysis timeframe: 1m, 5m, 15m, 1h"`
}

type signalRequestOutput struct {
	Accepted          bool             `json:"accepted"`
	State             controller.State `json:"state"`
	CooldownRemaining int              `json:"cooldown_remaining"`
}

type signalStatusInput struct{}

type signalStatusOutput struct {
	State             controller.State     `json:"state"`
	CooldownRemaining int                  `json:"cooldown_remaining"`
	Current           *domain.MarketSignal `json:"current,omitempty"`
}

type signalLogInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"number of entries to return, max 200"`
}

type signalLogOutput struct {
	Signals []domain.MarketSignal `json:"signals"`
}

type signalLogExportInput struct{}

type signalLogExportOutput struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

func normalizeMarket(market string) (domain.MarketType, error) {
	normalized := domain.MarketType(strings.ToUpper(strings.TrimSpace(market)))
	if normalized == "" {
		return "", fmt.Errorf("market is required")
	}
	if !normalized.IsValid() {
		return "", fmt.Errorf("unsupported market: %s", market)
	}
	return normalized, nil
}

func normalizeTimeframe(timeframe string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(timeframe))
	if normalized == "" {
		return "", fmt.Errorf("timeframe is required")
	}
	if !domain.IsSupportedTimeframe(normalized) {
		return "", fmt.Errorf("unsupported timeframe: %s", timeframe)
	}
	return normalized, nil
}

func normalizeHistoryLimit(limit int) (int, error) {
	if limit < 0 || limit > domain.HistoryWindowCapacity {
		return 0, fmt.Errorf("limit must be between 1 and %d", domain.HistoryWindowCapacity)
	}
	return limit, nil
}

func normalizeLogLimit(limit int) int {
	if limit <= 0 {
		return defaultLogLimit
	}
	if limit > maxLogLimit {
		return maxLogLimit
	}
	return limit
}

package mcp

import (
	"testing"

	"yqt-signal-desk/internal/domain"
)

func TestNormalizeMarket(t *testing.T) {
	m, err := normalizeMarket(" crypto ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != domain.MarketCrypto {
		t.Fatalf("expected CRYPTO, got %s", m)
	}

	if _, err := normalizeMarket(""); err == nil {
		t.Fatal("expected missing market error")
	}
	if _, err := normalizeMarket("stocks"); err == nil {
		t.Fatal("expected unsupported market error")
	}
}

func TestNormalizeTimeframe(t *testing.T) {
	tf, err := normalizeTimeframe(" 15M ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tf != "15m" {
		t.Fatalf("expected 15m, got %s", tf)
	}

	if _, err := normalizeTimeframe(""); err == nil {
		t.Fatal("expected missing timeframe error")
	}
	if _, err := normalizeTimeframe("4h"); err == nil {
		t.Fatal("expected unsupported timeframe error")
	}
}

func TestNormalizeHistoryLimit(t *testing.T) {
	limit, err := normalizeHistoryLimit(0)
	if err != nil || limit != 0 {
		t.Fatalf("expected zero passthrough, got %d err=%v", limit, err)
	}

	limit, err = normalizeHistoryLimit(domain.HistoryWindowCapacity)
	if err != nil || limit != domain.HistoryWindowCapacity {
		t.Fatalf("expected full window allowed, got %d err=%v", limit, err)
	}

	if _, err := normalizeHistoryLimit(domain.HistoryWindowCapacity + 1); err == nil {
		t.Fatal("expected limit overflow error")
	}
	if _, err := normalizeHistoryLimit(-1); err == nil {
		t.Fatal("expected negative limit error")
	}
}

func TestNormalizeLogLimit(t *testing.T) {
	if got := normalizeLogLimit(0); got != defaultLogLimit {
		t.Fatalf("expected default limit %d, got %d", defaultLogLimit, got)
	}
	if got := normalizeLogLimit(999); got != maxLogLimit {
		t.Fatalf("expected capped limit %d, got %d", maxLogLimit, got)
	}
	if got := normalizeLogLimit(7); got != 7 {
		t.Fatalf("expected passthrough limit 7, got %d", got)
	}
}

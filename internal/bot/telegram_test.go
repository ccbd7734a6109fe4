package bot

import (
	"context"
	"testing"

	"yqt-signal-desk/internal/controller"
	"yqt-signal-desk/internal/domain"
)

type stubDesk struct {
	snapshots []domain.MarketSnapshot
	current   *domain.MarketSignal
}

func (s *stubDesk) GetMarkets(ctx context.Context) []domain.MarketSnapshot { return s.snapshots }

func (s *stubDesk) GetHistory(ctx context.Context, market domain.MarketType, n int) ([]domain.PricePoint, error) {
	return nil, nil
}

func (s *stubDesk) RequestSignal(ctx context.Context, market domain.MarketType, timeframe string) (bool, error) {
	return false, nil
}

func (s *stubDesk) Status(ctx context.Context) (controller.State, int) {
	return controller.StateIdle, 0
}

func (s *stubDesk) CurrentSignal(ctx context.Context) (domain.MarketSignal, bool) {
	if s.current == nil {
		return domain.MarketSignal{}, false
	}
	return *s.current, true
}

func (s *stubDesk) ListLog(ctx context.Context, limit int) []domain.MarketSignal { return nil }

func (s *stubDesk) ExportLog(ctx context.Context) (string, string) { return "", "" }

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	StartTelegramBot(nil, nil)
}

func TestParseMarketArg(t *testing.T) {
	market, err := parseMarketArg(nil)
	if err != nil || market != domain.MarketCrypto {
		t.Fatalf("expected crypto default, got %s err=%v", market, err)
	}

	market, err = parseMarketArg([]string{"forex"})
	if err != nil || market != domain.MarketForex {
		t.Fatalf("expected forex, got %s err=%v", market, err)
	}

	if _, err := parseMarketArg([]string{"stocks"}); err == nil {
		t.Fatal("expected error for unsupported market")
	}
}

func TestParseSignalArgs(t *testing.T) {
	market, timeframe, err := parseSignalArgs([]string{"crypto", "5M"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if market != domain.MarketCrypto || timeframe != "5m" {
		t.Fatalf("unexpected parse result: %s %s", market, timeframe)
	}

	if _, _, err := parseSignalArgs([]string{"crypto"}); err == nil {
		t.Fatal("expected error for missing timeframe")
	}
	if _, _, err := parseSignalArgs([]string{"stocks", "5m"}); err == nil {
		t.Fatal("expected error for unsupported market")
	}
	if _, _, err := parseSignalArgs([]string{"crypto", "4h"}); err == nil {
		t.Fatal("expected error for unsupported timeframe")
	}
}

func TestChartMarkerOnlyForSignalledMarket(t *testing.T) {
	desk := &stubDesk{
		snapshots: []domain.MarketSnapshot{
			{Market: domain.MarketCrypto, Asset: domain.CryptoAssetID, Price: 55432.21},
			{Market: domain.MarketForex, Asset: "EURUSD", Price: 1.0845},
		},
		current: &domain.MarketSignal{
			Asset:      domain.CryptoAssetID,
			Timeframe:  "5m",
			Action:     domain.ActionBuy,
			Confidence: 72,
		},
	}

	marker := chartMarker(context.Background(), desk, domain.MarketCrypto)
	if marker == nil || marker.Asset != domain.CryptoAssetID {
		t.Fatalf("expected crypto marker, got %+v", marker)
	}

	if marker := chartMarker(context.Background(), desk, domain.MarketForex); marker != nil {
		t.Fatalf("expected no marker on the forex chart, got %+v", marker)
	}

	desk.current = nil
	if marker := chartMarker(context.Background(), desk, domain.MarketCrypto); marker != nil {
		t.Fatalf("expected no marker without a signal, got %+v", marker)
	}
}

func TestFormatSnapshot(t *testing.T) {
	crypto := formatSnapshot(domain.MarketSnapshot{
		Market: domain.MarketCrypto, Asset: "BTC/USDT", Price: 55432.21,
	})
	if crypto != "BTC/USDT: $55432.21" {
		t.Fatalf("unexpected crypto format: %s", crypto)
	}

	forex := formatSnapshot(domain.MarketSnapshot{
		Market: domain.MarketForex, Asset: "EURUSD", Price: 1.0845,
	})
	if forex != "EURUSD: 1.0845" {
		t.Fatalf("unexpected forex format: %s", forex)
	}
}

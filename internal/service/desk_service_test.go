package service

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"yqt-signal-desk/internal/controller"
	"yqt-signal-desk/internal/domain"
	"yqt-signal-desk/internal/journal"
	"yqt-signal-desk/internal/market"
	"yqt-signal-desk/internal/oracle"

	"go.opentelemetry.io/otel/trace"
)

type stubOracle struct {
	draft domain.SignalDraft
}

func (s *stubOracle) GenerateSignal(ctx context.Context, req oracle.Request) (domain.SignalDraft, error) {
	return s.draft, nil
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
}

func newTestDesk() (*DeskService, *journal.Log) {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	sim := market.NewSimulator(fixedNow, rand.New(rand.NewSource(3)))
	log := journal.New()
	orc := &stubOracle{draft: domain.SignalDraft{Action: domain.ActionBuy, Confidence: 72, Reasoning: "momentum breakout"}}
	ctrl := controller.New(tracer, sim, orc, log, controller.DefaultCooldownSecs, fixedNow)
	return NewDeskService(tracer, sim, ctrl, log, fixedNow), log
}

func TestGetMarkets(t *testing.T) {
	desk, _ := newTestDesk()

	snaps := desk.GetMarkets(context.Background())
	if len(snaps) != 2 {
		t.Fatalf("expected 2 markets, got %d", len(snaps))
	}
}

func TestGetHistoryValidation(t *testing.T) {
	desk, _ := newTestDesk()

	points, err := desk.GetHistory(context.Background(), domain.MarketCrypto, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(points))
	}

	full, err := desk.GetHistory(context.Background(), domain.MarketForex, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(full) != domain.HistoryWindowCapacity {
		t.Fatalf("expected full window, got %d", len(full))
	}

	if _, err := desk.GetHistory(context.Background(), domain.MarketType("STOCKS"), 5); err == nil {
		t.Fatal("expected error for unknown market")
	}
}

func TestRequestSignalValidation(t *testing.T) {
	desk, _ := newTestDesk()

	if _, err := desk.RequestSignal(context.Background(), domain.MarketType("STOCKS"), "5m"); err == nil {
		t.Fatal("expected error for unknown market")
	}
	if _, err := desk.RequestSignal(context.Background(), domain.MarketCrypto, "4h"); err == nil {
		t.Fatal("expected error for unsupported timeframe")
	}

	accepted, err := desk.RequestSignal(context.Background(), domain.MarketCrypto, "5m")
	if err != nil || !accepted {
		t.Fatalf("expected accepted request, got accepted=%v err=%v", accepted, err)
	}
}

func TestStatusAndLog(t *testing.T) {
	desk, log := newTestDesk()

	state, remaining := desk.Status(context.Background())
	if state != controller.StateIdle || remaining != 0 {
		t.Fatalf("expected idle status, got %s(%d)", state, remaining)
	}

	desk.RequestSignal(context.Background(), domain.MarketCrypto, "5m")
	deadline := time.Now().Add(time.Second)
	for log.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if log.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", log.Len())
	}

	entries := desk.ListLog(context.Background(), 10)
	if len(entries) != 1 || entries[0].Action != domain.ActionBuy {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	current, ok := desk.CurrentSignal(context.Background())
	if !ok || current.Confidence != 72 {
		t.Fatalf("unexpected current signal: %+v", current)
	}
}

func TestExportLog(t *testing.T) {
	desk, log := newTestDesk()

	filename, content := desk.ExportLog(context.Background())
	if filename != "yqt_signal_history_2024-03-01.txt" {
		t.Fatalf("unexpected filename: %s", filename)
	}
	if content != "" {
		t.Fatalf("expected empty export, got %q", content)
	}

	log.Append(domain.MarketSignal{
		Timestamp: "10:00:00", Asset: "BTC/USDT", Timeframe: "5m",
		Action: domain.ActionBuy, Confidence: 72, Reasoning: "momentum breakout",
	})
	_, content = desk.ExportLog(context.Background())
	if !strings.Contains(content, "BTC/USDT - 5m - BUY (Conf: 72%)") {
		t.Fatalf("unexpected export content: %q", content)
	}
}

func TestSetForexSymbol(t *testing.T) {
	desk, _ := newTestDesk()

	if got := desk.SetForexSymbol(context.Background(), "usdjpy"); got != "USDJPY" {
		t.Fatalf("expected USDJPY, got %s", got)
	}
	snaps := desk.GetMarkets(context.Background())
	if snaps[1].Asset != "USDJPY" {
		t.Fatalf("expected snapshot to carry new symbol, got %s", snaps[1].Asset)
	}
}

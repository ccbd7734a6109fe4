package service

import (
	"context"
	"fmt"
	"time"

	"yqt-signal-desk/internal/controller"
	"yqt-signal-desk/internal/domain"
	"yqt-signal-desk/internal/journal"
	"yqt-signal-desk/internal/market"

	"go.opentelemetry.io/otel/trace"
)

// DeskService fronts the simulator, the request controller, and the
// signal log for every presentation surface (HTTP, TUI, bot, MCP).
type DeskService struct {
	tracer trace.Tracer
	sim    *market.Simulator
	ctrl   *controller.Controller
	log    *journal.Log
	now    func() time.Time
}

func NewDeskService(tracer trace.Tracer, sim *market.Simulator, ctrl *controller.Controller, log *journal.Log, now func() time.Time) *DeskService {
	if now == nil {
		now = time.Now
	}
	return &DeskService{
		tracer: tracer,
		sim:    sim,
		ctrl:   ctrl,
		log:    log,
		now:    now,
	}
}

// GetMarkets returns the current snapshot of both markets.
func (s *DeskService) GetMarkets(ctx context.Context) []domain.MarketSnapshot {
	_, span := s.tracer.Start(ctx, "desk-service.get-markets")
	defer span.End()

	return s.sim.Snapshot()
}

// GetHistory returns the last n window points for a market, oldest
// first. n <= 0 means the full window.
func (s *DeskService) GetHistory(ctx context.Context, marketType domain.MarketType, n int) ([]domain.PricePoint, error) {
	_, span := s.tracer.Start(ctx, "desk-service.get-history")
	defer span.End()

	if !marketType.IsValid() {
		return nil, fmt.Errorf("unsupported market: %s", marketType)
	}
	if n <= 0 {
		n = domain.HistoryWindowCapacity
	}
	return s.sim.RecentHistory(marketType, n), nil
}

// RequestSignal validates the selection and forwards it to the
// controller. accepted=false means the request was dropped because a
// request is in flight or a cooldown is running.
func (s *DeskService) RequestSignal(ctx context.Context, marketType domain.MarketType, timeframe string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "desk-service.request-signal")
	defer span.End()

	if !marketType.IsValid() {
		return false, fmt.Errorf("unsupported market: %s", marketType)
	}
	if !domain.IsSupportedTimeframe(timeframe) {
		return false, fmt.Errorf("unsupported timeframe: %s", timeframe)
	}
	return s.ctrl.RequestSignal(ctx, marketType, timeframe), nil
}

// Status reports the controller state and remaining cooldown seconds.
func (s *DeskService) Status(ctx context.Context) (controller.State, int) {
	_, span := s.tracer.Start(ctx, "desk-service.status")
	defer span.End()

	return s.ctrl.State()
}

// CurrentSignal returns the most recent successful signal, if any.
func (s *DeskService) CurrentSignal(ctx context.Context) (domain.MarketSignal, bool) {
	_, span := s.tracer.Start(ctx, "desk-service.current-signal")
	defer span.End()

	return s.ctrl.CurrentSignal()
}

// ListLog returns log entries, most recent first.
func (s *DeskService) ListLog(ctx context.Context, limit int) []domain.MarketSignal {
	_, span := s.tracer.Start(ctx, "desk-service.list-log")
	defer span.End()

	return s.log.Entries(limit)
}

// ExportLog renders the signal history as text together with its
// download filename.
func (s *DeskService) ExportLog(ctx context.Context) (filename, content string) {
	_, span := s.tracer.Start(ctx, "desk-service.export-log")
	defer span.End()

	return journal.ExportFilename(s.now()), s.log.ExportText()
}

// SetForexSymbol updates the forex asset identifier and returns the
// normalized value.
func (s *DeskService) SetForexSymbol(ctx context.Context, symbol string) string {
	_, span := s.tracer.Start(ctx, "desk-service.set-forex-symbol")
	defer span.End()

	return s.sim.SetForexSymbol(symbol)
}

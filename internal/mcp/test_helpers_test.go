package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"yqt-signal-desk/internal/controller"
	"yqt-signal-desk/internal/domain"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type stubMarketService struct {
	snapshots []domain.MarketSnapshot
	history   map[domain.MarketType][]domain.PricePoint
}

func (s *stubMarketService) GetMarkets(ctx context.Context) []domain.MarketSnapshot {
	return append([]domain.MarketSnapshot(nil), s.snapshots...)
}

func (s *stubMarketService) GetHistory(ctx context.Context, market domain.MarketType, n int) ([]domain.PricePoint, error) {
	points, ok := s.history[market]
	if !ok {
		return nil, fmt.Errorf("unsupported market: %s", market)
	}
	if n > 0 && len(points) > n {
		points = points[len(points)-n:]
	}
	return append([]domain.PricePoint(nil), points...), nil
}

type stubDesk struct {
	accepted bool
	state    controller.State
	cooldown int
	current  *domain.MarketSignal
	entries  []domain.MarketSignal

	lastMarket    domain.MarketType
	lastTimeframe string
	lastLimit     int
}

func (s *stubDesk) RequestSignal(ctx context.Context, market domain.MarketType, timeframe string) (bool, error) {
	s.lastMarket = market
	s.lastTimeframe = timeframe
	return s.accepted, nil
}

func (s *stubDesk) Status(ctx context.Context) (controller.State, int) {
	return s.state, s.cooldown
}

func (s *stubDesk) CurrentSignal(ctx context.Context) (domain.MarketSignal, bool) {
	if s.current == nil {
		return domain.MarketSignal{}, false
	}
	return *s.current, true
}

func (s *stubDesk) ListLog(ctx context.Context, limit int) []domain.MarketSignal {
	s.lastLimit = limit
	entries := s.entries
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return append([]domain.MarketSignal(nil), entries...)
}

func (s *stubDesk) ExportLog(ctx context.Context) (string, string) {
	return "yqt_signal_history_2024-03-01.txt", "[10:00:00] BTC/USDT - 5m - BUY (Conf: 72%) - momentum breakout"
}

func testServer() (*sdkmcp.Server, *stubMarketService, *stubDesk) {
	markets := &stubMarketService{
		snapshots: []domain.MarketSnapshot{
			{Market: domain.MarketCrypto, Asset: "BTC/USDT", Price: 55432.21},
			{Market: domain.MarketForex, Asset: "EURUSD", Price: 1.0845},
		},
		history: map[domain.MarketType][]domain.PricePoint{
			domain.MarketCrypto: {{Time: "11:59", Price: 55430.0}, {Time: "12:00", Price: 55432.21}},
			domain.MarketForex:  {{Time: "11:59", Price: 1.0844}, {Time: "12:00", Price: 1.0845}},
		},
	}
	desk := &stubDesk{
		accepted: true,
		state:    controller.StateIdle,
		entries: []domain.MarketSignal{{
			Timestamp: "10:00:00", Asset: "BTC/USDT", Timeframe: "5m",
			Action: domain.ActionBuy, Confidence: 72, Reasoning: "momentum breakout",
		}},
	}

	srv := NewServer(nil, markets, desk, ServerConfig{RequestTimeout: time.Second})
	return srv, markets, desk
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}

func decodeResourceJSON(result *sdkmcp.ReadResourceResult, out any) error {
	if len(result.Contents) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(result.Contents[0].Text), out)
}

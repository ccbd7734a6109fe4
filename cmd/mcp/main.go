package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"
	"time"

	"yqt-signal-desk/internal/config"
	"yqt-signal-desk/internal/controller"
	"yqt-signal-desk/internal/job"
	"yqt-signal-desk/internal/journal"
	"yqt-signal-desk/internal/market"
	mcpserver "yqt-signal-desk/internal/mcp"
	"yqt-signal-desk/internal/oracle"
	"yqt-signal-desk/internal/service"
	"yqt-signal-desk/pkg/tracing"

	"github.com/joho/godotenv"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultMCPHTTPMaxBodyBytes int64 = 1 << 20 // 1MiB

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initTracerFunc = tracing.InitTracer
	newOracleFunc  = func(cfg *config.Config) oracle.Oracle {
		return oracle.NewOpenAIOracle(cfg.OpenAIAPIKey, cfg.OpenAIModel, time.Duration(cfg.OracleTimeoutSecs)*time.Second)
	}
	newMCPServerFunc        = mcpserver.NewServer
	newMCPHandlerFunc       = mcpserver.NewHTTPTransportHandler
	startPriceTickerFunc    = func(t *job.PriceTicker, ctx context.Context) { go t.Start(ctx) }
	startCooldownTickerFunc = func(t *job.CooldownTicker, ctx context.Context) { go t.Start(ctx) }
	runStdioFunc            = func(ctx context.Context, server *sdkmcp.Server) error {
		return server.Run(ctx, &sdkmcp.StdioTransport{})
	}
	startHTTPServerFunc  = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFn = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	setupSignalNotify    = ossignal.Notify
	waitForSignalFunc    = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	sim := market.NewSimulator(nil, nil)
	sim.SetForexSymbol(cfg.ForexSymbol)
	signalLog := journal.New()
	orc := newOracleFunc(cfg)
	ctrl := controller.New(tracer, sim, orc, signalLog, cfg.CooldownSecs, nil)
	desk := service.NewDeskService(tracer, sim, ctrl, signalLog, nil)

	startPriceTickerFunc(job.NewPriceTicker(sim, time.Duration(cfg.TickSecs)*time.Second), ctx)
	startCooldownTickerFunc(job.NewCooldownTicker(ctrl), ctx)

	mcpSrv := newMCPServerFunc(tracer, desk, desk, mcpserver.ServerConfig{
		RequestTimeout: time.Duration(cfg.MCPRequestTimeoutSecs) * time.Second,
	})

	transport := strings.ToLower(strings.TrimSpace(cfg.MCPTransport))
	switch transport {
	case "", "stdio":
		if err := runStdioFunc(ctx, mcpSrv); err != nil {
			log.Fatalf("mcp stdio server failed: %v", err)
		}
	case "http":
		if err := runHTTPMode(ctx, cancel, cfg, mcpSrv); err != nil {
			log.Fatalf("mcp http server failed: %v", err)
		}
	default:
		log.Fatalf("unsupported MCP_TRANSPORT: %s", cfg.MCPTransport)
	}
}

func runHTTPMode(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, mcpSrv *sdkmcp.Server) error {
	if !cfg.MCPHTTPEnabled {
		return fmt.Errorf("MCP_HTTP_ENABLED must be true when MCP_TRANSPORT=http")
	}
	if strings.TrimSpace(cfg.MCPAuthToken) == "" {
		return fmt.Errorf("MCP_AUTH_TOKEN is required when MCP_TRANSPORT=http")
	}

	handler := newMCPHandlerFunc(mcpSrv, mcpserver.HTTPHandlerConfig{
		AuthToken:       cfg.MCPAuthToken,
		RateLimitPerMin: cfg.MCPRateLimitPerMin,
		MaxBodyBytes:    defaultMCPHTTPMaxBodyBytes,
	})

	addr := net.JoinHostPort(cfg.MCPHTTPBind, fmt.Sprintf("%d", cfg.MCPHTTPPort))
	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Printf("mcp http server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFn(srv, shutdownCtx); err != nil {
		return fmt.Errorf("mcp server forced to shutdown: %w", err)
	}
	return nil
}

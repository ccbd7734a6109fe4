package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"yqt-signal-desk/internal/bot"
	"yqt-signal-desk/internal/config"
	"yqt-signal-desk/internal/domain"
	"yqt-signal-desk/internal/job"
	"yqt-signal-desk/internal/oracle"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestMainBootstrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps()
	defer restore()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

type stubServerOracle struct{}

func (stubServerOracle) GenerateSignal(ctx context.Context, req oracle.Request) (domain.SignalDraft, error) {
	return domain.SignalDraft{Action: domain.ActionHold, Confidence: 50, Reasoning: "test"}, nil
}

func stubServerDeps() func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitTracer := initTracerFunc
	origNewOracle := newOracleFunc
	origStartPriceTicker := startPriceTickerFunc
	origStartCooldownTicker := startCooldownTickerFunc
	origStartTelegram := startTelegramBotFunc
	origNewRouter := newRouterFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			TickSecs:     1,
			CooldownSecs: 1,
			ForexSymbol:  domain.DefaultForexSymbol,
			HTTPBind:     "127.0.0.1",
			HTTPPort:     0,
		}
	}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newOracleFunc = func(*config.Config) oracle.Oracle { return stubServerOracle{} }
	startPriceTickerFunc = func(*job.PriceTicker, context.Context) {}
	startCooldownTickerFunc = func(*job.CooldownTicker, context.Context) {}
	startTelegramBotFunc = func(bot.Desk, bot.ChartRenderer) *bot.AlertDispatcher { return nil }
	newRouterFunc = func(...gin.OptionFunc) *gin.Engine { return gin.New() }
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initTracerFunc = origInitTracer
		newOracleFunc = origNewOracle
		startPriceTickerFunc = origStartPriceTicker
		startCooldownTickerFunc = origStartCooldownTicker
		startTelegramBotFunc = origStartTelegram
		newRouterFunc = origNewRouter
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"yqt-signal-desk/internal/bot"
	"yqt-signal-desk/internal/chart"
	"yqt-signal-desk/internal/config"
	"yqt-signal-desk/internal/controller"
	"yqt-signal-desk/internal/handler"
	"yqt-signal-desk/internal/job"
	"yqt-signal-desk/internal/journal"
	"yqt-signal-desk/internal/market"
	"yqt-signal-desk/internal/oracle"
	"yqt-signal-desk/internal/service"
	"yqt-signal-desk/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "yqt-signal-desk/docs"
)

var (
	loadEnvFunc      = godotenv.Load
	loadConfigFunc   = config.Load
	initTracerFunc   = tracing.InitTracer
	newSimulatorFunc = func() *market.Simulator {
		return market.NewSimulator(nil, nil)
	}
	newOracleFunc = func(cfg *config.Config) oracle.Oracle {
		return oracle.NewOpenAIOracle(cfg.OpenAIAPIKey, cfg.OpenAIModel, time.Duration(cfg.OracleTimeoutSecs)*time.Second)
	}
	newJournalFunc          = journal.New
	newControllerFunc       = controller.New
	newDeskServiceFunc      = service.NewDeskService
	newChartRendererFunc    = chart.NewRenderer
	newPriceTickerFunc      = job.NewPriceTicker
	startPriceTickerFunc    = func(t *job.PriceTicker, ctx context.Context) { go t.Start(ctx) }
	newCooldownTickerFunc   = job.NewCooldownTicker
	startCooldownTickerFunc = func(t *job.CooldownTicker, ctx context.Context) { go t.Start(ctx) }
	startTelegramBotFunc    = bot.StartTelegramBot
	newHandlerFunc          = handler.New
	newRouterFunc           = gin.Default
	setupSignalNotify       = ossignal.Notify
	waitForSignalFunc       = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc     = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc  = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           YQT Signal Desk API
// @version         1.0
// @description     Simulated market feeds with an AI signal oracle.

// @host      localhost:8080
// @BasePath  /
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

	// Build the simulated markets and signal pipeline
	sim := newSimulatorFunc()
	sim.SetForexSymbol(cfg.ForexSymbol)
	signalLog := newJournalFunc()
	orc := newOracleFunc(cfg)
	ctrl := newControllerFunc(tracer, sim, orc, signalLog, cfg.CooldownSecs, nil)
	desk := newDeskServiceFunc(tracer, sim, ctrl, signalLog, nil)
	renderer := newChartRendererFunc()

	// Start background tickers (stopped by ctx cancel)
	priceTicker := newPriceTickerFunc(sim, time.Duration(cfg.TickSecs)*time.Second)
	startPriceTickerFunc(priceTicker, ctx)
	cooldownTicker := newCooldownTickerFunc(ctrl)
	startCooldownTickerFunc(cooldownTicker, ctx)

	// Start Telegram bot and wire its alert feed into the controller
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	if dispatcher := startTelegramBotFunc(desk, renderer); dispatcher != nil {
		ctrl.SetNotifier(dispatcher)
	}

	// Create handlers and routes
	h := newHandlerFunc(tracer, desk, renderer)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("yqt-signal-desk"))
	r.Use(cors.Default())

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    net.JoinHostPort(cfg.HTTPBind, fmt.Sprintf("%d", cfg.HTTPPort)),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

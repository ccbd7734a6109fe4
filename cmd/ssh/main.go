package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"yqt-signal-desk/internal/config"
	"yqt-signal-desk/internal/controller"
	"yqt-signal-desk/internal/job"
	"yqt-signal-desk/internal/journal"
	"yqt-signal-desk/internal/market"
	"yqt-signal-desk/internal/oracle"
	"yqt-signal-desk/internal/service"
	"yqt-signal-desk/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	newOracleFunc  = func(cfg *config.Config) oracle.Oracle {
		return oracle.NewOpenAIOracle(cfg.OpenAIAPIKey, cfg.OpenAIModel, time.Duration(cfg.OracleTimeoutSecs)*time.Second)
	}
	startPriceTickerFunc    = func(t *job.PriceTicker, ctx context.Context) { go t.Start(ctx) }
	startCooldownTickerFunc = func(t *job.CooldownTicker, ctx context.Context) { go t.Start(ctx) }
	listenFunc              = func(s *ssh.Server) error { return s.ListenAndServe() }
	shutdownFunc            = func(s *ssh.Server, ctx context.Context) error { return s.Shutdown(ctx) }
	setupSignalNotify       = ossignal.Notify
	waitForSignalFunc       = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracer := trace.NewNoopTracerProvider().Tracer("ssh")

	sim := market.NewSimulator(nil, nil)
	sim.SetForexSymbol(cfg.ForexSymbol)
	signalLog := journal.New()
	orc := newOracleFunc(cfg)
	ctrl := controller.New(tracer, sim, orc, signalLog, cfg.CooldownSecs, nil)
	desk := service.NewDeskService(tracer, sim, ctrl, signalLog, nil)

	startPriceTickerFunc(job.NewPriceTicker(sim, time.Duration(cfg.TickSecs)*time.Second), ctx)
	startCooldownTickerFunc(job.NewCooldownTicker(ctrl), ctx)

	addr := net.JoinHostPort(cfg.SSHBind, fmt.Sprintf("%d", cfg.SSHPort))
	srv, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithMiddleware(
			bm.Middleware(teaHandler(desk)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("could not create ssh server: %v", err)
	}

	go func() {
		log.Printf("Starting SSH server on %s", addr)
		if err := listenFunc(srv); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("ssh server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownFunc(srv, shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Fatalf("ssh server forced to shutdown: %v", err)
	}
}

// teaHandler builds a per-session TUI sharing the one desk. Every
// connected user sees the same simulated markets and signal log.
func teaHandler(desk *service.DeskService) bm.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		var username string
		if s != nil {
			username = s.User()
		}
		app := tui.NewAppModel(tui.Services{
			Markets:  desk,
			Signals:  desk,
			Log:      desk,
			Username: username,
		})
		return app, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

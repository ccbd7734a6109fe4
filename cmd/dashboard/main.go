package main

import (
	"context"
	"log"
	"os"
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
	runProgramFunc          = func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracer := trace.NewNoopTracerProvider().Tracer("dashboard")

	sim := market.NewSimulator(nil, nil)
	sim.SetForexSymbol(cfg.ForexSymbol)
	signalLog := journal.New()
	orc := newOracleFunc(cfg)
	ctrl := controller.New(tracer, sim, orc, signalLog, cfg.CooldownSecs, nil)
	desk := service.NewDeskService(tracer, sim, ctrl, signalLog, nil)

	startPriceTickerFunc(job.NewPriceTicker(sim, time.Duration(cfg.TickSecs)*time.Second), ctx)
	startCooldownTickerFunc(job.NewCooldownTicker(ctrl), ctx)

	app := tui.NewAppModel(tui.Services{
		Markets:  desk,
		Signals:  desk,
		Log:      desk,
		Username: os.Getenv("USER"),
	})

	if err := runProgramFunc(app); err != nil {
		log.Fatalf("dashboard failed: %v", err)
	}
}

package bot

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"yqt-signal-desk/internal/controller"
	"yqt-signal-desk/internal/domain"
	"yqt-signal-desk/internal/journal"

	tele "gopkg.in/telebot.v3"
)

// Desk is the slice of the desk service the bot needs.
type Desk interface {
	GetMarkets(ctx context.Context) []domain.MarketSnapshot
	GetHistory(ctx context.Context, market domain.MarketType, n int) ([]domain.PricePoint, error)
	RequestSignal(ctx context.Context, market domain.MarketType, timeframe string) (bool, error)
	Status(ctx context.Context) (controller.State, int)
	CurrentSignal(ctx context.Context) (domain.MarketSignal, bool)
	ListLog(ctx context.Context, limit int) []domain.MarketSignal
	ExportLog(ctx context.Context) (string, string)
}

// ChartRenderer draws the price window for /chart replies.
type ChartRenderer interface {
	RenderHistoryChart(points []domain.PricePoint, signal *domain.MarketSignal) ([]byte, error)
}

func StartTelegramBot(desk Desk, renderer ChartRenderer) *AlertDispatcher {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}
	alerts := NewAlertDispatcher(b)

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/price", func(c tele.Context) error {
		snapshots := desk.GetMarkets(context.Background())
		lines := make([]string, 0, len(snapshots))
		for _, s := range snapshots {
			lines = append(lines, formatSnapshot(s))
		}
		return c.Send(strings.Join(lines, "\n"))
	})

	b.Handle("/chart", func(c tele.Context) error {
		market, err := parseMarketArg(c.Args())
		if err != nil {
			return c.Send("Usage: /chart crypto | /chart forex")
		}
		points, err := desk.GetHistory(context.Background(), market, 0)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching history: %v", err))
		}

		data, err := renderer.RenderHistoryChart(points, chartMarker(context.Background(), desk, market))
		if err != nil {
			return c.Send(fmt.Sprintf("Error rendering chart: %v", err))
		}
		photo := &tele.Photo{
			File:    tele.FromReader(bytes.NewReader(data)),
			Caption: string(market) + " price window",
		}
		return c.Send(photo)
	})

	b.Handle("/signal", func(c tele.Context) error {
		market, timeframe, err := parseSignalArgs(c.Args())
		if err != nil {
			return c.Send("Usage: /signal crypto 5m | /signal forex 1h\nTimeframes: " + strings.Join(domain.SupportedTimeframes, ", "))
		}
		accepted, err := desk.RequestSignal(context.Background(), market, timeframe)
		if err != nil {
			return c.Send(fmt.Sprintf("Error: %v", err))
		}
		if !accepted {
			state, remaining := desk.Status(context.Background())
			if state == controller.StateCooldown {
				return c.Send(fmt.Sprintf("On cooldown, %ds remaining.", remaining))
			}
			return c.Send("A signal request is already in flight.")
		}
		return c.Send("Signal requested. Enable /alerts on to get the result here.")
	})

	b.Handle("/status", func(c tele.Context) error {
		state, remaining := desk.Status(context.Background())
		if state == controller.StateCooldown {
			return c.Send(fmt.Sprintf("State: %s (%ds remaining)", state, remaining))
		}
		return c.Send(fmt.Sprintf("State: %s", state))
	})

	b.Handle("/log", func(c tele.Context) error {
		entries := desk.ListLog(context.Background(), 5)
		if len(entries) == 0 {
			return c.Send("No signals logged yet.")
		}
		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, journal.FormatEntry(e))
		}
		return c.Send(strings.Join(lines, "\n"))
	})

	b.Handle("/export", func(c tele.Context) error {
		filename, content := desk.ExportLog(context.Background())
		if content == "" {
			return c.Send("No signals logged yet.")
		}
		doc := &tele.Document{
			File:     tele.FromReader(strings.NewReader(content)),
			FileName: filename,
		}
		return c.Send(doc)
	})

	b.Handle("/alerts", func(c tele.Context) error {
		chat := c.Chat()
		if chat == nil {
			return c.Send("Unable to detect chat")
		}

		mode, err := parseAlertMode(c.Args())
		if err != nil {
			return c.Send("Usage: /alerts on | /alerts off | /alerts status")
		}

		switch mode {
		case "on":
			if alerts.Subscribe(chat.ID) {
				return c.Send("Signal alerts enabled for this chat.")
			}
			return c.Send("Signal alerts are already enabled for this chat.")
		case "off":
			if alerts.Unsubscribe(chat.ID) {
				return c.Send("Signal alerts disabled for this chat.")
			}
			return c.Send("Signal alerts are already disabled for this chat.")
		default:
			if alerts.IsSubscribed(chat.ID) {
				return c.Send("Alerts status: ON")
			}
			return c.Send("Alerts status: OFF")
		}
	})

	log.Println("Telegram bot started")
	go b.Start()
	return alerts
}

// chartMarker returns the current signal only when it belongs to the
// charted market's asset.
func chartMarker(ctx context.Context, desk Desk, market domain.MarketType) *domain.MarketSignal {
	sig, ok := desk.CurrentSignal(ctx)
	if !ok {
		return nil
	}
	for _, s := range desk.GetMarkets(ctx) {
		if s.Market == market && s.Asset == sig.Asset {
			return &sig
		}
	}
	return nil
}

func parseMarketArg(args []string) (domain.MarketType, error) {
	if len(args) == 0 {
		return domain.MarketCrypto, nil
	}
	market := domain.MarketType(strings.ToUpper(strings.TrimSpace(args[0])))
	if !market.IsValid() {
		return "", fmt.Errorf("unsupported market: %s", args[0])
	}
	return market, nil
}

func parseSignalArgs(args []string) (domain.MarketType, string, error) {
	if len(args) != 2 {
		return "", "", fmt.Errorf("expected market and timeframe")
	}
	market := domain.MarketType(strings.ToUpper(strings.TrimSpace(args[0])))
	if !market.IsValid() {
		return "", "", fmt.Errorf("unsupported market: %s", args[0])
	}
	timeframe := strings.ToLower(strings.TrimSpace(args[1]))
	if !domain.IsSupportedTimeframe(timeframe) {
		return "", "", fmt.Errorf("unsupported timeframe: %s", args[1])
	}
	return market, timeframe, nil
}

func formatSnapshot(s domain.MarketSnapshot) string {
	if s.Market == domain.MarketForex {
		return fmt.Sprintf("%s: %.4f", s.Asset, s.Price)
	}
	return fmt.Sprintf("%s: $%.2f", s.Asset, s.Price)
}

package controller

import (
	"context"
	"log"
	"sync"
	"time"

	"yqt-signal-desk/internal/domain"
	"yqt-signal-desk/internal/oracle"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// State of the signal request machine.
type State string

const (
	StateIdle       State = "IDLE"
	StateRequesting State = "REQUESTING"
	StateCooldown   State = "COOLDOWN"
)

const (
	DefaultCooldownSecs = 30
	signalTimeLayout    = "15:04:05"
)

// PriceSource is what the controller reads from the simulator at
// request time.
type PriceSource interface {
	Asset(market domain.MarketType) string
	CurrentPrice(market domain.MarketType) (float64, error)
	RecentHistory(market domain.MarketType, n int) []domain.PricePoint
}

// SignalSink receives every successful signal.
type SignalSink interface {
	Append(sig domain.MarketSignal)
}

// Notifier is told about each new signal after it is logged. Optional.
type Notifier interface {
	NotifySignal(ctx context.Context, sig domain.MarketSignal)
}

// Controller enforces the request workflow: at most one oracle call in
// flight, a mandatory cooldown after every attempt, and an append per
// success. All transitions happen under one mutex; the guard on
// RequestSignal is the single-flight mechanism.
type Controller struct {
	tracer       trace.Tracer
	prices       PriceSource
	oracle       oracle.Oracle
	sink         SignalSink
	notifier     Notifier
	cooldownSecs int
	now          func() time.Time

	mu        sync.Mutex
	state     State
	remaining int
	current   *domain.MarketSignal
}

func New(tracer trace.Tracer, prices PriceSource, orc oracle.Oracle, sink SignalSink, cooldownSecs int, now func() time.Time) *Controller {
	if cooldownSecs <= 0 {
		cooldownSecs = DefaultCooldownSecs
	}
	if now == nil {
		now = time.Now
	}
	return &Controller{
		tracer:       tracer,
		prices:       prices,
		oracle:       orc,
		sink:         sink,
		cooldownSecs: cooldownSecs,
		now:          now,
		state:        StateIdle,
	}
}

// SetNotifier attaches an optional alert sink for new signals. Must be
// called before the controller starts handling requests.
func (c *Controller) SetNotifier(n Notifier) {
	c.notifier = n
}

// State returns the current state and, when in cooldown, the seconds
// remaining.
func (c *Controller) State() (State, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.remaining
}

// CurrentSignal returns the most recent successful signal, if any.
// This is a display view; the log owns the entry.
func (c *Controller) CurrentSignal() (domain.MarketSignal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return domain.MarketSignal{}, false
	}
	return *c.current, true
}

// RequestSignal starts a signal request for the selected market and
// timeframe. It is a no-op returning false unless the controller is
// idle and an oracle is configured. Inputs are captured at call time;
// later selection changes do not affect the in-flight request.
func (c *Controller) RequestSignal(ctx context.Context, market domain.MarketType, timeframe string) bool {
	if c.oracle == nil {
		log.Println("signal request ignored: no oracle configured")
		return false
	}

	price, err := c.prices.CurrentPrice(market)
	if err != nil {
		log.Printf("signal request ignored: %v", err)
		return false
	}
	asset := c.prices.Asset(market)
	recent := c.prices.RecentHistory(market, domain.OracleLookback)
	recentPrices := make([]float64, len(recent))
	for i, p := range recent {
		recentPrices[i] = p.Price
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return false
	}
	c.state = StateRequesting
	c.mu.Unlock()

	// The caller's context ends with its request (HTTP handlers cancel
	// on return); the in-flight oracle call must not be cancelled with it.
	go c.callOracle(context.WithoutCancel(ctx), oracle.Request{
		Asset:        asset,
		CurrentPrice: price,
		Timeframe:    timeframe,
		RecentPrices: recentPrices,
	})
	return true
}

func (c *Controller) callOracle(ctx context.Context, req oracle.Request) {
	ctx, span := c.tracer.Start(ctx, "controller.request-signal")
	span.SetAttributes(
		attribute.String("asset", req.Asset),
		attribute.String("timeframe", req.Timeframe),
	)
	defer span.End()

	draft, err := c.oracle.GenerateSignal(ctx, req)
	if err != nil {
		span.RecordError(err)
	}
	c.settle(ctx, req, draft, err)
}

// settle leaves REQUESTING no matter what the oracle did. A failed
// attempt still consumes a cooldown cycle; the previous current signal
// stays on display.
func (c *Controller) settle(ctx context.Context, req oracle.Request, draft domain.SignalDraft, oracleErr error) {
	if oracleErr == nil {
		oracleErr = draft.Validate()
	}

	var sig domain.MarketSignal
	if oracleErr == nil {
		sig = domain.MarketSignal{
			Timestamp:  c.now().Format(signalTimeLayout),
			Asset:      req.Asset,
			Timeframe:  req.Timeframe,
			Action:     draft.Action,
			Confidence: draft.Confidence,
			Reasoning:  draft.Reasoning,
			Price:      req.CurrentPrice,
		}
	}

	c.mu.Lock()
	if oracleErr == nil {
		c.current = &sig
	}
	c.state = StateCooldown
	c.remaining = c.cooldownSecs
	c.mu.Unlock()

	if oracleErr != nil {
		log.Printf("signal request for %s failed: %v", req.Asset, oracleErr)
		return
	}

	c.sink.Append(sig)
	if c.notifier != nil {
		c.notifier.NotifySignal(ctx, sig)
	}
}

// Tick advances the cooldown countdown by one second. Exactly
// cooldownSecs ticks after entering cooldown the controller is idle
// again. Ticks in any other state do nothing.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCooldown {
		return
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.state = StateIdle
	}
}

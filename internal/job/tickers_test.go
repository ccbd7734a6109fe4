package job

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingTicker struct {
	mu    sync.Mutex
	ticks int
}

func (c *countingTicker) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks++
}

func (c *countingTicker) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

func eventuallyTicks(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met")
}

func TestPriceTickerAdvancesSimulator(t *testing.T) {
	t.Parallel()

	sim := &countingTicker{}
	ticker := NewPriceTicker(sim, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go ticker.Start(ctx)

	eventuallyTicks(t, func() bool { return sim.count() >= 3 })
	cancel()
}

func TestPriceTickerWithoutSimulatorWaitsForCancel(t *testing.T) {
	t.Parallel()

	ticker := NewPriceTicker(nil, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		ticker.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected Start to return after cancel")
	}
}

func TestCooldownTickerDrivesController(t *testing.T) {
	t.Parallel()

	ctrl := &countingTicker{}
	ticker := NewCooldownTicker(ctrl)
	ticker.interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	go ticker.Start(ctx)

	eventuallyTicks(t, func() bool { return ctrl.count() >= 2 })
	cancel()
}

package job

import (
	"context"
	"log"
	"time"
)

// Ticking is the slice of the simulator the price ticker drives.
type Ticking interface {
	Tick()
}

// PriceTicker advances the simulated markets on a fixed interval.
type PriceTicker struct {
	sim      Ticking
	interval time.Duration
}

func NewPriceTicker(sim Ticking, interval time.Duration) *PriceTicker {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &PriceTicker{sim: sim, interval: interval}
}

// Start runs the tick loop. Blocks until ctx is cancelled.
func (p *PriceTicker) Start(ctx context.Context) {
	if p.sim == nil {
		log.Println("Price ticker disabled: no simulator")
		<-ctx.Done()
		return
	}

	log.Printf("Price ticker starting (every %s)...", p.interval)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Price ticker stopped")
			return
		case <-ticker.C:
			p.sim.Tick()
		}
	}
}

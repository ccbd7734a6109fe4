package job

import (
	"context"
	"log"
	"time"
)

// Cooling is the slice of the controller the cooldown ticker drives.
type Cooling interface {
	Tick()
}

// CooldownTicker decrements the signal cooldown once per second.
type CooldownTicker struct {
	ctrl     Cooling
	interval time.Duration
}

func NewCooldownTicker(ctrl Cooling) *CooldownTicker {
	return &CooldownTicker{ctrl: ctrl, interval: time.Second}
}

// Start runs the countdown loop. Blocks until ctx is cancelled.
func (c *CooldownTicker) Start(ctx context.Context) {
	if c.ctrl == nil {
		log.Println("Cooldown ticker disabled: no controller")
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Cooldown ticker stopped")
			return
		case <-ticker.C:
			c.ctrl.Tick()
		}
	}
}

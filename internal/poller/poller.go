// Package poller runs a feed service's tick on a repeating delay. The next
// tick is scheduled only after the current one has fully completed, so a slow
// tick can never overlap the next.
package poller

import (
	"context"
	"fmt"
	"log"
	"time"
)

// MinInterval is the floor for polling intervals. Attempts to set a smaller
// value are rejected and the previous interval is kept.
const MinInterval = time.Minute

type TickFunc func(ctx context.Context) error

type ErrorReporter interface {
	Notify(msg string)
}

type Poller struct {
	name     string
	interval time.Duration
	tick     TickFunc
	reporter ErrorReporter
}

func New(name string, tick TickFunc, reporter ErrorReporter) *Poller {
	return &Poller{
		name:     name,
		interval: MinInterval,
		tick:     tick,
		reporter: reporter,
	}
}

func (p *Poller) SetInterval(interval time.Duration) {
	if interval < MinInterval {
		log.Printf("[ERROR] %s poller: interval %s is below the %s floor, keeping %s",
			p.name, interval, MinInterval, p.interval)
		return
	}
	p.interval = interval
}

func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run ticks immediately, then reschedules after each completed tick until the
// context is cancelled. Tick errors are logged and reported, never fatal:
// the next tick is always scheduled.
func (p *Poller) Run(ctx context.Context) error {
	log.Printf("[INFO] %s poller started, interval %s", p.name, p.interval)

	for {
		p.runTick(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.interval):
		}
	}
}

func (p *Poller) runTick(ctx context.Context) {
	if err := p.tick(ctx); err != nil {
		log.Printf("[ERROR] %s poller: tick failed: %v", p.name, err)
		if p.reporter != nil {
			p.reporter.Notify(fmt.Sprintf("%s: tick failed: %v", p.name, err))
		}
	}
}

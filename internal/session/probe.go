package session

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultProbeInterval is how often the connectivity indicator refreshes.
const DefaultProbeInterval = 30 * time.Second

// StatusChecker is what a Probe polls.
type StatusChecker interface {
	Status(ctx context.Context) (*Status, error)
}

// Probe polls the relay status independently of chat traffic.
type Probe struct {
	checker  StatusChecker
	interval time.Duration
	report   func(connected bool, st *Status, err error)
}

func NewProbe(checker StatusChecker, interval time.Duration, report func(bool, *Status, error)) *Probe {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &Probe{checker: checker, interval: interval, report: report}
}

// Check runs one probe and reports the result.
func (p *Probe) Check(ctx context.Context) bool {
	st, err := p.checker.Status(ctx)
	connected := err == nil && st != nil && st.Connected()
	if err != nil {
		log.Debug().Err(err).Msg("status probe failed")
	}
	if p.report != nil {
		p.report(connected, st, err)
	}
	return connected
}

// Run checks once right away, then every interval until ctx is done.
func (p *Probe) Run(ctx context.Context) {
	p.Check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}

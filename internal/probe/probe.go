// Package probe periodically checks that the table-management API answers,
// so /health can report it without calling the API on every request.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Pinger is anything that can tell whether the API is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the outcome of the latest check.
type Status struct {
	Reachable bool       `json:"reachable"`
	CheckedAt *time.Time `json:"checkedAt,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Probe runs Ping on a cron schedule and remembers the last result.
type Probe struct {
	pinger  Pinger
	timeout time.Duration
	logger  *slog.Logger
	cron    *cron.Cron
	now     func() time.Time

	mu     sync.RWMutex
	status Status
}

// New schedules a probe. schedule uses the standard cron syntax, descriptors
// such as "@every 30s" included.
func New(pinger Pinger, schedule string, timeout time.Duration, logger *slog.Logger) (*Probe, error) {
	p := &Probe{
		pinger:  pinger,
		timeout: timeout,
		logger:  logger,
		cron:    cron.New(),
		now:     time.Now,
	}
	if _, err := p.cron.AddFunc(schedule, func() { p.Check(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid probe schedule %q: %w", schedule, err)
	}
	return p, nil
}

// Start runs a first check in the background and starts the schedule.
func (p *Probe) Start() {
	go p.Check(context.Background())
	p.cron.Start()
	p.logger.Info("backend probe started", "entries", len(p.cron.Entries()))
}

// Stop halts the schedule and waits for a running check, at most until ctx ends.
func (p *Probe) Stop(ctx context.Context) {
	done := p.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		p.logger.Warn("backend probe did not stop in time")
	}
}

// Check pings the API once and records the result.
func (p *Probe) Check(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	checkedAt := p.now().UTC()
	s := Status{Reachable: true, CheckedAt: &checkedAt}
	if err := p.pinger.Ping(ctx); err != nil {
		s.Reachable = false
		s.Error = err.Error()
	}

	p.mu.Lock()
	changed := p.status.CheckedAt == nil || p.status.Reachable != s.Reachable
	p.status = s
	p.mu.Unlock()

	if changed {
		if s.Reachable {
			p.logger.Info("backend reachable")
		} else {
			p.logger.Warn("backend unreachable", "error", s.Error)
		}
	}
	return s
}

// Status returns the last recorded result. Before the first check it
// reports unreachable with no timestamp.
func (p *Probe) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

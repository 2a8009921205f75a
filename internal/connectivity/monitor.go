// Package connectivity observes reachability of the remote service.
// The monitor is the sole trigger for the scheduler's "connectivity
// regained" transition. Online transitions are debounced to keep an
// unstable link from thrashing the queue drain; offline transitions
// take effect immediately.
package connectivity

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/clinicore/syncengine/internal/clock"
)

//go:generate moq -out monitor_mock.go . Monitor

// Prober checks whether the remote service answers. Satisfied by
// remote.ClientAPI.
type Prober interface {
	Health(ctx context.Context) error
}

// Event is one reachability transition.
type Event struct {
	At     time.Time
	Online bool
}

// Monitor exposes the reachability signal and its transition stream
type Monitor interface {
	// Online reports current reachability
	Online() bool

	// Events returns the transition stream. Slow consumers drop
	// events; the boolean signal stays authoritative.
	Events() <-chan Event

	// Run polls until ctx is cancelled
	Run(ctx context.Context)
}

type monitor struct {
	prober        Prober
	clk           clock.Clock
	logger        *slog.Logger
	events        chan Event
	interval      time.Duration
	probeTimeout  time.Duration
	confirmations int
	online        atomic.Bool
}

// Config controls the polling cadence and the debounce window.
type Config struct {
	// Interval between probes
	Interval time.Duration
	// ProbeTimeout bounds one probe
	ProbeTimeout time.Duration
	// Confirmations is the number of consecutive successful probes
	// required before reporting online
	Confirmations int
}

// DefaultConfig returns the stock monitor settings: probe every 15s,
// 5s per probe, two consecutive successes to confirm online.
func DefaultConfig() Config {
	return Config{
		Interval:      15 * time.Second,
		ProbeTimeout:  5 * time.Second,
		Confirmations: 2,
	}
}

// NewMonitor creates a new connectivity monitor. The monitor starts
// offline until probes confirm otherwise.
func NewMonitor(prober Prober, cfg Config, clk clock.Clock, logger *slog.Logger) Monitor {
	if cfg.Interval <= 0 {
		cfg = DefaultConfig()
	}
	if cfg.Confirmations < 1 {
		cfg.Confirmations = 1
	}
	return &monitor{
		prober:        prober,
		clk:           clk,
		logger:        logger,
		events:        make(chan Event, 16),
		interval:      cfg.Interval,
		probeTimeout:  cfg.ProbeTimeout,
		confirmations: cfg.Confirmations,
	}
}

// Online reports current reachability
func (m *monitor) Online() bool {
	return m.online.Load()
}

// Events returns the transition stream
func (m *monitor) Events() <-chan Event {
	return m.events
}

// Run polls until ctx is cancelled
func (m *monitor) Run(ctx context.Context) {
	successes := 0

	for {
		m.probe(ctx, &successes)

		select {
		case <-ctx.Done():
			return
		case <-m.clk.After(m.interval):
		}
	}
}

func (m *monitor) probe(ctx context.Context, successes *int) {
	probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	err := m.prober.Health(probeCtx)
	cancel()

	if err != nil {
		*successes = 0
		if m.online.CompareAndSwap(true, false) {
			m.logger.Warn("remote service unreachable", "error", err)
			m.emit(Event{At: m.clk.Now(), Online: false})
		}
		return
	}

	*successes++
	if *successes >= m.confirmations && m.online.CompareAndSwap(false, true) {
		m.logger.Info("remote service reachable", "confirmations", *successes)
		m.emit(Event{At: m.clk.Now(), Online: true})
	}
}

// emit delivers a transition without blocking the poll loop
func (m *monitor) emit(ev Event) {
	select {
	case m.events <- ev:
	default:
		m.logger.Debug("dropped connectivity event", "online", ev.Online)
	}
}

package connectivity

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/syncengine/internal/clock"
)

type fakeProber struct {
	err error
}

func (p *fakeProber) Health(ctx context.Context) error {
	return p.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func newTestMonitor(prober Prober) *monitor {
	clk := clock.NewFake(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	cfg := Config{
		Interval:      15 * time.Second,
		ProbeTimeout:  5 * time.Second,
		Confirmations: 2,
	}
	return NewMonitor(prober, cfg, clk, testLogger()).(*monitor)
}

func TestMonitor_StartsOffline(t *testing.T) {
	m := newTestMonitor(&fakeProber{})
	assert.False(t, m.Online())
}

func TestMonitor_OnlineRequiresConfirmations(t *testing.T) {
	prober := &fakeProber{}
	m := newTestMonitor(prober)
	ctx := context.Background()

	successes := 0

	// One successful probe is not enough to report online
	m.probe(ctx, &successes)
	assert.False(t, m.Online())
	select {
	case <-m.Events():
		t.Fatal("unexpected transition event")
	default:
	}

	// The second consecutive success confirms
	m.probe(ctx, &successes)
	assert.True(t, m.Online())

	select {
	case ev := <-m.Events():
		assert.True(t, ev.Online)
	default:
		t.Fatal("expected an online transition event")
	}
}

func TestMonitor_OfflineIsImmediate(t *testing.T) {
	prober := &fakeProber{}
	m := newTestMonitor(prober)
	ctx := context.Background()

	successes := 0
	m.probe(ctx, &successes)
	m.probe(ctx, &successes)
	require.True(t, m.Online())
	<-m.Events()

	// A single failure flips offline with no debounce
	prober.err = errors.New("connection refused")
	m.probe(ctx, &successes)
	assert.False(t, m.Online())

	select {
	case ev := <-m.Events():
		assert.False(t, ev.Online)
	default:
		t.Fatal("expected an offline transition event")
	}
}

func TestMonitor_FailureResetsDebounce(t *testing.T) {
	prober := &fakeProber{}
	m := newTestMonitor(prober)
	ctx := context.Background()

	successes := 0
	m.probe(ctx, &successes)
	require.False(t, m.Online())

	// A failure in between restarts the confirmation count
	prober.err = errors.New("timeout")
	m.probe(ctx, &successes)

	prober.err = nil
	m.probe(ctx, &successes)
	assert.False(t, m.Online())

	m.probe(ctx, &successes)
	assert.True(t, m.Online())
}

func TestMonitor_FlappingLinkEmitsNoSpuriousOnline(t *testing.T) {
	prober := &fakeProber{}
	m := newTestMonitor(prober)
	ctx := context.Background()

	successes := 0
	for i := 0; i < 5; i++ {
		prober.err = nil
		m.probe(ctx, &successes)
		prober.err = errors.New("flap")
		m.probe(ctx, &successes)
	}

	assert.False(t, m.Online())
	select {
	case ev := <-m.Events():
		t.Fatalf("unexpected event: online=%v", ev.Online)
	default:
	}
}

func TestMonitor_RunStopsOnCancel(t *testing.T) {
	m := newTestMonitor(&fakeProber{err: errors.New("unreachable")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}
}

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFake_Now(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	clk := NewFake(start)

	assert.True(t, clk.Now().Equal(start))

	clk.Advance(time.Minute)
	assert.True(t, clk.Now().Equal(start.Add(time.Minute)))
}

func TestFake_After(t *testing.T) {
	clk := NewFake(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	ch := clk.After(time.Minute)
	select {
	case <-ch:
		t.Fatal("fired before the deadline")
	default:
	}

	clk.Advance(30 * time.Second)
	select {
	case <-ch:
		t.Fatal("fired before the deadline")
	default:
	}

	clk.Advance(30 * time.Second)
	select {
	case <-ch:
	default:
		t.Fatal("did not fire at the deadline")
	}
}

func TestFake_After_ZeroFiresImmediately(t *testing.T) {
	clk := NewFake(time.Now())

	select {
	case <-clk.After(0):
	default:
		t.Fatal("zero duration did not fire immediately")
	}
}

func TestFake_Advance_FiresInDeadlineOrder(t *testing.T) {
	clk := NewFake(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	late := clk.After(2 * time.Minute)
	early := clk.After(time.Minute)

	clk.Advance(5 * time.Minute)

	earlyAt := <-early
	lateAt := <-late
	require.True(t, earlyAt.Before(lateAt))
}

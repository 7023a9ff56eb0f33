package clock_test

import (
	"testing"
	"time"

	"ntask/internal/clock"
)

func TestFixed_Today(t *testing.T) {
	c := clock.Fixed(time.Date(2026, 2, 20, 23, 59, 0, 0, time.Local))
	if got := c.Today(); got != "2026-02-20" {
		t.Errorf("expected 2026-02-20, got %s", got)
	}
}

func TestResolve(t *testing.T) {
	c := clock.Fixed(time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local))

	if got := c.Resolve("today"); got != "2026-03-01" {
		t.Errorf("expected today to resolve, got %s", got)
	}
	if got := c.Resolve("2025-12-31"); got != "2025-12-31" {
		t.Errorf("expected literal date unchanged, got %s", got)
	}
	if got := c.Resolve(""); got != "" {
		t.Errorf("expected empty unchanged, got %s", got)
	}
}

func TestNilClock_UsesSystemTime(t *testing.T) {
	var c clock.Clock
	if got := c.Today(); got != time.Now().Format(clock.DateLayout) {
		// Midnight rollover between the two calls is the only way this differs.
		t.Logf("nil clock returned %s", got)
	}
	if c.Now().IsZero() {
		t.Error("nil clock returned zero time")
	}
}

package orchestrator

import (
	"strings"
	"testing"
	"time"
)

func TestBuildTimeContext(t *testing.T) {
	// Wednesday 2025-01-08
	now := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	ctx := buildTimeContext("UTC", now)

	for _, want := range []string{
		"Today: 2025-01-08 (Wednesday)",
		"This week: 2025-01-06 to 2025-01-12",
		"Tomorrow: 2025-01-09",
	} {
		if !strings.Contains(ctx, want) {
			t.Errorf("missing %q in context:\n%s", want, ctx)
		}
	}
}

func TestBuildTimeContextSundayWeek(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday.
	now := time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC)
	ctx := buildTimeContext("UTC", now)

	if !strings.Contains(ctx, "This week: 2025-01-06 to 2025-01-12") {
		t.Errorf("Sunday week boundary wrong:\n%s", ctx)
	}
}

func TestBuildTimeContextBadTimezone(t *testing.T) {
	now := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	ctx := buildTimeContext("Mars/Olympus", now)

	// Falls back to UTC rather than failing.
	if !strings.Contains(ctx, "2025-01-08") {
		t.Errorf("bad timezone should fall back to UTC:\n%s", ctx)
	}
}

package usecase

import (
	"context"
	"testing"
	"time"

	"student-calendar-assistant/internal/schedule"
	"student-calendar-assistant/pkg/gcalendar"
)

func testSearcher(cal *mockCalendar) *bruteForceSearcher {
	cfg := SearchConfig{CalendarID: "primary"}
	cfg.applyDefaults()
	return &bruteForceSearcher{calendar: cal, cfg: cfg}
}

func originalSlot() schedule.AlternativeSlot {
	return schedule.AlternativeSlot{
		Start: time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC),
	}
}

func TestFindSlotsOrdering(t *testing.T) {
	searcher := testSearcher(&mockCalendar{})

	slots, err := searcher.FindSlots(context.Background(), originalSlot(), testWindow(), 5)
	if err != nil {
		t.Fatalf("FindSlots: %v", err)
	}
	if len(slots) != 5 {
		t.Fatalf("expected 5 slots, got %d", len(slots))
	}

	// Best first, and with a free calendar the nearest candidate is the
	// very next step on the same day.
	want := time.Date(2025, 1, 8, 9, 30, 0, 0, time.UTC)
	if !slots[0].Start.Equal(want) {
		t.Errorf("best slot: got %v, want %v", slots[0].Start, want)
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Score > slots[i-1].Score {
			t.Errorf("slots not ordered by score: %+v", slots)
		}
		if slots[i].Start.Day() != 8 {
			t.Errorf("same-day candidates should outrank other days: %+v", slots[i])
		}
	}
}

func TestFindSlotsSkipsBusyIntervals(t *testing.T) {
	cal := &mockCalendar{
		busy: []gcalendar.BusyInterval{
			{
				Start: time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC),
			},
		},
	}
	searcher := testSearcher(cal)

	slots, err := searcher.FindSlots(context.Background(), originalSlot(), testWindow(), 5)
	if err != nil {
		t.Fatalf("FindSlots: %v", err)
	}
	for _, slot := range slots {
		if intervalsOverlap(slot.Start, slot.End,
			cal.busy[0].Start, cal.busy[0].End) {
			t.Errorf("slot overlaps busy interval: %+v", slot)
		}
	}
}

func TestFindSlotsExcludesOriginal(t *testing.T) {
	searcher := testSearcher(&mockCalendar{})

	slots, err := searcher.FindSlots(context.Background(), originalSlot(), testWindow(), 50)
	if err != nil {
		t.Fatalf("FindSlots: %v", err)
	}
	for _, slot := range slots {
		if slot.Start.Equal(originalSlot().Start) {
			t.Errorf("original slot must not be suggested: %+v", slot)
		}
	}
}

func TestFindSlotsStaysInsideSemester(t *testing.T) {
	searcher := testSearcher(&mockCalendar{})

	// Original sits right at the start of the semester; no candidate
	// may land before it.
	original := schedule.AlternativeSlot{
		Start: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
	}
	slots, err := searcher.FindSlots(context.Background(), original, testWindow(), 50)
	if err != nil {
		t.Fatalf("FindSlots: %v", err)
	}
	semesterStart := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	for _, slot := range slots {
		if slot.Start.Before(semesterStart) {
			t.Errorf("slot before semester start: %+v", slot)
		}
	}
}

package datemath

import (
	"testing"
	"time"
)

func TestNewParser(t *testing.T) {
	if _, err := NewParser("Europe/Brussels"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewParser("Not/AZone"); err == nil {
		t.Fatal("expected error for invalid timezone")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"09:00", 9, 0, false},
		{"23:59", 23, 59, false},
		{" 14:30 ", 14, 30, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"9", 0, 0, true},
		{"ab:cd", 0, 0, true},
	}

	for _, tt := range tests {
		c, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if c.Hour != tt.hour || c.Minute != tt.minute {
			t.Errorf("ParseClock(%q) = %v, want %02d:%02d", tt.in, c, tt.hour, tt.minute)
		}
	}
}

func TestFirstOnOrAfter(t *testing.T) {
	p, _ := NewParser("Europe/Brussels")

	// 2025-01-06 is a Monday.
	monday, err := p.ParseDate("2025-01-06")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}

	wed := p.FirstOnOrAfter(monday, time.Wednesday)
	if got := wed.Format(DateFormat); got != "2025-01-08" {
		t.Errorf("first wednesday on/after monday = %s, want 2025-01-08", got)
	}

	// Same weekday means distance zero.
	mon := p.FirstOnOrAfter(monday, time.Monday)
	if got := mon.Format(DateFormat); got != "2025-01-06" {
		t.Errorf("first monday on/after monday = %s, want 2025-01-06", got)
	}

	// Wraparound: Sunday is six days forward.
	sun := p.FirstOnOrAfter(monday, time.Sunday)
	if got := sun.Format(DateFormat); got != "2025-01-12" {
		t.Errorf("first sunday on/after monday = %s, want 2025-01-12", got)
	}
}

func TestAtAndEndOfDay(t *testing.T) {
	p, _ := NewParser("Europe/Brussels")
	day, _ := p.ParseDate("2025-01-08")

	at := p.At(day, Clock{Hour: 9, Minute: 30})
	if at.Hour() != 9 || at.Minute() != 30 {
		t.Errorf("At = %v, want 09:30", at)
	}
	if at.Location().String() != "Europe/Brussels" {
		t.Errorf("At location = %v", at.Location())
	}

	eod := p.EndOfDay(day)
	if eod.Hour() != 23 || eod.Minute() != 59 || eod.Second() != 59 {
		t.Errorf("EndOfDay = %v", eod)
	}
}

func TestParseRelative(t *testing.T) {
	p, _ := NewParser("UTC")
	base := time.Date(2025, 1, 6, 15, 4, 5, 0, time.UTC) // Monday afternoon

	today, _ := p.Parse("today", base)
	if got := today.Format(DateFormat); got != "2025-01-06" {
		t.Errorf("today = %s", got)
	}

	tomorrow, _ := p.Parse("tomorrow", base)
	if got := tomorrow.Format(DateFormat); got != "2025-01-07" {
		t.Errorf("tomorrow = %s", got)
	}

	// "next monday" from a Monday is a week out, not the same day.
	nextMon, err := p.Parse("next monday", base)
	if err != nil {
		t.Fatalf("next monday: %v", err)
	}
	if got := nextMon.Format(DateFormat); got != "2025-01-13" {
		t.Errorf("next monday = %s, want 2025-01-13", got)
	}

	if _, err := p.Parse("next funday", base); err == nil {
		t.Error("expected error for unknown weekday")
	}

	// Absolute dates pass through.
	abs, _ := p.Parse("2025-03-01", base)
	if got := abs.Format(DateFormat); got != "2025-03-01" {
		t.Errorf("absolute = %s", got)
	}
}

package usecase

import (
	"time"

	"student-calendar-assistant/internal/schedule"
	pkgLog "student-calendar-assistant/pkg/log"
)

// SearchConfig tunes the alternative-slot search.
type SearchConfig struct {
	// WindowDays is how many days around the original occurrence are
	// scanned for alternatives.
	WindowDays int
	// StepMinutes is the granularity of candidate start times.
	StepMinutes int
	// ActiveWindowHours bounds how far past the original start clock a
	// candidate may begin on any given day.
	ActiveWindowHours int
	// MaxSlots caps the number of alternatives returned per conflict.
	MaxSlots int
	// CalendarID is the target Google calendar.
	CalendarID string
}

func (c *SearchConfig) applyDefaults() {
	if c.WindowDays == 0 {
		c.WindowDays = 7
	}
	if c.StepMinutes == 0 {
		c.StepMinutes = 30
	}
	if c.ActiveWindowHours == 0 {
		c.ActiveWindowHours = 12
	}
	if c.MaxSlots == 0 {
		c.MaxSlots = 5
	}
}

type implUseCase struct {
	l        pkgLog.Logger
	calendar schedule.Calendar
	slots    schedule.SlotSearcher
	cfg      SearchConfig
	now      func() time.Time
}

// New creates a new schedule UseCase instance. A nil searcher selects
// the built-in free/busy brute-force search.
func New(
	l pkgLog.Logger,
	calendar schedule.Calendar,
	slots schedule.SlotSearcher,
	cfg SearchConfig,
) *implUseCase {
	cfg.applyDefaults()
	uc := &implUseCase{
		l:        l,
		calendar: calendar,
		cfg:      cfg,
		now:      time.Now,
	}
	if slots == nil {
		slots = &bruteForceSearcher{calendar: calendar, cfg: cfg}
	}
	uc.slots = slots
	return uc
}

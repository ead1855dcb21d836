package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
	"student-calendar-assistant/pkg/datemath"
	"student-calendar-assistant/pkg/gcalendar"
)

// bruteForceSearcher scans candidate start times around the original
// occurrence and filters them through one free/busy lookup. Scoring is
// proximity to the original start, so same-day candidates always rank
// above candidates on other days.
type bruteForceSearcher struct {
	calendar schedule.Calendar
	cfg      SearchConfig
}

// NewSlotSearcher exposes the free/busy brute-force search for callers
// outside the pipeline, such as the chat assistant's slot tool.
func NewSlotSearcher(calendar schedule.Calendar, cfg SearchConfig) schedule.SlotSearcher {
	cfg.applyDefaults()
	return &bruteForceSearcher{calendar: calendar, cfg: cfg}
}

func (s *bruteForceSearcher) FindSlots(ctx context.Context, original schedule.AlternativeSlot, window model.SemesterWindow, limit int) ([]schedule.AlternativeSlot, error) {
	if s.calendar == nil {
		return nil, schedule.ErrCalendarUnavailable
	}
	parser, err := datemath.NewParser(window.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}
	semesterStart, err := parser.ParseDate(window.SemesterStart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}
	semesterEnd, err := parser.ParseDate(window.SemesterEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schedule.ErrInvalidSemesterWindow, err)
	}

	if limit <= 0 || limit > s.cfg.MaxSlots {
		limit = s.cfg.MaxSlots
	}

	duration := original.End.Sub(original.Start)
	if duration <= 0 {
		return nil, fmt.Errorf("original slot has non-positive duration")
	}

	scanStart := parser.StartOfDay(original.Start.AddDate(0, 0, -s.cfg.WindowDays))
	scanEnd := parser.EndOfDay(original.Start.AddDate(0, 0, s.cfg.WindowDays))
	if scanStart.Before(semesterStart) {
		scanStart = semesterStart
	}
	if limitEnd := parser.EndOfDay(semesterEnd); scanEnd.After(limitEnd) {
		scanEnd = limitEnd
	}

	busy, err := s.calendar.FreeBusy(ctx, gcalendar.FreeBusyRequest{
		CalendarID: s.cfg.CalendarID,
		TimeMin:    scanStart,
		TimeMax:    scanEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query free/busy: %w", err)
	}

	originalClock := datemath.Clock{Hour: original.Start.In(parser.Location()).Hour(), Minute: original.Start.In(parser.Location()).Minute()}
	step := time.Duration(s.cfg.StepMinutes) * time.Minute
	activeWindow := time.Duration(s.cfg.ActiveWindowHours) * time.Hour

	var candidates []schedule.AlternativeSlot
	for day := parser.StartOfDay(scanStart); !day.After(scanEnd); day = day.AddDate(0, 0, 1) {
		dayBase := parser.At(day, originalClock)
		for offset := time.Duration(0); offset < activeWindow; offset += step {
			start := dayBase.Add(offset)
			end := start.Add(duration)

			if start.Before(scanStart) || end.After(scanEnd) {
				continue
			}
			if start.Equal(original.Start) {
				continue
			}
			if s.overlapsBusy(start, end, busy) {
				continue
			}

			distance := start.Sub(original.Start)
			if distance < 0 {
				distance = -distance
			}
			candidates = append(candidates, schedule.AlternativeSlot{
				Start: start,
				End:   end,
				Score: -distance.Hours(),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func (s *bruteForceSearcher) overlapsBusy(start, end time.Time, busy []gcalendar.BusyInterval) bool {
	for _, interval := range busy {
		if intervalsOverlap(start, end, interval.Start, interval.End) {
			return true
		}
	}
	return false
}

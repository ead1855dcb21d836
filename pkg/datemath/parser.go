package datemath

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// Parser performs timezone-aware date arithmetic for schedule planning.
type Parser struct {
	location *time.Location
}

// NewParser creates a date parser for the given IANA timezone string,
// e.g. "Europe/Brussels".
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// ParseDate parses a YYYY-MM-DD string as midnight in the parser's timezone.
func (p *Parser) ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, value, p.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// ParseClock parses an HH:MM string (24-hour) into a Clock.
func ParseClock(value string) (Clock, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("invalid time %q: want HH:MM", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, fmt.Errorf("invalid hour in %q: %w", value, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return Clock{}, fmt.Errorf("invalid minute in %q: %w", value, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("time %q out of range", value)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// FirstOnOrAfter returns the first date on or after the given date whose
// weekday matches target (0-6 days forward, with wraparound).
func (p *Parser) FirstOnOrAfter(date time.Time, target time.Weekday) time.Time {
	date = p.StartOfDay(date)
	delta := (int(target) - int(date.Weekday()) + 7) % 7
	return date.AddDate(0, 0, delta)
}

// At combines a date with a wall-clock time in the parser's timezone.
func (p *Parser) At(date time.Time, c Clock) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, p.location)
}

// StartOfDay truncates a time to midnight in the parser's timezone.
func (p *Parser) StartOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 of the given date in the parser's timezone.
func (p *Parser) EndOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, p.location)
}

// Parse converts a small set of relative date phrases ("today",
// "tomorrow", "next monday") to an absolute date, using baseTime as the
// reference point. Unknown phrases fall back to the start of baseTime's
// day, mirroring how the chat agent treats vague dates.
func (p *Parser) Parse(relative string, baseTime time.Time) (time.Time, error) {
	relative = strings.ToLower(strings.TrimSpace(relative))

	switch relative {
	case "today", "":
		return p.StartOfDay(baseTime), nil
	case "tomorrow":
		return p.StartOfDay(baseTime.AddDate(0, 0, 1)), nil
	}

	if strings.HasPrefix(relative, "next ") {
		return p.parseNextWeekday(relative, baseTime)
	}

	if t, err := p.ParseDate(relative); err == nil {
		return t, nil
	}

	return p.StartOfDay(baseTime), nil
}

// parseNextWeekday handles patterns like "next monday", "next friday".
func (p *Parser) parseNextWeekday(relative string, baseTime time.Time) (time.Time, error) {
	weekdays := map[string]time.Weekday{
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	}

	dayName := strings.TrimPrefix(relative, "next ")
	target, ok := weekdays[dayName]
	if !ok {
		return baseTime, fmt.Errorf("unknown weekday: %q", dayName)
	}

	base := p.StartOfDay(baseTime)
	daysUntil := (int(target) - int(base.Weekday()) + 7) % 7
	if daysUntil == 0 {
		daysUntil = 7
	}
	return base.AddDate(0, 0, daysUntil), nil
}

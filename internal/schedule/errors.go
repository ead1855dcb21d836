package schedule

import "errors"

var (
	// ErrInvalidSemesterWindow is returned when the semester window has
	// bad dates or an unknown timezone. Window validation fails the
	// whole request; no per-event recovery applies.
	ErrInvalidSemesterWindow = errors.New("invalid semester window")

	// ErrNoEvents is returned when a plan is requested for an empty
	// event list.
	ErrNoEvents = errors.New("no schedule events provided")

	// ErrEmptyPlan is returned when an operation needs a plan that has
	// not been built yet.
	ErrEmptyPlan = errors.New("no mutation plan available")

	// ErrConfirmationRequired is returned when execution is attempted
	// on an unconfirmed plan without dry run.
	ErrConfirmationRequired = errors.New("plan requires confirmation before execution")

	// ErrSessionNotFound is returned when a planning session ID is
	// unknown or expired.
	ErrSessionNotFound = errors.New("planning session not found")

	// ErrCalendarUnavailable is returned when a stage needs the Google
	// Calendar client but none was configured.
	ErrCalendarUnavailable = errors.New("google calendar is not configured")
)

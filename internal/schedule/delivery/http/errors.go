package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"student-calendar-assistant/internal/extract"
	"student-calendar-assistant/internal/schedule"
	"student-calendar-assistant/pkg/response"
)

var (
	errNoPlan           = errors.New("session has no plan yet, build one first")
	errNoConflictReport = errors.New("session has no conflict report yet, run conflict detection first")
)

// respondError translates domain errors into HTTP responses. Unknown
// errors become opaque 500s.
func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrSessionNotFound):
		response.NotFound(c, err)
	case errors.Is(err, errNoPlan),
		errors.Is(err, errNoConflictReport),
		errors.Is(err, schedule.ErrCalendarUnavailable),
		errors.Is(err, schedule.ErrInvalidSemesterWindow),
		errors.Is(err, schedule.ErrNoEvents),
		errors.Is(err, schedule.ErrEmptyPlan),
		errors.Is(err, schedule.ErrConfirmationRequired),
		errors.Is(err, extract.ErrEmptyDocument),
		errors.Is(err, extract.ErrUnsupportedMimeType),
		errors.Is(err, extract.ErrMalformedExtraction):
		response.Error(c, err)
	default:
		response.InternalError(c, err)
	}
}

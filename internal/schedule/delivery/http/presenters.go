package http

import (
	"time"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
	"student-calendar-assistant/internal/schedule/session"
)

// --- Request DTOs ---

type createSessionReq struct {
	SemesterStart string                `json:"semester_start" binding:"required"`
	SemesterEnd   string                `json:"semester_end"   binding:"required"`
	Timezone      string                `json:"timezone"       binding:"required"`
	Events        []model.ScheduleEvent `json:"events"`
}

func (r createSessionReq) window() model.SemesterWindow {
	return model.SemesterWindow{
		SemesterStart: r.SemesterStart,
		SemesterEnd:   r.SemesterEnd,
		Timezone:      r.Timezone,
	}
}

type planReq struct {
	// Events optionally replaces the session's stored events.
	Events []model.ScheduleEvent `json:"events"`
}

type executeReq struct {
	Confirm bool `json:"confirm"`
	DryRun  bool `json:"dry_run"`
}

func scheduleExecuteOptions(req executeReq) schedule.ExecuteOptions {
	return schedule.ExecuteOptions{DryRun: req.DryRun}
}

// --- Response DTOs ---

type sessionResp struct {
	SessionID string                `json:"session_id"`
	Version   int                   `json:"version"`
	Window    model.SemesterWindow  `json:"window"`
	Events    []model.ScheduleEvent `json:"events,omitempty"`

	Plan        *schedule.MutationPlan       `json:"plan,omitempty"`
	Conflicts   *schedule.ConflictReport     `json:"conflicts,omitempty"`
	Negotiation *schedule.NegotiationOutcome `json:"negotiation,omitempty"`
	Execution   *schedule.ExecutionReport    `json:"execution,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newSessionResp(s *session.Session) sessionResp {
	return sessionResp{
		SessionID:   s.ID,
		Version:     s.Version,
		Window:      s.Window,
		Events:      s.Events,
		Plan:        s.Plan,
		Conflicts:   s.Conflicts,
		Negotiation: s.Negotiation,
		Execution:   s.Execution,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type extractResp struct {
	Events   []model.ScheduleEvent `json:"events"`
	Warnings []string              `json:"warnings,omitempty"`
}

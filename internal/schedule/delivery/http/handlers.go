package http

import (
	"github.com/gin-gonic/gin"

	"student-calendar-assistant/pkg/response"
)

// Extract godoc
// @Summary     Extract schedule from document
// @Description Reads a timetable document (PDF or image) and returns the structured class events found in it.
// @Tags        Schedule
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file   true  "Timetable document (PDF or image)"
// @Param       hint formData string false "Optional note recorded on each extracted event"
// @Success     200 {object} extractResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/schedule/extract [POST]
func (h *handler) Extract(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processExtractReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.extract.Extract(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "extract.Extract: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, extractResp{Events: output.Events, Warnings: output.Warnings})
}

// CreateSession godoc
// @Summary     Create a planning session
// @Description Starts a planning session for a semester window, optionally seeded with extracted events.
// @Tags        Schedule
// @Accept      json
// @Produce     json
// @Param       body body createSessionReq true "Semester window and events"
// @Success     200 {object} sessionResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/schedule/sessions [POST]
func (h *handler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateSessionReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Create only fails on window validation, which is caller error.
	session, err := h.sessions.Create(req.window(), req.Events)
	if err != nil {
		h.l.Warnf(ctx, "sessions.Create: %v", err)
		response.Error(c, err)
		return
	}

	response.OK(c, newSessionResp(session))
}

// GetSession godoc
// @Summary     Get a planning session
// @Description Returns the session's current plan, conflict report, negotiation outcome, and execution report.
// @Tags        Schedule
// @Accept      json
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/schedule/sessions/{id} [GET]
func (h *handler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()

	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.l.Warnf(ctx, "sessions.Get: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newSessionResp(session))
}

// BuildPlan godoc
// @Summary     Build a mutation plan
// @Description Converts the session's events into calendar mutation operations bounded by the semester window. Passing events in the body replaces the session's stored events first.
// @Tags        Schedule
// @Accept      json
// @Produce     json
// @Param       id   path string  true  "Session ID"
// @Param       body body planReq false "Optional replacement events"
// @Success     200 {object} sessionResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/schedule/sessions/{id}/plan [POST]
func (h *handler) BuildPlan(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processPlanReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if len(req.Events) > 0 {
		if session, err = h.sessions.SetEvents(session.ID, req.Events); err != nil {
			h.respondError(c, err)
			return
		}
	}

	plan, err := h.uc.BuildPlan(ctx, session.Events, session.Window)
	if err != nil {
		h.l.Errorf(ctx, "uc.BuildPlan: %v", err)
		h.respondError(c, err)
		return
	}

	session, err = h.sessions.SetPlan(session.ID, plan)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, newSessionResp(session))
}

// DetectConflicts godoc
// @Summary     Detect plan conflicts
// @Description Checks the session's plan against itself and against existing calendar events.
// @Tags        Schedule
// @Accept      json
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/schedule/sessions/{id}/conflicts [POST]
func (h *handler) DetectConflicts(c *gin.Context) {
	ctx := c.Request.Context()

	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if session.Plan == nil {
		h.respondError(c, errNoPlan)
		return
	}

	report, err := h.uc.DetectConflicts(ctx, *session.Plan, session.Window)
	if err != nil {
		h.l.Errorf(ctx, "uc.DetectConflicts: %v", err)
		h.respondError(c, err)
		return
	}

	session, err = h.sessions.SetConflicts(session.ID, report)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, newSessionResp(session))
}

// Negotiate godoc
// @Summary     Negotiate conflict resolutions
// @Description Searches alternative time slots for the session's conflicting operations and promotes the adjusted plan.
// @Tags        Schedule
// @Accept      json
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/schedule/sessions/{id}/negotiate [POST]
func (h *handler) Negotiate(c *gin.Context) {
	ctx := c.Request.Context()

	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if session.Plan == nil {
		h.respondError(c, errNoPlan)
		return
	}
	if session.Conflicts == nil {
		h.respondError(c, errNoConflictReport)
		return
	}

	outcome, err := h.uc.Negotiate(ctx, *session.Plan, *session.Conflicts, session.Window)
	if err != nil {
		h.l.Errorf(ctx, "uc.Negotiate: %v", err)
		h.respondError(c, err)
		return
	}

	session, err = h.sessions.SetNegotiation(session.ID, outcome)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, newSessionResp(session))
}

// Execute godoc
// @Summary     Execute the plan
// @Description Applies the session's plan against Google Calendar. Plans that require confirmation are rejected unless the body carries confirm=true or dry_run=true.
// @Tags        Schedule
// @Accept      json
// @Produce     json
// @Param       id   path string     true  "Session ID"
// @Param       body body executeReq false "Confirmation and dry-run flags"
// @Success     200 {object} sessionResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/schedule/sessions/{id}/execute [POST]
func (h *handler) Execute(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processExecuteReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if session.Plan == nil {
		h.respondError(c, errNoPlan)
		return
	}

	plan := session.Plan.Clone()
	if req.Confirm {
		plan.RequiresConfirmation = false
	}

	report, err := h.uc.Execute(ctx, plan, scheduleExecuteOptions(req))
	if err != nil {
		h.l.Errorf(ctx, "uc.Execute: %v", err)
		h.respondError(c, err)
		return
	}

	session, err = h.sessions.SetExecution(session.ID, report)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, newSessionResp(session))
}

// ExportICS godoc
// @Summary     Export the plan as iCalendar
// @Description Renders the session's plan as an .ics document for import into other calendar apps.
// @Tags        Schedule
// @Produce     text/calendar
// @Param       id path string true "Session ID"
// @Success     200 {string} string "iCalendar document"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/schedule/sessions/{id}/plan.ics [GET]
func (h *handler) ExportICS(c *gin.Context) {
	ctx := c.Request.Context()

	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if session.Plan == nil {
		h.respondError(c, errNoPlan)
		return
	}

	ics, err := h.uc.ExportICS(ctx, *session.Plan, session.Window)
	if err != nil {
		h.l.Errorf(ctx, "uc.ExportICS: %v", err)
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="plan.ics"`)
	c.Data(200, "text/calendar; charset=utf-8", []byte(ics))
}

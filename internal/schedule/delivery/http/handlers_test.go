package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"student-calendar-assistant/internal/extract"
	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
	scheduleHTTP "student-calendar-assistant/internal/schedule/delivery/http"
	"student-calendar-assistant/internal/schedule/session"
	"student-calendar-assistant/pkg/response"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, kv ...interface{})  {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Info(ctx context.Context, msg string, kv ...interface{})   {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)    {}
func (m *mockLogger) Warn(ctx context.Context, msg string, kv ...interface{})   {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)    {}
func (m *mockLogger) Error(ctx context.Context, msg string, kv ...interface{})  {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Fatal(ctx context.Context, msg string, kv ...interface{})  {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) DPanic(ctx context.Context, msg string, kv ...interface{}) {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Panic(ctx context.Context, msg string, kv ...interface{})  {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)   {}

type mockUseCase struct {
	plan       schedule.MutationPlan
	planErr    error
	report     schedule.ConflictReport
	reportErr  error
	outcome    schedule.NegotiationOutcome
	execReport schedule.ExecutionReport
	execErr    error
	ics        string

	executedPlans []schedule.MutationPlan
	executedOpts  []schedule.ExecuteOptions
}

func (m *mockUseCase) BuildPlan(ctx context.Context, events []model.ScheduleEvent, window model.SemesterWindow) (schedule.MutationPlan, error) {
	return m.plan, m.planErr
}

func (m *mockUseCase) DetectConflicts(ctx context.Context, plan schedule.MutationPlan, window model.SemesterWindow) (schedule.ConflictReport, error) {
	return m.report, m.reportErr
}

func (m *mockUseCase) Negotiate(ctx context.Context, plan schedule.MutationPlan, report schedule.ConflictReport, window model.SemesterWindow) (schedule.NegotiationOutcome, error) {
	return m.outcome, nil
}

func (m *mockUseCase) Execute(ctx context.Context, plan schedule.MutationPlan, opts schedule.ExecuteOptions) (schedule.ExecutionReport, error) {
	m.executedPlans = append(m.executedPlans, plan)
	m.executedOpts = append(m.executedOpts, opts)
	if m.execErr != nil {
		return schedule.ExecutionReport{}, m.execErr
	}
	if plan.RequiresConfirmation && !opts.DryRun {
		return schedule.ExecutionReport{}, schedule.ErrConfirmationRequired
	}
	return m.execReport, nil
}

func (m *mockUseCase) ExportICS(ctx context.Context, plan schedule.MutationPlan, window model.SemesterWindow) (string, error) {
	return m.ics, nil
}

type mockExtract struct {
	output extract.ExtractOutput
	err    error
}

func (m *mockExtract) Extract(ctx context.Context, input extract.ExtractInput) (extract.ExtractOutput, error) {
	return m.output, m.err
}

func newTestRouter(uc *mockUseCase, sessions *session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := scheduleHTTP.New(&mockLogger{}, uc, &mockExtract{}, sessions)
	r := gin.New()
	scheduleHTTP.RegisterRoutes(r.Group("/api/v1/schedule"), h)
	return r
}

func createTestSession(t *testing.T, r *gin.Engine) string {
	t.Helper()

	body := `{"semester_start":"2025-01-06","semester_end":"2025-05-01","timezone":"UTC","events":[{"title":"Algorithms","day_of_week":"wed","start_time":"09:00","end_time":"10:30"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/sessions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("create session: status %d body %s", w.Code, w.Body.String())
	}

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	data := resp.Data.(map[string]interface{})
	return data["session_id"].(string)
}

func testPlan(requiresConfirmation bool) schedule.MutationPlan {
	return schedule.MutationPlan{
		Operations: []schedule.MutationOp{
			schedule.CreateRecurringOp{
				Event: model.ScheduleEvent{
					Title:     "Algorithms",
					DayOfWeek: "wed",
					StartTime: "09:00",
					EndTime:   "10:30",
				},
				FirstStart: time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC),
				FirstEnd:   time.Date(2025, 1, 8, 10, 30, 0, 0, time.UTC),
				RRule:      "RRULE:FREQ=WEEKLY;BYDAY=WE;UNTIL=20250501T235959Z",
			},
		},
		Preview:              "Plan: 1 operation(s)",
		RequiresConfirmation: requiresConfirmation,
	}
}

func TestCreateSessionInvalidWindow(t *testing.T) {
	r := newTestRouter(&mockUseCase{}, session.NewStore(8, time.Minute))

	body := `{"semester_start":"2025-05-01","semester_end":"2025-01-06","timezone":"UTC"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/sessions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for inverted window, got %d", w.Code)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	r := newTestRouter(&mockUseCase{}, session.NewStore(8, time.Minute))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/sessions/nope", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestBuildPlanStoresPlanAndBumpsVersion(t *testing.T) {
	uc := &mockUseCase{plan: testPlan(true)}
	sessions := session.NewStore(8, time.Minute)
	r := newTestRouter(uc, sessions)
	id := createTestSession(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/sessions/"+id+"/plan", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}

	stored, err := sessions.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Plan == nil || len(stored.Plan.Operations) != 1 {
		t.Errorf("plan not stored: %+v", stored.Plan)
	}
	if stored.Version != 1 {
		t.Errorf("expected version 1, got %d", stored.Version)
	}
}

func TestDetectConflictsRequiresPlan(t *testing.T) {
	r := newTestRouter(&mockUseCase{}, session.NewStore(8, time.Minute))
	id := createTestSession(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/sessions/"+id+"/conflicts", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a plan, got %d", w.Code)
	}
}

func TestExecuteRequiresConfirmation(t *testing.T) {
	uc := &mockUseCase{plan: testPlan(true)}
	sessions := session.NewStore(8, time.Minute)
	r := newTestRouter(uc, sessions)
	id := createTestSession(t, r)

	// Build the plan first.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/schedule/sessions/"+id+"/plan", nil))

	// Without confirm the execution is rejected.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/schedule/sessions/"+id+"/execute", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without confirm, got %d", w.Code)
	}

	// With confirm the plan is executed with the flag cleared.
	body := bytes.NewReader([]byte(`{"confirm":true}`))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/sessions/"+id+"/execute", body)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	last := uc.executedPlans[len(uc.executedPlans)-1]
	if last.RequiresConfirmation {
		t.Error("confirm=true should clear RequiresConfirmation before execution")
	}

	stored, _ := sessions.Get(id)
	if stored.Execution == nil {
		t.Error("execution report not stored")
	}
}

func TestExecuteDryRun(t *testing.T) {
	uc := &mockUseCase{plan: testPlan(true)}
	sessions := session.NewStore(8, time.Minute)
	r := newTestRouter(uc, sessions)
	id := createTestSession(t, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/schedule/sessions/"+id+"/plan", nil))

	body := bytes.NewReader([]byte(`{"dry_run":true}`))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/sessions/"+id+"/execute", body)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	if !uc.executedOpts[len(uc.executedOpts)-1].DryRun {
		t.Error("dry_run flag not passed through")
	}
}

func TestExportICS(t *testing.T) {
	uc := &mockUseCase{plan: testPlan(false), ics: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"}
	sessions := session.NewStore(8, time.Minute)
	r := newTestRouter(uc, sessions)
	id := createTestSession(t, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/schedule/sessions/"+id+"/plan", nil))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/schedule/sessions/"+id+"/plan.ics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
)

// Session holds the pipeline artifacts for one planning run. Version
// counts plan revisions; setting a new plan invalidates the downstream
// conflict report and negotiation outcome.
type Session struct {
	ID      string
	Window  model.SemesterWindow
	Events  []model.ScheduleEvent
	Version int

	Plan        *schedule.MutationPlan
	Conflicts   *schedule.ConflictReport
	Negotiation *schedule.NegotiationOutcome
	Execution   *schedule.ExecutionReport

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store keeps planning sessions in an in-memory TTL cache. Sessions
// evaporate after the TTL or when capacity is exceeded.
type Store struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *Session]
	now   func() time.Time
}

// NewStore creates a session store with the given capacity and TTL.
func NewStore(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = 128
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{
		cache: expirable.NewLRU[string, *Session](size, nil, ttl),
		now:   time.Now,
	}
}

// Create starts a new session for a validated semester window.
func (s *Store) Create(window model.SemesterWindow, events []model.ScheduleEvent) (*Session, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	session := &Session{
		ID:        uuid.NewString(),
		Window:    window,
		Events:    events,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.cache.Add(session.ID, session)
	return snapshot(session), nil
}

// Get fetches a session by ID.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.cache.Get(id)
	if !ok {
		return nil, schedule.ErrSessionNotFound
	}
	return snapshot(session), nil
}

// SetEvents replaces the session's source events.
func (s *Store) SetEvents(id string, events []model.ScheduleEvent) (*Session, error) {
	return s.update(id, func(session *Session) {
		session.Events = events
	})
}

// SetPlan stores a new plan, bumps the version, and clears all
// downstream artifacts built from the previous plan.
func (s *Store) SetPlan(id string, plan schedule.MutationPlan) (*Session, error) {
	return s.update(id, func(session *Session) {
		session.Plan = &plan
		session.Version++
		session.Conflicts = nil
		session.Negotiation = nil
		session.Execution = nil
	})
}

// SetConflicts stores a conflict report for the current plan.
func (s *Store) SetConflicts(id string, report schedule.ConflictReport) (*Session, error) {
	return s.update(id, func(session *Session) {
		session.Conflicts = &report
	})
}

// SetNegotiation stores a negotiation outcome and promotes its updated
// plan to be the session's current plan.
func (s *Store) SetNegotiation(id string, outcome schedule.NegotiationOutcome) (*Session, error) {
	return s.update(id, func(session *Session) {
		session.Negotiation = &outcome
		session.Plan = &outcome.UpdatedPlan
		session.Version++
		session.Conflicts = nil
		session.Execution = nil
	})
}

// SetExecution stores an execution report.
func (s *Store) SetExecution(id string, report schedule.ExecutionReport) (*Session, error) {
	return s.update(id, func(session *Session) {
		session.Execution = &report
	})
}

func (s *Store) update(id string, apply func(*Session)) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.cache.Get(id)
	if !ok {
		return nil, schedule.ErrSessionNotFound
	}
	apply(session)
	session.UpdatedAt = s.now()
	s.cache.Add(id, session)
	return snapshot(session), nil
}

// snapshot copies the session so callers never hold the pointer the
// store mutates under its lock.
func snapshot(session *Session) *Session {
	cp := *session
	return &cp
}

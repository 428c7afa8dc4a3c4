package testutil

import (
	"time"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/google/uuid"
)

// Agent options
type AgentOption func(*domain.Agent)

func WithTeam(team string) AgentOption {
	return func(a *domain.Agent) {
		a.Team = team
	}
}

func WithRole(r domain.AgentRole) AgentOption {
	return func(a *domain.Agent) {
		a.Role = r
	}
}

func WithEmail(email string) AgentOption {
	return func(a *domain.Agent) {
		a.Email = email
	}
}

func NewTestAgent(name string, opts ...AgentOption) *domain.Agent {
	a := &domain.Agent{
		ID:        uuid.New().String(),
		Name:      name,
		Team:      "sales",
		Role:      domain.RoleAgent,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ActivitySpan options
type SpanOption func(*domain.ActivitySpan)

// WithEnd closes the span at end.
func WithEnd(end time.Time) SpanOption {
	return func(s *domain.ActivitySpan) {
		s.End = &end
	}
}

// WithLength closes the span d after it started.
func WithLength(d time.Duration) SpanOption {
	return func(s *domain.ActivitySpan) {
		end := s.Start.Add(d)
		s.End = &end
	}
}

func WithActivityType(t domain.ActivityType) SpanOption {
	return func(s *domain.ActivitySpan) {
		s.Type = t
	}
}

func WithSpanNote(note string) SpanOption {
	return func(s *domain.ActivitySpan) {
		s.Note = note
	}
}

// NewTestSpan creates an open work span; use WithEnd or WithLength to close it.
func NewTestSpan(userID string, start time.Time, opts ...SpanOption) *domain.ActivitySpan {
	s := &domain.ActivitySpan{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      domain.ActivityWork,
		Start:     start.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CallFeedback options
type CallOption func(*domain.CallFeedback)

func WithContact(contact string) CallOption {
	return func(c *domain.CallFeedback) {
		c.Contact = contact
	}
}

func WithCallNote(note string) CallOption {
	return func(c *domain.CallFeedback) {
		c.Note = note
	}
}

func NewTestCall(agentID string, outcome domain.CallOutcome, calledAt time.Time, opts ...CallOption) *domain.CallFeedback {
	c := &domain.CallFeedback{
		ID:        uuid.New().String(),
		AgentID:   agentID,
		Contact:   "+971500000000",
		Outcome:   outcome,
		CalledAt:  calledAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTestHoliday creates a day-off holiday unless hours is non-empty.
func NewTestHoliday(date calendar.Date, name string, hours calendar.TimeRange) *domain.Holiday {
	return &domain.Holiday{
		Date:      date,
		Name:      name,
		Hours:     hours,
		CreatedAt: time.Now().UTC(),
	}
}

// DubaiTime builds a wall-clock instant in the Dubai zone.
func DubaiTime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, calendar.Dubai)
}

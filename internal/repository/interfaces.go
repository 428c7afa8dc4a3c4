package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

// SpanQuery selects activity spans that intersect [From, To).
// Empty UserIDs or Types mean no filter on that column.
type SpanQuery struct {
	UserIDs []string
	Types   []domain.ActivityType
	From    time.Time
	To      time.Time
}

// CallQuery selects call feedback. Zero From/To leave that side unbounded.
type CallQuery struct {
	AgentIDs []string
	From     time.Time
	To       time.Time
}

type AgentRepo interface {
	Create(ctx context.Context, a *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	List(ctx context.Context, team string) ([]*domain.Agent, error)
	Delete(ctx context.Context, id string) error
}

// ActivitySource is the read side the attendance report pulls spans from.
// The local SQLite store and the hosted Postgres backend both provide it.
type ActivitySource interface {
	Name() string
	ListSpans(ctx context.Context, q SpanQuery) ([]domain.ActivitySpan, error)
}

type ActivityRepo interface {
	ActivitySource
	Create(ctx context.Context, s *domain.ActivitySpan) error
	GetByID(ctx context.Context, id string) (*domain.ActivitySpan, error)
	// GetOpen returns the user's most recently started open span.
	GetOpen(ctx context.Context, userID string) (*domain.ActivitySpan, error)
	Close(ctx context.Context, id string, end time.Time) error
	Delete(ctx context.Context, id string) error
}

type HolidayRepo interface {
	Upsert(ctx context.Context, h *domain.Holiday) error
	Get(ctx context.Context, d calendar.Date) (*domain.Holiday, error)
	List(ctx context.Context) ([]domain.Holiday, error)
	Delete(ctx context.Context, d calendar.Date) error
}

type CallRepo interface {
	Create(ctx context.Context, c *domain.CallFeedback) error
	List(ctx context.Context, q CallQuery) ([]*domain.CallFeedback, error)
	Summaries(ctx context.Context, q CallQuery) ([]domain.CallSummary, error)
}

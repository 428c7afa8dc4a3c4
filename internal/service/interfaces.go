package service

import (
	"context"
	"time"

	"github.com/alexanderramin/shiftclock/internal/app"
	"github.com/alexanderramin/shiftclock/internal/cache"
	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
)

// SpanCache holds work-type span query results shared by reports.
type SpanCache = cache.Cache[[]domain.ActivitySpan]

type AgentService interface {
	Create(ctx context.Context, a *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	List(ctx context.Context, team string) ([]*domain.Agent, error)
	Delete(ctx context.Context, id string) error
}

type ActivityService interface {
	// Start closes the user's open span at `at`, if any, and opens a new one.
	Start(ctx context.Context, userID string, typ domain.ActivityType, at time.Time, note string) (*domain.ActivitySpan, error)
	Stop(ctx context.Context, userID string, at time.Time) (*domain.ActivitySpan, error)
	Current(ctx context.Context, userID string) (*domain.ActivitySpan, error)
	Log(ctx context.Context, s *domain.ActivitySpan) error
	List(ctx context.Context, q repository.SpanQuery) ([]domain.ActivitySpan, error)
	Delete(ctx context.Context, id string) error
}

// CalendarProvider builds the shift calendar including stored holidays.
type CalendarProvider interface {
	Calendar(ctx context.Context) (*calendar.Calendar, error)
}

type HolidayService interface {
	CalendarProvider
	Add(ctx context.Context, h *domain.Holiday) error
	List(ctx context.Context) ([]domain.Holiday, error)
	Remove(ctx context.Context, d calendar.Date) error
}

type AttendanceService interface {
	app.AttendanceUseCase
}

type CallService interface {
	app.CallReportUseCase
	Log(ctx context.Context, c *domain.CallFeedback) error
	List(ctx context.Context, q repository.CallQuery) ([]*domain.CallFeedback, error)
}

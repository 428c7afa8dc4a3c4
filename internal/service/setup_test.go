package service

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/shiftclock/internal/cache"
	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/reconcile"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/alexanderramin/shiftclock/internal/testutil"
	"github.com/stretchr/testify/require"
)

type repos struct {
	db         *sql.DB
	uow        db.UnitOfWork
	agents     *repository.SQLiteAgentRepo
	activities *repository.SQLiteActivityRepo
	holidays   *repository.SQLiteHolidayRepo
	calls      *repository.SQLiteCallRepo
	spans      *SpanCache
}

func setupRepos(t *testing.T) *repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &repos{
		db:         database,
		uow:        testutil.NewTestUoW(database),
		agents:     repository.NewSQLiteAgentRepo(database),
		activities: repository.NewSQLiteActivityRepo(database),
		holidays:   repository.NewSQLiteHolidayRepo(database),
		calls:      repository.NewSQLiteCallRepo(database),
		spans:      cache.New[[]domain.ActivitySpan](time.Minute),
	}
}

func (r *repos) calendars() HolidayService {
	return NewHolidayService(r.holidays, calendar.Dubai, calendar.DefaultPolicy())
}

func (r *repos) attendance(source repository.ActivitySource, observers ...UseCaseObserver) AttendanceService {
	if source == nil {
		source = r.activities
	}
	return NewAttendanceService(r.agents, source, r.calendars(), r.spans, AttendanceOptions{
		Policy:    reconcile.DefaultPolicy(),
		LateGrace: 15 * time.Minute,
	}, observers...)
}

func (r *repos) addAgent(t *testing.T, name string, opts ...testutil.AgentOption) *domain.Agent {
	t.Helper()
	a := testutil.NewTestAgent(name, opts...)
	require.NoError(t, r.agents.Create(context.Background(), a))
	return a
}

func (r *repos) addSpan(t *testing.T, userID string, start time.Time, opts ...testutil.SpanOption) *domain.ActivitySpan {
	t.Helper()
	s := testutil.NewTestSpan(userID, start, opts...)
	require.NoError(t, r.activities.Create(context.Background(), s))
	return s
}

// countingSource counts how often the attendance service reaches the store.
type countingSource struct {
	repository.ActivitySource
	calls atomic.Int32
}

func (c *countingSource) ListSpans(ctx context.Context, q repository.SpanQuery) ([]domain.ActivitySpan, error) {
	c.calls.Add(1)
	return c.ActivitySource.ListSpans(ctx, q)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.events))
	for i, e := range o.events {
		out[i] = e.Name
	}
	return out
}

func reconcileDefault() reconcile.Policy { return reconcile.DefaultPolicy() }

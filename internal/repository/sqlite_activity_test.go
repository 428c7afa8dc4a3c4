package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// activityTestSetup creates two agents for span tests.
func activityTestSetup(t *testing.T) (*SQLiteActivityRepo, string, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	agents := NewSQLiteAgentRepo(database)
	a := testutil.NewTestAgent("Layla")
	b := testutil.NewTestAgent("Omar")
	require.NoError(t, agents.Create(ctx, a))
	require.NoError(t, agents.Create(ctx, b))

	return NewSQLiteActivityRepo(database), a.ID, b.ID
}

func TestActivityRepo_CreateAndGetByID(t *testing.T) {
	repo, userID, _ := activityTestSetup(t)
	ctx := context.Background()

	start := testutil.DubaiTime(2026, 10, 19, 10, 0)
	span := testutil.NewTestSpan(userID, start,
		testutil.WithLength(45*time.Minute),
		testutil.WithActivityType(domain.ActivityCall),
		testutil.WithSpanNote("follow-ups"))
	require.NoError(t, repo.Create(ctx, span))

	fetched, err := repo.GetByID(ctx, span.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, fetched.UserID)
	assert.Equal(t, domain.ActivityCall, fetched.Type)
	assert.True(t, fetched.Start.Equal(start))
	require.NotNil(t, fetched.End)
	assert.Equal(t, 45*time.Minute, fetched.Duration())
	assert.Equal(t, "follow-ups", fetched.Note)
}

func TestActivityRepo_GetByID_NotFound(t *testing.T) {
	repo, _, _ := activityTestSetup(t)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityRepo_GetOpenReturnsLatest(t *testing.T) {
	repo, userID, otherID := activityTestSetup(t)
	ctx := context.Background()

	_, err := repo.GetOpen(ctx, userID)
	assert.ErrorIs(t, err, ErrNotFound)

	older := testutil.NewTestSpan(userID, testutil.DubaiTime(2026, 10, 19, 9, 0))
	newer := testutil.NewTestSpan(userID, testutil.DubaiTime(2026, 10, 19, 11, 0))
	closed := testutil.NewTestSpan(userID, testutil.DubaiTime(2026, 10, 19, 12, 0), testutil.WithLength(time.Hour))
	other := testutil.NewTestSpan(otherID, testutil.DubaiTime(2026, 10, 19, 13, 0))
	for _, s := range []*domain.ActivitySpan{older, newer, closed, other} {
		require.NoError(t, repo.Create(ctx, s))
	}

	open, err := repo.GetOpen(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, open.ID)
	assert.True(t, open.IsOpen())
}

func TestActivityRepo_Close(t *testing.T) {
	repo, userID, _ := activityTestSetup(t)
	ctx := context.Background()

	start := testutil.DubaiTime(2026, 10, 19, 10, 0)
	span := testutil.NewTestSpan(userID, start)
	require.NoError(t, repo.Create(ctx, span))

	require.NoError(t, repo.Close(ctx, span.ID, start.Add(30*time.Minute)))

	fetched, err := repo.GetByID(ctx, span.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.End)
	assert.Equal(t, 30*time.Minute, fetched.Duration())

	assert.ErrorIs(t, repo.Close(ctx, span.ID, start.Add(time.Hour)), ErrNotFound,
		"an already closed span cannot be closed again")
}

func TestActivityRepo_ListSpans_Window(t *testing.T) {
	repo, userID, _ := activityTestSetup(t)
	ctx := context.Background()

	dayStart := testutil.DubaiTime(2026, 10, 19, 0, 0)
	dayEnd := dayStart.AddDate(0, 0, 1)

	yesterday := testutil.NewTestSpan(userID, dayStart.Add(-3*time.Hour), testutil.WithLength(time.Hour))
	overnight := testutil.NewTestSpan(userID, dayStart.Add(-time.Hour), testutil.WithLength(2*time.Hour))
	inside := testutil.NewTestSpan(userID, dayStart.Add(10*time.Hour), testutil.WithLength(time.Hour))
	openSpan := testutil.NewTestSpan(userID, dayStart.Add(-48*time.Hour))
	tomorrow := testutil.NewTestSpan(userID, dayEnd, testutil.WithLength(time.Hour))
	for _, s := range []*domain.ActivitySpan{yesterday, overnight, inside, openSpan, tomorrow} {
		require.NoError(t, repo.Create(ctx, s))
	}

	spans, err := repo.ListSpans(ctx, SpanQuery{From: dayStart, To: dayEnd})
	require.NoError(t, err)

	var ids []string
	for _, s := range spans {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{openSpan.ID, overnight.ID, inside.ID}, ids,
		"spans overlapping the day, open ones included, ordered by start")
}

func TestActivityRepo_ListSpans_Filters(t *testing.T) {
	repo, userID, otherID := activityTestSetup(t)
	ctx := context.Background()

	start := testutil.DubaiTime(2026, 10, 19, 10, 0)
	work := testutil.NewTestSpan(userID, start, testutil.WithLength(time.Hour))
	lunch := testutil.NewTestSpan(userID, start.Add(2*time.Hour), testutil.WithLength(time.Hour),
		testutil.WithActivityType(domain.ActivityLunch))
	otherWork := testutil.NewTestSpan(otherID, start, testutil.WithLength(time.Hour))
	for _, s := range []*domain.ActivitySpan{work, lunch, otherWork} {
		require.NoError(t, repo.Create(ctx, s))
	}

	spans, err := repo.ListSpans(ctx, SpanQuery{
		UserIDs: []string{userID},
		Types:   domain.WorkActivityTypes(),
		From:    start.Add(-time.Hour),
		To:      start.Add(12 * time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, work.ID, spans[0].ID)
}

func TestActivityRepo_Delete(t *testing.T) {
	repo, userID, _ := activityTestSetup(t)
	ctx := context.Background()

	span := testutil.NewTestSpan(userID, testutil.DubaiTime(2026, 10, 19, 10, 0))
	require.NoError(t, repo.Create(ctx, span))
	require.NoError(t, repo.Delete(ctx, span.ID))

	assert.ErrorIs(t, repo.Delete(ctx, span.ID), ErrNotFound)
}

package reconcile

import (
	"testing"
	"time"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday = calendar.Date{Year: 2026, Month: time.October, Day: 19}
	sunday = calendar.Date{Year: 2026, Month: time.October, Day: 18}
	cal    = calendar.New(calendar.Dubai, calendar.DefaultPolicy())
)

// at returns hh:mm on monday in Dubai.
func at(hh, mm int) time.Time {
	return time.Date(2026, 10, 19, hh, mm, 0, 0, calendar.Dubai)
}

func closed(start, end time.Time) domain.ActivitySpan {
	return domain.ActivitySpan{UserID: "u1", Type: domain.ActivityWork, Start: start, End: &end}
}

func open(start time.Time) domain.ActivitySpan {
	return domain.ActivitySpan{UserID: "u1", Type: domain.ActivityWork, Start: start}
}

func mondayWindow(t *testing.T) *calendar.Window {
	t.Helper()
	w, ok := cal.Window(monday)
	require.True(t, ok)
	return &w
}

// pastNow is well after monday so open spans never count.
var pastNow = time.Date(2026, 10, 25, 12, 0, 0, 0, calendar.Dubai)

func TestReconcile_NonOverlappingSpansSum(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans: []domain.ActivitySpan{
			closed(at(10, 0), at(10, 30)),
			closed(at(11, 0), at(11, 45)),
			closed(at(15, 0), at(16, 0)),
		},
		Window: mondayWindow(t),
		Now:    pastNow,
	})

	assert.Equal(t, 30+45+60, res.Minutes)
	assert.Len(t, res.Merged, 3)
	assert.False(t, res.CeilingExceeded)
}

func TestReconcile_OverlappingSpansCountUnion(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{closed(at(10, 0), at(10, 30)), closed(at(10, 15), at(10, 45))},
		Window: mondayWindow(t),
		Now:    pastNow,
	})

	assert.Equal(t, 45, res.Minutes, "overlap must not be double-counted")
	require.Len(t, res.Merged, 1)
}

func TestReconcile_TouchingSpansMerge(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{closed(at(10, 0), at(10, 30)), closed(at(10, 30), at(11, 0))},
		Window: mondayWindow(t),
		Now:    pastNow,
	})

	assert.Equal(t, 60, res.Minutes)
	assert.Len(t, res.Merged, 1, "touching spans join into one interval")
}

func TestReconcile_DuplicateSpansCountOnce(t *testing.T) {
	s := closed(at(12, 0), at(13, 0))
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{s, s, s},
		Window: mondayWindow(t),
		Now:    pastNow,
	})
	assert.Equal(t, 60, res.Minutes)
}

func TestReconcile_ContainedSpanAddsNothing(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{closed(at(10, 0), at(12, 0)), closed(at(10, 30), at(11, 0))},
		Window: mondayWindow(t),
		Now:    pastNow,
	})
	assert.Equal(t, 120, res.Minutes)
}

func TestReconcile_SpanOutsideWindowContributesZero(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans: []domain.ActivitySpan{
			closed(at(7, 0), at(9, 0)),
			closed(at(19, 0), at(21, 0)),
		},
		Window: mondayWindow(t),
		Now:    pastNow,
	})

	assert.Equal(t, 0, res.Minutes)
	assert.Equal(t, 2, res.Dropped)
	assert.Nil(t, res.FirstStart)
}

func TestReconcile_SpanPartiallyOutsideIsClamped(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{closed(at(9, 30), at(10, 15))},
		Window: mondayWindow(t),
		Now:    pastNow,
	})

	assert.Equal(t, 15, res.Minutes)
	require.NotNil(t, res.FirstStart)
	assert.True(t, res.FirstStart.Equal(at(10, 0)))
}

func TestReconcile_MultiDaySpanClampedToWindow(t *testing.T) {
	start := at(9, 0).AddDate(0, 0, -2)
	end := at(8, 0).AddDate(0, 0, 3)
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{closed(start, end)},
		Window: mondayWindow(t),
		Now:    pastNow,
	})

	assert.Equal(t, 540, res.Minutes, "a span covering the whole day counts exactly the window")
	assert.False(t, res.CeilingExceeded)
}

func TestReconcile_InvertedSpanDropped(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{closed(at(12, 0), at(11, 0)), closed(at(13, 0), at(13, 0))},
		Window: mondayWindow(t),
		Now:    pastNow,
	})

	assert.Equal(t, 0, res.Minutes)
	assert.Equal(t, 2, res.Dropped)
}

func TestReconcile_NoWindowShortCircuits(t *testing.T) {
	_, ok := cal.Window(sunday)
	require.False(t, ok)

	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{closed(at(10, 0), at(18, 0)), open(at(18, 0))},
		Window: nil,
		Now:    at(18, 5),
	})

	assert.Equal(t, Result{}, res, "no window yields zero without inspecting spans")
}

func TestReconcile_EmptyInput(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{Window: mondayWindow(t), Now: pastNow})
	assert.Equal(t, 0, res.Minutes)
	assert.Equal(t, 540, res.WindowMinutes)
	assert.Empty(t, res.Merged)
}

func TestReconcile_EndToEndScenario(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans: []domain.ActivitySpan{
			closed(at(14, 0), at(15, 30)),
			closed(at(10, 5), at(11, 0)),
			closed(at(10, 50), at(12, 0)),
		},
		Window: mondayWindow(t),
		Now:    pastNow,
	})

	require.Len(t, res.Merged, 2)
	assert.True(t, res.Merged[0].Start.Equal(at(10, 5)))
	assert.True(t, res.Merged[0].End.Equal(at(12, 0)))
	assert.Equal(t, 115*time.Minute, res.Merged[0].Duration())
	assert.Equal(t, 90*time.Minute, res.Merged[1].Duration())
	assert.Equal(t, 205, res.Minutes)
}

// ── open spans ──────────────────────────────────────────────────────────────

func TestReconcile_OpenSpanIncludedWhenAllConditionsHold(t *testing.T) {
	now := at(14, 10)
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{closed(at(10, 0), at(11, 0)), open(at(14, 0))},
		Window: mondayWindow(t),
		Now:    now,
	})

	assert.True(t, res.OpenIncluded)
	assert.Equal(t, 60+10, res.Minutes, "open span counts up to now")
}

func TestReconcile_OpenSpanCappedAtExtrapolationLimit(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{open(at(14, 0))},
		Window: mondayWindow(t),
		Now:    at(14, 25),
	})

	assert.True(t, res.OpenIncluded)
	assert.Equal(t, 15, res.Minutes, "open span contributes at most the cap")
}

func TestReconcile_OpenSpanExcludedOnOtherDay(t *testing.T) {
	// Now is Tuesday at 14:10, the span is Monday's.
	now := at(14, 10).AddDate(0, 0, 1)
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{open(now.Add(-10 * time.Minute).AddDate(0, 0, -1))},
		Window: mondayWindow(t),
		Now:    now,
	})

	assert.False(t, res.OpenIncluded)
	assert.Equal(t, 0, res.Minutes)
}

func TestReconcile_OpenSpanExcludedWhenNowOutsideWindow(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{open(at(18, 50))},
		Window: mondayWindow(t),
		Now:    at(19, 5),
	})

	assert.False(t, res.OpenIncluded)
	assert.Equal(t, 0, res.Minutes)
}

func TestReconcile_OpenSpanExcludedWhenStale(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{open(at(13, 0))},
		Window: mondayWindow(t),
		Now:    at(13, 31),
	})

	assert.False(t, res.OpenIncluded)
	assert.Equal(t, 0, res.Minutes)
}

func TestReconcile_OpenSpanAtFreshnessBoundaryCounts(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{open(at(13, 0))},
		Window: mondayWindow(t),
		Now:    at(13, 30),
	})

	assert.True(t, res.OpenIncluded)
	assert.Equal(t, 15, res.Minutes)
}

func TestReconcile_OnlyMostRecentOpenSpanConsidered(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{open(at(11, 0)), open(at(14, 0))},
		Window: mondayWindow(t),
		Now:    at(14, 5),
	})

	assert.True(t, res.OpenIncluded)
	assert.Equal(t, 5, res.Minutes, "the stale 11:00 open span is ignored")
}

func TestReconcile_OpenSpanMergesWithClosedOverlap(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{closed(at(13, 30), at(14, 5)), open(at(14, 0))},
		Window: mondayWindow(t),
		Now:    at(14, 10),
	})

	assert.True(t, res.OpenIncluded)
	assert.Equal(t, 40, res.Minutes, "13:30 to 14:10 with the overlap counted once")
	assert.Len(t, res.Merged, 1)
}

func TestReconcile_OpenSpanStartedBeforeWindowIsClamped(t *testing.T) {
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{open(at(9, 55))},
		Window: mondayWindow(t),
		Now:    at(10, 5),
	})

	assert.True(t, res.OpenIncluded)
	assert.Equal(t, 5, res.Minutes)
}

func TestReconcile_CustomPolicy(t *testing.T) {
	policy := Policy{OpenFreshness: 2 * time.Hour, OpenCap: time.Hour}
	res := Reconcile(policy, Input{
		Spans:  []domain.ActivitySpan{open(at(12, 0))},
		Window: mondayWindow(t),
		Now:    at(13, 30),
	})

	assert.True(t, res.OpenIncluded)
	assert.Equal(t, 60, res.Minutes)
}

// ── rounding and ceiling ───────────────────────────────────────────────────

func TestRoundMinutes_HalfUp(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{-time.Minute, 0},
		{29 * time.Second, 0},
		{30 * time.Second, 1},
		{89 * time.Second, 1},
		{90 * time.Second, 2},
		{150 * time.Second, 3},
		{45*time.Minute + 29*time.Second, 45},
		{45*time.Minute + 30*time.Second, 46},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RoundMinutes(c.d), "RoundMinutes(%s)", c.d)
	}
}

func TestReconcile_RoundsTotalHalfUp(t *testing.T) {
	start := at(10, 0)
	res := Reconcile(DefaultPolicy(), Input{
		Spans: []domain.ActivitySpan{
			closed(start, start.Add(10*time.Minute+15*time.Second)),
			closed(start.Add(time.Hour), start.Add(time.Hour+20*time.Minute+15*time.Second)),
		},
		Window: mondayWindow(t),
		Now:    pastNow,
	})
	assert.Equal(t, 31, res.Minutes, "30m30s total rounds half up to 31")
}

func TestReconcile_CeilingViolationClampedAndFlagged(t *testing.T) {
	// A window shorter than a whole minute has a zero-minute ceiling,
	// while 50 seconds of work rounds up to one minute.
	w := calendar.Window{Date: monday, Start: at(10, 0), End: at(10, 0).Add(50 * time.Second)}
	res := Reconcile(DefaultPolicy(), Input{
		Spans:  []domain.ActivitySpan{closed(at(9, 0), at(11, 0))},
		Window: &w,
		Now:    pastNow,
	})

	assert.True(t, res.CeilingExceeded)
	assert.Equal(t, 1, res.RawMinutes)
	assert.Equal(t, 0, res.Minutes)
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	spans := []domain.ActivitySpan{closed(at(14, 0), at(15, 0)), closed(at(9, 0), at(11, 0))}
	before := make([]domain.ActivitySpan, len(spans))
	copy(before, spans)

	Reconcile(DefaultPolicy(), Input{Spans: spans, Window: mondayWindow(t), Now: pastNow})

	assert.Equal(t, before, spans)
	assert.True(t, spans[1].Start.Equal(at(9, 0)), "clamping must not write back into the caller's spans")
}

func TestMerge_Unsorted(t *testing.T) {
	got := Merge([]Interval{
		{Start: at(15, 0), End: at(16, 0)},
		{Start: at(10, 0), End: at(11, 0)},
		{Start: at(10, 30), End: at(12, 0)},
	})
	require.Len(t, got, 2)
	assert.True(t, got[0].End.Equal(at(12, 0)))
	assert.True(t, got[1].Start.Equal(at(15, 0)))
}

// Package reconcile turns a user's raw activity spans for one civil day into
// a single worked-minutes figure bounded by the day's shift window.
package reconcile

import (
	"sort"
	"time"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

// Policy holds the tunables for counting a span that has not been closed yet.
type Policy struct {
	// OpenFreshness is how recently an open span must have started for it to count.
	OpenFreshness time.Duration
	// OpenCap bounds how much time an open span may contribute.
	OpenCap time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		OpenFreshness: 30 * time.Minute,
		OpenCap:       15 * time.Minute,
	}
}

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Input is one user-day. Spans must already be restricted to work activity types.
// A nil Window means the day has no shift.
type Input struct {
	Spans  []domain.ActivitySpan
	Window *calendar.Window
	Now    time.Time
}

type Result struct {
	Minutes       int
	WindowMinutes int
	// Merged holds the non-overlapping intervals that were summed.
	Merged []Interval
	// FirstStart is the earliest counted instant, nil when nothing counted.
	FirstStart *time.Time
	// Dropped counts closed spans that clamped to nothing.
	Dropped      int
	OpenIncluded bool
	// CeilingExceeded is set when the raw total overshot the window length
	// and Minutes was clamped. It points at bad upstream data.
	CeilingExceeded bool
	RawMinutes      int
}

// Reconcile computes the worked minutes for one user-day. It never fails:
// malformed spans contribute nothing and a missing window yields zero.
func Reconcile(policy Policy, in Input) Result {
	if in.Window == nil {
		return Result{}
	}
	w := *in.Window
	res := Result{WindowMinutes: w.Minutes()}

	var candidates []Interval
	var latestOpen *domain.ActivitySpan
	for i := range in.Spans {
		span := &in.Spans[i]
		if span.IsOpen() {
			if latestOpen == nil || span.Start.After(latestOpen.Start) {
				latestOpen = span
			}
			continue
		}
		iv, ok := clamp(Interval{Start: span.Start, End: *span.End}, w)
		if !ok {
			res.Dropped++
			continue
		}
		candidates = append(candidates, iv)
	}

	if latestOpen != nil && openSpanCounts(policy, w, latestOpen.Start, in.Now) {
		end := latestOpen.Start.Add(policy.OpenCap)
		if in.Now.Before(end) {
			end = in.Now
		}
		if iv, ok := clamp(Interval{Start: latestOpen.Start, End: end}, w); ok {
			candidates = append(candidates, iv)
			res.OpenIncluded = true
		}
	}

	res.Merged = Merge(candidates)
	if len(res.Merged) > 0 {
		first := res.Merged[0].Start
		res.FirstStart = &first
	}

	var total time.Duration
	for _, iv := range res.Merged {
		total += iv.Duration()
	}
	res.RawMinutes = RoundMinutes(total)
	res.Minutes = res.RawMinutes

	if res.Minutes > res.WindowMinutes {
		res.Minutes = res.WindowMinutes
		res.CeilingExceeded = true
	}
	if res.Minutes < 0 {
		res.Minutes = 0
	}
	return res
}

// openSpanCounts applies the three conditions under which an open span is
// extrapolated: same civil day as now, now inside the window, and a recent start.
func openSpanCounts(policy Policy, w calendar.Window, openStart, now time.Time) bool {
	if calendar.DateOf(now, w.Start.Location()) != w.Date {
		return false
	}
	if !w.Contains(now) {
		return false
	}
	age := now.Sub(openStart)
	return age >= 0 && age <= policy.OpenFreshness
}

// clamp intersects iv with the window. The second result is false when
// nothing of iv lies inside the window.
func clamp(iv Interval, w calendar.Window) (Interval, bool) {
	if iv.Start.Before(w.Start) {
		iv.Start = w.Start
	}
	if iv.End.After(w.End) {
		iv.End = w.End
	}
	if !iv.End.After(iv.Start) {
		return Interval{}, false
	}
	return iv, true
}

// Merge sorts intervals by start and joins any that overlap or touch.
// The input slice is not modified.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Interval{sorted[0]}
	for _, next := range sorted[1:] {
		cur := &merged[len(merged)-1]
		if !next.Start.After(cur.End) {
			if next.End.After(cur.End) {
				cur.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

// RoundMinutes converts d to whole minutes, rounding half a minute up.
func RoundMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + 30*time.Second) / time.Minute)
}

package calendar

import (
	"sort"
	"time"
)

// Window is the span of instants during which work counts on one civil day.
type Window struct {
	Date  Date
	Start time.Time
	End   time.Time
}

// Minutes returns the window length in whole minutes.
func (w Window) Minutes() int {
	return int(w.End.Sub(w.Start) / time.Minute)
}

// Contains reports whether t lies in [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Policy maps each weekday to its shift hours. An empty range is a day off.
type Policy struct {
	Days [7]TimeRange
}

// DefaultPolicy is the Dubai office week: Monday to Friday 10:00-19:00,
// a shortened Saturday and Sunday off.
func DefaultPolicy() Policy {
	full := TimeRange{Start: TimeOfDay{Hour: 10}, End: TimeOfDay{Hour: 19}}
	var p Policy
	for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		p.Days[wd] = full
	}
	p.Days[time.Saturday] = TimeRange{Start: TimeOfDay{Hour: 10}, End: TimeOfDay{Hour: 16}}
	return p
}

// Hours returns the shift hours for a weekday.
func (p Policy) Hours(wd time.Weekday) TimeRange {
	return p.Days[wd]
}

// Exception overrides the weekly policy on one date. Empty Hours means day off.
type Exception struct {
	Date  Date
	Name  string
	Hours TimeRange
}

// Calendar resolves civil dates to shift windows in a fixed zone.
type Calendar struct {
	loc        *time.Location
	policy     Policy
	exceptions map[Date]Exception
}

// New builds a Calendar. Later exceptions for the same date replace earlier ones.
func New(loc *time.Location, policy Policy, exceptions ...Exception) *Calendar {
	if loc == nil {
		loc = Dubai
	}
	ex := make(map[Date]Exception, len(exceptions))
	for _, e := range exceptions {
		ex[e.Date] = e
	}
	return &Calendar{loc: loc, policy: policy, exceptions: ex}
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

func (c *Calendar) Policy() Policy {
	return c.policy
}

// Today returns the civil date of now in the calendar's zone.
func (c *Calendar) Today(now time.Time) Date {
	return DateOf(now, c.loc)
}

// DayBounds returns the first instant of d and the first instant of the next day.
func (c *Calendar) DayBounds(d Date) (time.Time, time.Time) {
	return d.Midnight(c.loc), d.AddDays(1).Midnight(c.loc)
}

// Hours returns the effective shift hours for d and the exception applied, if any.
func (c *Calendar) Hours(d Date) (TimeRange, *Exception) {
	if e, ok := c.exceptions[d]; ok {
		return e.Hours, &e
	}
	return c.policy.Hours(d.Weekday()), nil
}

// Window returns the shift window for d, or false when d has no shift.
func (c *Calendar) Window(d Date) (Window, bool) {
	hours, _ := c.Hours(d)
	if hours.IsEmpty() {
		return Window{}, false
	}
	return Window{
		Date:  d,
		Start: d.At(hours.Start, c.loc),
		End:   d.At(hours.End, c.loc),
	}, true
}

// Exceptions returns the configured exceptions ordered by date.
func (c *Calendar) Exceptions() []Exception {
	out := make([]Exception, 0, len(c.exceptions))
	for _, e := range c.exceptions {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

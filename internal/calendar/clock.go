package calendar

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q (expected HH:MM): %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// TimeRange is a same-day clock range such as 10:00-19:00.
// The zero value is an empty range.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseTimeRange parses "HH:MM-HH:MM". Start must be before End.
func ParseTimeRange(s string) (TimeRange, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("invalid time range %q: expected 'HH:MM-HH:MM'", s)
	}

	start, err := ParseTimeOfDay(parts[0])
	if err != nil {
		return TimeRange{}, err
	}
	end, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return TimeRange{}, err
	}
	if start.Minutes() >= end.Minutes() {
		return TimeRange{}, fmt.Errorf("start time %s must be before end time %s", start, end)
	}
	return TimeRange{Start: start, End: end}, nil
}

func (r TimeRange) IsEmpty() bool {
	return r == TimeRange{}
}

func (r TimeRange) Minutes() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End.Minutes() - r.Start.Minutes()
}

func (r TimeRange) String() string {
	if r.IsEmpty() {
		return ""
	}
	return r.Start.String() + "-" + r.End.String()
}

func (r TimeRange) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts "HH:MM-HH:MM"; an empty string yields the empty range.
func (r *TimeRange) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*r = TimeRange{}
		return nil
	}
	parsed, err := ParseTimeRange(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

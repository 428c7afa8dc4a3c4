package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/spf13/pflag"
)

// dateValue is a civil date flag. "today" and "yesterday" are resolved
// against the app clock when the flag is read.
type dateValue struct {
	date     calendar.Date
	relative int
	set      bool
}

var _ pflag.Value = (*dateValue)(nil)

func (v *dateValue) String() string {
	if !v.set {
		return ""
	}
	if v.date.IsZero() {
		switch v.relative {
		case 0:
			return "today"
		case -1:
			return "yesterday"
		}
	}
	return v.date.String()
}

func (v *dateValue) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		*v = dateValue{relative: 0, set: true}
		return nil
	case "yesterday":
		*v = dateValue{relative: -1, set: true}
		return nil
	}
	d, err := calendar.ParseDate(s)
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD, today or yesterday")
	}
	*v = dateValue{date: d, set: true}
	return nil
}

func (v *dateValue) Type() string { return "date" }

// Resolve returns the zero Date when the flag was never set.
func (v *dateValue) Resolve(now time.Time, loc *time.Location) calendar.Date {
	if !v.set {
		return calendar.Date{}
	}
	if !v.date.IsZero() {
		return v.date
	}
	return calendar.DateOf(now, loc).AddDays(v.relative)
}

// instantValue is a point-in-time flag accepting RFC 3339, "YYYY-MM-DD HH:MM"
// or a bare "HH:MM" meaning today. Wall-clock forms are read in the app zone.
type instantValue struct {
	raw string
}

var _ pflag.Value = (*instantValue)(nil)

func (v *instantValue) String() string { return v.raw }

func (v *instantValue) Set(s string) error {
	if _, err := parseInstant(s, time.Now(), time.UTC); err != nil {
		return err
	}
	v.raw = s
	return nil
}

func (v *instantValue) Type() string { return "time" }

func (v *instantValue) IsSet() bool { return v.raw != "" }

// Resolve returns now when the flag was never set.
func (v *instantValue) Resolve(now time.Time, loc *time.Location) time.Time {
	if v.raw == "" {
		return now
	}
	t, err := parseInstant(v.raw, now, loc)
	if err != nil {
		return now
	}
	return t
}

func parseInstant(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, loc); err == nil {
		return t, nil
	}
	tod, err := calendar.ParseTimeOfDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use HH:MM, \"YYYY-MM-DD HH:MM\" or RFC 3339", s)
	}
	return calendar.DateOf(now, loc).At(tod, loc), nil
}

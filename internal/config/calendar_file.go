package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/alexanderramin/shiftclock/internal/calendar"
)

// CalendarFile is the TOML shift calendar:
//
//	[shifts]
//	default  = "10:00-19:00"
//	saturday = "10:00-16:00"
//	sunday   = ""
//
// "default" sets Monday to Friday. Named days override it or the built-in
// policy; an empty string is a day off.
type CalendarFile struct {
	Shifts map[string]string `toml:"shifts"`
}

var weekdayKeys = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Policy converts the file to a weekly policy, starting from base for any
// day the file does not mention.
func (f CalendarFile) Policy(base calendar.Policy) (calendar.Policy, error) {
	p := base
	if v, ok := f.Shifts["default"]; ok {
		r, err := parseShift("default", v)
		if err != nil {
			return calendar.Policy{}, err
		}
		for wd := time.Monday; wd <= time.Friday; wd++ {
			p.Days[wd] = r
		}
	}
	for key, v := range f.Shifts {
		if key == "default" {
			continue
		}
		wd, ok := weekdayKeys[key]
		if !ok {
			return calendar.Policy{}, fmt.Errorf("unknown shift day %q", key)
		}
		r, err := parseShift(key, v)
		if err != nil {
			return calendar.Policy{}, err
		}
		p.Days[wd] = r
	}
	return p, nil
}

func parseShift(key, v string) (calendar.TimeRange, error) {
	var r calendar.TimeRange
	if err := r.UnmarshalText([]byte(v)); err != nil {
		return calendar.TimeRange{}, fmt.Errorf("shift %s: %w", key, err)
	}
	return r, nil
}

// ParseCalendar decodes TOML calendar bytes.
func ParseCalendar(data []byte) (CalendarFile, error) {
	var f CalendarFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return CalendarFile{}, fmt.Errorf("parsing calendar: %w", err)
	}
	return f, nil
}

// LoadPolicy returns the default weekly policy, overridden by the calendar
// file at path when path is non-empty.
func LoadPolicy(path string) (calendar.Policy, error) {
	base := calendar.DefaultPolicy()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return calendar.Policy{}, fmt.Errorf("reading calendar file: %w", err)
	}
	f, err := ParseCalendar(data)
	if err != nil {
		return calendar.Policy{}, err
	}
	return f.Policy(base)
}

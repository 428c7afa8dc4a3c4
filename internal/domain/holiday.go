package domain

import (
	"time"

	"github.com/alexanderramin/shiftclock/internal/calendar"
)

// Holiday overrides the weekly shift policy on one civil date.
// Empty Hours means nobody is expected to work that day.
type Holiday struct {
	Date      calendar.Date
	Name      string
	Hours     calendar.TimeRange
	CreatedAt time.Time
}

func (h Holiday) IsDayOff() bool {
	return h.Hours.IsEmpty()
}

// Exception converts the holiday to its calendar override.
func (h Holiday) Exception() calendar.Exception {
	return calendar.Exception{Date: h.Date, Name: h.Name, Hours: h.Hours}
}

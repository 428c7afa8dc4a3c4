package domain

import (
	"fmt"
	"time"
)

// ActivitySpan is one logged period of a tagged activity.
// A nil End means the span is still open.
type ActivitySpan struct {
	ID        string
	UserID    string
	Type      ActivityType
	Start     time.Time
	End       *time.Time
	Note      string
	CreatedAt time.Time
}

func (s *ActivitySpan) IsOpen() bool {
	return s.End == nil
}

// Close sets End, rejecting an end before the span started.
func (s *ActivitySpan) Close(at time.Time) error {
	if s.End != nil {
		return fmt.Errorf("activity span %s is already closed", s.ID)
	}
	if at.Before(s.Start) {
		return fmt.Errorf("cannot close activity span %s at %s: before its start %s",
			s.ID, at.Format(time.RFC3339), s.Start.Format(time.RFC3339))
	}
	end := at
	s.End = &end
	return nil
}

// Overlaps reports whether the span intersects [from, to). Open spans extend indefinitely.
func (s *ActivitySpan) Overlaps(from, to time.Time) bool {
	if !s.Start.Before(to) {
		return false
	}
	return s.End == nil || s.End.After(from)
}

// Duration returns End - Start, or zero for an open span.
func (s *ActivitySpan) Duration() time.Duration {
	if s.End == nil {
		return 0
	}
	return s.End.Sub(s.Start)
}

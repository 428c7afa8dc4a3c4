package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
)

// FormatSpans lists activity spans; open spans show how long they have run.
func FormatSpans(spans []domain.ActivitySpan, names map[string]string, loc *time.Location, now time.Time) string {
	if len(spans) == 0 {
		return Dim("No activity found.") + "\n"
	}
	headers := []string{"ID", "AGENT", "TYPE", "START", "END", "DURATION", "NOTE"}
	rows := make([][]string, 0, len(spans))
	for i := range spans {
		s := &spans[i]
		end := StyleBlue.Render("open")
		dur := StyleBlue.Render(Elapsed(s.Start, now))
		if !s.IsOpen() {
			end = s.End.In(loc).Format("15:04")
			dur = FormatMinutes(int(s.Duration() / time.Minute))
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			agentName(names, s.UserID),
			ActivityBadge(s.Type),
			Stamp(s.Start, loc),
			end,
			dur,
			Dim(Preview(s.Note, 30)),
		})
	}
	return RenderBox("Activity", RenderTable(headers, rows, 5))
}

// FormatSpanChange reports a start or stop in one line.
func FormatSpanChange(verb string, s *domain.ActivitySpan, loc *time.Location) string {
	line := fmt.Sprintf("%s %s at %s", verb, ActivityBadge(s.Type), Stamp(s.Start, loc))
	if !s.IsOpen() {
		line = fmt.Sprintf("%s %s %s to %s (%s)", verb, ActivityBadge(s.Type),
			Stamp(s.Start, loc), s.End.In(loc).Format("15:04"), FormatMinutes(int(s.Duration()/time.Minute)))
	}
	return line + " " + TruncID(s.ID) + "\n"
}

func FormatAgents(agents []*domain.Agent) string {
	if len(agents) == 0 {
		return Dim("No agents found.") + "\n"
	}
	headers := []string{"ID", "NAME", "TEAM", "ROLE", "EMAIL"}
	rows := make([][]string, 0, len(agents))
	for _, a := range agents {
		rows = append(rows, []string{
			TruncID(a.ID),
			Bold(a.Name),
			a.Team,
			StylePurple.Render(string(a.Role)),
			Dim(a.Email),
		})
	}
	return RenderBox("Agents", RenderTable(headers, rows))
}

func FormatHolidays(holidays []domain.Holiday) string {
	if len(holidays) == 0 {
		return Dim("No holidays configured.") + "\n"
	}
	headers := []string{"DATE", "DAY", "NAME", "HOURS"}
	rows := make([][]string, 0, len(holidays))
	for _, h := range holidays {
		hours := StyleRed.Render("day off")
		if !h.IsDayOff() {
			hours = StyleYellow.Render(h.Hours.String())
		}
		rows = append(rows, []string{
			h.Date.String(),
			Dim(h.Date.Weekday().String()[:3]),
			h.Name,
			hours,
		})
	}
	return RenderBox("Holidays", RenderTable(headers, rows))
}

package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/app"
)

const attendanceBarWidth = 10

// FormatAttendance renders the per-agent totals and, when detailed is set
// or the report covers a single day, one line per agent-day.
func FormatAttendance(resp *app.AttendanceResponse, loc *time.Location, detailed bool) string {
	var b strings.Builder
	s := resp.Summary

	period := s.From.String()
	if s.To != s.From {
		period += " to " + s.To.String()
	}
	b.WriteString(Dim(fmt.Sprintf("%s  ·  source %s  ·  generated %s", period, s.Source, Stamp(s.GeneratedAt, loc))))
	b.WriteString("\n\n")

	if len(resp.Agents) == 0 {
		b.WriteString(Dim("No agents to report.") + "\n")
		b.WriteString(Warnings(resp.Warnings))
		return RenderBox("Attendance", b.String())
	}

	headers := []string{"AGENT", "TEAM", "WORKED", "SHIFT", "ATTENDANCE", "PRESENT", "ABSENT", "LATE"}
	rows := make([][]string, 0, len(resp.Agents))
	for _, a := range resp.Agents {
		rows = append(rows, []string{
			Bold(a.AgentName),
			Dim(a.Team),
			FormatMinutes(a.WorkedMinutes),
			FormatMinutes(a.ShiftMinutes),
			RenderProgress(a.AttendancePct, attendanceBarWidth),
			fmt.Sprintf("%d", a.PresentDays),
			fmt.Sprintf("%d", a.AbsentDays),
			fmt.Sprintf("%d", a.LateDays),
		})
	}
	b.WriteString(RenderTable(headers, rows, 2, 3, 5, 6, 7))

	if detailed || s.DayCount == 1 {
		for _, a := range resp.Agents {
			b.WriteString("\n")
			b.WriteString(Header(a.AgentName))
			b.WriteString("\n")
			b.WriteString(formatDays(a.Days, loc))
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s worked of %s scheduled, %s, %s, %s\n",
		Bold(FormatMinutes(s.TotalWorkedMinutes)),
		FormatMinutes(s.TotalShiftMinutes),
		StyleGreen.Render(fmt.Sprintf("%d present", s.PresentDays)),
		StyleRed.Render(fmt.Sprintf("%d absent", s.AbsentDays)),
		StyleYellow.Render(fmt.Sprintf("%d late", s.LateDays)),
	))
	b.WriteString(Warnings(resp.Warnings))

	return RenderBox("Attendance", b.String())
}

func formatDays(days []app.AttendanceDay, loc *time.Location) string {
	headers := []string{"DATE", "STATUS", "SHIFT", "FIRST", "WORKED", "%", "NOTES"}
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		shift := Dim("--")
		pct := Dim("--")
		if d.ShiftStart != nil {
			shift = Clock(d.ShiftStart, loc) + "-" + Clock(d.ShiftEnd, loc)
			pct = FormatPct(d.AttendancePct)
		}
		rows = append(rows, []string{
			d.Date.Weekday().String()[:3] + " " + d.Date.String(),
			AttendancePill(d.Status),
			shift,
			Clock(d.FirstStart, loc),
			FormatMinutes(d.WorkedMinutes),
			pct,
			dayNotes(d),
		})
	}
	return RenderTable(headers, rows, 4, 5)
}

func dayNotes(d app.AttendanceDay) string {
	var notes []string
	if d.HolidayName != "" {
		notes = append(notes, StylePurple.Render(d.HolidayName))
	}
	if d.Late {
		notes = append(notes, StyleYellow.Render("late by "+FormatMinutes(d.LateByMin)))
	}
	if d.OpenCounted {
		notes = append(notes, StyleBlue.Render("in progress"))
	}
	if d.CeilingExceeded {
		notes = append(notes, StyleRed.Render(fmt.Sprintf("clamped from %s", FormatMinutes(d.RawMinutes))))
	}
	return strings.Join(notes, Dim(", "))
}

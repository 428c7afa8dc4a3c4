package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// AttendanceStyle colors a day or agent by its attendance status.
func AttendanceStyle(status domain.AttendanceStatus) lipgloss.Style {
	switch status {
	case domain.AttendancePresent:
		return StyleGreen
	case domain.AttendanceAbsent:
		return StyleRed
	case domain.AttendancePending:
		return StyleBlue
	default:
		return StyleDim
	}
}

// AttendancePill returns a colored marker such as "● Present".
func AttendancePill(status domain.AttendanceStatus) string {
	switch status {
	case domain.AttendancePresent:
		return StyleGreen.Render("● Present")
	case domain.AttendanceAbsent:
		return StyleRed.Render("✖ Absent")
	case domain.AttendancePending:
		return StyleBlue.Render("○ Pending")
	case domain.AttendanceOff:
		return StyleDim.Render("– Off")
	default:
		return StyleDim.Render(string(status))
	}
}

// OutcomeBadge colors a call outcome by how good it is for the business.
func OutcomeBadge(o domain.CallOutcome) string {
	switch o {
	case domain.OutcomeConverted:
		return StyleGreen.Render(o.Label())
	case domain.OutcomeInterested, domain.OutcomeCallback:
		return StyleBlue.Render(o.Label())
	case domain.OutcomeNotInterested, domain.OutcomeWrongNumber:
		return StyleRed.Render(o.Label())
	default:
		return StyleDim.Render(o.Label())
	}
}

// ActivityBadge renders work types in purple and everything else dimmed.
func ActivityBadge(t domain.ActivityType) string {
	if t.IsWork() {
		return StylePurple.Render(t.Label())
	}
	return StyleDim.Render(t.Label())
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

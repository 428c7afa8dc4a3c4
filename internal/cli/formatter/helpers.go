package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into "2h 5m" form.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// Clock formats t as HH:MM in loc, or a dimmed "--" when t is nil.
func Clock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return Dim("--")
	}
	return t.In(loc).Format("15:04")
}

// Stamp formats an instant as "Mon 19 Oct 10:05" in loc.
func Stamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Mon 02 Jan 15:04")
}

// Elapsed renders how long ago t was relative to now, for open spans.
func Elapsed(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 0:
		return "starts " + Stamp(t, now.Location())
	case d < time.Minute:
		return "just now"
	default:
		return FormatMinutes(int(d/time.Minute)) + " ago"
	}
}

// Preview shortens s to n visible runes with an ellipsis.
func Preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// Warnings renders each warning on its own yellow line.
func Warnings(ws []string) string {
	if len(ws) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, w := range ws {
		b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
	}
	return b.String()
}

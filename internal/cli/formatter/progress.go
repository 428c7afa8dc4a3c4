package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders an attendance bar like [████░░░░]  45%.
// pct is a percentage in [0, 100]; values outside are clamped.
// Green from 90%, yellow from 60%, red below.
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := min(int(pct/100*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 60:
		style = StyleRed
	case pct < 90:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %s", style.Render(bar), FormatPct(pct))
}

// FormatPct prints a percentage right-aligned in four columns.
func FormatPct(pct float64) string {
	return fmt.Sprintf("%3.0f%%", pct)
}

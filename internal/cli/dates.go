package cli

import (
	"time"

	"github.com/alexanderramin/shiftclock/internal/calendar"
)

// dayRange resolves --from/--to flags into [start of from, start of day after to).
// Unset flags default to today; an unset --to follows --from.
func dayRange(app *App, from, to *dateValue) (time.Time, time.Time) {
	now, loc := app.now(), app.loc()
	f := from.Resolve(now, loc)
	if f.IsZero() {
		f = calendar.DateOf(now, loc)
	}
	t := to.Resolve(now, loc)
	if t.IsZero() || t.Before(f) {
		t = f
	}
	return f.Midnight(loc), t.AddDays(1).Midnight(loc)
}

func formatDate(app *App) string {
	return calendar.DateOf(app.now(), app.loc()).String()
}

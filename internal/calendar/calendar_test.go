package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	r, err := ParseTimeRange("10:00-19:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 10}, r.Start)
	assert.Equal(t, TimeOfDay{Hour: 19}, r.End)
	assert.Equal(t, 540, r.Minutes())
	assert.Equal(t, "10:00-19:00", r.String())
}

func TestParseTimeRange_Invalid(t *testing.T) {
	for _, s := range []string{"10:00", "19:00-10:00", "10:00-10:00", "ab:cd-19:00", "10:00-19:00-20:00"} {
		_, err := ParseTimeRange(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestTimeRange_UnmarshalTextEmptyIsDayOff(t *testing.T) {
	r := TimeRange{Start: TimeOfDay{Hour: 9}, End: TimeOfDay{Hour: 17}}
	require.NoError(t, r.UnmarshalText([]byte("")))
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, r.Minutes())
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	assert.True(t, p.Hours(time.Sunday).IsEmpty(), "sunday is a day off")
	assert.Equal(t, "10:00-16:00", p.Hours(time.Saturday).String())
	for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		assert.Equal(t, "10:00-19:00", p.Hours(wd).String(), wd.String())
	}
}

func TestCalendar_WindowWeekday(t *testing.T) {
	cal := New(Dubai, DefaultPolicy())
	monday := Date{2026, time.October, 19}

	w, ok := cal.Window(monday)
	require.True(t, ok)
	assert.Equal(t, monday, w.Date)
	assert.Equal(t, time.Date(2026, 10, 19, 10, 0, 0, 0, Dubai), w.Start)
	assert.Equal(t, time.Date(2026, 10, 19, 19, 0, 0, 0, Dubai), w.End)
	assert.Equal(t, 540, w.Minutes())
}

func TestCalendar_SundayHasNoWindow(t *testing.T) {
	cal := New(Dubai, DefaultPolicy())
	_, ok := cal.Window(Date{2026, time.October, 18})
	assert.False(t, ok)
}

func TestCalendar_SaturdayShortened(t *testing.T) {
	cal := New(Dubai, DefaultPolicy())
	w, ok := cal.Window(Date{2026, time.October, 24})
	require.True(t, ok)
	assert.Equal(t, 360, w.Minutes())
}

func TestCalendar_ExceptionDayOff(t *testing.T) {
	holiday := Date{2026, time.December, 2}
	cal := New(Dubai, DefaultPolicy(), Exception{Date: holiday, Name: "National Day"})

	_, ok := cal.Window(holiday)
	assert.False(t, ok)

	_, ex := cal.Hours(holiday)
	require.NotNil(t, ex)
	assert.Equal(t, "National Day", ex.Name)
}

func TestCalendar_ExceptionCustomHours(t *testing.T) {
	d := Date{2026, time.October, 20}
	hours, err := ParseTimeRange("09:00-13:00")
	require.NoError(t, err)
	cal := New(Dubai, DefaultPolicy(), Exception{Date: d, Name: "Ramadan", Hours: hours})

	w, ok := cal.Window(d)
	require.True(t, ok)
	assert.Equal(t, 240, w.Minutes())
	assert.Equal(t, 9, w.Start.Hour())
}

func TestCalendar_DayBounds(t *testing.T) {
	cal := New(Dubai, DefaultPolicy())
	start, end := cal.DayBounds(Date{2026, time.October, 19})

	assert.Equal(t, time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestCalendar_Today(t *testing.T) {
	cal := New(Dubai, DefaultPolicy())
	now := time.Date(2026, 10, 18, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, Date{2026, time.October, 19}, cal.Today(now))
}

func TestWindow_Contains(t *testing.T) {
	cal := New(Dubai, DefaultPolicy())
	w, _ := cal.Window(Date{2026, time.October, 19})

	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End), "end is exclusive")
	assert.False(t, w.Contains(w.Start.Add(-time.Second)))
}

func TestCalendar_ExceptionsSorted(t *testing.T) {
	a := Exception{Date: Date{2026, time.December, 3}}
	b := Exception{Date: Date{2026, time.December, 2}}
	cal := New(Dubai, DefaultPolicy(), a, b)

	got := cal.Exceptions()
	require.Len(t, got, 2)
	assert.Equal(t, b.Date, got[0].Date)
}

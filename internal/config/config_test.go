package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("SHIFTCLOCK_DB", "/tmp/sc.db")
	for _, k := range []string{
		"SHIFTCLOCK_CALENDAR", "SHIFTCLOCK_PG_URL", "SHIFTCLOCK_UTC_OFFSET_MIN",
		"SHIFTCLOCK_OPEN_FRESHNESS", "SHIFTCLOCK_OPEN_CAP", "SHIFTCLOCK_LATE_GRACE",
		"SHIFTCLOCK_CACHE_TTL", "SHIFTCLOCK_LOG_USE_CASES",
	} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sc.db", cfg.DBPath)
	assert.Equal(t, 240, cfg.UTCOffsetMin)
	assert.Equal(t, 30*time.Minute, cfg.OpenFreshness)
	assert.Equal(t, 15*time.Minute, cfg.OpenCap)
	assert.Equal(t, 15*time.Minute, cfg.LateGrace)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.False(t, cfg.LogUseCases)
	assert.Empty(t, cfg.PostgresURL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SHIFTCLOCK_DB", "/tmp/sc.db")
	t.Setenv("SHIFTCLOCK_PG_URL", "postgres://u:p@localhost:5432/app")
	t.Setenv("SHIFTCLOCK_UTC_OFFSET_MIN", "180")
	t.Setenv("SHIFTCLOCK_OPEN_FRESHNESS", "45m")
	t.Setenv("SHIFTCLOCK_OPEN_CAP", "10m")
	t.Setenv("SHIFTCLOCK_LATE_GRACE", "5m")
	t.Setenv("SHIFTCLOCK_CACHE_TTL", "0s")
	t.Setenv("SHIFTCLOCK_LOG_USE_CASES", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost:5432/app", cfg.PostgresURL)
	assert.Equal(t, 180, cfg.UTCOffsetMin)
	assert.Equal(t, 45*time.Minute, cfg.ReconcilePolicy().OpenFreshness)
	assert.Equal(t, 10*time.Minute, cfg.ReconcilePolicy().OpenCap)
	assert.Equal(t, 5*time.Minute, cfg.LateGrace)
	assert.Equal(t, time.Duration(0), cfg.CacheTTL)
	assert.True(t, cfg.LogUseCases)

	_, offset := time.Date(2026, 10, 19, 12, 0, 0, 0, cfg.Location()).Zone()
	assert.Equal(t, 3*3600, offset)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SHIFTCLOCK_DB", "/tmp/sc.db")
	t.Setenv("SHIFTCLOCK_UTC_OFFSET_MIN", "99999")
	t.Setenv("SHIFTCLOCK_OPEN_FRESHNESS", "soon")
	t.Setenv("SHIFTCLOCK_OPEN_CAP", "-5m")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 240, cfg.UTCOffsetMin)
	assert.Equal(t, 30*time.Minute, cfg.OpenFreshness)
	assert.Equal(t, 15*time.Minute, cfg.OpenCap)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SHIFTCLOCK_OPEN_CAP=20m\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("SHIFTCLOCK_DB", "/tmp/sc.db")
	t.Setenv("SHIFTCLOCK_OPEN_CAP", "")
	require.NoError(t, os.Unsetenv("SHIFTCLOCK_OPEN_CAP"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20*time.Minute, cfg.OpenCap)
}

func TestLoad_NoDotEnvIsFine(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("SHIFTCLOCK_DB", "/tmp/sc.db")

	_, err = Load()
	assert.NoError(t, err)
}

func TestCalendarFile_Policy(t *testing.T) {
	f, err := ParseCalendar([]byte(`
[shifts]
default  = "09:00-18:00"
saturday = ""
sunday   = "12:00-16:00"
`))
	require.NoError(t, err)

	p, err := f.Policy(calendar.DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, "09:00-18:00", p.Hours(time.Monday).String())
	assert.Equal(t, "09:00-18:00", p.Hours(time.Friday).String())
	assert.True(t, p.Hours(time.Saturday).IsEmpty(), "empty string is a day off")
	assert.Equal(t, "12:00-16:00", p.Hours(time.Sunday).String())
}

func TestCalendarFile_PartialKeepsBase(t *testing.T) {
	f, err := ParseCalendar([]byte("[shifts]\nthursday = \"10:00-14:00\"\n"))
	require.NoError(t, err)

	p, err := f.Policy(calendar.DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, "10:00-14:00", p.Hours(time.Thursday).String())
	assert.Equal(t, "10:00-19:00", p.Hours(time.Monday).String())
	assert.Equal(t, "10:00-16:00", p.Hours(time.Saturday).String())
	assert.True(t, p.Hours(time.Sunday).IsEmpty())
}

func TestCalendarFile_Errors(t *testing.T) {
	f, err := ParseCalendar([]byte("[shifts]\nfunday = \"10:00-14:00\"\n"))
	require.NoError(t, err)
	_, err = f.Policy(calendar.DefaultPolicy())
	assert.ErrorContains(t, err, "unknown shift day")

	f, err = ParseCalendar([]byte("[shifts]\nmonday = \"19:00-10:00\"\n"))
	require.NoError(t, err)
	_, err = f.Policy(calendar.DefaultPolicy())
	assert.Error(t, err, "inverted range is rejected")

	_, err = ParseCalendar([]byte("[shifts\n"))
	assert.Error(t, err)
}

func TestLoadPolicy(t *testing.T) {
	p, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, calendar.DefaultPolicy(), p)

	path := filepath.Join(t.TempDir(), "calendar.toml")
	require.NoError(t, os.WriteFile(path, []byte("[shifts]\nsaturday = \"\"\n"), 0o644))
	p, err = LoadPolicy(path)
	require.NoError(t, err)
	assert.True(t, p.Hours(time.Saturday).IsEmpty())

	_, err = LoadPolicy(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

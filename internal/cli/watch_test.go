package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/shiftclock/internal/app"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// loaded runs the model's report command synchronously and feeds the result back.
func loaded(t *testing.T, m watchModel) watchModel {
	t.Helper()
	msg := m.load()()
	next, _ := m.Update(msg)
	return next.(watchModel)
}

func TestWatch_LoadsTodaysReport(t *testing.T) {
	a := testApp(t)
	mustRun(t, a, "agent", "add", "--name", "Layla")
	mustRun(t, a, "activity", "start", "Layla", "--at", "10:00")

	m := newWatchModel(context.Background(), a, nil, "", 0)
	assert.Equal(t, defaultWatchInterval, m.interval)
	assert.True(t, m.loading)
	assert.NotNil(t, m.Init())

	m = loaded(t, m)
	require.NoError(t, m.err)
	require.NotNil(t, m.resp)
	assert.False(t, m.loading)

	view := ansiPattern.ReplaceAllString(m.View(), "")
	assert.Contains(t, view, "Layla")
	assert.Contains(t, view, "updated 15:00:00")
	assert.Contains(t, view, "refresh")
	assert.Contains(t, view, "quit")
}

func TestWatch_Keys(t *testing.T) {
	a := testApp(t)
	m := loaded(t, newWatchModel(context.Background(), a, nil, "", time.Minute))

	next, cmd := m.Update(keyPress('r'))
	m = next.(watchModel)
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)

	next, cmd = m.Update(keyPress('r'))
	assert.Nil(t, cmd, "refresh is ignored while a load is running")
	m = loaded(t, next.(watchModel))

	next, _ = m.Update(keyPress('d'))
	assert.True(t, next.(watchModel).detailed)

	next, cmd = m.Update(keyPress('q'))
	m = next.(watchModel)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestWatch_TickReloads(t *testing.T) {
	a := testApp(t)
	m := loaded(t, newWatchModel(context.Background(), a, nil, "", time.Minute))

	next, cmd := m.Update(tickMsg(time.Now()))
	assert.True(t, next.(watchModel).loading)
	assert.NotNil(t, cmd)
}

func TestWatch_KeepsLastReportOnError(t *testing.T) {
	a := testApp(t)
	m := loaded(t, newWatchModel(context.Background(), a, nil, "", time.Minute))
	prev := m.resp

	next, _ := m.Update(reportMsg{err: errors.New("database is locked")})
	m = next.(watchModel)
	assert.Same(t, prev, m.resp)
	view := ansiPattern.ReplaceAllString(m.View(), "")
	assert.Contains(t, view, "Error: database is locked")

	next, _ = m.Update(reportMsg{resp: &app.AttendanceResponse{}})
	assert.NoError(t, next.(watchModel).err)
}

package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/app"
	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const defaultWatchInterval = 30 * time.Second

func newWatchCmd(a *App) *cobra.Command {
	var agentRefs []string
	var team string
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live view of today's attendance",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids, err := resolveAgentIDs(ctx, a, agentRefs)
			if err != nil {
				return err
			}
			m := newWatchModel(ctx, a, ids, team, interval)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringSliceVar(&agentRefs, "agent", nil, "Agent name or ID (repeatable)")
	cmd.Flags().StringVar(&team, "team", "", "Only agents in this team")
	cmd.Flags().DurationVar(&interval, "interval", defaultWatchInterval, "Refresh interval")

	return cmd
}

type watchKeyMap struct {
	Refresh key.Binding
	Detail  key.Binding
	Quit    key.Binding
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Detail, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultWatchKeys() watchKeyMap {
	return watchKeyMap{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Detail:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle days")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

type reportMsg struct {
	resp *app.AttendanceResponse
	err  error
}

type tickMsg time.Time

type watchModel struct {
	ctx      context.Context
	app      *App
	agentIDs []string
	team     string
	interval time.Duration

	keys    watchKeyMap
	help    help.Model
	spinner spinner.Model

	resp      *app.AttendanceResponse
	err       error
	loading   bool
	detailed  bool
	updatedAt time.Time
	quitting  bool
}

func newWatchModel(ctx context.Context, a *App, agentIDs []string, team string, interval time.Duration) watchModel {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	return watchModel{
		ctx:      ctx,
		app:      a,
		agentIDs: agentIDs,
		team:     team,
		interval: interval,
		keys:     defaultWatchKeys(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple)),
		loading:  true,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tick(), m.spinner.Tick)
}

// load runs today's report off the UI goroutine.
func (m watchModel) load() tea.Cmd {
	return func() tea.Msg {
		now := m.app.now()
		req := app.NewAttendanceRequest()
		req.Now = &now
		req.AgentIDs = m.agentIDs
		req.Team = m.team
		resp, err := m.app.Attendance.Report(m.ctx, req)
		return reportMsg{resp: resp, err: err}
	}
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.load(), m.spinner.Tick)
		case key.Matches(msg, m.keys.Detail):
			m.detailed = !m.detailed
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.loading {
			return m, m.tick()
		}
		m.loading = true
		return m, tea.Batch(m.load(), m.tick(), m.spinner.Tick)

	case reportMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.resp = msg.resp
			m.updatedAt = m.app.now()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	status := formatter.Dim(fmt.Sprintf("refreshing every %s", m.interval))
	if !m.updatedAt.IsZero() {
		status = formatter.Dim(fmt.Sprintf("updated %s, refreshing every %s",
			m.updatedAt.In(m.app.loc()).Format("15:04:05"), m.interval))
	}
	if m.loading {
		status = m.spinner.View() + " " + formatter.Dim("loading")
	}
	b.WriteString(status + "\n\n")

	switch {
	case m.resp != nil:
		b.WriteString(formatter.FormatAttendance(m.resp, m.app.loc(), m.detailed))
		b.WriteString("\n")
	case !m.loading && m.err == nil:
		b.WriteString(formatter.Dim("No data yet.") + "\n")
	}
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

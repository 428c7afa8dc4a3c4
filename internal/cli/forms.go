package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func shiftclockHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(shiftclockHuhTheme()).WithShowHelp(false)
}

type agentFormValues struct {
	Name  string
	Team  string
	Role  string
	Email string
}

func agentForm(v *agentFormValues) *huh.Form {
	roles := make([]huh.Option[string], 0, len(domain.ValidAgentRoles))
	for _, r := range []domain.AgentRole{domain.RoleAgent, domain.RoleSupervisor, domain.RoleAdmin} {
		roles = append(roles, huh.NewOption(string(r), string(r)))
	}
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.Name).Validate(validateRequired("name")),
			huh.NewInput().Title("Team").Placeholder("sales").Value(&v.Team),
			huh.NewSelect[string]().Title("Role").Options(roles...).Value(&v.Role),
			huh.NewInput().Title("Email (optional)").Value(&v.Email),
		),
	)
}

type spanFormValues struct {
	AgentID string
	Type    string
	Date    string
	Hours   string
	Note    string
}

func activityTypeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.AllActivityTypes))
	for _, t := range domain.AllActivityTypes {
		opts = append(opts, huh.NewOption(t.Label(), string(t)))
	}
	return opts
}

// spanForm collects a backfilled span as a date plus an HH:MM-HH:MM range.
func spanForm(agents []huh.Option[string], v *spanFormValues) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Agent").Options(agents...).Value(&v.AgentID),
			huh.NewSelect[string]().Title("Activity").Options(activityTypeOptions()...).Value(&v.Type),
		),
		huh.NewGroup(
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(&v.Date).Validate(validateDate),
			huh.NewInput().Title("Hours (HH:MM-HH:MM)").Placeholder("10:00-12:30").Value(&v.Hours).Validate(validateHours),
			huh.NewInput().Title("Note").Value(&v.Note),
		),
	)
}

type callFormValues struct {
	AgentID string
	Contact string
	Outcome string
	Note    string
}

func callForm(agents []huh.Option[string], v *callFormValues) *huh.Form {
	outcomes := make([]huh.Option[string], 0, len(domain.AllCallOutcomes))
	for _, o := range domain.AllCallOutcomes {
		outcomes = append(outcomes, huh.NewOption(o.Label(), string(o)))
	}
	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Agent").Options(agents...).Value(&v.AgentID),
			huh.NewInput().Title("Contact").Value(&v.Contact),
			huh.NewSelect[string]().Title("Outcome").Options(outcomes...).Value(&v.Outcome),
			huh.NewText().Title("Note").Value(&v.Note),
		),
	)
}

func confirmForm(title string, result *bool) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(result),
		),
	)
}

func agentOptions(agents []*domain.Agent) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(agents))
	for _, a := range agents {
		label := a.Name
		if a.Team != "" {
			label = fmt.Sprintf("%s (%s)", a.Name, a.Team)
		}
		opts = append(opts, huh.NewOption(label, a.ID))
	}
	return opts
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := calendar.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateHours accepts an empty string as "day off".
func validateHours(s string) error {
	if s == "" {
		return nil
	}
	_, err := calendar.ParseTimeRange(s)
	return err
}

// spanBounds turns a date and clock range into instants in loc.
func spanBounds(date, hours string, loc *time.Location) (time.Time, time.Time, error) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	r, err := calendar.ParseTimeRange(hours)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return d.At(r.Start, loc), d.At(r.End, loc), nil
}

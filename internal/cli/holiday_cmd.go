package cli

import (
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/spf13/cobra"
)

func newHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage holidays and one-off shift hours",
	}

	cmd.AddCommand(
		newHolidayAddCmd(app),
		newHolidayListCmd(app),
		newHolidayRemoveCmd(app),
	)

	return cmd
}

func newHolidayAddCmd(app *App) *cobra.Command {
	var name, hours string

	cmd := &cobra.Command{
		Use:   "add DATE",
		Short: "Mark a date as a day off, or give it custom hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := calendar.ParseDate(args[0])
			if err != nil {
				return err
			}
			var r calendar.TimeRange
			if hours != "" {
				if r, err = calendar.ParseTimeRange(hours); err != nil {
					return err
				}
			}
			h := &domain.Holiday{Date: d, Name: name, Hours: r}
			if err := app.Holidays.Add(cmd.Context(), h); err != nil {
				return err
			}

			what := "day off"
			if !h.IsDayOff() {
				what = "hours " + r.String()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s on %s: %s\n", formatter.Bold(h.Name), d, what)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Holiday name")
	cmd.Flags().StringVar(&hours, "hours", "", "Custom hours HH:MM-HH:MM (empty for a day off)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newHolidayListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			holidays, err := app.Holidays.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHolidays(holidays))
			return nil
		},
	}
}

func newHolidayRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove DATE",
		Short: "Remove a holiday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := calendar.ParseDate(args[0])
			if err != nil {
				return err
			}
			if err := app.Holidays.Remove(cmd.Context(), d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed holiday on %s\n", d)
			return nil
		},
	}
}

package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/alexanderramin/shiftclock/internal/service"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"act"},
		Short:   "Track agent activity",
	}

	cmd.AddCommand(
		newActivityStartCmd(app),
		newActivityStopCmd(app),
		newActivityStatusCmd(app),
		newActivityLogCmd(app),
		newActivityListCmd(app),
		newActivityRemoveCmd(app),
	)

	return cmd
}

func newActivityStartCmd(app *App) *cobra.Command {
	var typ, note string
	var at instantValue

	cmd := &cobra.Command{
		Use:   "start AGENT",
		Short: "Switch an agent to a new activity, closing the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveAgentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := domain.ParseActivityType(typ)
			if err != nil {
				return err
			}
			span, err := app.Activity.Start(ctx, id, t, at.Resolve(app.now(), app.loc()), note)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSpanChange("Started", span, app.loc()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", string(domain.ActivityWork), "Activity type")
	cmd.Flags().Var(&at, "at", "Start time (default now)")
	cmd.Flags().StringVar(&note, "note", "", "Note")

	return cmd
}

func newActivityStopCmd(app *App) *cobra.Command {
	var at instantValue

	cmd := &cobra.Command{
		Use:   "stop AGENT",
		Short: "Close the agent's open activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveAgentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			span, err := app.Activity.Stop(ctx, id, at.Resolve(app.now(), app.loc()))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSpanChange("Stopped", span, app.loc()))
			return nil
		},
	}

	cmd.Flags().Var(&at, "at", "Stop time (default now)")

	return cmd
}

func newActivityStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status AGENT",
		Short: "Show what the agent is doing right now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveAgentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			span, err := app.Activity.Current(ctx, id)
			if errors.Is(err, service.ErrNoOpenSpan) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No open activity."))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s since %s (%s)\n",
				formatter.ActivityBadge(span.Type),
				formatter.Stamp(span.Start, app.loc()),
				formatter.Elapsed(span.Start, app.now()))
			return nil
		},
	}
}

func newActivityLogCmd(app *App) *cobra.Command {
	var v spanFormValues
	var agentRef string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Backfill a finished activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if agentRef == "" || v.Date == "" || v.Hours == "" {
				if !app.Interactive {
					return fmt.Errorf("--agent, --date and --hours are required")
				}
				agents, err := app.Agents.List(ctx, "")
				if err != nil {
					return err
				}
				if len(agents) == 0 {
					return fmt.Errorf("no agents registered; add one with 'shiftclock agent add'")
				}
				if v.Date == "" {
					v.Date = formatDate(app)
				}
				if err := spanForm(agentOptions(agents), &v).Run(); err != nil {
					return err
				}
				agentRef = v.AgentID
			}

			id, err := resolveAgentID(ctx, app, agentRef)
			if err != nil {
				return err
			}
			t, err := domain.ParseActivityType(v.Type)
			if err != nil {
				return err
			}
			start, end, err := spanBounds(v.Date, v.Hours, app.loc())
			if err != nil {
				return err
			}

			span := &domain.ActivitySpan{UserID: id, Type: t, Start: start, End: &end, Note: v.Note}
			if err := app.Activity.Log(ctx, span); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSpanChange("Logged", span, app.loc()))
			return nil
		},
	}

	cmd.Flags().StringVar(&agentRef, "agent", "", "Agent name or ID")
	cmd.Flags().StringVarP(&v.Type, "type", "t", string(domain.ActivityWork), "Activity type")
	cmd.Flags().StringVar(&v.Date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&v.Hours, "hours", "", "Clock range, e.g. 10:00-12:30")
	cmd.Flags().StringVar(&v.Note, "note", "", "Note")

	return cmd
}

func newActivityListCmd(app *App) *cobra.Command {
	var agentRefs []string
	var from, to dateValue
	var workOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activity spans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids, err := resolveAgentIDs(ctx, app, agentRefs)
			if err != nil {
				return err
			}
			start, end := dayRange(app, &from, &to)
			q := repository.SpanQuery{UserIDs: ids, From: start, To: end}
			if workOnly {
				q.Types = domain.WorkActivityTypes()
			}
			spans, err := app.Activity.List(ctx, q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSpans(spans, agentNames(ctx, app), app.loc(), app.now()))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&agentRefs, "agent", nil, "Agent name or ID (repeatable)")
	cmd.Flags().Var(&from, "from", "First date (default today)")
	cmd.Flags().Var(&to, "to", "Last date (default --from)")
	cmd.Flags().BoolVar(&workOnly, "work", false, "Only activity types that count as work")

	return cmd
}

func newActivityRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an activity span",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Activity.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed activity %s\n", args[0])
			return nil
		},
	}
}

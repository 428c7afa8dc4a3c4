package cli

import (
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/spf13/cobra"
)

func newCallCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call",
		Short: "Record call outcomes",
	}

	cmd.AddCommand(
		newCallLogCmd(app),
		newCallListCmd(app),
	)

	return cmd
}

func newCallLogCmd(app *App) *cobra.Command {
	var v callFormValues
	var agentRef string
	var at instantValue

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record the outcome of a call",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if agentRef == "" || v.Outcome == "" {
				if !app.Interactive {
					return fmt.Errorf("--agent and --outcome are required")
				}
				agents, err := app.Agents.List(ctx, "")
				if err != nil {
					return err
				}
				if len(agents) == 0 {
					return fmt.Errorf("no agents registered; add one with 'shiftclock agent add'")
				}
				if err := callForm(agentOptions(agents), &v).Run(); err != nil {
					return err
				}
				agentRef = v.AgentID
			}

			id, err := resolveAgentID(ctx, app, agentRef)
			if err != nil {
				return err
			}
			outcome, err := domain.ParseCallOutcome(v.Outcome)
			if err != nil {
				return err
			}
			c := &domain.CallFeedback{
				AgentID:  id,
				Contact:  v.Contact,
				Outcome:  outcome,
				Note:     v.Note,
				CalledAt: at.Resolve(app.now(), app.loc()),
			}
			if err := app.Calls.Log(ctx, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s call at %s %s\n",
				formatter.OutcomeBadge(c.Outcome), formatter.Stamp(c.CalledAt, app.loc()), formatter.TruncID(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&agentRef, "agent", "", "Agent name or ID")
	cmd.Flags().StringVar(&v.Outcome, "outcome", "", "Outcome (interested, not_interested, callback, no_answer, wrong_number, converted)")
	cmd.Flags().StringVar(&v.Contact, "contact", "", "Phone number or customer reference")
	cmd.Flags().StringVar(&v.Note, "note", "", "Note")
	cmd.Flags().Var(&at, "at", "Call time (default now)")

	return cmd
}

func newCallListCmd(app *App) *cobra.Command {
	var agentRefs []string
	var from, to dateValue

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids, err := resolveAgentIDs(ctx, app, agentRefs)
			if err != nil {
				return err
			}
			start, end := dayRange(app, &from, &to)
			calls, err := app.Calls.List(ctx, repository.CallQuery{AgentIDs: ids, From: start, To: end})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCallList(calls, agentNames(ctx, app), app.loc()))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&agentRefs, "agent", nil, "Agent name or ID (repeatable)")
	cmd.Flags().Var(&from, "from", "First date (default today)")
	cmd.Flags().Var(&to, "to", "Last date (default --from)")

	return cmd
}

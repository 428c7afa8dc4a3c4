package cli

import (
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/app"
	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/alexanderramin/shiftclock/internal/observability"
	"github.com/spf13/cobra"
)

func newReportCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Attendance and call reports",
	}

	cmd.AddCommand(
		newReportAttendanceCmd(a),
		newReportCallsCmd(a),
	)

	return cmd
}

// reportFlags are shared by every report subcommand.
type reportFlags struct {
	from, to  dateValue
	agentRefs []string
	team      string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(&f.from, "from", "First date, inclusive (default today)")
	cmd.Flags().Var(&f.to, "to", "Last date, inclusive (default --from)")
	cmd.Flags().StringSliceVar(&f.agentRefs, "agent", nil, "Agent name or ID (repeatable)")
	cmd.Flags().StringVar(&f.team, "team", "", "Only agents in this team")
}

func newReportAttendanceCmd(a *App) *cobra.Command {
	var f reportFlags
	var detailed bool
	var metricsFile string

	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Worked minutes against shift hours per agent and day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids, err := resolveAgentIDs(ctx, a, f.agentRefs)
			if err != nil {
				return err
			}
			now := a.now()
			req := app.NewAttendanceRequest()
			req.Now = &now
			req.From = f.from.Resolve(now, a.loc())
			req.To = f.to.Resolve(now, a.loc())
			req.AgentIDs = ids
			req.Team = f.team

			resp, err := a.Attendance.Report(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAttendance(resp, a.loc(), detailed))
			fmt.Fprintln(cmd.OutOrStdout())

			if metricsFile != "" {
				if err := observability.WriteTextfile(metricsFile); err != nil {
					return fmt.Errorf("writing metrics: %w", err)
				}
			}
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "Show every agent-day")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path")

	return cmd
}

func newReportCallsCmd(a *App) *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   "calls",
		Short: "Call outcomes and conversion per agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids, err := resolveAgentIDs(ctx, a, f.agentRefs)
			if err != nil {
				return err
			}
			now := a.now()
			resp, err := a.Calls.CallReport(ctx, app.CallReportRequest{
				Now:      &now,
				From:     f.from.Resolve(now, a.loc()),
				To:       f.to.Resolve(now, a.loc()),
				AgentIDs: ids,
				Team:     f.team,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCallReport(resp))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	f.register(cmd)

	return cmd
}

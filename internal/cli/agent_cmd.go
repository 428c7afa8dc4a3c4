package cli

import (
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/spf13/cobra"
)

func newAgentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage agents",
	}

	cmd.AddCommand(
		newAgentAddCmd(app),
		newAgentListCmd(app),
		newAgentRemoveCmd(app),
	)

	return cmd
}

func newAgentAddCmd(app *App) *cobra.Command {
	var v agentFormValues

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			if v.Name == "" {
				if !app.Interactive {
					return fmt.Errorf("--name is required")
				}
				if err := agentForm(&v).Run(); err != nil {
					return err
				}
			}

			a := &domain.Agent{
				Name:  v.Name,
				Team:  v.Team,
				Role:  domain.AgentRole(v.Role),
				Email: v.Email,
			}
			if err := app.Agents.Create(cmd.Context(), a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added agent %s (%s)\n", formatter.Bold(a.Name), a.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&v.Name, "name", "", "Agent name")
	cmd.Flags().StringVar(&v.Team, "team", "", "Team")
	cmd.Flags().StringVar(&v.Role, "role", string(domain.RoleAgent), "Role (agent, supervisor, admin)")
	cmd.Flags().StringVar(&v.Email, "email", "", "Email address")

	return cmd
}

func newAgentListCmd(app *App) *cobra.Command {
	var team string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			agents, err := app.Agents.List(cmd.Context(), team)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAgents(agents))
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Only agents in this team")

	return cmd
}

func newAgentRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove AGENT",
		Short: "Remove an agent with all their activity and calls",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveAgentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !yes && app.Interactive {
				if err := confirmForm("Remove this agent and all their history?", &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Agents.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed agent %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

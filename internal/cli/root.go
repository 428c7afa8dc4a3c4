package cli

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/shiftclock/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Agents     service.AgentService
	Activity   service.ActivityService
	Holidays   service.HolidayService
	Attendance service.AttendanceService
	Calls      service.CallService

	// Dump writes the local database as SQL statements.
	Dump func(ctx context.Context, w io.Writer) error

	// Location is the zone civil dates and clock flags are read in.
	Location *time.Location
	// Interactive enables huh prompts for values missing from flags.
	Interactive bool
	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) loc() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

// NewRootCmd creates the top-level "shiftclock" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "shiftclock",
		Short:         "Agent activity tracking and shift attendance reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAgentCmd(app),
		newActivityCmd(app),
		newHolidayCmd(app),
		newCallCmd(app),
		newReportCmd(app),
		newWatchCmd(app),
		newDumpCmd(app),
	)

	return root
}

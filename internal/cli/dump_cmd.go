package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDumpCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the local database as SQL INSERT statements",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Dump == nil {
				return fmt.Errorf("dump is not available for this store")
			}
			if out == "" {
				return app.Dump(cmd.Context(), cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := app.Dump(cmd.Context(), f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newMigrateCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			rt.log.Info("schema migrated")
			_, err = fmt.Fprintln(out, "migrations applied")
			return err
		},
	}
}

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/madhava-poojari/mentorship-api/internal/seed"
	"github.com/madhava-poojari/mentorship-api/internal/store"
	"github.com/spf13/cobra"
)

func newSeedCommand(out io.Writer) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo users, programs and enrollments",
		Long: "Load demo users, programs and enrollments. Refuses to run on a database " +
			"that already has users unless --reset is given, which deletes all existing data first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			ds := seed.Demo()
			if err := rt.store.Seed(cmd.Context(), ds, reset); err != nil {
				if errors.Is(err, store.ErrNotEmpty) {
					return fmt.Errorf("seed: %w (use --reset to replace it)", err)
				}
				return fmt.Errorf("seed: %w", err)
			}
			rt.log.Info("demo data loaded", "users", len(ds.Users), "programs", len(ds.Programs),
				"enrollments", len(ds.Enrollments), "reset", reset)

			_, err = fmt.Fprintf(out, "seeded %d users, %d programs, %d enrollments\n",
				len(ds.Users), len(ds.Programs), len(ds.Enrollments))
			if err != nil {
				return err
			}
			for _, u := range ds.Users {
				if _, err := fmt.Fprintf(out, "  %-28s %s\n", u.Email, u.Role); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Delete all existing data before seeding")
	return cmd
}

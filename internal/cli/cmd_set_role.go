package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// newSetRoleCommand changes a user's role directly in the database. It is how
// the first superadmin gets appointed.
func newSetRoleCommand(out io.Writer) *cobra.Command {
	var email, role string

	cmd := &cobra.Command{
		Use:   "set-role",
		Short: "Set the role of an existing user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := models.Role(strings.ToLower(strings.TrimSpace(role)))
			if !r.Valid() {
				return fmt.Errorf("invalid role %q: want user, admin or superadmin", role)
			}
			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" {
				return errors.New("--email is required")
			}

			rt, err := openRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			u, err := rt.store.GetUserByEmail(cmd.Context(), email)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("no user with email %s; sign in once before assigning a role", email)
			}
			if err != nil {
				return err
			}
			if err := rt.store.UpdateUserRole(cmd.Context(), u.ID, r); err != nil {
				return fmt.Errorf("update role: %w", err)
			}
			rt.log.Info("role set from cli", "user_id", u.ID, "from", u.Role, "to", r)
			_, err = fmt.Fprintf(out, "%s is now %s\n", email, r)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email of the user")
	cmd.Flags().StringVar(&role, "role", "", "New role: user, admin or superadmin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

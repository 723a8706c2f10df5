package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/utang/internal/auth"
	"github.com/mmynk/utang/internal/service"
)

// NewPasswdCommand creates the passwd command.
func NewPasswdCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd <new-password>",
		Short: "Reset the login password",
		Long: `Replace the login password stored in the database.

Use this when the password is forgotten. Open sessions stay valid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					slog.Error("Error closing database", "error", err)
				}
			}()

			settings := service.NewSettingsService(store, auth.NewPasswordAuthenticator(store))
			if err := settings.UpdatePassword(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Password updated.")
			return nil
		},
	}
}

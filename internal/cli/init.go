package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/utang/internal/auth"
	"github.com/mmynk/utang/internal/service"
)

// NewInitCommand creates the init command.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and seed default settings",
		Long: `Create the database schema and seed the store name and password.

Existing settings are never overwritten, so init is safe to run again.

Example:
  utang init --db ./data/utang.db`,
		Args: cobra.NoArgs,
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
			if err := settings.Bootstrap(cmd.Context(), opts.Config.StoreName, opts.Config.DefaultPassword); err != nil {
				return fmt.Errorf("failed to seed settings: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s\n", opts.Config.DBPath)
			return nil
		},
	}
}

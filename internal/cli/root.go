// Package cli wires the utang commands.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mmynk/utang/internal/config"
	"github.com/mmynk/utang/internal/storage/sqlite"
	"github.com/mmynk/utang/pkg/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DBPath     string
	LogLevel   string

	// Config is loaded before any subcommand runs.
	Config *config.Config
}

// NewRootCommand creates the root command for the utang CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "utang",
		Short: "utang - a debt ledger for a sari-sari store",
		Long: `utang records who owes the store what.

The server exposes the action API used by the browser client, plus a
spreadsheet export, health check and Prometheus metrics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewPasswdCommand(opts))

	return cmd
}

// load reads .env, the config file and the environment, applies flag
// overrides and installs the logger.
func (o *RootOptions) load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}

	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}

	logging.Setup(os.Stderr, logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	o.Config = cfg
	return nil
}

// openStore opens the configured database, creating it if needed.
func (o *RootOptions) openStore() (*sqlite.SQLiteStore, error) {
	loc, err := o.Config.Location()
	if err != nil {
		return nil, err
	}

	store, err := sqlite.New(o.Config.DBPath, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

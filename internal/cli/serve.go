package cli

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/utang/internal/api"
	"github.com/mmynk/utang/internal/auth"
	"github.com/mmynk/utang/internal/middleware"
	"github.com/mmynk/utang/internal/service"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server until SIGINT or SIGTERM.

The database is created and seeded on first start.

Example:
  utang serve --config ./utang.yaml
  DB_PATH=/var/lib/utang/utang.db utang serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, opts)
		},
	}
}

func runServer(cmd *cobra.Command, opts *RootOptions) error {
	cfg := opts.Config

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := opts.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Error closing database", "error", err)
		}
	}()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	authenticator := auth.NewPasswordAuthenticator(store)
	settings := service.NewSettingsService(store, authenticator)
	if err := settings.Bootstrap(ctx, cfg.StoreName, cfg.DefaultPassword); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	secret := cfg.Session.Secret
	if secret == "" {
		if secret, err = randomSecret(); err != nil {
			return err
		}
		slog.Warn("No session secret configured; sessions will not survive a restart")
	}
	sessions := auth.NewSessionManager(store, auth.NewJWTManager(secret), cfg.Session.TTL)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	logger := slog.Default()
	handler := api.NewHandler(
		service.NewAuthService(authenticator, sessions, logger),
		settings,
		service.NewLedgerService(store, loc),
		store,
		logger,
		api.Options{
			CookieName:   cfg.Session.CookieName,
			SecureCookie: cfg.Session.Secure,
			StaticPath:   cfg.StaticPath,
			CORSOrigins:  cfg.CORSOrigins,
		},
	).WithMetrics(middleware.NewMetrics(reg), reg)

	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(handler.Router(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go sessions.RunJanitor(ctx, cfg.Session.CleanupInterval)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", cfg.Addr, "timezone", loc.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	slog.Info("Server stopped gracefully")
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

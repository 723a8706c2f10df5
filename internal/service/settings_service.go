package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/utang/internal/auth"
	"github.com/mmynk/utang/internal/models"
	"github.com/mmynk/utang/internal/storage"
)

// DefaultStoreName is seeded when no store name has been configured.
const DefaultStoreName = "AJEJE’S SARI-SARI STORE"

// DefaultPassword is seeded when no password has been configured.
const DefaultPassword = "utang1234"

// SettingsService manages the store name and password settings.
type SettingsService struct {
	store         storage.SettingsStore
	authenticator *auth.PasswordAuthenticator
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(store storage.SettingsStore, authenticator *auth.PasswordAuthenticator) *SettingsService {
	return &SettingsService{store: store, authenticator: authenticator}
}

// Bootstrap seeds the store name and password unless they already exist.
// Existing values are never overwritten.
func (s *SettingsService) Bootstrap(ctx context.Context, storeName, password string) error {
	if storeName == "" {
		storeName = DefaultStoreName
	}
	if password == "" {
		password = DefaultPassword
	}

	seeded, err := s.store.SeedSetting(ctx, models.SettingStoreName, storeName)
	if err != nil {
		return err
	}
	if seeded {
		slog.Info("Store name seeded", "store_name", storeName)
	}

	seeded, err = s.authenticator.EnsurePassword(ctx, password)
	if err != nil {
		return err
	}
	if seeded {
		slog.Warn("Default password seeded; change it from the settings page")
	}

	return nil
}

// StoreName returns the store_name setting.
func (s *SettingsService) StoreName(ctx context.Context) (*models.Setting, error) {
	value, err := s.store.GetSetting(ctx, models.SettingStoreName)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("Store name is not set.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store name: %w", err)
	}
	return &models.Setting{Key: models.SettingStoreName, Value: value}, nil
}

// UpdateStoreName overwrites the store name. Empty names are accepted.
func (s *SettingsService) UpdateStoreName(ctx context.Context, name string) error {
	if err := s.store.PutSetting(ctx, models.SettingStoreName, name); err != nil {
		return err
	}
	slog.Info("Store name updated", "store_name", name)
	return nil
}

// UpdatePassword replaces the password. Open sessions stay valid.
func (s *SettingsService) UpdatePassword(ctx context.Context, password string) error {
	err := s.authenticator.SetPassword(ctx, password)
	if errors.Is(err, auth.ErrEmptyPassword) {
		return Invalid("Password cannot be empty.")
	}
	if err != nil {
		return err
	}
	slog.Info("Password updated")
	return nil
}

package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/utang/internal/models"
	"github.com/mmynk/utang/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrEmptyPassword      = errors.New("password cannot be empty")
)

// SettingsStorage defines the settings persistence the authenticator needs.
// This allows the authenticator to be independent of the storage implementation.
type SettingsStorage interface {
	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
	SeedSetting(ctx context.Context, key, value string) (bool, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
// The hash lives in the "password" setting.
type PasswordAuthenticator struct {
	storage SettingsStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage SettingsStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// WithCost overrides the bcrypt cost factor.
func (a *PasswordAuthenticator) WithCost(cost int) *PasswordAuthenticator {
	a.cost = cost
	return a
}

// ValidateCredential rejects empty passwords.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if credential == "" {
		return ErrEmptyPassword
	}
	return nil
}

// Authenticate compares the credential with the stored hash.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, credential string) error {
	hash, err := a.storage.GetSetting(ctx, models.SettingPassword)
	if err != nil {
		return ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential)); err != nil {
		return ErrInvalidCredentials
	}

	return nil
}

// SetPassword hashes and stores a new password.
func (a *PasswordAuthenticator) SetPassword(ctx context.Context, credential string) error {
	if err := a.ValidateCredential(credential); err != nil {
		return err
	}

	hash, err := a.hash(credential)
	if err != nil {
		return err
	}

	if err := a.storage.PutSetting(ctx, models.SettingPassword, hash); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}

	return nil
}

// EnsurePassword stores credential as the password only if none is set yet.
// It reports whether the password was seeded.
func (a *PasswordAuthenticator) EnsurePassword(ctx context.Context, credential string) (bool, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return false, err
	}

	_, err := a.storage.GetSetting(ctx, models.SettingPassword)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return false, fmt.Errorf("failed to read password: %w", err)
	}

	hash, err := a.hash(credential)
	if err != nil {
		return false, err
	}

	seeded, err := a.storage.SeedSetting(ctx, models.SettingPassword, hash)
	if err != nil {
		return false, fmt.Errorf("failed to seed password: %w", err)
	}

	return seeded, nil
}

func (a *PasswordAuthenticator) hash(credential string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

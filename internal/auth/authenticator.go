package auth

import (
	"context"
)

// Authenticator defines the interface for the store's single-password login.
// This abstraction keeps the hashing scheme out of the service layer.
type Authenticator interface {
	// Authenticate verifies the submitted credential against the stored one.
	// Returns ErrInvalidCredentials on any mismatch, including a missing password.
	Authenticate(ctx context.Context, credential string) error

	// SetPassword replaces the stored credential.
	SetPassword(ctx context.Context, credential string) error

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/utang/internal/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotTrashed is returned when a permanent delete targets a row that
	// has not been moved to the trash first.
	ErrNotTrashed = errors.New("row is not in trash")
)

// SettingsStore persists the key/value settings.
type SettingsStore interface {
	// GetSetting returns the value for key, or ErrNotFound.
	GetSetting(ctx context.Context, key string) (string, error)

	// PutSetting overwrites the value for key, creating the row if needed.
	PutSetting(ctx context.Context, key, value string) error

	// SeedSetting inserts key only if it does not exist yet.
	// It reports whether a row was inserted.
	SeedSetting(ctx context.Context, key, value string) (bool, error)
}

// LedgerStore persists debtors and their items.
//
// Mutations that target an id do not check that the row exists; a missing
// row is a silent no-op.
type LedgerStore interface {
	// CreateDebtor inserts a debtor and populates debtor.ID.
	CreateDebtor(ctx context.Context, debtor *models.Debtor) error

	// GetDebtor returns a debtor by id regardless of its trash state, or ErrNotFound.
	GetDebtor(ctx context.Context, id int64) (*models.Debtor, error)

	// ListDebtors returns debtors with the given trash state, newest first,
	// with ItemCount and UnpaidCount populated.
	ListDebtors(ctx context.Context, trashed bool) ([]*models.Debtor, error)

	// SetDebtorDeleted moves a debtor to or out of the trash.
	SetDebtorDeleted(ctx context.Context, id int64, deleted bool) error

	// PurgeDebtor erases a trashed debtor and all of its items atomically,
	// returning the number of items removed. It returns ErrNotTrashed for an
	// active debtor.
	PurgeDebtor(ctx context.Context, id int64) (int64, error)

	// CreateItem inserts an item and populates item.ID.
	CreateItem(ctx context.Context, item *models.Item) error

	// GetItem returns an item by id regardless of its flags, or ErrNotFound.
	GetItem(ctx context.Context, id int64) (*models.Item, error)

	// ListItems returns a debtor's non-deleted items, newest first.
	ListItems(ctx context.Context, debtorID int64) ([]*models.Item, error)

	// ToggleItemPaid flips an item's paid flag in a single statement.
	ToggleItemPaid(ctx context.Context, id int64) error

	// MarkAllPaid marks every non-deleted item of a debtor as paid and
	// returns how many rows were touched.
	MarkAllPaid(ctx context.Context, debtorID int64) (int64, error)

	// SetItemDeleted moves an item to or out of the trash.
	SetItemDeleted(ctx context.Context, id int64, deleted bool) error

	// PurgeItem erases a trashed item. It returns ErrNotTrashed for an active item.
	PurgeItem(ctx context.Context, id int64) error

	// ListTrashedItems returns all trashed items with their debtor's name,
	// whatever the debtor's own trash state.
	ListTrashedItems(ctx context.Context) ([]*models.TrashedItem, error)
}

// SessionStore persists server-side login sessions.
type SessionStore interface {
	// CreateSession inserts a session, generating its ID when empty.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession returns a session by ID, or ErrNotFound.
	GetSession(ctx context.Context, id string) (*models.Session, error)

	// DeleteSession removes a session. Missing sessions are ignored.
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes sessions expired at now and returns how many.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// Store defines the full persistence surface of the ledger.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	SettingsStore
	LedgerStore
	SessionStore

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/utang/internal/storage/sqlite"
)

// tickingClock returns a time source that advances one second per call.
func tickingClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "service.db"), time.UTC)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func newLedger(t *testing.T) *LedgerService {
	t.Helper()

	start := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return NewLedgerService(newTestStore(t), time.UTC).WithClock(tickingClock(start))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/utang/internal/models"
	"github.com/mmynk/utang/internal/storage"
)

// CreateDebtor persists a new debtor and populates its ID.
func (s *SQLiteStore) CreateDebtor(ctx context.Context, debtor *models.Debtor) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO debtors (name, date_added, is_deleted) VALUES (?, ?, ?)",
		debtor.Name, s.formatTime(debtor.DateAdded), boolInt(debtor.IsDeleted),
	)
	if err != nil {
		return fmt.Errorf("failed to insert debtor: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read debtor id: %w", err)
	}
	debtor.ID = id

	return nil
}

// GetDebtor retrieves a debtor by ID.
func (s *SQLiteStore) GetDebtor(ctx context.Context, id int64) (*models.Debtor, error) {
	debtor := &models.Debtor{}
	var dateAdded string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, date_added, is_deleted FROM debtors WHERE id = ?",
		id,
	).Scan(&debtor.ID, &debtor.Name, &dateAdded, &debtor.IsDeleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("debtor %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debtor: %w", err)
	}

	if debtor.DateAdded, err = s.parseTime(dateAdded); err != nil {
		return nil, err
	}

	return debtor, nil
}

// ListDebtors retrieves debtors by trash state with their non-deleted item counts.
func (s *SQLiteStore) ListDebtors(ctx context.Context, trashed bool) ([]*models.Debtor, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.name, d.date_added, d.is_deleted,
		        COUNT(i.id),
		        COALESCE(SUM(CASE WHEN i.is_paid = 0 THEN 1 ELSE 0 END), 0)
		 FROM debtors d
		 LEFT JOIN items i ON i.debtor_id = d.id AND i.is_deleted = 0
		 WHERE d.is_deleted = ?
		 GROUP BY d.id
		 ORDER BY d.date_added DESC, d.id DESC`,
		boolInt(trashed),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debtors: %w", err)
	}
	defer rows.Close()

	var debtors []*models.Debtor
	for rows.Next() {
		debtor := &models.Debtor{}
		var dateAdded string

		if err := rows.Scan(&debtor.ID, &debtor.Name, &dateAdded, &debtor.IsDeleted,
			&debtor.ItemCount, &debtor.UnpaidCount); err != nil {
			return nil, fmt.Errorf("failed to scan debtor: %w", err)
		}
		if debtor.DateAdded, err = s.parseTime(dateAdded); err != nil {
			return nil, err
		}

		debtors = append(debtors, debtor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debtors: %w", err)
	}

	return debtors, nil
}

// SetDebtorDeleted sets or clears the debtor's trash flag.
func (s *SQLiteStore) SetDebtorDeleted(ctx context.Context, id int64, deleted bool) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE debtors SET is_deleted = ? WHERE id = ?",
		boolInt(deleted), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update debtor: %w", err)
	}
	return nil
}

// PurgeDebtor permanently removes a trashed debtor and every item it owns.
// A missing debtor is a no-op.
func (s *SQLiteStore) PurgeDebtor(ctx context.Context, id int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var deleted bool
	err = tx.QueryRowContext(ctx, "SELECT is_deleted FROM debtors WHERE id = ?", id).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to check debtor: %w", err)
	}
	if !deleted {
		return 0, fmt.Errorf("debtor %d: %w", id, storage.ErrNotTrashed)
	}

	// Delete items first so the cascade holds even without FK enforcement
	res, err := tx.ExecContext(ctx, "DELETE FROM items WHERE debtor_id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete debtor items: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted items: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM debtors WHERE id = ?", id); err != nil {
		return 0, fmt.Errorf("failed to delete debtor: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return removed, nil
}

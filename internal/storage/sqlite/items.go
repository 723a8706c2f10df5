package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/utang/internal/models"
	"github.com/mmynk/utang/internal/storage"
)

const itemColumns = "id, debtor_id, item_name, quantity, price, date_added, is_paid, is_deleted"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanItem(row rowScanner, item *models.Item, extra ...any) error {
	var dateAdded string
	dest := []any{&item.ID, &item.DebtorID, &item.Name, &item.Quantity, &item.Price,
		&dateAdded, &item.IsPaid, &item.IsDeleted}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	t, err := s.parseTime(dateAdded)
	if err != nil {
		return err
	}
	item.DateAdded = t
	return nil
}

// CreateItem persists a new item and populates its ID.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (debtor_id, item_name, quantity, price, date_added, is_paid, is_deleted)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.DebtorID, item.Name, item.Quantity, item.Price.InexactFloat64(),
		s.formatTime(item.DateAdded), boolInt(item.IsPaid), boolInt(item.IsDeleted),
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read item id: %w", err)
	}
	item.ID = id

	return nil
}

// GetItem retrieves an item by ID.
func (s *SQLiteStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	item := &models.Item{}
	row := s.db.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM items WHERE id = ?", id)

	err := s.scanItem(row, item)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// ListItems retrieves a debtor's non-deleted items, newest first.
func (s *SQLiteStore) ListItems(ctx context.Context, debtorID int64) ([]*models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itemColumns+` FROM items
		 WHERE debtor_id = ? AND is_deleted = 0
		 ORDER BY date_added DESC, id DESC`,
		debtorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := s.scanItem(rows, item); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// ToggleItemPaid flips is_paid without reading it first.
func (s *SQLiteStore) ToggleItemPaid(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "UPDATE items SET is_paid = 1 - is_paid WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to toggle item: %w", err)
	}
	return nil
}

// MarkAllPaid marks a debtor's non-deleted items as paid.
func (s *SQLiteStore) MarkAllPaid(ctx context.Context, debtorID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET is_paid = 1 WHERE debtor_id = ? AND is_deleted = 0",
		debtorID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark items paid: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count updated items: %w", err)
	}
	return n, nil
}

// SetItemDeleted sets or clears the item's trash flag.
func (s *SQLiteStore) SetItemDeleted(ctx context.Context, id int64, deleted bool) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE items SET is_deleted = ? WHERE id = ?",
		boolInt(deleted), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

// PurgeItem permanently removes a trashed item. A missing item is a no-op.
func (s *SQLiteStore) PurgeItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ? AND is_deleted = 1", id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted items: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Nothing deleted: either the item is gone or it is still active
	var exists int
	err = s.db.QueryRowContext(ctx, "SELECT 1 FROM items WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check item existence: %w", err)
	}
	return fmt.Errorf("item %d: %w", id, storage.ErrNotTrashed)
}

// ListTrashedItems retrieves trashed items joined with their debtor's name.
func (s *SQLiteStore) ListTrashedItems(ctx context.Context) ([]*models.TrashedItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT i.id, i.debtor_id, i.item_name, i.quantity, i.price, i.date_added,
		        i.is_paid, i.is_deleted, d.name
		 FROM items i
		 JOIN debtors d ON i.debtor_id = d.id
		 WHERE i.is_deleted = 1
		 ORDER BY i.date_added DESC, i.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trashed items: %w", err)
	}
	defer rows.Close()

	var items []*models.TrashedItem
	for rows.Next() {
		item := &models.TrashedItem{}
		if err := s.scanItem(rows, &item.Item, &item.DebtorName); err != nil {
			return nil, fmt.Errorf("failed to scan trashed item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trashed items: %w", err)
	}

	return items, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/utang/internal/calculator"
	"github.com/mmynk/utang/internal/models"
	"github.com/mmynk/utang/internal/storage"
)

// DebtorSummary is a debtor with its derived status.
type DebtorSummary struct {
	*models.Debtor
	Status models.Status
}

// DebtorDetail is a debtor with its active items and balance.
type DebtorDetail struct {
	Debtor    *models.Debtor
	Status    models.Status
	Items     []*models.Item
	TotalOwed decimal.Decimal
}

// Trash holds everything currently in the trash.
type Trash struct {
	Debtors []*models.Debtor
	Items   []*models.TrashedItem
}

// NewItem holds the fields of an item to record.
type NewItem struct {
	DebtorID int64
	Name     string
	Quantity int64
	Price    decimal.Decimal
}

// LedgerService implements the debtor, item and trash operations.
type LedgerService struct {
	store storage.LedgerStore
	now   func() time.Time
}

// NewLedgerService creates a LedgerService stamping rows with the current
// time in loc.
func NewLedgerService(store storage.LedgerStore, loc *time.Location) *LedgerService {
	return &LedgerService{
		store: store,
		now:   func() time.Time { return time.Now().In(loc) },
	}
}

// WithClock replaces the time source.
func (s *LedgerService) WithClock(now func() time.Time) *LedgerService {
	s.now = now
	return s
}

// ListDebtors returns active debtors, newest first, optionally filtered by name.
func (s *LedgerService) ListDebtors(ctx context.Context, search string) ([]*DebtorSummary, error) {
	debtors, err := s.store.ListDebtors(ctx, false)
	if err != nil {
		return nil, err
	}

	debtors = calculator.FilterDebtors(debtors, search)

	summaries := make([]*DebtorSummary, len(debtors))
	for i, d := range debtors {
		summaries[i] = &DebtorSummary{
			Debtor: d,
			Status: calculator.StatusFromCounts(d.ItemCount, d.UnpaidCount),
		}
	}

	slog.Debug("Debtors listed", "count", len(summaries), "search", search)
	return summaries, nil
}

// CreateDebtor records a new debtor. A blank name gets the default placeholder.
func (s *LedgerService) CreateDebtor(ctx context.Context, name string) (*DebtorSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = models.DefaultDebtorName
	}

	debtor := &models.Debtor{
		Name:      name,
		DateAdded: s.now().Truncate(time.Second),
	}
	if err := s.store.CreateDebtor(ctx, debtor); err != nil {
		return nil, err
	}

	slog.Info("Debtor created", "debtor_id", debtor.ID, "name", debtor.Name)
	return &DebtorSummary{Debtor: debtor, Status: models.StatusUnpaid}, nil
}

// TrashDebtor moves a debtor to the trash.
func (s *LedgerService) TrashDebtor(ctx context.Context, id int64) error {
	if err := s.store.SetDebtorDeleted(ctx, id, true); err != nil {
		return err
	}
	slog.Info("Debtor trashed", "debtor_id", id)
	return nil
}

// RestoreDebtor brings a debtor back from the trash.
func (s *LedgerService) RestoreDebtor(ctx context.Context, id int64) error {
	if err := s.store.SetDebtorDeleted(ctx, id, false); err != nil {
		return err
	}
	slog.Info("Debtor restored", "debtor_id", id)
	return nil
}

// PurgeDebtor permanently deletes a trashed debtor and all of its items.
func (s *LedgerService) PurgeDebtor(ctx context.Context, id int64) error {
	removed, err := s.store.PurgeDebtor(ctx, id)
	if errors.Is(err, storage.ErrNotTrashed) {
		return Invalid("Debtor must be moved to trash first.")
	}
	if err != nil {
		return err
	}
	slog.Info("Debtor permanently deleted", "debtor_id", id, "items_removed", removed)
	return nil
}

// DebtorDetail returns an active debtor with its active items and balance.
func (s *LedgerService) DebtorDetail(ctx context.Context, id int64) (*DebtorDetail, error) {
	debtor, err := s.store.GetDebtor(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("Debtor not found.")
	}
	if err != nil {
		return nil, err
	}
	if debtor.IsDeleted {
		return nil, notFound("Debtor not found.")
	}

	items, err := s.store.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}

	return &DebtorDetail{
		Debtor:    debtor,
		Status:    calculator.DebtorStatus(items),
		Items:     items,
		TotalOwed: calculator.TotalOwed(items),
	}, nil
}

// AddItem records an unpaid item. The debtor is not checked beyond what the
// foreign key enforces.
func (s *LedgerService) AddItem(ctx context.Context, in NewItem) (*models.Item, error) {
	item := &models.Item{
		DebtorID:  in.DebtorID,
		Name:      in.Name,
		Quantity:  in.Quantity,
		Price:     in.Price,
		DateAdded: s.now().Truncate(time.Second),
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	slog.Info("Item added",
		"item_id", item.ID,
		"debtor_id", item.DebtorID,
		"quantity", item.Quantity,
		"price", item.Price.String(),
	)
	return item, nil
}

// ToggleItemPaid flips an item between paid and unpaid.
func (s *LedgerService) ToggleItemPaid(ctx context.Context, id int64) error {
	if err := s.store.ToggleItemPaid(ctx, id); err != nil {
		return err
	}
	slog.Info("Item paid flag toggled", "item_id", id)
	return nil
}

// MarkAllPaid marks all of a debtor's active items as paid.
func (s *LedgerService) MarkAllPaid(ctx context.Context, debtorID int64) error {
	n, err := s.store.MarkAllPaid(ctx, debtorID)
	if err != nil {
		return err
	}
	slog.Info("Items marked paid", "debtor_id", debtorID, "count", n)
	return nil
}

// TrashItem moves an item to the trash.
func (s *LedgerService) TrashItem(ctx context.Context, id int64) error {
	if err := s.store.SetItemDeleted(ctx, id, true); err != nil {
		return err
	}
	slog.Info("Item trashed", "item_id", id)
	return nil
}

// RestoreItem brings an item back from the trash.
func (s *LedgerService) RestoreItem(ctx context.Context, id int64) error {
	if err := s.store.SetItemDeleted(ctx, id, false); err != nil {
		return err
	}
	slog.Info("Item restored", "item_id", id)
	return nil
}

// PurgeItem permanently deletes a trashed item.
func (s *LedgerService) PurgeItem(ctx context.Context, id int64) error {
	err := s.store.PurgeItem(ctx, id)
	if errors.Is(err, storage.ErrNotTrashed) {
		return Invalid("Item must be moved to trash first.")
	}
	if err != nil {
		return err
	}
	slog.Info("Item permanently deleted", "item_id", id)
	return nil
}

// ListTrash returns trashed debtors and trashed items.
func (s *LedgerService) ListTrash(ctx context.Context) (*Trash, error) {
	debtors, err := s.store.ListDebtors(ctx, true)
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListTrashedItems(ctx)
	if err != nil {
		return nil, err
	}

	return &Trash{Debtors: debtors, Items: items}, nil
}

// Ledger returns every active debtor with its details, newest first.
func (s *LedgerService) Ledger(ctx context.Context) ([]*DebtorDetail, error) {
	debtors, err := s.store.ListDebtors(ctx, false)
	if err != nil {
		return nil, err
	}

	details := make([]*DebtorDetail, 0, len(debtors))
	for _, d := range debtors {
		items, err := s.store.ListItems(ctx, d.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load items for debtor %d: %w", d.ID, err)
		}
		details = append(details, &DebtorDetail{
			Debtor:    d,
			Status:    calculator.DebtorStatus(items),
			Items:     items,
			TotalOwed: calculator.TotalOwed(items),
		})
	}

	return details, nil
}

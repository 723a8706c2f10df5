package models

import "time"

// Status is the derived payment state of a debtor.
type Status string

const (
	// StatusUnpaid means the debtor has no items or at least one unpaid item.
	StatusUnpaid Status = "Unpaid"
	// StatusPaid means the debtor has items and every one of them is paid.
	StatusPaid Status = "Paid"
)

// DefaultDebtorName is used when a debtor is created without a name.
const DefaultDebtorName = "Unnamed Debtor"

// Debtor represents a customer who owes the store.
type Debtor struct {
	// ID is the surrogate key assigned by the store on creation.
	ID int64

	// Name is the display name of the debtor.
	Name string

	// DateAdded is the local wall-clock time the debtor was recorded.
	DateAdded time.Time

	// IsDeleted marks the debtor as trashed.
	IsDeleted bool

	// ItemCount and UnpaidCount count the debtor's non-deleted items.
	// They are filled by listing queries only and are zero otherwise.
	ItemCount   int
	UnpaidCount int
}

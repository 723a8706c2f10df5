package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a single purchase owed by a debtor.
type Item struct {
	// ID is the surrogate key assigned by the store on creation.
	ID int64

	// DebtorID is the owning debtor.
	DebtorID int64

	// Name is what was bought (e.g., "Coke").
	Name string

	// Quantity is the number of units bought.
	Quantity int64

	// Price is the price of one unit.
	Price decimal.Decimal

	// DateAdded is the local wall-clock time the item was recorded.
	DateAdded time.Time

	// IsPaid and IsDeleted are independent flags.
	IsPaid    bool
	IsDeleted bool
}

// LineTotal returns quantity × price.
func (i *Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// TrashedItem is a trashed item together with its owner's name.
type TrashedItem struct {
	Item
	DebtorName string
}

// Package calculator derives balances and payment status from a debtor's items.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/utang/internal/models"
)

// StatusFromCounts derives a debtor's status from its non-deleted item counts.
// A debtor with no items is Unpaid; it is Paid only when it has items and none
// of them is unpaid.
func StatusFromCounts(itemCount, unpaidCount int) models.Status {
	if itemCount == 0 || unpaidCount > 0 {
		return models.StatusUnpaid
	}
	return models.StatusPaid
}

// DebtorStatus derives a debtor's status from its items.
// Deleted items are ignored.
func DebtorStatus(items []*models.Item) models.Status {
	count, unpaid := 0, 0
	for _, item := range items {
		if item.IsDeleted {
			continue
		}
		count++
		if !item.IsPaid {
			unpaid++
		}
	}
	return StatusFromCounts(count, unpaid)
}

// TotalOwed sums the line totals of the items that are neither paid nor deleted.
func TotalOwed(items []*models.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.IsDeleted || item.IsPaid {
			continue
		}
		total = total.Add(item.LineTotal())
	}
	return total
}

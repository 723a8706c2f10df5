package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/utang/internal/models"
)

func item(qty int64, price string, paid, deleted bool) *models.Item {
	return &models.Item{
		Quantity:  qty,
		Price:     decimal.RequireFromString(price),
		IsPaid:    paid,
		IsDeleted: deleted,
	}
}

func TestDebtorStatus(t *testing.T) {
	tests := []struct {
		name  string
		items []*models.Item
		want  models.Status
	}{
		{
			name:  "no items is unpaid",
			items: nil,
			want:  models.StatusUnpaid,
		},
		{
			name:  "only deleted items is unpaid",
			items: []*models.Item{item(1, "10", true, true)},
			want:  models.StatusUnpaid,
		},
		{
			name:  "one unpaid item",
			items: []*models.Item{item(1, "10", true, false), item(2, "5", false, false)},
			want:  models.StatusUnpaid,
		},
		{
			name:  "all paid",
			items: []*models.Item{item(1, "10", true, false), item(2, "5", true, false)},
			want:  models.StatusPaid,
		},
		{
			name:  "unpaid item in trash does not count",
			items: []*models.Item{item(1, "10", true, false), item(2, "5", false, true)},
			want:  models.StatusPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DebtorStatus(tt.items))
		})
	}
}

func TestStatusFromCounts(t *testing.T) {
	assert.Equal(t, models.StatusUnpaid, StatusFromCounts(0, 0))
	assert.Equal(t, models.StatusUnpaid, StatusFromCounts(3, 1))
	assert.Equal(t, models.StatusPaid, StatusFromCounts(3, 0))
}

func TestTotalOwed(t *testing.T) {
	tests := []struct {
		name  string
		items []*models.Item
		want  string
	}{
		{"empty", nil, "0"},
		{"single line", []*models.Item{item(3, "15.00", false, false)}, "45"},
		{"paid and deleted skipped", []*models.Item{
			item(3, "15.00", false, false),
			item(1, "99.99", true, false),
			item(2, "20.50", false, true),
		}, "45"},
		{"decimal prices do not drift", []*models.Item{
			item(3, "0.10", false, false),
			item(1, "0.20", false, false),
		}, "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalOwed(tt.items)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

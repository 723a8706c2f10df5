package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/utang/internal/models"
)

func TestCreateDebtor(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	t.Run("named debtor starts unpaid", func(t *testing.T) {
		d, err := ledger.CreateDebtor(ctx, "Juan")
		require.NoError(t, err)
		assert.NotZero(t, d.ID)
		assert.Equal(t, "Juan", d.Name)
		assert.Equal(t, models.StatusUnpaid, d.Status)
		assert.False(t, d.DateAdded.IsZero())
	})

	t.Run("blank name gets placeholder", func(t *testing.T) {
		for _, name := range []string{"", "   "} {
			d, err := ledger.CreateDebtor(ctx, name)
			require.NoError(t, err)
			assert.Equal(t, models.DefaultDebtorName, d.Name)
		}
	})
}

func TestMarkAllPaid_NoItemsStaysUnpaid(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	d, err := ledger.CreateDebtor(ctx, "Juan")
	require.NoError(t, err)

	require.NoError(t, ledger.MarkAllPaid(ctx, d.ID))

	debtors, err := ledger.ListDebtors(ctx, "")
	require.NoError(t, err)
	require.Len(t, debtors, 1)
	assert.Equal(t, models.StatusUnpaid, debtors[0].Status)

	detail, err := ledger.DebtorDetail(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnpaid, detail.Status)
}

func TestDebtorStatusFollowsItems(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	d, err := ledger.CreateDebtor(ctx, "Juan")
	require.NoError(t, err)
	a, err := ledger.AddItem(ctx, NewItem{DebtorID: d.ID, Name: "Coke", Quantity: 1, Price: price("20")})
	require.NoError(t, err)
	b, err := ledger.AddItem(ctx, NewItem{DebtorID: d.ID, Name: "Bread", Quantity: 2, Price: price("5")})
	require.NoError(t, err)

	status := func() models.Status {
		debtors, err := ledger.ListDebtors(ctx, "")
		require.NoError(t, err)
		require.Len(t, debtors, 1)
		return debtors[0].Status
	}

	assert.Equal(t, models.StatusUnpaid, status())

	require.NoError(t, ledger.ToggleItemPaid(ctx, a.ID))
	assert.Equal(t, models.StatusUnpaid, status())

	require.NoError(t, ledger.MarkAllPaid(ctx, d.ID))
	assert.Equal(t, models.StatusPaid, status())

	require.NoError(t, ledger.ToggleItemPaid(ctx, b.ID))
	assert.Equal(t, models.StatusUnpaid, status())

	// Trashing the only unpaid item leaves only paid ones
	require.NoError(t, ledger.TrashItem(ctx, b.ID))
	assert.Equal(t, models.StatusPaid, status())
}

func TestToggleItemPaid_IsItsOwnInverse(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	d, err := ledger.CreateDebtor(ctx, "Juan")
	require.NoError(t, err)
	item, err := ledger.AddItem(ctx, NewItem{DebtorID: d.ID, Name: "Coke", Quantity: 1, Price: price("20")})
	require.NoError(t, err)

	require.NoError(t, ledger.ToggleItemPaid(ctx, item.ID))
	require.NoError(t, ledger.ToggleItemPaid(ctx, item.ID))

	detail, err := ledger.DebtorDetail(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.False(t, detail.Items[0].IsPaid)
}

func TestTotalOwed_TrashAndRestore(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	d, err := ledger.CreateDebtor(ctx, "Juan")
	require.NoError(t, err)
	item, err := ledger.AddItem(ctx, NewItem{DebtorID: d.ID, Name: "Coke", Quantity: 3, Price: price("15.00")})
	require.NoError(t, err)

	owed := func() decimal.Decimal {
		detail, err := ledger.DebtorDetail(ctx, d.ID)
		require.NoError(t, err)
		return detail.TotalOwed
	}

	assert.True(t, owed().Equal(price("45.00")))

	require.NoError(t, ledger.TrashItem(ctx, item.ID))
	assert.True(t, owed().IsZero())

	require.NoError(t, ledger.RestoreItem(ctx, item.ID))
	assert.True(t, owed().Equal(price("45.00")), "got %s", owed())
}

func TestDebtorDetail(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	d, err := ledger.CreateDebtor(ctx, "Juan")
	require.NoError(t, err)
	first, err := ledger.AddItem(ctx, NewItem{DebtorID: d.ID, Name: "Coke", Quantity: 2, Price: price("20")})
	require.NoError(t, err)
	second, err := ledger.AddItem(ctx, NewItem{DebtorID: d.ID, Name: "Bread", Quantity: 1, Price: price("7.50")})
	require.NoError(t, err)
	paid, err := ledger.AddItem(ctx, NewItem{DebtorID: d.ID, Name: "Soap", Quantity: 1, Price: price("30")})
	require.NoError(t, err)
	require.NoError(t, ledger.ToggleItemPaid(ctx, paid.ID))

	t.Run("items newest first with unpaid total", func(t *testing.T) {
		detail, err := ledger.DebtorDetail(ctx, d.ID)
		require.NoError(t, err)
		require.Len(t, detail.Items, 3)
		assert.Equal(t, paid.ID, detail.Items[0].ID)
		assert.Equal(t, second.ID, detail.Items[1].ID)
		assert.Equal(t, first.ID, detail.Items[2].ID)
		assert.True(t, detail.TotalOwed.Equal(price("47.50")), "got %s", detail.TotalOwed)
	})

	t.Run("missing debtor is not found", func(t *testing.T) {
		_, err := ledger.DebtorDetail(ctx, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
		msg, ok := PublicMessage(err)
		assert.True(t, ok)
		assert.Equal(t, "Debtor not found.", msg)
	})

	t.Run("trashed debtor is not found", func(t *testing.T) {
		require.NoError(t, ledger.TrashDebtor(ctx, d.ID))
		_, err := ledger.DebtorDetail(ctx, d.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTrashRestoreRoundTrip(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	d, err := ledger.CreateDebtor(ctx, "Juan")
	require.NoError(t, err)
	_, err = ledger.AddItem(ctx, NewItem{DebtorID: d.ID, Name: "Coke", Quantity: 1, Price: price("20")})
	require.NoError(t, err)

	before, err := ledger.DebtorDetail(ctx, d.ID)
	require.NoError(t, err)

	require.NoError(t, ledger.TrashDebtor(ctx, d.ID))

	active, err := ledger.ListDebtors(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, active)

	trash, err := ledger.ListTrash(ctx)
	require.NoError(t, err)
	require.Len(t, trash.Debtors, 1)
	assert.Equal(t, d.ID, trash.Debtors[0].ID)
	assert.Empty(t, trash.Items, "items of a trashed debtor are not trashed themselves")

	require.NoError(t, ledger.RestoreDebtor(ctx, d.ID))

	after, err := ledger.DebtorDetail(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// Restoring twice is harmless
	assert.NoError(t, ledger.RestoreDebtor(ctx, d.ID))
}

func TestPurgeDebtor(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	d, err := ledger.CreateDebtor(ctx, "Juan")
	require.NoError(t, err)
	i1, err := ledger.AddItem(ctx, NewItem{DebtorID: d.ID, Name: "Paid", Quantity: 1, Price: price("10")})
	require.NoError(t, err)
	_, err = ledger.AddItem(ctx, NewItem{DebtorID: d.ID, Name: "Unpaid", Quantity: 1, Price: price("10")})
	require.NoError(t, err)
	i3, err := ledger.AddItem(ctx, NewItem{DebtorID: d.ID, Name: "Trashed", Quantity: 1, Price: price("10")})
	require.NoError(t, err)
	require.NoError(t, ledger.ToggleItemPaid(ctx, i1.ID))
	require.NoError(t, ledger.TrashItem(ctx, i3.ID))

	t.Run("active debtor is refused", func(t *testing.T) {
		err := ledger.PurgeDebtor(ctx, d.ID)
		assert.ErrorIs(t, err, ErrValidation)
		msg, _ := PublicMessage(err)
		assert.Equal(t, "Debtor must be moved to trash first.", msg)
	})

	t.Run("trashed debtor goes with every item", func(t *testing.T) {
		require.NoError(t, ledger.TrashDebtor(ctx, d.ID))
		require.NoError(t, ledger.PurgeDebtor(ctx, d.ID))

		_, err := ledger.DebtorDetail(ctx, d.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		trash, err := ledger.ListTrash(ctx)
		require.NoError(t, err)
		assert.Empty(t, trash.Debtors)
		assert.Empty(t, trash.Items)
	})
}

func TestPurgeItem(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	d, err := ledger.CreateDebtor(ctx, "Juan")
	require.NoError(t, err)
	item, err := ledger.AddItem(ctx, NewItem{DebtorID: d.ID, Name: "Coke", Quantity: 1, Price: price("20")})
	require.NoError(t, err)

	assert.ErrorIs(t, ledger.PurgeItem(ctx, item.ID), ErrValidation)

	require.NoError(t, ledger.TrashItem(ctx, item.ID))
	trash, err := ledger.ListTrash(ctx)
	require.NoError(t, err)
	require.Len(t, trash.Items, 1)
	assert.Equal(t, "Juan", trash.Items[0].DebtorName)

	require.NoError(t, ledger.PurgeItem(ctx, item.ID))
	trash, err = ledger.ListTrash(ctx)
	require.NoError(t, err)
	assert.Empty(t, trash.Items)
}

func TestListDebtors_Search(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	for _, name := range []string{"Juan", "Maria", "Mario"} {
		_, err := ledger.CreateDebtor(ctx, name)
		require.NoError(t, err)
	}

	all, err := ledger.ListDebtors(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Mario", all[0].Name, "newest first")

	found, err := ledger.ListDebtors(ctx, "MAR")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Mario", found[0].Name)
	assert.Equal(t, "Maria", found[1].Name)
}

func TestLedger(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	juan, err := ledger.CreateDebtor(ctx, "Juan")
	require.NoError(t, err)
	maria, err := ledger.CreateDebtor(ctx, "Maria")
	require.NoError(t, err)
	_, err = ledger.AddItem(ctx, NewItem{DebtorID: juan.ID, Name: "Coke", Quantity: 3, Price: price("15")})
	require.NoError(t, err)
	require.NoError(t, ledger.TrashDebtor(ctx, maria.ID))

	details, err := ledger.Ledger(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, juan.ID, details[0].Debtor.ID)
	assert.True(t, details[0].TotalOwed.Equal(price("45")))
}

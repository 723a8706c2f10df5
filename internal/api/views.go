package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mmynk/utang/internal/models"
	"github.com/mmynk/utang/internal/service"
)

const dateLayout = "2006-01-02 15:04:05"

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func debtorView(d *models.Debtor) gin.H {
	return gin.H{
		"id":         d.ID,
		"name":       d.Name,
		"date_added": d.DateAdded.Format(dateLayout),
		"is_deleted": flag(d.IsDeleted),
	}
}

func summaryView(s *service.DebtorSummary) gin.H {
	v := debtorView(s.Debtor)
	v["status"] = s.Status
	return v
}

func itemView(it *models.Item) gin.H {
	return gin.H{
		"id":         it.ID,
		"debtor_id":  it.DebtorID,
		"item_name":  it.Name,
		"quantity":   it.Quantity,
		"price":      it.Price.InexactFloat64(),
		"date_added": it.DateAdded.Format(dateLayout),
		"is_paid":    flag(it.IsPaid),
		"is_deleted": flag(it.IsDeleted),
	}
}

func trashedItemView(it *models.TrashedItem) gin.H {
	v := itemView(&it.Item)
	v["debtor_name"] = it.DebtorName
	return v
}

func detailView(d *service.DebtorDetail) gin.H {
	debtor := debtorView(d.Debtor)
	debtor["status"] = d.Status
	debtor["total_owed"] = d.TotalOwed.InexactFloat64()

	items := make([]gin.H, len(d.Items))
	for i, it := range d.Items {
		items[i] = itemView(it)
	}

	return gin.H{
		"debtor":     debtor,
		"items":      items,
		"total_owed": d.TotalOwed.InexactFloat64(),
	}
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/utang/internal/middleware"
	"github.com/mmynk/utang/internal/service"
)

func (h *Handler) login(c *gin.Context) (gin.H, error) {
	token, _, err := h.auth.Login(c.Request.Context(), param(c, "password"))
	if err != nil {
		return nil, err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, token, h.auth.SessionTTL(), "/", "", h.opts.SecureCookie, true)
	return nil, nil
}

func (h *Handler) logout(c *gin.Context) (gin.H, error) {
	if session := middleware.GetSession(c); session != nil {
		h.auth.Logout(c.Request.Context(), session.ID)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, "", -1, "/", "", h.opts.SecureCookie, true)
	return nil, nil
}

func (h *Handler) getSettings(c *gin.Context) (gin.H, error) {
	setting, err := h.settings.StoreName(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return gin.H{"settings": gin.H{"key": setting.Key, "value": setting.Value}}, nil
}

func (h *Handler) updateSettings(c *gin.Context) (gin.H, error) {
	if err := h.settings.UpdateStoreName(c.Request.Context(), param(c, "store_name")); err != nil {
		return nil, err
	}
	return message("Store name updated."), nil
}

func (h *Handler) updatePassword(c *gin.Context) (gin.H, error) {
	if err := h.settings.UpdatePassword(c.Request.Context(), param(c, "new_password")); err != nil {
		return nil, err
	}
	return message("Password updated."), nil
}

func (h *Handler) getDebtors(c *gin.Context) (gin.H, error) {
	summaries, err := h.ledger.ListDebtors(c.Request.Context(), param(c, "search"))
	if err != nil {
		return nil, err
	}

	debtors := make([]gin.H, len(summaries))
	for i, s := range summaries {
		debtors[i] = summaryView(s)
	}
	return gin.H{"debtors": debtors}, nil
}

func (h *Handler) addDebtor(c *gin.Context) (gin.H, error) {
	summary, err := h.ledger.CreateDebtor(c.Request.Context(), param(c, "name"))
	if err != nil {
		return nil, err
	}
	return gin.H{"debtor": summaryView(summary)}, nil
}

func (h *Handler) deleteDebtor(c *gin.Context) (gin.H, error) {
	id, err := intParam(c, "id")
	if err != nil {
		return nil, err
	}
	if err := h.ledger.TrashDebtor(c.Request.Context(), id); err != nil {
		return nil, err
	}
	return message("Debtor moved to trash."), nil
}

func (h *Handler) getDebtorDetails(c *gin.Context) (gin.H, error) {
	id, err := intParam(c, "id")
	if err != nil {
		return nil, err
	}
	detail, err := h.ledger.DebtorDetail(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return detailView(detail), nil
}

func (h *Handler) addItem(c *gin.Context) (gin.H, error) {
	debtorID, err := intParam(c, "debtor_id")
	if err != nil {
		return nil, err
	}
	quantity, err := intParam(c, "quantity")
	if err != nil {
		return nil, err
	}
	price, err := decimalParam(c, "price")
	if err != nil {
		return nil, err
	}

	item, err := h.ledger.AddItem(c.Request.Context(), service.NewItem{
		DebtorID: debtorID,
		Name:     param(c, "item_name"),
		Quantity: quantity,
		Price:    price,
	})
	if err != nil {
		return nil, err
	}
	return gin.H{"item": itemView(item)}, nil
}

func (h *Handler) toggleItemPaid(c *gin.Context) (gin.H, error) {
	id, err := intParam(c, "id")
	if err != nil {
		return nil, err
	}
	return nil, h.ledger.ToggleItemPaid(c.Request.Context(), id)
}

func (h *Handler) markAllPaid(c *gin.Context) (gin.H, error) {
	debtorID, err := intParam(c, "debtor_id")
	if err != nil {
		return nil, err
	}
	return nil, h.ledger.MarkAllPaid(c.Request.Context(), debtorID)
}

func (h *Handler) deleteItem(c *gin.Context) (gin.H, error) {
	id, err := intParam(c, "id")
	if err != nil {
		return nil, err
	}
	if err := h.ledger.TrashItem(c.Request.Context(), id); err != nil {
		return nil, err
	}
	return message("Item moved to trash."), nil
}

func (h *Handler) getTrash(c *gin.Context) (gin.H, error) {
	trash, err := h.ledger.ListTrash(c.Request.Context())
	if err != nil {
		return nil, err
	}

	debtors := make([]gin.H, len(trash.Debtors))
	for i, d := range trash.Debtors {
		debtors[i] = debtorView(d)
	}
	items := make([]gin.H, len(trash.Items))
	for i, it := range trash.Items {
		items[i] = trashedItemView(it)
	}
	return gin.H{"debtors": debtors, "items": items}, nil
}

func (h *Handler) restoreDebtor(c *gin.Context) (gin.H, error) {
	id, err := intParam(c, "id")
	if err != nil {
		return nil, err
	}
	return nil, h.ledger.RestoreDebtor(c.Request.Context(), id)
}

func (h *Handler) restoreItem(c *gin.Context) (gin.H, error) {
	id, err := intParam(c, "id")
	if err != nil {
		return nil, err
	}
	return nil, h.ledger.RestoreItem(c.Request.Context(), id)
}

func (h *Handler) permDeleteDebtor(c *gin.Context) (gin.H, error) {
	id, err := intParam(c, "id")
	if err != nil {
		return nil, err
	}
	if err := h.ledger.PurgeDebtor(c.Request.Context(), id); err != nil {
		return nil, err
	}
	return message("Debtor permanently deleted."), nil
}

func (h *Handler) permDeleteItem(c *gin.Context) (gin.H, error) {
	id, err := intParam(c, "id")
	if err != nil {
		return nil, err
	}
	if err := h.ledger.PurgeItem(c.Request.Context(), id); err != nil {
		return nil, err
	}
	return message("Item permanently deleted."), nil
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/utang/internal/middleware"
	"github.com/mmynk/utang/internal/service"
)

// actionFunc runs one action and returns the payload merged into the
// success envelope.
type actionFunc func(c *gin.Context) (gin.H, error)

type action struct {
	// public actions run without a session.
	public bool
	run    actionFunc
	// failure is reported when the action fails without a user-facing message.
	failure string
}

func (h *Handler) actions() map[string]action {
	return map[string]action{
		"login":              {public: true, run: h.login, failure: "Login failed."},
		"logout":             {run: h.logout},
		"get_settings":       {run: h.getSettings, failure: "Failed to load settings."},
		"update_settings":    {run: h.updateSettings, failure: "Failed to update store name."},
		"update_password":    {run: h.updatePassword, failure: "Failed to update password."},
		"get_debtors":        {run: h.getDebtors, failure: "Failed to load debtors."},
		"add_debtor":         {run: h.addDebtor, failure: "Failed to add debtor."},
		"delete_debtor":      {run: h.deleteDebtor, failure: "Failed to delete debtor."},
		"get_debtor_details": {run: h.getDebtorDetails, failure: "Failed to load debtor."},
		"add_item":           {run: h.addItem, failure: "Failed to add item."},
		"toggle_item_paid":   {run: h.toggleItemPaid, failure: "Failed to update item status."},
		"mark_all_paid":      {run: h.markAllPaid, failure: "Failed to mark all items as paid."},
		"delete_item":        {run: h.deleteItem, failure: "Failed to delete item."},
		"get_trash":          {run: h.getTrash, failure: "Failed to load trash."},
		"restore_debtor":     {run: h.restoreDebtor, failure: "Failed to restore debtor."},
		"restore_item":       {run: h.restoreItem, failure: "Failed to restore item."},
		"perm_delete_debtor": {run: h.permDeleteDebtor, failure: "Failed to delete debtor."},
		"perm_delete_item":   {run: h.permDeleteItem, failure: "Failed to delete item."},
	}
}

// handleAction dispatches on the action parameter.
// Everything but login needs a session, including unknown actions.
func (h *Handler) handleAction(c *gin.Context) {
	name := param(c, "action")
	c.Set(middleware.ActionKey, name)

	act, known := h.table[name]

	// Client-supplied names must not become metric labels.
	label := name
	if !known {
		label = "unknown"
	}

	if (!known || !act.public) && middleware.GetSession(c) == nil {
		h.observe(label, middleware.OutcomeUnauthorized)
		unauthorized(c)
		return
	}

	if !known {
		h.observe(label, middleware.OutcomeFailed)
		fail(c, "Invalid action.")
		return
	}

	payload, err := act.run(c)
	if err != nil {
		h.failAction(c, name, act, err)
		return
	}

	h.observe(name, middleware.OutcomeOK)
	succeed(c, payload)
}

func (h *Handler) failAction(c *gin.Context, name string, act action, err error) {
	if errors.Is(err, service.ErrUnauthenticated) {
		h.observe(name, middleware.OutcomeUnauthorized)
		unauthorized(c)
		return
	}

	h.observe(name, middleware.OutcomeFailed)

	if msg, ok := service.PublicMessage(err); ok {
		fail(c, msg)
		return
	}

	h.logger.Error("Action failed", "action", name, "error", err)
	_ = c.Error(err)
	fail(c, act.failure)
}

func (h *Handler) observe(name, outcome string) {
	if h.metrics != nil {
		h.metrics.ObserveAction(name, outcome)
	}
}

func succeed(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func fail(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"success": false, "message": msg})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated."})
}

func message(msg string) gin.H {
	return gin.H{"message": msg}
}

func invalidParam(key string) error {
	return service.Invalid("Invalid " + key + ".")
}

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bar-comandas/web/internal/models"
	"github.com/bar-comandas/web/internal/service"
	"github.com/bar-comandas/web/internal/views"
	"github.com/go-chi/chi/v5"
)

// CustomerHandler serves the public, self-refreshing view of a tab reached
// through the table's QR code
type CustomerHandler struct {
	tabs           *service.TabService
	views          *views.Renderer
	refreshSeconds int
	logger         *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(tabs *service.TabService, renderer *views.Renderer, refreshSeconds int, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		tabs:           tabs,
		views:          renderer,
		refreshSeconds: refreshSeconds,
		logger:         logger,
	}
}

type customerData struct {
	Tab      *models.Tab
	NotFound bool
}

// Show handles GET /cliente/mesa/{tabId}
func (h *CustomerHandler) Show(w http.ResponseWriter, r *http.Request) {
	page := views.Page{Title: "Sua Conta", RefreshSeconds: h.refreshSeconds}
	status := http.StatusOK

	id, err := service.ParseTabID(chi.URLParam(r, "tabId"))
	if err == nil {
		var tab *models.Tab
		tab, err = h.tabs.Summary(r.Context(), id)
		if err == nil {
			page.Title = fmt.Sprintf("Mesa %d", tab.TableNumber)
			page.Data = customerData{Tab: tab}
		}
	}
	if err != nil {
		h.logger.Info("customer tab unavailable", "tabId", chi.URLParam(r, "tabId"), "error", err)
		page.Data = customerData{NotFound: true}
		status = http.StatusNotFound
	}

	if err := h.views.Render(w, status, "cliente", page); err != nil {
		h.logger.Error("failed to render page", "page", "cliente", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

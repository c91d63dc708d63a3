package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bar-comandas/web/internal/service"
	"github.com/bar-comandas/web/internal/session"
	"github.com/bar-comandas/web/internal/views"
)

// MenuHandler serves the staff catalog screen
type MenuHandler struct {
	pages
	menu *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menu *service.MenuService, renderer *views.Renderer, sessions *session.Manager, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		pages: pages{views: renderer, sessions: sessions, logger: logger},
		menu:  menu,
	}
}

type menuData struct {
	Menu service.Menu
}

// Show handles GET /cardapio
func (h *MenuHandler) Show(w http.ResponseWriter, r *http.Request) {
	menu, err := h.menu.Menu(r.Context())
	if err != nil {
		if h.expired(w, r, err) {
			return
		}
		h.logger.Error("failed to load menu", "error", err)
		h.renderError(w, r, http.StatusBadGateway, "Erro ao carregar cardápio", "/mesas")
		return
	}
	h.render(w, r, http.StatusOK, "cardapio", "Cardápio", menuData{Menu: menu})
}

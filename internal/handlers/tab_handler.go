package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bar-comandas/web/internal/models"
	"github.com/bar-comandas/web/internal/service"
	"github.com/bar-comandas/web/internal/session"
	"github.com/bar-comandas/web/internal/views"
	"github.com/go-chi/chi/v5"
)

const (
	modalAddItem    = "adicionar"
	modalPayment    = "pagamento"
	modalCancelItem = "cancelar"
)

// TabHandler serves a single comanda and its actions
type TabHandler struct {
	pages
	tabs *service.TabService
	menu *service.MenuService
}

// NewTabHandler creates a new tab handler
func NewTabHandler(tabs *service.TabService, menu *service.MenuService, renderer *views.Renderer, sessions *session.Manager, logger *slog.Logger) *TabHandler {
	return &TabHandler{
		pages: pages{views: renderer, sessions: sessions, logger: logger},
		tabs:  tabs,
		menu:  menu,
	}
}

type tabData struct {
	Tab          *models.Tab
	Modal        string
	CancelItemID int64
	Products     []models.Product
}

// Show handles GET /comanda/{tabId}. ?modal= selects the open dialog.
func (h *TabHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := service.ParseTabID(chi.URLParam(r, "tabId"))
	if err != nil {
		h.notFound(w, r)
		return
	}

	tab, err := h.tabs.Summary(ctx, id)
	if err != nil {
		if h.expired(w, r, err) {
			return
		}
		h.logger.Warn("failed to load tab", "tabId", id, "error", err)
		h.notFound(w, r)
		return
	}

	data := tabData{Tab: tab}
	q := r.URL.Query()
	switch q.Get("modal") {
	case modalAddItem:
		products, err := h.menu.Products(ctx)
		if err != nil {
			h.fail(w, r, err, "Erro ao carregar produtos", tabPath(id))
			return
		}
		data.Modal = modalAddItem
		data.Products = products
	case modalPayment:
		data.Modal = modalPayment
	case modalCancelItem:
		itemID, _ := strconv.ParseInt(q.Get("item"), 10, 64)
		for _, item := range tab.Items {
			if item.ID == itemID {
				data.Modal = modalCancelItem
				data.CancelItemID = itemID
				break
			}
		}
	}

	h.render(w, r, http.StatusOK, "comanda", fmt.Sprintf("Mesa %d", tab.TableNumber), data)
}

// ToggleCover handles POST /comanda/{tabId}/couvert
func (h *TabHandler) ToggleCover(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "Erro ao alterar o couvert.", func(id int64) error {
		return h.tabs.SetCoverCharge(r.Context(), id, r.PostFormValue("habilitado"))
	})
}

// AddItem handles POST /comanda/{tabId}/itens
func (h *TabHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "Erro ao adicionar item", func(id int64) error {
		return h.tabs.AddItem(r.Context(), id, r.PostFormValue("produtoId"), r.PostFormValue("quantidade"))
	})
}

// CancelItem handles POST /comanda/{tabId}/itens/{itemId}/cancelar
func (h *TabHandler) CancelItem(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "Erro ao cancelar item", func(id int64) error {
		return h.tabs.CancelItem(r.Context(), id, chi.URLParam(r, "itemId"), r.PostFormValue("motivo"))
	})
}

// Pay handles POST /comanda/{tabId}/pagamentos
func (h *TabHandler) Pay(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "Erro ao registrar pagamento", func(id int64) error {
		return h.tabs.RegisterPayment(r.Context(), id, r.PostFormValue("valor"), r.PostFormValue("formaPagamento"))
	})
}

// Close handles POST /comanda/{tabId}/fechar
func (h *TabHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParseTabID(chi.URLParam(r, "tabId"))
	if err != nil {
		h.notFound(w, r)
		return
	}
	back := tabPath(id)

	err = h.tabs.Close(r.Context(), id)
	switch {
	case err == nil:
		h.logger.Info("tab closed", "tabId", id)
		h.success(w, r, "Conta fechada com sucesso!", "/mesas")
	case errors.Is(err, service.ErrOutstandingBalance):
		h.failure(w, r, "Ainda há saldo restante. Registre o pagamento completo antes de fechar a conta.", back)
	default:
		h.fail(w, r, err, "Erro ao fechar conta", back)
	}
}

// act runs a tab action and returns to the tab screen, flashing fallback on failure.
func (h *TabHandler) act(w http.ResponseWriter, r *http.Request, fallback string, action func(id int64) error) {
	id, err := service.ParseTabID(chi.URLParam(r, "tabId"))
	if err != nil {
		h.notFound(w, r)
		return
	}
	if err := action(id); err != nil {
		h.fail(w, r, err, fallback, tabPath(id))
		return
	}
	redirect(w, r, tabPath(id))
}

func (h *TabHandler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "Comanda não encontrada", "/mesas")
}

func tabPath(id int64) string {
	return "/comanda/" + strconv.FormatInt(id, 10)
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bar-comandas/web/internal/backend"
	"github.com/bar-comandas/web/internal/models"
	"github.com/bar-comandas/web/internal/service"
	"github.com/bar-comandas/web/internal/session"
	"github.com/bar-comandas/web/internal/views"
	"github.com/go-chi/chi/v5"
)

const (
	adminProducts = "produtos"
	adminTables   = "mesas"
	adminReports  = "relatorios"
	adminSettings = "configuracoes"
)

// AdminHandler serves the admin area
type AdminHandler struct {
	pages
	admin *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin *service.AdminService, renderer *views.Renderer, sessions *session.Manager, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		pages: pages{views: renderer, sessions: sessions, logger: logger},
		admin: admin,
	}
}

type adminData struct {
	Tab       string
	Dashboard *service.Dashboard

	// Product is the product being edited; ID zero means a new one.
	Product    *models.Product
	TableModal bool

	From         string
	To           string
	Reports      *service.Reports
	ReportsError string
}

// Show handles GET /admin. ?aba= selects the tab; ?produto=novo|{id} and
// ?mesa=nova open the product and table dialogs.
func (h *AdminHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	dash, err := h.admin.Dashboard(ctx)
	if err != nil {
		if h.expired(w, r, err) {
			return
		}
		h.logger.Error("failed to load admin dashboard", "error", err)
		h.renderError(w, r, http.StatusBadGateway, "Erro ao carregar dados", "/mesas")
		return
	}

	data := adminData{Tab: adminTab(q.Get("aba")), Dashboard: dash}
	data.From, data.To = h.admin.DefaultRange()

	switch data.Tab {
	case adminProducts:
		data.Product = pickProduct(dash.Products, q.Get("produto"))
	case adminTables:
		data.TableModal = q.Get("mesa") == "nova"
	case adminReports:
		reports, err := h.admin.Reports(ctx, q.Get("inicio"), q.Get("fim"))
		if reports != nil {
			data.From, data.To = reports.From, reports.To
		}
		var inputErr *service.InputError
		switch {
		case err == nil:
			data.Reports = reports
		case errors.As(err, &inputErr):
			data.ReportsError = inputErr.Message
		default:
			if h.expired(w, r, err) {
				return
			}
			h.logger.Warn("failed to load reports", "error", err)
			data.ReportsError = "Erro ao carregar relatórios"
		}
	}

	h.render(w, r, http.StatusOK, "admin", "Admin", data)
}

// CreateProduct handles POST /admin/produtos
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, 0)
}

// UpdateProduct handles POST /admin/produtos/{productId}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParseProductID(chi.URLParam(r, "productId"))
	if err != nil {
		h.fail(w, r, err, "Erro ao salvar produto", adminPath(adminProducts))
		return
	}
	h.saveProduct(w, r, id)
}

func (h *AdminHandler) saveProduct(w http.ResponseWriter, r *http.Request, id int64) {
	form := service.ProductForm{
		Name:        r.PostFormValue("nome"),
		Description: r.PostFormValue("descricao"),
		Price:       r.PostFormValue("preco"),
		Category:    r.PostFormValue("categoria"),
		Available:   r.PostFormValue("disponivel") != "",
	}
	if err := h.admin.SaveProduct(r.Context(), id, form); err != nil {
		h.fail(w, r, err, "Erro ao salvar produto", adminPath(adminProducts))
		return
	}
	redirect(w, r, adminPath(adminProducts))
}

// CreateTable handles POST /admin/mesas
func (h *AdminHandler) CreateTable(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.CreateTable(r.Context(), r.PostFormValue("numero")); err != nil {
		h.fail(w, r, err, "Erro ao criar mesa. Verifique se o número já existe.", adminPath(adminTables))
		return
	}
	h.success(w, r, "Mesa cadastrada com sucesso!", adminPath(adminTables))
}

// DeleteTable handles POST /admin/mesas/{tableId}/remover
func (h *AdminHandler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	back := adminPath(adminTables)
	err := h.admin.DeleteTable(r.Context(), chi.URLParam(r, "tableId"))
	switch {
	case err == nil:
		h.success(w, r, "Mesa removida com sucesso!", back)
	case errors.Is(err, backend.ErrConflict):
		h.failure(w, r, "⚠️ Não é possível deletar: Esta mesa está OCUPADA.", back)
	default:
		h.fail(w, r, err, "Erro ao tentar deletar a mesa.", back)
	}
}

// SaveSettings handles POST /admin/configuracoes
func (h *AdminHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	form := service.SettingsForm{
		CoverCharge:     r.PostFormValue("valorCouvert"),
		FoodTipPercent:  r.PostFormValue("percentualGorjetaComida"),
		DrinkTipPercent: r.PostFormValue("percentualGorjetaBebida"),
	}
	if err := h.admin.SaveSettings(r.Context(), form); err != nil {
		h.fail(w, r, err, "Erro ao salvar configurações", adminPath(adminSettings))
		return
	}
	h.success(w, r, "Configurações salvas com sucesso!", adminPath(adminSettings))
}

func adminTab(raw string) string {
	switch raw {
	case adminTables, adminReports, adminSettings:
		return raw
	}
	return adminProducts
}

func adminPath(tab string) string {
	return "/admin?aba=" + tab
}

// pickProduct resolves the ?produto= parameter to the product shown in the dialog.
func pickProduct(products []models.Product, raw string) *models.Product {
	if raw == "" {
		return nil
	}
	if raw == "novo" {
		return &models.Product{Category: models.CategoryFood, Available: true}
	}
	id, err := service.ParseProductID(raw)
	if err != nil {
		return nil
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bar-comandas/web/internal/models"
	"github.com/bar-comandas/web/internal/service"
	"github.com/bar-comandas/web/internal/session"
	"github.com/bar-comandas/web/internal/views"
)

// TableHandler serves the tables dashboard
type TableHandler struct {
	pages
	tables *service.TableService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tables *service.TableService, renderer *views.Renderer, sessions *session.Manager, logger *slog.Logger) *TableHandler {
	return &TableHandler{
		pages:  pages{views: renderer, sessions: sessions, logger: logger},
		tables: tables,
	}
}

type tablesData struct {
	Tables []models.Table
	// Opening is the free table whose "open" dialog is showing.
	Opening *models.Table
	// QRCode is the occupied table whose customer QR code is showing.
	QRCode *models.Table
}

// List handles GET /mesas. ?abrir={numero} opens the open-table dialog and
// ?qr={id} shows the customer QR code of an occupied table.
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	tables, err := h.tables.ListTables(r.Context())
	if err != nil {
		if h.expired(w, r, err) {
			return
		}
		h.logger.Error("failed to list tables", "error", err)
		h.renderError(w, r, http.StatusBadGateway, "Erro ao carregar mesas", "/mesas")
		return
	}

	data := tablesData{Tables: tables}
	q := r.URL.Query()
	if n, err := strconv.Atoi(q.Get("abrir")); err == nil {
		data.Opening = findTable(tables, func(t models.Table) bool { return t.Number == n && t.IsFree() })
	}
	if id, err := strconv.ParseInt(q.Get("qr"), 10, 64); err == nil {
		data.QRCode = findTable(tables, func(t models.Table) bool { return t.ID == id && t.HasTab() })
	}

	h.render(w, r, http.StatusOK, "mesas", "Mesas", data)
}

// Open handles POST /mesas/abrir
func (h *TableHandler) Open(w http.ResponseWriter, r *http.Request) {
	err := h.tables.OpenTable(r.Context(), r.PostFormValue("mesa"), r.PostFormValue("qtdPessoas"))
	if err != nil {
		h.fail(w, r, err, "Erro ao abrir mesa. Tente novamente.", "/mesas")
		return
	}
	redirect(w, r, "/mesas")
}

func findTable(tables []models.Table, match func(models.Table) bool) *models.Table {
	for i := range tables {
		if match(tables[i]) {
			return &tables[i]
		}
	}
	return nil
}

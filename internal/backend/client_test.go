package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bar-comandas/web/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, 2*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "garcom", creds.Login)
		assert.Equal(t, "1234", creds.Password)

		_, _ = w.Write([]byte(`{"token":"abc","perfil":"ADMIN"}`))
	})

	resp, err := c.Login(context.Background(), models.Credentials{Login: "garcom", Password: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Token)
	assert.Equal(t, models.RoleAdmin, resp.Role)
}

func TestClient_SendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":1,"numero":5,"status":"OCUPADA","comandaId":42},{"id":2,"numero":6,"status":"LIVRE"}]`))
	})

	tables, err := c.ListTables(WithToken(context.Background(), "tok-1"))
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.True(t, tables[0].HasTab())
	assert.Equal(t, int64(42), tables[0].TabID)
	assert.True(t, tables[1].IsFree())
	assert.False(t, tables[1].HasTab())
}

func TestClient_TabSummary(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comandas/7/resumo", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": 7, "mesaNumero": 3, "status": "ABERTA", "qtdPessoasMesa": 2,
			"couvertHabilitado": true,
			"itens": [{"id": 1, "produtoNome": "Chopp", "quantidade": 2, "precoUnitario": 9.9, "totalItem": 19.8}],
			"subtotalComida": 0, "subtotalBebida": 19.8,
			"valorGorjetaComida": 0, "valorGorjetaBebida": 1.98, "valorCouvert": 20,
			"totalGeral": 41.78, "totalPago": 10, "saldoRestante": 31.78
		}`))
	})

	tab, err := c.TabSummary(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, tab.TableNumber)
	assert.True(t, tab.CoverEnabled)
	require.Len(t, tab.Items, 1)
	assert.Equal(t, "19.80", tab.Items[0].Total.StringFixed(2))
	assert.True(t, tab.HasBalance())
	assert.False(t, tab.IsSettled())
}

func TestClient_RequestShapes(t *testing.T) {
	type captured struct {
		method string
		path   string
		query  string
		body   map[string]any
	}
	var got captured

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = captured{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		if r.ContentLength > 0 {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got.body))
		}
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
		query  string
		body   map[string]any
	}{
		{
			name:   "open tab",
			call:   func() error { return c.OpenTab(ctx, 4, 3) },
			method: http.MethodPost, path: "/comandas/abrir",
			body: map[string]any{"numeroMesa": float64(4), "qtdPessoas": float64(3)},
		},
		{
			name:   "add item",
			call:   func() error { return c.AddItem(ctx, 9, 12, 2) },
			method: http.MethodPost, path: "/comandas/9/itens",
			body: map[string]any{"produtoId": float64(12), "quantidade": float64(2)},
		},
		{
			name:   "cancel item sends reason in body",
			call:   func() error { return c.CancelItem(ctx, 9, 3, "cliente desistiu") },
			method: http.MethodDelete, path: "/comandas/9/itens/3",
			body: map[string]any{"motivo": "cliente desistiu"},
		},
		{
			name:   "toggle couvert",
			call:   func() error { return c.SetCoverCharge(ctx, 9, false) },
			method: http.MethodPatch, path: "/comandas/9/couvert", query: "habilitado=false",
		},
		{
			name:   "pay sends numeric amount",
			call:   func() error { return c.Pay(ctx, 9, decimal.RequireFromString("25.5"), models.PaymentPix) },
			method: http.MethodPost, path: "/comandas/9/pagar",
			body: map[string]any{"valor": 25.5, "formaPagamento": "PIX"},
		},
		{
			name:   "close tab",
			call:   func() error { return c.CloseTab(ctx, 9) },
			method: http.MethodPost, path: "/comandas/9/fechar",
		},
		{
			name:   "delete table",
			call:   func() error { return c.DeleteTable(ctx, 2) },
			method: http.MethodDelete, path: "/admin/mesas/2",
		},
		{
			name: "update product",
			call: func() error {
				return c.UpdateProduct(ctx, 5, models.ProductInput{
					Name: "Porção", Price: decimal.RequireFromString("30"), Category: models.CategoryFood, Available: true,
				})
			},
			method: http.MethodPut, path: "/admin/produtos/5",
			body: map[string]any{"nome": "Porção", "descricao": "", "preco": float64(30), "categoria": "COMIDA", "disponivel": true},
		},
		{
			name: "revenue report",
			call: func() error {
				_, err := c.Revenue(ctx, "2024-01-01", "2024-01-31")
				return err
			},
			method: http.MethodGet, path: "/admin/relatorios/faturamento", query: "fim=2024-01-31&inicio=2024-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = captured{}
			err := tt.call()
			// Revenue decodes an empty body and fails; only the request shape matters here.
			if tt.path != "/admin/relatorios/faturamento" {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.method, got.method)
			assert.Equal(t, tt.path, got.path)
			assert.Equal(t, tt.query, got.query)
			assert.Equal(t, tt.body, got.body)
		})
	}
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantIs      error
		wantMessage string
	}{
		{name: "conflict", status: http.StatusConflict, body: `{"message":"Mesa ocupada"}`, wantIs: ErrConflict, wantMessage: "Mesa ocupada"},
		{name: "not found", status: http.StatusNotFound, body: ``, wantIs: ErrNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"Unauthorized"}`, wantIs: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, wantIs: ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := c.DeleteTable(context.Background(), 1)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantIs), "errors.Is(%v, %v)", err, tt.wantIs)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, "fallback", MessageOf(&APIError{StatusCode: 500}, "fallback"))
		})
	}
}

func TestClient_Ping(t *testing.T) {
	status := http.StatusUnauthorized
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})

	assert.NoError(t, c.Ping(context.Background()))

	status = http.StatusBadGateway
	assert.Error(t, c.Ping(context.Background()))
}

func TestQRCodePath(t *testing.T) {
	assert.Equal(t, "/qrcode/mesa/15", QRCodePath(15))
}

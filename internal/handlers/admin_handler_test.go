package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/bar-comandas/web/internal/backend"
	"github.com/bar-comandas/web/internal/models"
	"github.com/bar-comandas/web/internal/service/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func stubDashboard(m *mocks.MockAPI) {
	m.On("ListProducts", mock.Anything).Return([]models.Product{
		{ID: 4, Name: "Pastel", Price: decimal.RequireFromString("14"), Category: models.CategoryFood, Available: true},
	}, nil).Maybe()
	m.On("Settings", mock.Anything).Return(&models.Settings{
		CoverCharge:     decimal.RequireFromString("15"),
		FoodTipPercent:  decimal.RequireFromString("10"),
		DrinkTipPercent: decimal.RequireFromString("10"),
	}, nil).Maybe()
	m.On("ListTables", mock.Anything).Return([]models.Table{{ID: 2, Number: 8, Status: models.TableFree}}, nil).Maybe()
}

func TestAdmin_RequiresAdminRole(t *testing.T) {
	env := newTestEnv(t, "")
	env.signIn(t, "GARCOM")

	assertRedirect(t, env.get("/admin"), "/mesas")
	assertRedirect(t, env.post("/admin/mesas", url.Values{"numero": {"9"}}), "/mesas")
	env.api.AssertNotCalled(t, "CreateTable", mock.Anything, mock.Anything)
}

func TestAdmin_Tabs(t *testing.T) {
	testCases := []struct {
		name     string
		target   string
		setup    func(m *mocks.MockAPI)
		contains []string
	}{
		{
			name:     "products by default",
			target:   "/admin",
			contains: []string{"Pastel", "R$ 14.00", `href="/admin?aba=produtos&amp;produto=4"`},
		},
		{
			name:     "edit product dialog",
			target:   "/admin?aba=produtos&produto=4",
			contains: []string{"Editar Produto", `action="/admin/produtos/4"`, `value="14.00"`},
		},
		{
			name:     "new product dialog",
			target:   "/admin?aba=produtos&produto=novo",
			contains: []string{"Novo Produto", `action="/admin/produtos"`},
		},
		{
			name:     "tables",
			target:   "/admin?aba=mesas&mesa=nova",
			contains: []string{"Mesa 8", `action="/admin/mesas/2/remover"`, "Tem certeza que deseja remover esta mesa?", "Nova Mesa"},
		},
		{
			name:     "settings",
			target:   "/admin?aba=configuracoes",
			contains: []string{`name="valorCouvert" type="number" step="0.01" min="0" value="15.00"`},
		},
		{
			name:   "reports",
			target: "/admin?aba=relatorios&inicio=2024-03-01&fim=2024-03-31",
			setup: func(m *mocks.MockAPI) {
				m.On("Revenue", mock.Anything, "2024-03-01", "2024-03-31").
					Return(&models.RevenueReport{Total: decimal.RequireFromString("1234.5"), Payments: 12}, nil).Once()
				m.On("TopSelling", mock.Anything).Return([]models.ProductRanking{{ProductName: "Chopp", QuantitySold: 40, Revenue: decimal.RequireFromString("396")}}, nil).Once()
				m.On("TopRevenue", mock.Anything).Return([]models.ProductRanking{}, nil).Once()
			},
			contains: []string{"R$ 1234.50", "12 pagamento(s)", "Chopp", "R$ 396.00", "Sem dados no período.", `value="2024-03-01"`},
		},
		{
			name:     "reports with an inverted range",
			target:   "/admin?aba=relatorios&inicio=2024-03-31&fim=2024-03-01",
			contains: []string{"A data final deve ser igual ou posterior à inicial"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			env.signIn(t, models.RoleAdmin)
			stubDashboard(env.api)
			if tc.setup != nil {
				tc.setup(env.api)
			}

			w := env.get(tc.target)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			assertContains(t, w.Body.String(), tc.contains...)
		})
	}
}

func TestAdmin_DashboardFailure(t *testing.T) {
	env := newTestEnv(t, "")
	env.signIn(t, models.RoleAdmin)
	env.api.On("ListProducts", mock.Anything).Return(nil, errors.New("boom"))
	env.api.On("Settings", mock.Anything).Return(&models.Settings{}, nil)
	env.api.On("ListTables", mock.Anything).Return([]models.Table{}, nil)

	w := env.get("/admin")
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestAdmin_Actions(t *testing.T) {
	testCases := []struct {
		name     string
		target   string
		form     url.Values
		setup    func(m *mocks.MockAPI)
		location string
		flash    string
	}{
		{
			name:   "create product",
			target: "/admin/produtos",
			form:   url.Values{"nome": {"Caipirinha"}, "preco": {"18,90"}, "categoria": {"BEBIDA"}, "disponivel": {"true"}},
			setup: func(m *mocks.MockAPI) {
				m.On("CreateProduct", mock.Anything, mock.MatchedBy(func(in models.ProductInput) bool {
					return in.Name == "Caipirinha" && in.Available && in.Price.Equal(decimal.RequireFromString("18.9"))
				})).Return(nil).Once()
			},
			location: "/admin?aba=produtos",
		},
		{
			name:   "update product failure",
			target: "/admin/produtos/4",
			form:   url.Values{"nome": {"Pastel"}, "preco": {"15"}, "categoria": {"COMIDA"}},
			setup: func(m *mocks.MockAPI) {
				m.On("UpdateProduct", mock.Anything, int64(4), mock.Anything).Return(errors.New("boom")).Once()
			},
			location: "/admin?aba=produtos",
			flash:    "Erro ao salvar produto",
		},
		{
			name:     "product name required",
			target:   "/admin/produtos",
			form:     url.Values{"preco": {"15"}},
			location: "/admin?aba=produtos",
			flash:    "Nome é obrigatório",
		},
		{
			name:     "create table",
			target:   "/admin/mesas",
			form:     url.Values{"numero": {"9"}},
			setup:    func(m *mocks.MockAPI) { m.On("CreateTable", mock.Anything, 9).Return(nil).Once() },
			location: "/admin?aba=mesas",
			flash:    "Mesa cadastrada com sucesso!",
		},
		{
			name:   "create duplicate table",
			target: "/admin/mesas",
			form:   url.Values{"numero": {"8"}},
			setup: func(m *mocks.MockAPI) {
				m.On("CreateTable", mock.Anything, 8).Return(&backend.APIError{StatusCode: 400}).Once()
			},
			location: "/admin?aba=mesas",
			flash:    "Erro ao criar mesa. Verifique se o número já existe.",
		},
		{
			name:     "delete table",
			target:   "/admin/mesas/2/remover",
			setup:    func(m *mocks.MockAPI) { m.On("DeleteTable", mock.Anything, int64(2)).Return(nil).Once() },
			location: "/admin?aba=mesas",
			flash:    "Mesa removida com sucesso!",
		},
		{
			name:   "delete occupied table",
			target: "/admin/mesas/2/remover",
			setup: func(m *mocks.MockAPI) {
				m.On("DeleteTable", mock.Anything, int64(2)).Return(&backend.APIError{StatusCode: http.StatusConflict}).Once()
			},
			location: "/admin?aba=mesas",
			flash:    "⚠️ Não é possível deletar: Esta mesa está OCUPADA.",
		},
		{
			name:     "delete table failure",
			target:   "/admin/mesas/2/remover",
			setup:    func(m *mocks.MockAPI) { m.On("DeleteTable", mock.Anything, int64(2)).Return(errors.New("boom")).Once() },
			location: "/admin?aba=mesas",
			flash:    "Erro ao tentar deletar a mesa.",
		},
		{
			name:     "save settings",
			target:   "/admin/configuracoes",
			form:     url.Values{"valorCouvert": {"20"}, "percentualGorjetaComida": {"10"}, "percentualGorjetaBebida": {"12"}},
			setup:    func(m *mocks.MockAPI) { m.On("UpdateSettings", mock.Anything, mock.Anything).Return(nil).Once() },
			location: "/admin?aba=configuracoes",
			flash:    "Configurações salvas com sucesso!",
		},
		{
			name:   "save settings failure",
			target: "/admin/configuracoes",
			form:   url.Values{"valorCouvert": {"20"}, "percentualGorjetaComida": {"10"}, "percentualGorjetaBebida": {"12"}},
			setup: func(m *mocks.MockAPI) {
				m.On("UpdateSettings", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()
			},
			location: "/admin?aba=configuracoes",
			flash:    "Erro ao salvar configurações",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			env.signIn(t, models.RoleAdmin)
			stubDashboard(env.api)
			if tc.setup != nil {
				tc.setup(env.api)
			}

			assertRedirect(t, env.post(tc.target, tc.form), tc.location)

			if tc.flash != "" {
				assertContains(t, env.get(tc.location).Body.String(), tc.flash)
			}
			env.api.AssertExpectations(t)
		})
	}
}

package mocks

import (
	"context"

	"github.com/bar-comandas/web/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	args := m.Called(ctx, creds)
	if res := args.Get(0); res != nil {
		return res.(*models.LoginResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) Menu(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) CreateProduct(ctx context.Context, in models.ProductInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockAPI) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockAPI) ListTables(ctx context.Context) ([]models.Table, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]models.Table), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) CreateTable(ctx context.Context, number int) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *MockAPI) DeleteTable(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAPI) OpenTab(ctx context.Context, tableNumber, people int) error {
	args := m.Called(ctx, tableNumber, people)
	return args.Error(0)
}

func (m *MockAPI) TabSummary(ctx context.Context, id int64) (*models.Tab, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Tab), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) AddItem(ctx context.Context, tabID, productID int64, quantity int) error {
	args := m.Called(ctx, tabID, productID, quantity)
	return args.Error(0)
}

func (m *MockAPI) CancelItem(ctx context.Context, tabID, itemID int64, reason string) error {
	args := m.Called(ctx, tabID, itemID, reason)
	return args.Error(0)
}

func (m *MockAPI) SetCoverCharge(ctx context.Context, tabID int64, enabled bool) error {
	args := m.Called(ctx, tabID, enabled)
	return args.Error(0)
}

func (m *MockAPI) Pay(ctx context.Context, tabID int64, amount decimal.Decimal, method models.PaymentMethod) error {
	args := m.Called(ctx, tabID, amount, method)
	return args.Error(0)
}

func (m *MockAPI) CloseTab(ctx context.Context, tabID int64) error {
	args := m.Called(ctx, tabID)
	return args.Error(0)
}

func (m *MockAPI) Settings(ctx context.Context) (*models.Settings, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.(*models.Settings), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) UpdateSettings(ctx context.Context, s models.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockAPI) Revenue(ctx context.Context, from, to string) (*models.RevenueReport, error) {
	args := m.Called(ctx, from, to)
	if res := args.Get(0); res != nil {
		return res.(*models.RevenueReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) TopSelling(ctx context.Context) ([]models.ProductRanking, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]models.ProductRanking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) TopRevenue(ctx context.Context) ([]models.ProductRanking, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]models.ProductRanking), args.Error(1)
	}
	return nil, args.Error(1)
}

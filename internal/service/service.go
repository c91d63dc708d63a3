package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bar-comandas/web/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrOutstandingBalance = errors.New("tab has an outstanding balance")
	ErrEmptyToken         = errors.New("login response carried no token")
)

// InputError describes a form field that failed validation.
// Message is user-facing.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, message string) error {
	return &InputError{Field: field, Message: message}
}

// API is the subset of the table-management API the screens consume.
type API interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)

	Menu(ctx context.Context) ([]models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) error
	UpdateProduct(ctx context.Context, id int64, in models.ProductInput) error

	ListTables(ctx context.Context) ([]models.Table, error)
	CreateTable(ctx context.Context, number int) error
	DeleteTable(ctx context.Context, id int64) error

	OpenTab(ctx context.Context, tableNumber, people int) error
	TabSummary(ctx context.Context, id int64) (*models.Tab, error)
	AddItem(ctx context.Context, tabID, productID int64, quantity int) error
	CancelItem(ctx context.Context, tabID, itemID int64, reason string) error
	SetCoverCharge(ctx context.Context, tabID int64, enabled bool) error
	Pay(ctx context.Context, tabID int64, amount decimal.Decimal, method models.PaymentMethod) error
	CloseTab(ctx context.Context, tabID int64) error

	Settings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, s models.Settings) error

	Revenue(ctx context.Context, from, to string) (*models.RevenueReport, error)
	TopSelling(ctx context.Context) ([]models.ProductRanking, error)
	TopRevenue(ctx context.Context) ([]models.ProductRanking, error)
}

// parsePositiveInt parses a required whole number >= 1.
func parsePositiveInt(field, label, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid(field, label+" é obrigatório")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, invalid(field, label+" deve ser um número inteiro maior que zero")
	}
	return n, nil
}

// parseMoney parses a required non-negative amount with at most two decimal
// places. Both "12.5" and "12,50" are accepted.
func parseMoney(field, label, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, invalid(field, label+" é obrigatório")
	}
	d, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil || d.IsNegative() {
		return decimal.Zero, invalid(field, label+" deve ser um valor numérico válido")
	}
	if !d.Equal(d.Round(2)) {
		return decimal.Zero, invalid(field, label+" deve ter no máximo duas casas decimais")
	}
	return d, nil
}

// parseID parses a path or form identifier.
func parseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid(field, "identificador inválido")
	}
	return id, nil
}

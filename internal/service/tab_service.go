package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bar-comandas/web/internal/models"
)

// TabService drives a single comanda: items, couvert, payments and closing.
// Totals come from the backend; nothing here recomputes them.
type TabService struct {
	api API
}

func NewTabService(api API) *TabService {
	return &TabService{api: api}
}

// ParseTabID validates a comanda identifier taken from a URL.
func ParseTabID(raw string) (int64, error) {
	return parseID("comanda", raw)
}

func (s *TabService) Summary(ctx context.Context, tabID int64) (*models.Tab, error) {
	return s.api.TabSummary(ctx, tabID)
}

// SetCoverCharge switches the couvert to the requested state.
func (s *TabService) SetCoverCharge(ctx context.Context, tabID int64, enabledRaw string) error {
	enabled, err := strconv.ParseBool(strings.TrimSpace(enabledRaw))
	if err != nil {
		return invalid("habilitado", "Valor do couvert inválido")
	}
	return s.api.SetCoverCharge(ctx, tabID, enabled)
}

// AddItem adds quantity units of a product to the tab.
func (s *TabService) AddItem(ctx context.Context, tabID int64, productIDRaw, quantityRaw string) error {
	if strings.TrimSpace(productIDRaw) == "" {
		return invalid("produtoId", "Selecione um produto")
	}
	productID, err := parseID("produtoId", productIDRaw)
	if err != nil {
		return err
	}
	quantity, err := parsePositiveInt("quantidade", "Quantidade", quantityRaw)
	if err != nil {
		return err
	}
	return s.api.AddItem(ctx, tabID, productID, quantity)
}

// CancelItem removes a line item. A non-blank reason is mandatory.
func (s *TabService) CancelItem(ctx context.Context, tabID int64, itemIDRaw, reason string) error {
	itemID, err := parseID("item", itemIDRaw)
	if err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return invalid("motivo", "Informe o motivo do cancelamento")
	}
	return s.api.CancelItem(ctx, tabID, itemID, reason)
}

// RegisterPayment records a payment of a positive amount with a known method.
func (s *TabService) RegisterPayment(ctx context.Context, tabID int64, amountRaw, methodRaw string) error {
	amount, err := parseMoney("valor", "Valor", amountRaw)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return invalid("valor", "Valor deve ser maior que zero")
	}
	method := models.PaymentMethod(strings.TrimSpace(methodRaw))
	if !method.Valid() {
		return invalid("formaPagamento", "Selecione a forma de pagamento")
	}
	return s.api.Pay(ctx, tabID, amount, method)
}

// Close closes the account. It is refused while a balance remains, using the
// backend's current summary rather than what the page last displayed.
func (s *TabService) Close(ctx context.Context, tabID int64) error {
	tab, err := s.api.TabSummary(ctx, tabID)
	if err != nil {
		return err
	}
	if tab.HasBalance() {
		return ErrOutstandingBalance
	}
	return s.api.CloseTab(ctx, tabID)
}

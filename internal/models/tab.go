package models

import "github.com/shopspring/decimal"

// TabStatus is the lifecycle state of a comanda, owned by the backend
type TabStatus string

const (
	TabOpen   TabStatus = "ABERTA"
	TabPaid   TabStatus = "PAGA"
	TabClosed TabStatus = "FECHADA"
)

// TabItem is a single line of a running tab
type TabItem struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"produtoNome"`
	Quantity    int             `json:"quantidade"`
	UnitPrice   decimal.Decimal `json:"precoUnitario"`
	Total       decimal.Decimal `json:"totalItem"`
}

// Tab is the summary returned by /comandas/{id}/resumo.
// All sums are computed by the backend and displayed verbatim.
type Tab struct {
	ID            int64           `json:"id"`
	TableNumber   int             `json:"mesaNumero"`
	Status        TabStatus       `json:"status"`
	People        int             `json:"qtdPessoasMesa"`
	CoverEnabled  bool            `json:"couvertHabilitado"`
	Items         []TabItem       `json:"itens"`
	FoodSubtotal  decimal.Decimal `json:"subtotalComida"`
	DrinkSubtotal decimal.Decimal `json:"subtotalBebida"`
	FoodTip       decimal.Decimal `json:"valorGorjetaComida"`
	DrinkTip      decimal.Decimal `json:"valorGorjetaBebida"`
	CoverCharge   decimal.Decimal `json:"valorCouvert"`
	Total         decimal.Decimal `json:"totalGeral"`
	Paid          decimal.Decimal `json:"totalPago"`
	Balance       decimal.Decimal `json:"saldoRestante"`
}

// HasBalance reports whether part of the total is still unpaid.
func (t Tab) HasBalance() bool {
	return t.Balance.IsPositive()
}

// IsSettled reports whether the account is over from the diner's point of view.
func (t Tab) IsSettled() bool {
	return t.Status == TabPaid || t.Status == TabClosed
}

// PaymentMethod is how a payment was made
type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "PIX"
	PaymentCash PaymentMethod = "DINHEIRO"
	PaymentCard PaymentMethod = "CARTAO"
)

// PaymentMethods lists the accepted methods in display order.
var PaymentMethods = []PaymentMethod{PaymentPix, PaymentCash, PaymentCard}

func (m PaymentMethod) Valid() bool {
	for _, pm := range PaymentMethods {
		if m == pm {
			return true
		}
	}
	return false
}

// Label is the human name shown in the payment dialog.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Dinheiro"
	case PaymentCard:
		return "Cartão"
	default:
		return string(m)
	}
}

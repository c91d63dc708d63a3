package models

import "github.com/shopspring/decimal"

// RevenueReport is the revenue total over a date range
type RevenueReport struct {
	Total    decimal.Decimal `json:"faturamentoTotal"`
	Payments int             `json:"qtdPagamentos"`
}

// ProductRanking is one row of a best-sellers report
type ProductRanking struct {
	ProductName  string          `json:"nomeProduto"`
	QuantitySold int             `json:"quantidadeVendida"`
	Revenue      decimal.Decimal `json:"totalFaturado"`
}

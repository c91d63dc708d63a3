package models

import "github.com/shopspring/decimal"

// Settings holds the global pricing configuration
type Settings struct {
	CoverCharge     decimal.Decimal `json:"valorCouvert"`
	FoodTipPercent  decimal.Decimal `json:"percentualGorjetaComida"`
	DrinkTipPercent decimal.Decimal `json:"percentualGorjetaBebida"`
}

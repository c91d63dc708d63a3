package models

import "github.com/shopspring/decimal"

// Category separates food from drinks; tips are charged per category.
type Category string

const (
	CategoryFood  Category = "COMIDA"
	CategoryDrink Category = "BEBIDA"
)

// Valid reports whether c is one of the categories the backend accepts.
func (c Category) Valid() bool {
	return c == CategoryFood || c == CategoryDrink
}

// Product represents a catalog entry
// Schema matches the backend's /admin/produtos and /cardapio payloads
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nome"`
	Description string          `json:"descricao,omitempty"`
	Price       decimal.Decimal `json:"preco"`
	Category    Category        `json:"categoria"`
	Available   bool            `json:"disponivel"`
}

// ProductInput is the create/update payload for a product
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    Category
	Available   bool
}

package service

import (
	"context"

	"github.com/bar-comandas/web/internal/models"
)

// Menu is the catalog split into the two sections shown to staff
type Menu struct {
	Food   []models.Product
	Drinks []models.Product
}

// Empty reports whether neither section has products.
func (m Menu) Empty() bool {
	return len(m.Food) == 0 && len(m.Drinks) == 0
}

// MenuService handles business logic for the public catalog
type MenuService struct {
	api API
}

// NewMenuService creates a new menu service
func NewMenuService(api API) *MenuService {
	return &MenuService{api: api}
}

// Products returns the catalog as the API lists it
func (s *MenuService) Products(ctx context.Context) ([]models.Product, error) {
	return s.api.Menu(ctx)
}

// Menu returns the catalog grouped by category, preserving API order.
func (s *MenuService) Menu(ctx context.Context) (Menu, error) {
	products, err := s.api.Menu(ctx)
	if err != nil {
		return Menu{}, err
	}
	return GroupByCategory(products), nil
}

// GroupByCategory splits products into food and drinks; unknown categories are dropped.
func GroupByCategory(products []models.Product) Menu {
	var m Menu
	for _, p := range products {
		switch p.Category {
		case models.CategoryFood:
			m.Food = append(m.Food, p)
		case models.CategoryDrink:
			m.Drinks = append(m.Drinks, p)
		}
	}
	return m
}

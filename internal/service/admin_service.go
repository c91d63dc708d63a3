package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bar-comandas/web/internal/models"
)

const dateLayout = "2006-01-02"

// Dashboard is everything the admin screen shows on load
type Dashboard struct {
	Products []models.Product
	Tables   []models.Table
	Settings models.Settings
}

// Reports holds the sales reports for a date range
type Reports struct {
	From       string
	To         string
	Revenue    *models.RevenueReport
	TopSelling []models.ProductRanking
	TopRevenue []models.ProductRanking
}

// ProductForm carries the raw product dialog fields
type ProductForm struct {
	Name        string
	Description string
	Price       string
	Category    string
	Available   bool
}

// SettingsForm carries the raw configuration fields
type SettingsForm struct {
	CoverCharge     string
	FoodTipPercent  string
	DrinkTipPercent string
}

// AdminService backs the admin area: catalog, tables, configuration and reports
type AdminService struct {
	api API
	now func() time.Time
}

func NewAdminService(api API) *AdminService {
	return &AdminService{api: api, now: time.Now}
}

// fetchResult holds the outcome of one concurrent fetch
type fetchResult struct {
	index int
	err   error
}

// fetchAll runs every fetch concurrently and returns the first error in
// declaration order, once all of them have finished.
func fetchAll(ctx context.Context, fetches ...func(context.Context) error) error {
	resultChan := make(chan fetchResult, len(fetches))

	var wg sync.WaitGroup
	for i, fetch := range fetches {
		wg.Add(1)
		go func(index int, fn func(context.Context) error) {
			defer wg.Done()
			resultChan <- fetchResult{index: index, err: fn(ctx)}
		}(i, fetch)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	errs := make([]error, len(fetches))
	for result := range resultChan {
		errs[result.index] = result.err
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Dashboard loads products, settings and tables in parallel.
func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		d        Dashboard
		settings *models.Settings
	)

	err := fetchAll(ctx,
		func(ctx context.Context) (err error) {
			d.Products, err = s.api.ListProducts(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			settings, err = s.api.Settings(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			d.Tables, err = s.api.ListTables(ctx)
			return err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin dashboard: %w", err)
	}

	if settings != nil {
		d.Settings = *settings
	}
	return &d, nil
}

// DefaultRange returns today as both ends of the report range.
func (s *AdminService) DefaultRange() (string, string) {
	today := s.now().Format(dateLayout)
	return today, today
}

// Reports loads revenue for [from, to] and both product rankings.
// Empty bounds default to today.
func (s *AdminService) Reports(ctx context.Context, from, to string) (*Reports, error) {
	defFrom, defTo := s.DefaultRange()
	r := &Reports{From: strings.TrimSpace(from), To: strings.TrimSpace(to)}
	if r.From == "" {
		r.From = defFrom
	}
	if r.To == "" {
		r.To = defTo
	}

	start, err := time.Parse(dateLayout, r.From)
	if err != nil {
		return r, invalid("inicio", "Data inicial inválida")
	}
	end, err := time.Parse(dateLayout, r.To)
	if err != nil {
		return r, invalid("fim", "Data final inválida")
	}
	if end.Before(start) {
		return r, invalid("fim", "A data final deve ser igual ou posterior à inicial")
	}

	err = fetchAll(ctx,
		func(ctx context.Context) (err error) {
			r.Revenue, err = s.api.Revenue(ctx, r.From, r.To)
			return err
		},
		func(ctx context.Context) (err error) {
			r.TopSelling, err = s.api.TopSelling(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			r.TopRevenue, err = s.api.TopRevenue(ctx)
			return err
		},
	)
	if err != nil {
		return r, fmt.Errorf("failed to load reports: %w", err)
	}
	return r, nil
}

// SaveProduct creates a product when id is zero and updates it otherwise.
func (s *AdminService) SaveProduct(ctx context.Context, id int64, form ProductForm) error {
	in, err := form.parse()
	if err != nil {
		return err
	}
	if id == 0 {
		return s.api.CreateProduct(ctx, in)
	}
	return s.api.UpdateProduct(ctx, id, in)
}

func (f ProductForm) parse() (models.ProductInput, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return models.ProductInput{}, invalid("nome", "Nome é obrigatório")
	}
	price, err := parseMoney("preco", "Preço", f.Price)
	if err != nil {
		return models.ProductInput{}, err
	}
	category := models.Category(strings.TrimSpace(f.Category))
	if category == "" {
		category = models.CategoryFood
	}
	if !category.Valid() {
		return models.ProductInput{}, invalid("categoria", "Categoria inválida")
	}
	return models.ProductInput{
		Name:        name,
		Description: strings.TrimSpace(f.Description),
		Price:       price,
		Category:    category,
		Available:   f.Available,
	}, nil
}

// ParseProductID validates a product identifier taken from a URL.
func ParseProductID(raw string) (int64, error) {
	return parseID("produto", raw)
}

// CreateTable registers a new table number.
func (s *AdminService) CreateTable(ctx context.Context, numberRaw string) error {
	number, err := parsePositiveInt("numero", "Número da mesa", numberRaw)
	if err != nil {
		return err
	}
	return s.api.CreateTable(ctx, number)
}

// DeleteTable removes a table. Occupied tables are rejected by the API with a conflict.
func (s *AdminService) DeleteTable(ctx context.Context, idRaw string) error {
	id, err := parseID("mesa", idRaw)
	if err != nil {
		return err
	}
	return s.api.DeleteTable(ctx, id)
}

// SaveSettings replaces the global pricing configuration.
func (s *AdminService) SaveSettings(ctx context.Context, form SettingsForm) error {
	cover, err := parseMoney("valorCouvert", "Valor do couvert", form.CoverCharge)
	if err != nil {
		return err
	}
	foodTip, err := parseMoney("percentualGorjetaComida", "Gorjeta de comida", form.FoodTipPercent)
	if err != nil {
		return err
	}
	drinkTip, err := parseMoney("percentualGorjetaBebida", "Gorjeta de bebida", form.DrinkTipPercent)
	if err != nil {
		return err
	}
	return s.api.UpdateSettings(ctx, models.Settings{
		CoverCharge:     cover,
		FoodTipPercent:  foodTip,
		DrinkTipPercent: drinkTip,
	})
}

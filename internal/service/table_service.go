package service

import (
	"context"
	"sort"

	"github.com/bar-comandas/web/internal/models"
)

// TableService backs the tables dashboard
type TableService struct {
	api API
}

func NewTableService(api API) *TableService {
	return &TableService{api: api}
}

// ListTables returns all tables ordered by number.
func (s *TableService) ListTables(ctx context.Context) ([]models.Table, error) {
	tables, err := s.api.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tables, func(i, j int) bool { return tables[i].Number < tables[j].Number })
	return tables, nil
}

// OpenTable opens a tab on a free table for the given number of people.
func (s *TableService) OpenTable(ctx context.Context, tableNumberRaw, peopleRaw string) error {
	tableNumber, err := parsePositiveInt("mesa", "Número da mesa", tableNumberRaw)
	if err != nil {
		return err
	}
	people, err := parsePositiveInt("qtdPessoas", "Quantidade de pessoas", peopleRaw)
	if err != nil {
		return err
	}
	return s.api.OpenTab(ctx, tableNumber, people)
}

package shoppinglist

import (
	"Foodgram-Backend/domain"
	"bytes"
	"context"
	"fmt"
	"sort"
)

type (
	ShoppingListService interface {
		BuildShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
		DownloadShoppingList(ctx context.Context, userID string) ([]byte, error)
	}

	shoppingListService struct {
		shoppingListRepository ShoppingListRepository
	}
)

func NewShoppingListService(shoppingListRepository ShoppingListRepository) ShoppingListService {
	return &shoppingListService{shoppingListRepository: shoppingListRepository}
}

func (s *shoppingListService) BuildShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	lines, err := s.shoppingListRepository.GetCartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Aggregate(lines), nil
}

func (s *shoppingListService) DownloadShoppingList(ctx context.Context, userID string) ([]byte, error) {
	items, err := s.BuildShoppingList(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Render(items), nil
}

// Aggregate sums amounts per (name, measurement unit) and sorts by name,
// then unit. The result does not depend on the order of lines.
func Aggregate(lines []domain.ShoppingLine) []domain.ShoppingListItem {
	type key struct{ name, unit string }

	totals := make(map[key]int, len(lines))
	for _, line := range lines {
		totals[key{line.Name, line.MeasurementUnit}] += line.Amount
	}

	items := make([]domain.ShoppingListItem, 0, len(totals))
	for k, total := range totals {
		items = append(items, domain.ShoppingListItem{
			Name:            k.name,
			MeasurementUnit: k.unit,
			Total:           total,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})
	return items
}

// Render writes the plain-text list: a header line, then one
// "name (unit) - total" line per item.
func Render(items []domain.ShoppingListItem) []byte {
	var buf bytes.Buffer
	buf.WriteString(domain.ShoppingListHeader)
	buf.WriteByte('\n')
	for _, item := range items {
		fmt.Fprintf(&buf, "%s (%s) - %d\n", item.Name, item.MeasurementUnit, item.Total)
	}
	return buf.Bytes()
}

package handlers

import (
	"context"
	"errors"

	"bunshack-api/models"
	"bunshack-api/store"

	"github.com/shopspring/decimal"
)

// TotalPrice sums quantity × price over lines. A line naming an unknown menu
// fails the whole computation with a *store.MenuNotFoundError.
func TotalPrice(ctx context.Context, menus store.MenuRepository, lines []models.OrderMenu) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range lines {
		menu, err := menus.GetMenuByID(ctx, line.MenuID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return decimal.Zero, &store.MenuNotFoundError{MenuID: line.MenuID}
			}
			return decimal.Zero, err
		}
		total = total.Add(menu.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total, nil
}

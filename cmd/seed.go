package cmd

import (
	"context"
	"fmt"

	"bunshack-api/config"
	"bunshack-api/models"
	"bunshack-api/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var starterMenu = []struct {
	name  string
	price string
}{
	{"Classic Bun", "4.50"},
	{"Cheese Bun", "5.25"},
	{"Veggie Bun", "4.75"},
	{"Fries", "2.50"},
	{"Lemonade", "1.99"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a starter menu when the menu is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := config.OpenDB(cfg)
		if err != nil {
			return err
		}
		if err := config.Migrate(db); err != nil {
			return err
		}

		n, err := seedMenus(cmd.Context(), store.NewMenuStore(db))
		if err != nil {
			return err
		}
		log.WithField("added", n).Info("seed finished")
		return nil
	},
}

// seedMenus adds the starter menu to an empty menu table and reports how
// many items it inserted.
func seedMenus(ctx context.Context, menus store.MenuRepository) (int, error) {
	existing, err := menus.GetAllMenus(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, item := range starterMenu {
		_, err := menus.AddMenu(ctx, &models.Menu{FoodName: item.name, Price: decimal.RequireFromString(item.price)})
		if err != nil {
			return 0, fmt.Errorf("seed %s: %w", item.name, err)
		}
	}
	return len(starterMenu), nil
}

package store

import (
	"context"
	"testing"
	"time"

	"bunshack-api/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test " + email, Email: email, UserName: email, PasswordHash: "x"}
	require.NoError(t, NewUserStore(db).CreateUser(context.Background(), user))
	return user
}

func seedMenu(t *testing.T, db *gorm.DB, name, price string) *models.Menu {
	t.Helper()
	menu, err := NewMenuStore(db).AddMenu(context.Background(), &models.Menu{
		FoodName: name,
		Price:    decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return menu
}

func newOrder(owner *models.User, at time.Time, lines ...models.OrderMenu) *models.Order {
	return &models.Order{
		CustomerName: owner.Name,
		OrderDate:    at,
		UserID:       owner.ID,
		TotalPrice:   decimal.Zero,
		OrderMenus:   lines,
	}
}

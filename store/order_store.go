package store

import (
	"context"
	"errors"
	"fmt"

	"bunshack-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository is the persistence contract for orders and their lines.
type OrderRepository interface {
	PlaceOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	GetOrdersByUserID(ctx context.Context, userID string) ([]models.Order, error)
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	ModifyOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CancelOrder(ctx context.Context, id string) (*models.Order, error)
	GetOrderMenusByOrderID(ctx context.Context, orderID string) ([]models.OrderMenu, error)
}

type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// PlaceOrder persists the order and all of its lines in one transaction.
func (s *OrderStore) PlaceOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.ID != "" {
			var n int64
			if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Count(&n).Error; err != nil {
				return fmt.Errorf("check order %s: %w", order.ID, err)
			}
			if n > 0 {
				return ErrDuplicate
			}
		}
		if err := checkOwner(tx, order.UserID); err != nil {
			return err
		}
		if err := checkMenus(tx, order.OrderMenus); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return createLines(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetAllOrders returns every order, most recent first.
func (s *OrderStore) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := withLines(s.db.WithContext(ctx)).
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrdersByUserID returns the orders owned by userID, most recent first.
func (s *OrderStore) GetOrdersByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := withLines(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

func (s *OrderStore) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return findOrder(withLines(s.db.WithContext(ctx)), id)
}

// ModifyOrder overwrites the stored order with order's fields and swaps its
// line set for order.OrderMenus. Lines are replaced, never merged.
func (s *OrderStore) ModifyOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	var updated *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findOrder(tx, order.ID)
		if err != nil {
			return err
		}
		if err := checkOwner(tx, order.UserID); err != nil {
			return err
		}
		if err := checkMenus(tx, order.OrderMenus); err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", existing.ID).Delete(&models.OrderMenu{}).Error; err != nil {
			return fmt.Errorf("clear lines of order %s: %w", existing.ID, err)
		}
		err = tx.Model(existing).Updates(map[string]interface{}{
			"customer_name": order.CustomerName,
			"order_date":    order.OrderDate,
			"user_id":       order.UserID,
			"total_price":   order.TotalPrice,
		}).Error
		if err != nil {
			return fmt.Errorf("update order %s: %w", existing.ID, err)
		}
		if err := createLines(tx, order); err != nil {
			return err
		}

		updated, err = findOrder(withLines(tx), order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CancelOrder hard-deletes the order and its lines and returns what was removed.
func (s *OrderStore) CancelOrder(ctx context.Context, id string) (*models.Order, error) {
	var cancelled *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := findOrder(withLines(tx), id)
		if err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderMenu{}).Error; err != nil {
			return fmt.Errorf("delete lines of order %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return fmt.Errorf("delete order %s: %w", id, err)
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// GetOrderMenusByOrderID fails with ErrNoOrderLines rather than returning an
// empty slice when the order has no lines.
func (s *OrderStore) GetOrderMenusByOrderID(ctx context.Context, orderID string) ([]models.OrderMenu, error) {
	var lines []models.OrderMenu
	err := s.db.WithContext(ctx).
		Preload("Menu").
		Where("order_id = ?", orderID).
		Order("menu_id asc").
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("list lines of order %s: %w", orderID, err)
	}
	if len(lines) == 0 {
		return nil, ErrNoOrderLines
	}
	return lines, nil
}

func withLines(db *gorm.DB) *gorm.DB {
	return db.Preload("OrderMenus", func(db *gorm.DB) *gorm.DB {
		return db.Order("menu_id asc")
	}).Preload("OrderMenus.Menu")
}

func findOrder(db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	if err := db.Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return &order, nil
}

func checkOwner(tx *gorm.DB, userID string) error {
	var n int64
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return fmt.Errorf("check user %s: %w", userID, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func checkMenus(tx *gorm.DB, lines []models.OrderMenu) error {
	for _, line := range lines {
		var n int64
		if err := tx.Model(&models.Menu{}).Where("id = ?", line.MenuID).Count(&n).Error; err != nil {
			return fmt.Errorf("check menu %s: %w", line.MenuID, err)
		}
		if n == 0 {
			return &MenuNotFoundError{MenuID: line.MenuID}
		}
	}
	return nil
}

func createLines(tx *gorm.DB, order *models.Order) error {
	if len(order.OrderMenus) == 0 {
		return nil
	}
	lines := make([]models.OrderMenu, len(order.OrderMenus))
	for i, line := range order.OrderMenus {
		lines[i] = models.OrderMenu{OrderID: order.ID, MenuID: line.MenuID, Quantity: line.Quantity}
	}
	if err := tx.Omit(clause.Associations).Create(&lines).Error; err != nil {
		return fmt.Errorf("create lines of order %s: %w", order.ID, err)
	}
	order.OrderMenus = lines
	return nil
}

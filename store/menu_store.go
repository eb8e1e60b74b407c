package store

import (
	"context"
	"errors"
	"fmt"

	"bunshack-api/models"

	"gorm.io/gorm"
)

// MenuRepository is the persistence contract for menu items. It performs no
// authorization; callers gate mutations and pre-validate prices.
type MenuRepository interface {
	AddMenu(ctx context.Context, menu *models.Menu) (*models.Menu, error)
	GetAllMenus(ctx context.Context) ([]models.Menu, error)
	GetMenuByID(ctx context.Context, id string) (*models.Menu, error)
	UpdateMenuByID(ctx context.Context, id string, menu models.Menu) (*models.Menu, error)
	DeleteMenuByID(ctx context.Context, id string) (*models.Menu, error)
}

type MenuStore struct {
	db *gorm.DB
}

func NewMenuStore(db *gorm.DB) *MenuStore {
	return &MenuStore{db: db}
}

func (s *MenuStore) AddMenu(ctx context.Context, menu *models.Menu) (*models.Menu, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if menu.ID != "" {
			var n int64
			if err := tx.Model(&models.Menu{}).Where("id = ?", menu.ID).Count(&n).Error; err != nil {
				return fmt.Errorf("check menu %s: %w", menu.ID, err)
			}
			if n > 0 {
				return ErrDuplicate
			}
		}
		if err := tx.Create(menu).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicate
			}
			return fmt.Errorf("add menu: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *MenuStore) GetAllMenus(ctx context.Context) ([]models.Menu, error) {
	menus := []models.Menu{}
	if err := s.db.WithContext(ctx).Order("id asc").Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	return menus, nil
}

func (s *MenuStore) GetMenuByID(ctx context.Context, id string) (*models.Menu, error) {
	return findMenu(s.db.WithContext(ctx), id)
}

func (s *MenuStore) UpdateMenuByID(ctx context.Context, id string, menu models.Menu) (*models.Menu, error) {
	db := s.db.WithContext(ctx)
	existing, err := findMenu(db, id)
	if err != nil {
		return nil, err
	}
	existing.FoodName = menu.FoodName
	existing.Price = menu.Price
	if err := db.Save(existing).Error; err != nil {
		return nil, fmt.Errorf("update menu %s: %w", id, err)
	}
	return existing, nil
}

func (s *MenuStore) DeleteMenuByID(ctx context.Context, id string) (*models.Menu, error) {
	var deleted *models.Menu
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		menu, err := findMenu(tx, id)
		if err != nil {
			return err
		}
		var refs int64
		if err := tx.Model(&models.OrderMenu{}).Where("menu_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("count order lines for menu %s: %w", id, err)
		}
		if refs > 0 {
			return ErrMenuInUse
		}
		if err := tx.Delete(menu).Error; err != nil {
			return fmt.Errorf("delete menu %s: %w", id, err)
		}
		deleted = menu
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func findMenu(db *gorm.DB, id string) (*models.Menu, error) {
	var menu models.Menu
	if err := db.Where("id = ?", id).First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get menu %s: %w", id, err)
	}
	return &menu, nil
}

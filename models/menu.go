package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// prices go over the wire as JSON numbers, the way the SPA reads them
	decimal.MarshalJSONWithoutQuotes = true
}

type Menu struct {
	ID       string          `json:"id" gorm:"primaryKey;size:36"`
	FoodName string          `json:"foodName" gorm:"size:100;not null"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(18,2);not null"`
}

func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID           string          `json:"id" gorm:"primaryKey;size:36"`
	CustomerName string          `json:"customerName" gorm:"size:50"`
	OrderDate    time.Time       `json:"orderDate" gorm:"not null;index"`
	UserID       string          `json:"userId" gorm:"size:36;not null;index"`
	User         *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TotalPrice   decimal.Decimal `json:"totalPrice" gorm:"type:decimal(18,2);not null"`
	OrderMenus   []OrderMenu     `json:"orderMenus" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderMenu is one (menu, quantity) line of an order, keyed by both ids
type OrderMenu struct {
	OrderID  string `json:"orderId" gorm:"primaryKey;size:36"`
	MenuID   string `json:"menuId" gorm:"primaryKey;size:36;index"`
	Menu     *Menu  `json:"menu,omitempty" gorm:"foreignKey:MenuID;constraint:OnDelete:RESTRICT"`
	Quantity int    `json:"quantity" gorm:"not null"`
}

// All lists every persisted model in migration order
func All() []interface{} {
	return []interface{}{&User{}, &Menu{}, &Order{}, &OrderMenu{}}
}

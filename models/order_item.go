package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem menyimpan snapshot harga menu saat item dipesan
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	MenuItemID uint            `gorm:"not null;index" json:"menu_item_id"`
	MenuItem   *MenuItem       `gorm:"foreignKey:MenuItemID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item,omitempty"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

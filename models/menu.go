package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Category    string          `gorm:"type:varchar(50);not null;index" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CookingTime int             `json:"cooking_time"` // menit
	IsAvailable bool            `gorm:"not null" json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

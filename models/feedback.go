package models

import (
	"time"

	"gorm.io/datatypes"
)

type Feedback struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CustomerName string         `gorm:"type:varchar(100);not null" json:"customer_name"`
	OrderID      *uint          `gorm:"index" json:"order_id"`
	Order        *Order         `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"order,omitempty"`
	Rating       int            `gorm:"not null" json:"rating"`
	Comments     string         `gorm:"type:text" json:"comments"`
	FeedbackDate datatypes.Date `gorm:"not null" json:"feedback_date"`
	IsPublished  bool           `gorm:"not null" json:"is_published"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}

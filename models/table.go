package models

import "time"

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNumber int       `gorm:"not null;uniqueIndex" json:"table_number"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	Location    string    `gorm:"type:varchar(50)" json:"location"`
	IsAvailable bool      `gorm:"not null" json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	PositionWaiter        = "waiter"
	PositionCook          = "cook"
	PositionBartender     = "bartender"
	PositionManager       = "manager"
	PositionAdministrator = "administrator"
)

var EmployeePositions = []string{
	PositionWaiter,
	PositionCook,
	PositionBartender,
	PositionManager,
	PositionAdministrator,
}

type Employee struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	FirstName string          `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName  string          `gorm:"type:varchar(50);not null" json:"last_name"`
	Position  string          `gorm:"type:varchar(20);not null" json:"position"`
	Phone     string          `gorm:"type:varchar(20)" json:"phone"`
	Email     string          `gorm:"type:varchar(100);uniqueIndex" json:"email"`
	HireDate  datatypes.Date  `gorm:"not null" json:"hire_date"`
	Salary    decimal.Decimal `gorm:"type:decimal(10,2)" json:"salary"`
	IsActive  bool            `gorm:"not null" json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

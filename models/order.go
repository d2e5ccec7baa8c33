package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	OrderStatusNew       = "new"
	OrderStatusCooking   = "cooking"
	OrderStatusReady     = "ready"
	OrderStatusServed    = "served"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

var OrderStatuses = []string{
	OrderStatusNew,
	OrderStatusCooking,
	OrderStatusReady,
	OrderStatusServed,
	OrderStatusPaid,
	OrderStatusCancelled,
}

// ActiveOrderStatuses -> order yang masih berjalan di dapur / meja
var ActiveOrderStatuses = []string{
	OrderStatusNew,
	OrderStatusCooking,
	OrderStatusReady,
	OrderStatusServed,
}

const (
	PaymentCash        = "cash"
	PaymentCard        = "card"
	PaymentContactless = "contactless"
)

var PaymentMethods = []string{PaymentCash, PaymentCard, PaymentContactless}

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TableID       uint            `gorm:"not null;index" json:"table_id"`
	Table         *Table          `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table,omitempty"`
	EmployeeID    uint            `gorm:"not null;index" json:"employee_id"`
	Employee      *Employee       `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"employee,omitempty"`
	OrderDate     datatypes.Date  `gorm:"not null;index" json:"order_date"`
	OrderTime     datatypes.Time  `gorm:"not null" json:"order_time"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"` // selalu SUM(subtotal), tidak pernah dari client
	Status        string          `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMethod *string         `gorm:"type:varchar(20)" json:"payment_method"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func IsValidOrderStatus(status string) bool {
	return contains(OrderStatuses, status)
}

func IsValidPaymentMethod(method string) bool {
	return contains(PaymentMethods, method)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

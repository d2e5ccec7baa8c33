package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ReservationConfirmed = "confirmed"
	ReservationArrived   = "arrived"
	ReservationNoShow    = "no_show"
	ReservationCancelled = "cancelled"
)

var ReservationStatuses = []string{
	ReservationConfirmed,
	ReservationArrived,
	ReservationNoShow,
	ReservationCancelled,
}

// ActiveReservationStatuses -> hanya status ini yang memblokir meja
var ActiveReservationStatuses = []string{ReservationConfirmed, ReservationArrived}

type Reservation struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CustomerName    string         `gorm:"type:varchar(100);not null" json:"customer_name"`
	CustomerPhone   string         `gorm:"type:varchar(20);not null" json:"customer_phone"`
	ReservationDate datatypes.Date `gorm:"not null;index:idx_reservation_slot" json:"reservation_date"`
	ReservationTime datatypes.Time `gorm:"not null" json:"reservation_time"`
	TableID         uint           `gorm:"not null;index:idx_reservation_slot" json:"table_id"`
	Table           *Table         `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table,omitempty"`
	NumberOfGuests  int            `gorm:"not null" json:"number_of_guests"`
	Status          string         `gorm:"type:varchar(20);not null" json:"status"`
	Notes           string         `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func IsValidReservationStatus(status string) bool {
	return contains(ReservationStatuses, status)
}

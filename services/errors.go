package services

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrLineItemNotFound    = errors.New("order item not found")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrTableNotFound       = errors.New("table not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrTableUnavailable    = errors.New("table is not available at the requested time")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrEmptyBatch          = errors.New("no items to add")
)

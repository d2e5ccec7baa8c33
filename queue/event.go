// Package queue mendefinisikan payload event dan publisher ke RabbitMQ.
package queue

const (
	RoutingReservationConfirmed = "reservation.confirmed"
	RoutingOrderTotalChanged    = "order.total_changed"
)

// ReservationConfirmedEvent dikirim setiap kali reservasi berhasil dibuat.
// Cukup lengkap supaya consumer tidak perlu membaca database.
type ReservationConfirmedEvent struct {
	ReservationID  uint   `json:"reservation_id"`
	TableID        uint   `json:"table_id"`
	CustomerName   string `json:"customer_name"`
	CustomerPhone  string `json:"customer_phone"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	NumberOfGuests int    `json:"number_of_guests"`
	ConfirmedAt    string `json:"confirmed_at"`
}

// OrderTotalChangedEvent dikirim setelah total order dihitung ulang.
type OrderTotalChangedEvent struct {
	OrderID     uint   `json:"order_id"`
	TotalAmount string `json:"total_amount"`
	ItemCount   int    `json:"item_count"`
	ChangedAt   string `json:"changed_at"`
}

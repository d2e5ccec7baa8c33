package kds

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
)

// Event types
const (
	EventOrderCreate       = "order_create"
	EventOrderUpdate       = "order_update"
	EventOrderDelete       = "order_delete"
	EventOrderTotal        = "order_total"
	EventReservationCreate = "reservation_create"
	EventReservationUpdate = "reservation_update"
	EventReservationDelete = "reservation_delete"
	EventTableCreate       = "table_create"
	EventTableUpdate       = "table_update"
	EventTableDelete       = "table_delete"
	EventMenuUpdate        = "menu_update"
	EventFeedbackNew       = "feedback_new"
	EventStaffNotif        = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// KDSHub menampung semua layar staf yang terhubung
type KDSHub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var kdsHub = KDSHub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	kdsHub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	if _, ok := kdsHub.clients[conn]; ok {
		delete(kdsHub.clients, conn)
		conn.Close()
	}
}

// ClientCount -> jumlah layar yang sedang terhubung
func ClientCount() int {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	return len(kdsHub.clients)
}

// BroadcastOrderUpdate -> order berubah (status, meja, pembayaran)
func BroadcastOrderUpdate(event string, order models.Order) {
	broadcast(Message{Event: event, Data: order})
}

// BroadcastOrderTotal -> total order dihitung ulang setelah item berubah
func BroadcastOrderTotal(order models.Order) {
	broadcast(Message{
		Event: EventOrderTotal,
		Data: map[string]interface{}{
			"order_id":     order.ID,
			"total_amount": order.TotalAmount,
			"items":        len(order.Items),
		},
	})
}

// BroadcastReservation -> reservasi baru / berubah / dihapus
func BroadcastReservation(event string, reservation models.Reservation) {
	broadcast(Message{Event: event, Data: reservation})
}

// BroadcastTable -> perubahan data meja
func BroadcastTable(event string, table models.Table) {
	broadcast(Message{Event: event, Data: table})
}

// BroadcastMenuUpdate -> menu berubah, layar perlu memuat ulang daftar
func BroadcastMenuUpdate(item models.MenuItem) {
	broadcast(Message{Event: EventMenuUpdate, Data: item})
}

// BroadcastFeedback -> feedback baru masuk
func BroadcastFeedback(feedback models.Feedback) {
	broadcast(Message{Event: EventFeedbackNew, Data: feedback})
}

// BroadcastStaffNotification -> notifikasi teks untuk staf
func BroadcastStaffNotification(message string) {
	broadcast(Message{Event: EventStaffNotif, Data: message})
}

// broadcast -> fungsi internal untuk mengirim pesan. Client yang gagal ditulis dilepas.
func broadcast(msg Message) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()

	if len(kdsHub.clients) == 0 {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	utils.InfoLogger.Debugf("Broadcasting %s to %d clients", msg.Event, len(kdsHub.clients))

	for conn, role := range kdsHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to %s client: %v", msg.Event, role, err)
			delete(kdsHub.clients, conn)
			conn.Close()
		}
	}
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-manager/kds"
)

// CheckOrigin dibuka, koneksi sudah diautentikasi lewat ?token=
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// KDSHandler -> endpoint WebSocket untuk layar staf. Role sudah dicek RequireRole.
func KDSHandler(c *gin.Context) {
	role := c.GetString("role")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	kds.RegisterClient(ws, role)

	// Client tidak mengirim apa pun, loop ini hanya mendeteksi disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	kds.UnregisterClient(ws)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-manager/utils"
)

const APIVersion = "1.0.0"

// Index -> daftar endpoint
func Index(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Restaurant Management API", gin.H{
		"version": APIVersion,
		"endpoints": gin.H{
			"GET /tables":                  "List tables",
			"GET /tables/available":        "Tables flagged available",
			"GET /tables/:id/availability": "Check a table slot (?date=YYYY-MM-DD&time=HH:MM)",
			"GET /menu":                    "List menu items",
			"GET /menu/available":          "Orderable menu items",
			"GET /menu/category/:category": "Menu items by category",
			"GET /employees":               "List employees",
			"GET /orders":                  "List orders",
			"GET /orders/active":           "Orders still in progress",
			"GET /orders/date/:date":       "Orders on a date",
			"POST /orders/:id/items":       "Add items to an order",
			"PUT /orders/:id/status":       "Change order status",
			"GET /reservations":            "List reservations",
			"GET /reservations/upcoming":   "Upcoming confirmed reservations",
			"GET /reservations/date/:date": "Reservations on a date",
			"POST /reservations":           "Book a table",
			"GET /feedback":                "List feedback",
			"GET /feedback/published":      "Published feedback",
			"GET /feedback/stats":          "Rating statistics",
			"POST /feedback":               "Leave feedback",
			"PUT /feedback/:id/toggle":     "Publish or hide feedback",
			"POST /auth/login":             "Obtain an admin token",
			"POST /auth/logout":            "Revoke the current token",
			"GET /ws?token=":               "Staff live updates (websocket)",
		},
	})
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

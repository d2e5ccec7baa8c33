package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-manager/queue"
	"github.com/yeremiapane/restaurant-manager/services"
	"github.com/yeremiapane/restaurant-manager/utils"
	"gorm.io/gorm"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrInvalidID   = &CustomError{"Invalid id"}
	ErrPastDate    = &CustomError{"Cannot create a reservation for a past date"}
	ErrNegative    = &CustomError{"Amounts must not be negative"}
	ErrInvalidCred = &CustomError{"Invalid username or password"}
)

// parseID -> path param harus bilangan bulat positif
func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

// respondServiceError memetakan sentinel error service ke status HTTP
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTableUnavailable):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrMenuItemNotFound),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrEmptyBatch):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrLineItemNotFound),
		errors.Is(err, services.ErrReservationNotFound),
		errors.Is(err, services.ErrTableNotFound),
		errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.ErrorLogger.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// publishEvent -> kegagalan broker hanya dicatat, tidak menggagalkan request
func publishEvent(pub queue.Publisher, routingKey string, event interface{}) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pub.Publish(ctx, routingKey, event); err != nil {
		utils.ErrorLogger.Printf("publish %s: %v", routingKey, err)
	}
}

func recordExists(db *gorm.DB, model interface{}, id uint) (bool, error) {
	var count int64
	err := db.Model(model).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

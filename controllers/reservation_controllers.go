package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-manager/kds"
	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/queue"
	"github.com/yeremiapane/restaurant-manager/services"
	"github.com/yeremiapane/restaurant-manager/utils"
	"gorm.io/gorm"
)

type ReservationController struct {
	DB           *gorm.DB
	Reservations *services.ReservationService
	Publisher    queue.Publisher
}

func NewReservationController(db *gorm.DB, pub queue.Publisher) *ReservationController {
	if pub == nil {
		pub = queue.NoopPublisher{}
	}
	return &ReservationController{DB: db, Reservations: services.NewReservationService(db), Publisher: pub}
}

type reservationRequest struct {
	CustomerName    string `json:"customer_name" binding:"required,max=100"`
	CustomerPhone   string `json:"customer_phone" binding:"required,max=20"`
	ReservationDate string `json:"reservation_date" binding:"required,isodate"`
	ReservationTime string `json:"reservation_time" binding:"required,clock"`
	TableID         uint   `json:"table_id" binding:"required,gt=0"`
	NumberOfGuests  int    `json:"number_of_guests" binding:"required,gt=0"`
	Status          string `json:"status" binding:"omitempty,oneof=confirmed arrived no_show cancelled"`
	Notes           string `json:"notes"`
}

type reservationUpdateRequest struct {
	CustomerName    *string `json:"customer_name" binding:"omitempty,max=100"`
	CustomerPhone   *string `json:"customer_phone" binding:"omitempty,max=20"`
	ReservationDate *string `json:"reservation_date" binding:"omitempty,isodate"`
	ReservationTime *string `json:"reservation_time" binding:"omitempty,clock"`
	TableID         *uint   `json:"table_id" binding:"omitempty,gt=0"`
	NumberOfGuests  *int    `json:"number_of_guests" binding:"omitempty,gt=0"`
	Status          *string `json:"status" binding:"omitempty,oneof=confirmed arrived no_show cancelled"`
	Notes           *string `json:"notes"`
}

// GetAllReservations
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	var reservations []models.Reservation
	err := rc.DB.Preload("Table").
		Order("reservation_date DESC, reservation_time DESC").
		Find(&reservations).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetUpcomingReservations -> mulai hari ini, status confirmed
func (rc *ReservationController) GetUpcomingReservations(c *gin.Context) {
	var reservations []models.Reservation
	err := rc.DB.Preload("Table").
		Where("reservation_date >= ? AND status = ?", utils.Today(), models.ReservationConfirmed).
		Order("reservation_date, reservation_time").
		Find(&reservations).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Upcoming reservations", reservations)
}

// GetReservationsByDate -> /reservations/date/:date
func (rc *ReservationController) GetReservationsByDate(c *gin.Context) {
	date, err := utils.ParseDate(c.Param("date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var reservations []models.Reservation
	err = rc.DB.Preload("Table").
		Where("reservation_date = ?", date).
		Order("reservation_time").
		Find(&reservations).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservations on "+c.Param("date"), reservations)
}

func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	reservation, err := rc.Reservations.Find(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// CreateReservation -> publik, tanggal lampau ditolak, slot bentrok -> 409
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, _ := utils.ParseDate(req.ReservationDate)
	if time.Time(date).Before(time.Time(utils.Today())) {
		utils.RespondError(c, http.StatusBadRequest, ErrPastDate)
		return
	}
	at, _ := utils.ParseClock(req.ReservationTime)

	reservation := models.Reservation{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		ReservationDate: date,
		ReservationTime: at,
		TableID:         req.TableID,
		NumberOfGuests:  req.NumberOfGuests,
		Status:          req.Status,
		Notes:           req.Notes,
	}

	if err := rc.Reservations.Create(c.Request.Context(), &reservation); err != nil {
		respondServiceError(c, err)
		return
	}

	kds.BroadcastReservation(kds.EventReservationCreate, reservation)
	publishEvent(rc.Publisher, queue.RoutingReservationConfirmed, queue.ReservationConfirmedEvent{
		ReservationID:  reservation.ID,
		TableID:        reservation.TableID,
		CustomerName:   reservation.CustomerName,
		CustomerPhone:  reservation.CustomerPhone,
		Date:           utils.FormatDate(reservation.ReservationDate),
		Time:           reservation.ReservationTime.String(),
		NumberOfGuests: reservation.NumberOfGuests,
		ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
	})
	utils.InfoLogger.Printf("New reservation #%d: table=%d %s %s",
		reservation.ID, reservation.TableID, req.ReservationDate, reservation.ReservationTime.String())
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// UpdateReservation -> cek ulang ketersediaan hanya bila meja/tanggal/jam dikirim
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req reservationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Reservations.Find(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	reservation.Table = nil

	recheck := req.TableID != nil || req.ReservationDate != nil || req.ReservationTime != nil
	if req.CustomerName != nil {
		reservation.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		reservation.CustomerPhone = *req.CustomerPhone
	}
	if req.ReservationDate != nil {
		reservation.ReservationDate, _ = utils.ParseDate(*req.ReservationDate)
	}
	if req.ReservationTime != nil {
		reservation.ReservationTime, _ = utils.ParseClock(*req.ReservationTime)
	}
	if req.TableID != nil {
		reservation.TableID = *req.TableID
	}
	if req.NumberOfGuests != nil {
		reservation.NumberOfGuests = *req.NumberOfGuests
	}
	if req.Status != nil {
		reservation.Status = *req.Status
	}
	if req.Notes != nil {
		reservation.Notes = *req.Notes
	}

	if err := rc.Reservations.Update(c.Request.Context(), &reservation, recheck); err != nil {
		respondServiceError(c, err)
		return
	}

	kds.BroadcastReservation(kds.EventReservationUpdate, reservation)
	utils.RespondJSON(c, http.StatusOK, "Reservation updated", reservation)
}

func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	reservation, err := rc.Reservations.Find(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := rc.DB.Delete(&models.Reservation{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastReservation(kds.EventReservationDelete, reservation)
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", gin.H{"id": id})
}

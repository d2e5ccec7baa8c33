package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-manager/kds"
	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/services"
	"github.com/yeremiapane/restaurant-manager/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB           *gorm.DB
	Reservations *services.ReservationService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db, Reservations: services.NewReservationService(db)}
}

type tableRequest struct {
	TableNumber int    `json:"table_number" binding:"required,gt=0"`
	Capacity    int    `json:"capacity" binding:"required,gt=0"`
	Location    string `json:"location" binding:"max=50"`
	IsAvailable *bool  `json:"is_available"`
}

type tableUpdateRequest struct {
	TableNumber *int    `json:"table_number" binding:"omitempty,gt=0"`
	Capacity    *int    `json:"capacity" binding:"omitempty,gt=0"`
	Location    *string `json:"location" binding:"omitempty,max=50"`
	IsAvailable *bool   `json:"is_available"`
}

// GetAllTables -> menampilkan seluruh meja
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("table_number").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetAvailableTables -> meja dengan flag is_available
func (tc *TableController) GetAvailableTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Where("is_available = ?", true).Order("table_number").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// CreateTable -> menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Location:    req.Location,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		table.IsAvailable = *req.IsAvailable
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastTable(kds.EventTableCreate, table)
	utils.InfoLogger.Printf("New table created: #%d (capacity=%d)", table.TableNumber, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// UpdateTable -> hanya field yang dikirim yang diubah
func (tc *TableController) UpdateTable(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req tableUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	if req.TableNumber != nil {
		table.TableNumber = *req.TableNumber
	}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}
	if req.Location != nil {
		table.Location = *req.Location
	}
	if req.IsAvailable != nil {
		table.IsAvailable = *req.IsAvailable
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastTable(kds.EventTableUpdate, table)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> menghapus meja
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var orders, reservations int64
	tc.DB.Model(&models.Order{}).Where("table_id = ?", id).Count(&orders)
	tc.DB.Model(&models.Reservation{}).Where("table_id = ?", id).Count(&reservations)
	if orders > 0 || reservations > 0 {
		utils.RespondError(c, http.StatusConflict, &CustomError{"Table has orders or reservations"})
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastTable(kds.EventTableDelete, table)
	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}

// CheckAvailability -> GET /tables/:id/availability?date=YYYY-MM-DD&time=HH:MM[&exclude_id=N]
func (tc *TableController) CheckAvailability(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var query struct {
		Date      string `form:"date" binding:"required,isodate"`
		Time      string `form:"time" binding:"required,clock"`
		ExcludeID *uint  `form:"exclude_id" binding:"omitempty,gt=0"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	exists, err := recordExists(tc.DB, &models.Table{}, id)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if !exists {
		respondServiceError(c, services.ErrTableNotFound)
		return
	}

	date, _ := utils.ParseDate(query.Date)
	at, _ := utils.ParseClock(query.Time)
	conflicts, err := tc.Reservations.Conflicts(c.Request.Context(), id, date, at, query.ExcludeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table availability", gin.H{
		"table_id":  id,
		"date":      query.Date,
		"time":      at.String(),
		"available": len(conflicts) == 0,
		"conflicts": conflicts,
	})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-manager/cache"
	"github.com/yeremiapane/restaurant-manager/kds"
	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
	"gorm.io/gorm"
)

type MenuController struct {
	DB    *gorm.DB
	Cache *cache.Store
}

func NewMenuController(db *gorm.DB, store *cache.Store) *MenuController {
	return &MenuController{DB: db, Cache: store}
}

type menuRequest struct {
	Name        string           `json:"name" binding:"required,max=100"`
	Category    string           `json:"category" binding:"required,max=50"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	CookingTime int              `json:"cooking_time" binding:"gte=0"`
	IsAvailable *bool            `json:"is_available"`
}

type menuUpdateRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	Category    *string          `json:"category" binding:"omitempty,max=50"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CookingTime *int             `json:"cooking_time" binding:"omitempty,gte=0"`
	IsAvailable *bool            `json:"is_available"`
}

// GetAllMenus
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Order("category, name").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// GetAvailableMenus -> hanya menu yang bisa dipesan
func (mc *MenuController) GetAvailableMenus(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Where("is_available = ?", true).Order("category, name").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available menu items", items)
}

// GetMenuByCategory
func (mc *MenuController) GetMenuByCategory(c *gin.Context) {
	category := c.Param("category")
	var items []models.MenuItem
	if err := mc.DB.Where("category = ?", category).Order("name").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu items in "+category, items)
}

// GetMenuByID
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// CreateMenu
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, ErrNegative)
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       *req.Price,
		CookingTime: req.CookingTime,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.afterWrite(c, item)
	utils.InfoLogger.Printf("New menu item created: %s (%s)", item.Name, item.Price.StringFixed(2))
	utils.RespondJSON(c, http.StatusCreated, "Menu item created successfully", item)
}

// UpdateMenu -> harga baru tidak mengubah order_items yang sudah ada
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req menuUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, ErrNegative)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.CookingTime != nil {
		item.CookingTime = *req.CookingTime
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.afterWrite(c, item)
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenu -> ditolak DB (RESTRICT) bila menu masih dipakai order_items
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var used int64
	if err := mc.DB.Model(&models.OrderItem{}).Where("menu_item_id = ?", id).Count(&used).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if used > 0 {
		utils.RespondError(c, http.StatusConflict, &CustomError{"Menu item is referenced by existing orders"})
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.afterWrite(c, item)
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": item.ID})
}

func (mc *MenuController) afterWrite(c *gin.Context, item models.MenuItem) {
	if err := mc.Cache.Purge(c.Request.Context()); err != nil {
		utils.ErrorLogger.Printf("purge menu cache: %v", err)
	}
	kds.BroadcastMenuUpdate(item)
}

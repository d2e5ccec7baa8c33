package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-manager/kds"
	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
	"gorm.io/gorm"
)

var ErrUnknownOrder = &CustomError{"Referenced order does not exist"}

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

// is_published tidak diterima di sini, feedback publik selalu menunggu moderasi
type feedbackRequest struct {
	CustomerName string `json:"customer_name" binding:"required,max=100"`
	OrderID      *uint  `json:"order_id" binding:"omitempty,gt=0"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comments     string `json:"comments"`
}

type feedbackUpdateRequest struct {
	CustomerName *string `json:"customer_name" binding:"omitempty,max=100"`
	OrderID      *uint   `json:"order_id" binding:"omitempty,gt=0"`
	Rating       *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comments     *string `json:"comments"`
	IsPublished  *bool   `json:"is_published"`
}

// FeedbackStats -> ringkasan rating
type FeedbackStats struct {
	TotalCount int64   `json:"total_count"`
	AvgRating  float64 `json:"avg_rating"`
	Rating5    int64   `json:"rating_5"`
	Rating4    int64   `json:"rating_4"`
	Rating3    int64   `json:"rating_3"`
	Rating2    int64   `json:"rating_2"`
	Rating1    int64   `json:"rating_1"`
}

func (fc *FeedbackController) GetAllFeedback(c *gin.Context) {
	var feedback []models.Feedback
	if err := fc.DB.Order("feedback_date DESC, id DESC").Find(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of feedback", feedback)
}

// GetPublishedFeedback -> yang tampil ke publik
func (fc *FeedbackController) GetPublishedFeedback(c *gin.Context) {
	var feedback []models.Feedback
	err := fc.DB.Where("is_published = ?", true).Order("feedback_date DESC, id DESC").Find(&feedback).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Published feedback", feedback)
}

// GetFeedbackStats -> total, rata-rata (1 desimal), distribusi rating 1-5
func (fc *FeedbackController) GetFeedbackStats(c *gin.Context) {
	stats, err := computeFeedbackStats(fc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Feedback statistics", stats)
}

func computeFeedbackStats(db *gorm.DB) (FeedbackStats, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := db.Model(&models.Feedback{}).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return FeedbackStats{}, err
	}

	var stats FeedbackStats
	var sum int64
	for _, row := range rows {
		stats.TotalCount += row.Count
		sum += int64(row.Rating) * row.Count
		switch row.Rating {
		case 5:
			stats.Rating5 = row.Count
		case 4:
			stats.Rating4 = row.Count
		case 3:
			stats.Rating3 = row.Count
		case 2:
			stats.Rating2 = row.Count
		case 1:
			stats.Rating1 = row.Count
		}
	}
	if stats.TotalCount > 0 {
		avg := float64(sum) / float64(stats.TotalCount)
		stats.AvgRating = math.Round(avg*10) / 10
	}
	return stats, nil
}

func (fc *FeedbackController) GetFeedbackByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var feedback models.Feedback
	if err := fc.DB.First(&feedback, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Feedback detail", feedback)
}

// CreateFeedback -> publik
func (fc *FeedbackController) CreateFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.OrderID != nil {
		ok, err := recordExists(fc.DB, &models.Order{}, *req.OrderID)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if !ok {
			utils.RespondError(c, http.StatusBadRequest, ErrUnknownOrder)
			return
		}
	}

	feedback := models.Feedback{
		CustomerName: req.CustomerName,
		OrderID:      req.OrderID,
		Rating:       req.Rating,
		Comments:     req.Comments,
		FeedbackDate: utils.Today(),
		IsPublished:  false,
	}
	if err := fc.DB.Create(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastFeedback(feedback)
	utils.InfoLogger.Printf("New feedback #%d rating=%d", feedback.ID, feedback.Rating)
	utils.RespondJSON(c, http.StatusCreated, "Feedback submitted", feedback)
}

func (fc *FeedbackController) UpdateFeedback(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req feedbackUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var feedback models.Feedback
	if err := fc.DB.First(&feedback, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	if req.OrderID != nil {
		ok, err := recordExists(fc.DB, &models.Order{}, *req.OrderID)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if !ok {
			utils.RespondError(c, http.StatusBadRequest, ErrUnknownOrder)
			return
		}
		feedback.OrderID = req.OrderID
	}
	if req.CustomerName != nil {
		feedback.CustomerName = *req.CustomerName
	}
	if req.Rating != nil {
		feedback.Rating = *req.Rating
	}
	if req.Comments != nil {
		feedback.Comments = *req.Comments
	}
	if req.IsPublished != nil {
		feedback.IsPublished = *req.IsPublished
	}

	if err := fc.DB.Save(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Feedback updated", feedback)
}

// TogglePublish -> PUT /feedback/:id/toggle
func (fc *FeedbackController) TogglePublish(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var feedback models.Feedback
	if err := fc.DB.First(&feedback, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	feedback.IsPublished = !feedback.IsPublished
	if err := fc.DB.Model(&feedback).Update("is_published", feedback.IsPublished).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Feedback publish status toggled", feedback)
}

func (fc *FeedbackController) DeleteFeedback(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	res := fc.DB.Delete(&models.Feedback{}, id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondServiceError(c, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Feedback deleted", gin.H{"id": id})
}

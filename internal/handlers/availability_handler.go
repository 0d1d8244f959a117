package handlers

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookify/bookify-api/internal/httperr"
	"github.com/bookify/bookify-api/internal/httpresp"
	"github.com/bookify/bookify-api/internal/models"
)

var hhmmPattern = regexp.MustCompile(`^[0-2][0-9]:[0-5][0-9]$`)

type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateWindowRequest struct {
	ServiceID       uint   `json:"service_id" binding:"required"`
	DayOfWeek       *int   `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	Date            string `json:"date"` // YYYY-MM-DD
	OpenTime        string `json:"open_time" binding:"required"`
	CloseTime       string `json:"close_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,gt=0"`
}

type UpdateWindowRequest struct {
	DayOfWeek       *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	Date            *string `json:"date"`
	OpenTime        *string `json:"open_time"`
	CloseTime       *string `json:"close_time"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,gt=0"`
}

// validateTimes enforces the window invariant: "HH:MM" labels with
// open strictly before close. Zero-padded labels compare correctly
// as strings.
func validateTimes(open, close string) bool {
	return hhmmPattern.MatchString(open) && hhmmPattern.MatchString(close) && open < close
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AvailabilityHandler) List(c *gin.Context) {
	q := h.db.Order("created_at DESC")
	if serviceID := c.Query("service_id"); serviceID != "" {
		q = q.Where("service_id = ?", serviceID)
	}

	var windows []models.AvailabilityWindow
	if err := q.Find(&windows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_availability", "Could not list availability.")
		return
	}

	httpresp.List(c, windows)
}

func (h *AvailabilityHandler) Create(c *gin.Context) {
	var req CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if (req.DayOfWeek == nil) == (req.Date == "") {
		httperr.BadRequest(c, httperr.CodeInvalidWindow, "Exactly one of day_of_week or date is required.")
		return
	}
	if !validateTimes(req.OpenTime, req.CloseTime) {
		httperr.BadRequest(c, httperr.CodeInvalidWindow, "open_time must be HH:MM and precede close_time.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, req.ServiceID).Error; err != nil {
		httperr.NotFound(c, httperr.CodeServiceNotFound, "Service not found.")
		return
	}

	w := models.AvailabilityWindow{
		ServiceID:       req.ServiceID,
		DayOfWeek:       req.DayOfWeek,
		OpenTime:        req.OpenTime,
		CloseTime:       req.CloseTime,
		DurationMinutes: req.DurationMinutes,
	}

	if req.Date != "" {
		date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidWindow, "date must be YYYY-MM-DD.")
			return
		}
		w.Date = &date
	}

	if err := h.db.Create(&w).Error; err != nil {
		httperr.Internal(c, "failed_to_create_availability", "Could not create availability window.")
		return
	}

	httpresp.Created(c, w)
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var w models.AvailabilityWindow
	if err := h.db.First(&w, id).Error; err != nil {
		httperr.NotFound(c, "availability_not_found", "Availability window not found.")
		return
	}

	var req UpdateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.DayOfWeek != nil {
		w.DayOfWeek = req.DayOfWeek
		w.Date = nil
	}
	if req.Date != nil {
		date, err := time.ParseInLocation("2006-01-02", *req.Date, time.Local)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidWindow, "date must be YYYY-MM-DD.")
			return
		}
		w.Date = &date
		w.DayOfWeek = nil
	}
	if req.OpenTime != nil {
		w.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		w.CloseTime = *req.CloseTime
	}
	if !validateTimes(w.OpenTime, w.CloseTime) {
		httperr.BadRequest(c, httperr.CodeInvalidWindow, "open_time must be HH:MM and precede close_time.")
		return
	}
	if req.DurationMinutes != nil {
		w.DurationMinutes = *req.DurationMinutes
	}

	if err := h.db.Save(&w).Error; err != nil {
		httperr.Internal(c, "failed_to_update_availability", "Could not update availability window.")
		return
	}

	httpresp.OK(c, w)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Delete(&models.AvailabilityWindow{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_availability", "Could not delete availability window.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "availability_not_found", "Availability window not found.")
		return
	}

	httpresp.OK(c, gin.H{"status": "ok"})
}

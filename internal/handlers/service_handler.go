package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/bookify/bookify-api/internal/domain/booking"
	"github.com/bookify/bookify-api/internal/httperr"
	"github.com/bookify/bookify-api/internal/httpresp"
	"github.com/bookify/bookify-api/internal/models"
)

type bookingExistenceChecker interface {
	HasBookingsForService(ctx context.Context, serviceID uint) (bool, error)
}

type ServiceHandler struct {
	db   *gorm.DB
	repo bookingExistenceChecker
}

func NewServiceHandler(db *gorm.DB, repo domain.Repository) *ServiceHandler {
	return &ServiceHandler{db: db, repo: repo}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`
	Description     string `json:"description"`
	PriceCents      int    `json:"price_cents" binding:"required,gt=0"`
	Currency        string `json:"currency" binding:"omitempty,len=3"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
	Capacity        int    `json:"capacity" binding:"omitempty,gt=0"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description     *string `json:"description"`
	PriceCents      *int    `json:"price_cents" binding:"omitempty,gt=0"`
	Currency        *string `json:"currency" binding:"omitempty,len=3"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,gt=0"`
	Capacity        *int    `json:"capacity" binding:"omitempty,gt=0"`
	Active          *bool   `json:"active"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("active = true").
		Order("created_at DESC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc := models.Service{
		Name:            req.Name,
		Description:     req.Description,
		PriceCents:      req.PriceCents,
		Currency:        req.Currency,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
		Active:          true,
	}
	if svc.Currency == "" {
		svc.Currency = "USD"
	}
	if svc.Capacity <= 0 {
		svc.Capacity = 1
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, httperr.CodeServiceNotFound, "Service not found.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.PriceCents != nil {
		svc.PriceCents = *req.PriceCents
	}
	if req.Currency != nil {
		svc.Currency = *req.Currency
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Capacity != nil {
		svc.Capacity = *req.Capacity
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}

	httpresp.OK(c, svc)
}

// Delete refuses to remove a service that bookings reference; history is
// never orphaned. Deactivate instead to stop new admissions.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, httperr.CodeServiceNotFound, "Service not found.")
		return
	}

	has, err := h.repo.HasBookingsForService(c.Request.Context(), svc.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete service.")
		return
	}
	if has {
		httperr.Conflict(c, httperr.CodeServiceHasBookings, "Service has bookings; deactivate it instead.")
		return
	}

	if err := h.db.Where("service_id = ?", svc.ID).Delete(&models.AvailabilityWindow{}).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete service.")
		return
	}
	if err := h.db.Delete(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete service.")
		return
	}

	httpresp.OK(c, gin.H{"status": "ok"})
}

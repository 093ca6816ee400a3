package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Prayc/angaza-real-estate/internal/access"
	"github.com/Prayc/angaza-real-estate/internal/apperr"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createMaintenanceRequest struct {
	Title       string                     `json:"title" binding:"required"`
	Description string                     `json:"description" binding:"required"`
	UnitID      uint                       `json:"unitId" binding:"required"`
	Priority    models.MaintenancePriority `json:"priority"`
}

type updateMaintenanceRequest struct {
	Description *string                     `json:"description"`
	Status      *models.MaintenanceStatus   `json:"status"`
	Priority    *models.MaintenancePriority `json:"priority"`
	Notes       *string                     `json:"notes"`
	AssignedTo  *uint                       `json:"assignedTo"`
}

// ListMaintenance returns the maintenance requests visible to the
// actor, filtered by status, unit or property.
func (h *Handler) ListMaintenance(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	query := access.MaintenanceFor(h.db().Model(&models.Maintenance{}), actor).
		Preload("Unit").
		Preload("Unit.Property").
		Preload("Unit.Property.Landlord").
		Preload("Requester").
		Preload("Assignee")

	if status := c.Query("status"); status != "" {
		query = query.Where("maintenance_requests.status = ?", status)
	}
	if unitID := c.Query("unitId"); unitID != "" {
		query = query.Where("maintenance_requests.unit_id = ?", unitID)
	}
	if propertyID := c.Query("propertyId"); propertyID != "" {
		query = query.
			Where("maintenance_requests.unit_id IN (?)",
				h.db().Model(&models.Unit{}).Select("id").Where("property_id = ?", propertyID))
	}

	var requests []models.Maintenance
	if err := query.Order("maintenance_requests.created_at DESC").Find(&requests).Error; err != nil {
		h.fail(c, apperr.Internal("Failed to list maintenance requests", err))
		return
	}
	c.JSON(http.StatusOK, requests)
}

// GetMaintenance returns one maintenance request.
func (h *Handler) GetMaintenance(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var request models.Maintenance
	err = h.db().
		Preload("Unit").
		Preload("Unit.Property").
		Preload("Unit.Property.Landlord").
		Preload("Requester").
		Preload("Assignee").
		First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.fail(c, apperr.NotFound("Maintenance request not found"))
		} else {
			h.fail(c, apperr.Internal("Failed to load maintenance request", err))
		}
		return
	}

	if !access.CanViewMaintenance(actor, &request) {
		h.fail(c, apperr.Forbidden("Not authorized to view this maintenance request"))
		return
	}
	c.JSON(http.StatusOK, request)
}

// CreateMaintenance files a request against a unit. A tenant must hold
// an active lease on that unit; the request defaults to the property's
// landlord as assignee.
func (h *Handler) CreateMaintenance(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req createMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid maintenance data: "+err.Error()))
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	if !priority.Valid() {
		h.fail(c, apperr.Validation("Invalid priority"))
		return
	}

	var unit models.Unit
	if err := h.db().Preload("Property").First(&unit, req.UnitID).Error; err != nil {
		h.fail(c, apperr.NotFound("Unit not found"))
		return
	}

	if actor.Role == models.RoleTenant {
		var lease models.Lease
		err := h.db().
			Where("unit_id = ? AND tenant_id = ? AND status = ?",
				req.UnitID, actor.ID, models.LeaseActive).
			First(&lease).Error
		if err != nil {
			h.fail(c, apperr.Forbidden("You are not a tenant of this unit"))
			return
		}
	}

	request := models.Maintenance{
		Title:       req.Title,
		Description: req.Description,
		UnitID:      req.UnitID,
		Priority:    priority,
		Status:      models.MaintenancePending,
		CreatedBy:   actor.ID,
	}
	if unit.Property != nil {
		landlordID := unit.Property.LandlordID
		request.AssignedTo = &landlordID
	}

	if err := h.db().Create(&request).Error; err != nil {
		h.fail(c, apperr.Internal("Failed to create maintenance request", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":            "Maintenance request created successfully",
		"maintenanceRequest": request,
	})
}

// UpdateMaintenance updates a request. Tenants may only change the
// description and notes of their own requests, never the status.
func (h *Handler) UpdateMaintenance(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var request models.Maintenance
	err = h.db().
		Preload("Unit").
		Preload("Unit.Property").
		First(&request, id).Error
	if err != nil {
		h.fail(c, apperr.NotFound("Maintenance request not found"))
		return
	}

	if !access.CanUpdateMaintenance(actor, &request) {
		h.fail(c, apperr.Forbidden("Not authorized to update this request"))
		return
	}

	var req updateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid maintenance data: "+err.Error()))
		return
	}

	if actor.Role == models.RoleTenant {
		if req.Status != nil {
			h.fail(c, apperr.Forbidden("Tenants cannot change request status"))
			return
		}
		if req.Description != nil {
			request.Description = *req.Description
		}
		if req.Notes != nil {
			request.Notes = *req.Notes
		}
	} else {
		if req.Status != nil {
			if !req.Status.Valid() {
				h.fail(c, apperr.Validation("Invalid status"))
				return
			}
			request.Status = *req.Status
			if *req.Status == models.MaintenanceCompleted && request.CompletedAt == nil {
				now := time.Now()
				request.CompletedAt = &now
			}
		}
		if req.Priority != nil {
			if !req.Priority.Valid() {
				h.fail(c, apperr.Validation("Invalid priority"))
				return
			}
			request.Priority = *req.Priority
		}
		if req.Description != nil {
			request.Description = *req.Description
		}
		if req.Notes != nil {
			request.Notes = *req.Notes
		}
		if req.AssignedTo != nil {
			request.AssignedTo = req.AssignedTo
		}
	}

	if err := h.db().Save(&request).Error; err != nil {
		h.fail(c, apperr.Internal("Failed to update maintenance request", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "Maintenance request updated successfully",
		"maintenanceRequest": request,
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/Prayc/angaza-real-estate/internal/access"
	"github.com/Prayc/angaza-real-estate/internal/apperr"
	"github.com/Prayc/angaza-real-estate/internal/database"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createUnitRequest struct {
	PropertyID  uint              `json:"propertyId" binding:"required"`
	UnitNumber  string            `json:"unitNumber" binding:"required"`
	Type        string            `json:"type" binding:"required"`
	Size        *float64          `json:"size"`
	Rent        float64           `json:"rent" binding:"required"`
	Status      models.UnitStatus `json:"status"`
	Description string            `json:"description"`
}

type updateUnitRequest struct {
	UnitNumber  *string            `json:"unitNumber"`
	Type        *string            `json:"type"`
	Size        *float64           `json:"size"`
	Rent        *float64           `json:"rent"`
	Status      *models.UnitStatus `json:"status"`
	Description *string            `json:"description"`
}

// ListUnits returns the units visible to the actor, optionally filtered
// by property and status.
func (h *Handler) ListUnits(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	query := access.UnitsFor(h.db().Model(&models.Unit{}), actor).
		Preload("Property")

	if propertyID := c.Query("propertyId"); propertyID != "" {
		// A landlord asking for a specific property must own it.
		if actor.Role == models.RoleLandlord {
			var property models.Property
			err := h.db().First(&property, "id = ?", propertyID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.fail(c, apperr.NotFound("Property not found"))
				return
			}
			if err != nil {
				h.fail(c, apperr.Internal("Failed to load property", err))
				return
			}
			if property.LandlordID != actor.ID {
				h.fail(c, apperr.Forbidden("Not authorized to access units for this property"))
				return
			}
		}
		query = query.Where("units.property_id = ?", propertyID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("units.status = ?", status)
	}

	var units []models.Unit
	if err := query.Find(&units).Error; err != nil {
		h.fail(c, apperr.Internal("Failed to list units", err))
		return
	}
	c.JSON(http.StatusOK, units)
}

// GetUnit returns one unit with its property.
func (h *Handler) GetUnit(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var unit models.Unit
	err = h.db().Preload("Property").First(&unit, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.fail(c, apperr.NotFound("Unit not found"))
		} else {
			h.fail(c, apperr.Internal("Failed to load unit", err))
		}
		return
	}

	if !access.CanViewUnit(actor, &unit) {
		h.fail(c, apperr.Forbidden("Not authorized to access this unit"))
		return
	}
	c.JSON(http.StatusOK, unit)
}

// CreateUnit adds a unit to a property the actor controls.
func (h *Handler) CreateUnit(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req createUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid unit data: "+err.Error()))
		return
	}
	if req.Status != "" && !req.Status.Valid() {
		h.fail(c, apperr.Validation("Invalid unit status"))
		return
	}
	if req.Rent < 0 {
		h.fail(c, apperr.Validation("rent cannot be negative"))
		return
	}

	var property models.Property
	if err := h.db().First(&property, req.PropertyID).Error; err != nil {
		h.fail(c, apperr.NotFound("Property not found"))
		return
	}
	if actor.Role == models.RoleLandlord && property.LandlordID != actor.ID {
		h.fail(c, apperr.Forbidden("Not authorized to add units to this property"))
		return
	}

	unit := models.Unit{
		PropertyID:  req.PropertyID,
		UnitNumber:  req.UnitNumber,
		Type:        req.Type,
		Size:        req.Size,
		Rent:        req.Rent,
		Status:      req.Status,
		Description: req.Description,
	}
	if err := h.store.CreateUnit(&unit); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Unit created successfully",
		"unit":    unit,
	})
}

// UpdateUnit applies a partial update to a unit the actor controls.
func (h *Handler) UpdateUnit(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var unit models.Unit
	if err := h.db().Preload("Property").First(&unit, id).Error; err != nil {
		h.fail(c, apperr.NotFound("Unit not found"))
		return
	}
	if !access.CanManageUnit(actor, &unit) {
		h.fail(c, apperr.Forbidden("Not authorized to update this unit"))
		return
	}

	var req updateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid unit data: "+err.Error()))
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		h.fail(c, apperr.Validation("Invalid unit status"))
		return
	}
	if req.Rent != nil && *req.Rent < 0 {
		h.fail(c, apperr.Validation("rent cannot be negative"))
		return
	}

	updated, err := h.store.UpdateUnit(id, database.UnitUpdate{
		UnitNumber:  req.UnitNumber,
		Type:        req.Type,
		Size:        req.Size,
		Rent:        req.Rent,
		Status:      req.Status,
		Description: req.Description,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Unit updated successfully",
		"unit":    updated,
	})
}

// DeleteUnit removes a unit the actor controls.
func (h *Handler) DeleteUnit(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var unit models.Unit
	if err := h.db().Preload("Property").First(&unit, id).Error; err != nil {
		h.fail(c, apperr.NotFound("Unit not found"))
		return
	}
	if !access.CanManageUnit(actor, &unit) {
		h.fail(c, apperr.Forbidden("Not authorized to delete this unit"))
		return
	}

	if err := h.store.DeleteUnit(id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unit deleted successfully"})
}

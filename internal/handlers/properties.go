package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Prayc/angaza-real-estate/internal/access"
	"github.com/Prayc/angaza-real-estate/internal/apperr"
	"github.com/Prayc/angaza-real-estate/internal/database"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createPropertyRequest struct {
	Name        string              `json:"name" binding:"required"`
	Address     string              `json:"address" binding:"required"`
	Type        models.PropertyType `json:"type" binding:"required"`
	Description string              `json:"description"`
	TotalUnits  int                 `json:"totalUnits"`
	Image       string              `json:"image"`
	LandlordID  *uint               `json:"landlordId"`
}

type updatePropertyRequest struct {
	Name        *string              `json:"name"`
	Address     *string              `json:"address"`
	Type        *models.PropertyType `json:"type"`
	Description *string              `json:"description"`
	TotalUnits  *int                 `json:"totalUnits"`
	Featured    *bool                `json:"featured"`
	Image       *string              `json:"image"`
	LandlordID  *uint                `json:"landlordId"`
}

// ListProperties returns the properties visible to the actor.
func (h *Handler) ListProperties(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var properties []models.Property
	err := access.PropertiesFor(h.db(), actor).
		Preload("Units").
		Preload("Landlord").
		Find(&properties).Error
	if err != nil {
		h.fail(c, apperr.Internal("Failed to list properties", err))
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetProperty returns one property with its units, leases and tenants.
func (h *Handler) GetProperty(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var property models.Property
	err = h.db().
		Preload("Units").
		Preload("Units.Leases").
		Preload("Units.Leases.Tenant").
		Preload("Landlord").
		First(&property, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.fail(c, apperr.NotFound("Property not found"))
		} else {
			h.fail(c, apperr.Internal("Failed to load property", err))
		}
		return
	}

	if !access.CanViewProperty(actor, &property) {
		h.fail(c, apperr.Forbidden("Unauthorized access to this property"))
		return
	}
	c.JSON(http.StatusOK, property)
}

// CreateProperty creates a property. Admins must name the landlord;
// landlords always own what they create.
func (h *Handler) CreateProperty(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid property data: "+err.Error()))
		return
	}
	if !req.Type.Valid() {
		h.fail(c, apperr.Validation("Invalid property type"))
		return
	}
	if req.TotalUnits < 0 {
		h.fail(c, apperr.Validation("totalUnits cannot be negative"))
		return
	}

	var landlordID uint
	if actor.Role == models.RoleAdmin {
		if req.LandlordID == nil {
			h.fail(c, apperr.Validation("Admin must specify a landlord for the property"))
			return
		}
		if err := h.requireLandlord(*req.LandlordID); err != nil {
			h.fail(c, err)
			return
		}
		landlordID = *req.LandlordID
	} else {
		landlordID = actor.ID
	}

	property := models.Property{
		Name:        req.Name,
		Address:     req.Address,
		Type:        req.Type,
		Description: req.Description,
		TotalUnits:  req.TotalUnits,
		Image:       req.Image,
		LandlordID:  landlordID,
	}
	if err := h.store.CreateProperty(&property); err != nil {
		h.fail(c, apperr.Internal("Failed to create property", err))
		return
	}

	h.indexProperty(&property)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Property created successfully",
		"property": property,
	})
}

// UpdateProperty applies a partial update to a property the actor owns.
func (h *Handler) UpdateProperty(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var property models.Property
	if err := h.db().First(&property, id).Error; err != nil {
		h.fail(c, apperr.NotFound("Property not found"))
		return
	}
	if !access.CanManageProperty(actor, &property) {
		h.fail(c, apperr.Forbidden("Unauthorized to update this property"))
		return
	}

	var req updatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid property data: "+err.Error()))
		return
	}
	if req.Type != nil && !req.Type.Valid() {
		h.fail(c, apperr.Validation("Invalid property type"))
		return
	}
	if req.TotalUnits != nil && *req.TotalUnits < 0 {
		h.fail(c, apperr.Validation("totalUnits cannot be negative"))
		return
	}

	upd := database.PropertyUpdate{
		Name:        req.Name,
		Address:     req.Address,
		Type:        req.Type,
		Description: req.Description,
		TotalUnits:  req.TotalUnits,
		Featured:    req.Featured,
		Image:       req.Image,
	}

	// Only admins may reassign ownership.
	if req.LandlordID != nil && actor.Role == models.RoleAdmin {
		if err := h.requireLandlord(*req.LandlordID); err != nil {
			h.fail(c, err)
			return
		}
		upd.LandlordID = req.LandlordID
	}

	updated, err := h.store.UpdateProperty(id, upd)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.indexProperty(updated)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Property updated successfully",
		"property": updated,
	})
}

// DeleteProperty removes a property and its units unless an active
// lease still exists.
func (h *Handler) DeleteProperty(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var property models.Property
	if err := h.db().First(&property, id).Error; err != nil {
		h.fail(c, apperr.NotFound("Property not found"))
		return
	}
	if !access.CanManageProperty(actor, &property) {
		h.fail(c, apperr.Forbidden("Unauthorized to delete this property"))
		return
	}

	if err := h.store.DeleteProperty(id); err != nil {
		h.fail(c, err)
		return
	}

	if h.search != nil {
		if err := h.search.RemoveProperty(id); err != nil {
			log.Printf("Failed to deindex property %d: %v", id, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
}

// ListLandlords returns all landlord accounts, for admins assigning
// properties.
func (h *Handler) ListLandlords(c *gin.Context) {
	var landlords []models.User
	err := h.db().
		Select("id", "name", "email").
		Where("role = ?", models.RoleLandlord).
		Find(&landlords).Error
	if err != nil {
		h.fail(c, apperr.Internal("Failed to list landlords", err))
		return
	}
	c.JSON(http.StatusOK, landlords)
}

// SearchProperties queries the Meilisearch index.
func (h *Handler) SearchProperties(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Search is not enabled"})
		return
	}

	query := c.Query("q")
	limit := int64(20)
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	properties, err := h.search.Search(query, limit)
	if err != nil {
		h.fail(c, apperr.Internal("Search failed", err))
		return
	}
	c.JSON(http.StatusOK, properties)
}

// requireLandlord verifies that id names an existing landlord account.
func (h *Handler) requireLandlord(id uint) error {
	var landlord models.User
	err := h.db().Where("id = ? AND role = ?", id, models.RoleLandlord).
		First(&landlord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Specified landlord not found or not a landlord")
	}
	if err != nil {
		return apperr.Internal("Failed to look up landlord", err)
	}
	return nil
}

// indexProperty mirrors a property into the search index when search is
// enabled. Index failures are logged, never surfaced.
func (h *Handler) indexProperty(property *models.Property) {
	if h.search == nil {
		return
	}
	if err := h.search.IndexProperty(property); err != nil {
		log.Printf("Failed to index property %d: %v", property.ID, err)
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/Prayc/angaza-real-estate/internal/access"
	"github.com/Prayc/angaza-real-estate/internal/apperr"
	"github.com/Prayc/angaza-real-estate/internal/auth"
	"github.com/Prayc/angaza-real-estate/internal/database"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createTenantRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type updateTenantRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

// CreateTenant creates a tenant account on behalf of the actor. The
// role is always tenant and createdBy always the actor, regardless of
// the request body.
func (h *Handler) CreateTenant(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req createTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid tenant data: "+err.Error()))
		return
	}

	var existing models.User
	err := h.db().Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		h.fail(c, apperr.Conflict("Email already in use"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.fail(c, apperr.Internal("Server error", err))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, apperr.Internal("Server error", err))
		return
	}

	creatorID := actor.ID
	tenant := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		Phone:     req.Phone,
		Role:      models.RoleTenant,
		IsActive:  true,
		CreatedBy: &creatorID,
	}
	if err := h.db().Create(&tenant).Error; err != nil {
		h.fail(c, apperr.Internal("Failed to create tenant", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tenant created successfully",
		"tenant":  tenant,
	})
}

// ListTenants returns the tenants visible to the actor. The
// ?createdBy=own filter narrows a landlord's view to accounts they
// created, for lease assignment.
func (h *Handler) ListTenants(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	base := h.db().Model(&models.User{})

	var query *gorm.DB
	if c.Query("createdBy") == "own" && actor.Role == models.RoleLandlord {
		query = access.CreatedTenantsFor(base, actor)
	} else {
		query = access.TenantsFor(base, actor).
			Preload("Leases").
			Preload("Leases.Unit").
			Preload("Leases.Unit.Property").
			Preload("Payments").
			Preload("Creator")
	}

	var tenants []models.User
	if err := query.Order("users.created_at DESC").Find(&tenants).Error; err != nil {
		h.fail(c, apperr.Internal("Failed to list tenants", err))
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// GetTenant returns one tenant with their leases and payments.
func (h *Handler) GetTenant(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var tenant models.User
	err = h.db().
		Where("role = ?", models.RoleTenant).
		Preload("Leases").
		Preload("Leases.Unit").
		Preload("Leases.Unit.Property").
		Preload("Payments").
		Preload("Creator").
		First(&tenant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.fail(c, apperr.NotFound("Tenant not found"))
		} else {
			h.fail(c, apperr.Internal("Failed to load tenant", err))
		}
		return
	}

	if !access.CanViewTenant(actor, &tenant) {
		h.fail(c, apperr.Forbidden("Not authorized to access this tenant"))
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// UpdateTenant applies a partial update to a tenant the actor may see.
func (h *Handler) UpdateTenant(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.requireTenantAccess(actor, id); err != nil {
		h.fail(c, err)
		return
	}

	var req updateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid tenant data: "+err.Error()))
		return
	}

	tenant, err := h.store.UpdateTenant(id, database.TenantUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tenant updated successfully",
		"tenant":  tenant,
	})
}

// DeleteTenant removes a tenant, force-terminating their active leases
// and vacating the units first.
func (h *Handler) DeleteTenant(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.requireTenantAccess(actor, id); err != nil {
		h.fail(c, err)
		return
	}

	if err := h.store.DeleteTenant(id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tenant deleted successfully"})
}

// requireTenantAccess re-verifies that a landlord actor may touch this
// tenant before any mutation.
func (h *Handler) requireTenantAccess(actor access.Identity, id uint) error {
	if actor.Role != models.RoleLandlord {
		return nil
	}

	var tenant models.User
	err := h.db().
		Where("role = ?", models.RoleTenant).
		Preload("Leases").
		Preload("Leases.Unit").
		Preload("Leases.Unit.Property").
		First(&tenant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Tenant not found")
	}
	if err != nil {
		return apperr.Internal("Failed to load tenant", err)
	}

	if !access.CanViewTenant(actor, &tenant) {
		return apperr.Forbidden("Not authorized to access this tenant")
	}
	return nil
}

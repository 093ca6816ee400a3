package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Prayc/angaza-real-estate/internal/access"
	"github.com/Prayc/angaza-real-estate/internal/apperr"
	"github.com/Prayc/angaza-real-estate/internal/database"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createLeaseRequest struct {
	StartDate       string  `json:"startDate" binding:"required"`
	EndDate         string  `json:"endDate" binding:"required"`
	RentAmount      float64 `json:"rentAmount" binding:"required"`
	SecurityDeposit float64 `json:"securityDeposit"`
	TenantID        uint    `json:"tenantId" binding:"required"`
	UnitID          uint    `json:"unitId" binding:"required"`
	Document        string  `json:"document"`
}

type updateLeaseRequest struct {
	StartDate       *string             `json:"startDate"`
	EndDate         *string             `json:"endDate"`
	RentAmount      *float64            `json:"rentAmount"`
	SecurityDeposit *float64            `json:"securityDeposit"`
	Status          *models.LeaseStatus `json:"status"`
	Document        *string             `json:"document"`
}

// parseDate accepts YYYY-MM-DD or RFC3339.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperr.Validation("Invalid date format. Please use YYYY-MM-DD format.")
	}
	return t, nil
}

// ListLeases returns the leases visible to the actor, most recent first.
func (h *Handler) ListLeases(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	query := access.LeasesFor(h.db().Model(&models.Lease{}), actor).
		Preload("Tenant").
		Preload("Unit").
		Preload("Unit.Property")

	if status := c.Query("status"); status != "" {
		query = query.Where("leases.status = ?", status)
	}

	var leases []models.Lease
	if err := query.Order("leases.created_at DESC").Find(&leases).Error; err != nil {
		h.fail(c, apperr.Internal("Failed to list leases", err))
		return
	}
	c.JSON(http.StatusOK, leases)
}

// GetLease returns one lease with its tenant, unit and property.
func (h *Handler) GetLease(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var lease models.Lease
	err = h.db().
		Preload("Tenant").
		Preload("Unit").
		Preload("Unit.Property").
		First(&lease, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.fail(c, apperr.NotFound("Lease not found"))
		} else {
			h.fail(c, apperr.Internal("Failed to load lease", err))
		}
		return
	}

	if !access.CanViewLease(actor, &lease) {
		h.fail(c, apperr.Forbidden("Unauthorized"))
		return
	}
	c.JSON(http.StatusOK, lease)
}

// CreateLease creates an active lease. Landlords may only lease out
// units inside their own properties; ownership is checked against the
// stored unit, never the request.
func (h *Handler) CreateLease(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req createLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid lease data: "+err.Error()))
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		h.fail(c, err)
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !endDate.After(startDate) {
		h.fail(c, apperr.Validation("endDate must be after startDate"))
		return
	}
	if req.RentAmount < 0 || req.SecurityDeposit < 0 {
		h.fail(c, apperr.Validation("Amounts cannot be negative"))
		return
	}

	var unit models.Unit
	if err := h.db().Preload("Property").First(&unit, req.UnitID).Error; err != nil {
		h.fail(c, apperr.NotFound("Unit not found"))
		return
	}
	if !access.CanManageUnit(actor, &unit) {
		h.fail(c, apperr.Forbidden("Not authorized to create a lease for this unit"))
		return
	}

	lease := models.Lease{
		StartDate:       startDate,
		EndDate:         endDate,
		RentAmount:      req.RentAmount,
		SecurityDeposit: req.SecurityDeposit,
		TenantID:        req.TenantID,
		UnitID:          req.UnitID,
		Document:        req.Document,
	}
	if err := h.store.CreateLease(&lease); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Lease created successfully",
		"lease":   lease,
	})
}

// UpdateLease applies a partial update. Terminating a lease vacates its
// unit and restores the property's available-unit count.
func (h *Handler) UpdateLease(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var lease models.Lease
	if err := h.db().Preload("Unit").Preload("Unit.Property").
		First(&lease, id).Error; err != nil {
		h.fail(c, apperr.NotFound("Lease not found"))
		return
	}
	if actor.Role == models.RoleLandlord && !access.CanViewLease(actor, &lease) {
		h.fail(c, apperr.Forbidden("Not authorized to update this lease"))
		return
	}

	var req updateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid lease data: "+err.Error()))
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		h.fail(c, apperr.Validation("Invalid lease status"))
		return
	}
	if req.RentAmount != nil && *req.RentAmount < 0 {
		h.fail(c, apperr.Validation("rentAmount cannot be negative"))
		return
	}
	if req.SecurityDeposit != nil && *req.SecurityDeposit < 0 {
		h.fail(c, apperr.Validation("securityDeposit cannot be negative"))
		return
	}

	upd := database.LeaseUpdate{
		RentAmount:      req.RentAmount,
		SecurityDeposit: req.SecurityDeposit,
		Status:          req.Status,
		Document:        req.Document,
	}
	if req.StartDate != nil {
		parsed, err := parseDate(*req.StartDate)
		if err != nil {
			h.fail(c, err)
			return
		}
		upd.StartDate = &parsed
	}
	if req.EndDate != nil {
		parsed, err := parseDate(*req.EndDate)
		if err != nil {
			h.fail(c, err)
			return
		}
		upd.EndDate = &parsed
	}

	updated, err := h.store.UpdateLease(id, upd)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lease updated successfully",
		"lease":   updated,
	})
}

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

type createPaymentRequest struct {
	Amount        float64              `json:"amount" binding:"required"`
	PaymentType   models.PaymentType   `json:"paymentType" binding:"required"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
	Reference     string               `json:"reference"`
	LeaseID       uint                 `json:"leaseId" binding:"required"`
}

type updatePaymentRequest struct {
	Status models.PaymentStatus `json:"status" binding:"required"`
}

// ListPayments returns the payments visible to the actor.
func (h *Handler) ListPayments(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var payments []models.Payment
	err := access.PaymentsFor(h.db().Model(&models.Payment{}), actor).
		Preload("Tenant").
		Preload("Lease").
		Find(&payments).Error
	if err != nil {
		h.fail(c, apperr.Internal("Failed to list payments", err))
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetPayment returns one payment.
func (h *Handler) GetPayment(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var payment models.Payment
	err = h.db().Preload("Tenant").Preload("Lease").First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.fail(c, apperr.NotFound("Payment not found"))
		} else {
			h.fail(c, apperr.Internal("Failed to load payment", err))
		}
		return
	}

	if !access.CanViewPayment(actor, &payment) {
		h.fail(c, apperr.Forbidden("Unauthorized"))
		return
	}
	c.JSON(http.StatusOK, payment)
}

// CreatePayment records a payment against a lease. The payment is always
// attributed to the lease's tenant: a non-tenant recorder never becomes
// the payer, and a tenant can only pay on their own lease.
func (h *Handler) CreatePayment(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid payment data: "+err.Error()))
		return
	}
	if req.Amount <= 0 {
		h.fail(c, apperr.Validation("amount must be positive"))
		return
	}
	if !req.PaymentType.Valid() {
		h.fail(c, apperr.Validation("Invalid payment type"))
		return
	}
	if !req.PaymentMethod.Valid() {
		h.fail(c, apperr.Validation("Invalid payment method"))
		return
	}

	var lease models.Lease
	if err := h.db().First(&lease, req.LeaseID).Error; err != nil {
		h.fail(c, apperr.NotFound("Lease not found"))
		return
	}

	if actor.Role == models.RoleTenant && lease.TenantID != actor.ID {
		h.fail(c, apperr.Forbidden("Not authorized to record a payment on this lease"))
		return
	}

	payment := models.Payment{
		Amount:        req.Amount,
		PaymentDate:   time.Now(),
		PaymentType:   req.PaymentType,
		PaymentMethod: req.PaymentMethod,
		Status:        models.PaymentCompleted,
		Reference:     req.Reference,
		TenantID:      lease.TenantID,
		LeaseID:       lease.ID,
	}
	if err := h.db().Create(&payment).Error; err != nil {
		h.fail(c, apperr.Internal("Failed to record payment", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment recorded successfully",
		"payment": payment,
	})
}

// UpdatePayment changes a payment's status.
func (h *Handler) UpdatePayment(c *gin.Context) {
	if _, ok := h.identity(c); !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("status is required"))
		return
	}
	if !req.Status.Valid() {
		h.fail(c, apperr.Validation("Invalid payment status"))
		return
	}

	var payment models.Payment
	if err := h.db().First(&payment, id).Error; err != nil {
		h.fail(c, apperr.NotFound("Payment not found"))
		return
	}

	payment.Status = req.Status
	if err := h.db().Save(&payment).Error; err != nil {
		h.fail(c, apperr.Internal("Failed to update payment", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment status updated successfully",
		"payment": payment,
	})
}

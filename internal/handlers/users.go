package handlers

import (
	"errors"
	"net/http"

	"github.com/Prayc/angaza-real-estate/internal/apperr"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListUsers returns every account, most recent first. Admin only.
func (h *Handler) ListUsers(c *gin.Context) {
	var users []models.User
	err := h.db().Order("created_at DESC").Find(&users).Error
	if err != nil {
		h.fail(c, apperr.Internal("Failed to list users", err))
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns one account by id. Admin only.
func (h *Handler) GetUser(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var user models.User
	if err := h.db().First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.fail(c, apperr.NotFound("User not found"))
		} else {
			h.fail(c, apperr.Internal("Failed to load user", err))
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

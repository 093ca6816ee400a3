package handlers

import (
	"errors"
	"net/http"

	"github.com/Prayc/angaza-real-estate/internal/apperr"
	"github.com/Prayc/angaza-real-estate/internal/auth"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type registerRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Phone    string      `json:"phone"`
	Role     models.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account. Self-registration defaults to the
// tenant role; admin cannot be self-assigned.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid registration data: "+err.Error()))
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleTenant
	}
	if !role.Valid() || role == models.RoleAdmin {
		h.fail(c, apperr.Validation("Invalid role"))
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

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     role,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := h.db().Create(&user).Error; err != nil {
		h.fail(c, apperr.Internal("Failed to create user", err))
		return
	}

	token, err := h.tokens.GenerateToken(&user)
	if err != nil {
		h.fail(c, apperr.Internal("Failed to issue token", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

// Login verifies credentials and issues a token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Email and password are required"))
		return
	}

	var user models.User
	if err := h.db().Where("email = ?", req.Email).First(&user).Error; err != nil {
		h.fail(c, apperr.Unauthenticated("Invalid credentials"))
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		h.fail(c, apperr.Unauthenticated("Invalid credentials"))
		return
	}
	if !user.IsActive {
		h.fail(c, apperr.Unauthenticated("Account is deactivated"))
		return
	}

	token, err := h.tokens.GenerateToken(&user)
	if err != nil {
		h.fail(c, apperr.Internal("Failed to issue token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Me returns the account behind the current token.
func (h *Handler) Me(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db().First(&user, actor.ID).Error; err != nil {
		h.fail(c, apperr.NotFound("User not found"))
		return
	}
	c.JSON(http.StatusOK, user)
}

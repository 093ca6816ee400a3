package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Prayc/angaza-real-estate/internal/auth"
	"github.com/Prayc/angaza-real-estate/internal/config"
	"github.com/Prayc/angaza-real-estate/internal/database"
	"github.com/Prayc/angaza-real-estate/internal/middleware"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv runs the full route tree against an in-memory database, with
// search disabled.
type testEnv struct {
	t      *testing.T
	router *gin.Engine
	store  *database.GormDB
	tokens *auth.JWT
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	store := database.NewGormDBFromDB(db)
	require.NoError(t, store.InitSchema())

	cfg := config.DefaultConfig()
	cfg.JWT.Secret = "test-secret"
	tokens := auth.NewJWT(cfg.JWT)
	h := New(store, cfg, tokens, nil)

	r := gin.New()
	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
	}

	authed := api.Group("")
	authed.Use(middleware.Authenticate(store.DB(), tokens))
	{
		authed.GET("/auth/me", h.Me)
		authed.GET("/dashboard/stats", h.GetDashboardStats)

		properties := authed.Group("/properties")
		{
			properties.GET("", h.ListProperties)
			properties.GET("/search",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager),
				h.SearchProperties)
			properties.GET("/landlords/list",
				middleware.RequireRoles(models.RoleAdmin),
				h.ListLandlords)
			properties.GET("/:id", h.GetProperty)
			properties.POST("",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord),
				h.CreateProperty)
			properties.PUT("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord),
				h.UpdateProperty)
			properties.DELETE("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord),
				h.DeleteProperty)
		}

		units := authed.Group("/units")
		{
			units.GET("", h.ListUnits)
			units.GET("/:id", h.GetUnit)
			units.POST("",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager, models.RoleLandlord),
				h.CreateUnit)
			units.PUT("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager, models.RoleLandlord),
				h.UpdateUnit)
			units.DELETE("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager, models.RoleLandlord),
				h.DeleteUnit)
		}

		leases := authed.Group("/leases")
		{
			leases.GET("", h.ListLeases)
			leases.GET("/:id", h.GetLease)
			leases.POST("",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager, models.RoleLandlord),
				h.CreateLease)
			leases.PUT("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager, models.RoleLandlord),
				h.UpdateLease)
		}

		maintenance := authed.Group("/maintenance")
		{
			maintenance.GET("", h.ListMaintenance)
			maintenance.GET("/:id", h.GetMaintenance)
			maintenance.POST("", h.CreateMaintenance)
			maintenance.PUT("/:id", h.UpdateMaintenance)
		}

		payments := authed.Group("/payments")
		{
			payments.GET("", h.ListPayments)
			payments.GET("/:id", h.GetPayment)
			payments.POST("", h.CreatePayment)
			payments.PUT("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager),
				h.UpdatePayment)
		}

		tenants := authed.Group("/tenants")
		{
			tenants.GET("",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord, models.RolePropertyManager),
				h.ListTenants)
			tenants.GET("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager, models.RoleLandlord),
				h.GetTenant)
			tenants.POST("",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord, models.RolePropertyManager),
				h.CreateTenant)
			tenants.PUT("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord, models.RolePropertyManager),
				h.UpdateTenant)
			tenants.DELETE("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord),
				h.DeleteTenant)
		}

		users := authed.Group("/users")
		users.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			users.GET("", h.ListUsers)
			users.GET("/:id", h.GetUser)
		}
	}

	return &testEnv{t: t, router: r, store: store, tokens: tokens}
}

func (e *testEnv) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	e.t.Helper()
	var body map[string]interface{}
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	return list
}

var envSeq int

func (e *testEnv) seedUser(role models.Role) *models.User {
	e.t.Helper()
	envSeq++
	user := &models.User{
		Name:     fmt.Sprintf("%s %d", role, envSeq),
		Email:    fmt.Sprintf("h%d@example.com", envSeq),
		Password: "not-a-real-hash",
		Role:     role,
		IsActive: true,
	}
	require.NoError(e.t, e.store.DB().Create(user).Error)
	return user
}

func (e *testEnv) seedProperty(landlordID uint, totalUnits int) *models.Property {
	e.t.Helper()
	property := &models.Property{
		Name:       "Test Court",
		Address:    "1 Test Street",
		Type:       models.PropertyResidential,
		TotalUnits: totalUnits,
		LandlordID: landlordID,
	}
	require.NoError(e.t, e.store.CreateProperty(property))
	return property
}

func (e *testEnv) seedUnit(propertyID uint, number string) *models.Unit {
	e.t.Helper()
	unit := &models.Unit{
		UnitNumber: number,
		Type:       "apartment",
		Rent:       1000,
		PropertyID: propertyID,
	}
	require.NoError(e.t, e.store.CreateUnit(unit))
	return unit
}

func (e *testEnv) seedLease(tenantID, unitID uint) *models.Lease {
	e.t.Helper()
	lease := &models.Lease{
		StartDate:  time.Now(),
		EndDate:    time.Now().AddDate(1, 0, 0),
		RentAmount: 1000,
		TenantID:   tenantID,
		UnitID:     unitID,
	}
	require.NoError(e.t, e.store.CreateLease(lease))
	return lease
}

func (e *testEnv) token(user *models.User) string {
	e.t.Helper()
	signed, err := e.tokens.GenerateToken(user)
	require.NoError(e.t, err)
	return signed
}


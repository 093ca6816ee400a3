package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTenantForcesRoleAndCreator(t *testing.T) {
	e := setupEnv(t)
	landlord := e.seedUser(models.RoleLandlord)

	w := e.request(http.MethodPost, "/api/tenants", map[string]interface{}{
		"name":     "John Otieno",
		"email":    "john.otieno@example.com",
		"password": "password123",
	}, e.token(landlord))
	require.Equal(t, http.StatusCreated, w.Code)

	tenant := e.decode(w)["tenant"].(map[string]interface{})
	assert.Equal(t, "tenant", tenant["role"])
	assert.Equal(t, float64(landlord.ID), tenant["createdBy"])

	// Tenants cannot reach the endpoint at all.
	w = e.request(http.MethodPost, "/api/tenants", map[string]interface{}{
		"name":     "Nope",
		"email":    "nope@example.com",
		"password": "password123",
	}, e.token(e.seedUser(models.RoleTenant)))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLandlordTenantVisibility(t *testing.T) {
	e := setupEnv(t)
	landlordA := e.seedUser(models.RoleLandlord)
	landlordB := e.seedUser(models.RoleLandlord)

	w := e.request(http.MethodPost, "/api/tenants", map[string]interface{}{
		"name":     "Created Tenant",
		"email":    "created.tenant@example.com",
		"password": "password123",
	}, e.token(landlordA))
	require.Equal(t, http.StatusCreated, w.Code)
	tenantID := uint(e.decode(w)["tenant"].(map[string]interface{})["id"].(float64))

	path := fmt.Sprintf("/api/tenants/%d", tenantID)

	w = e.request(http.MethodGet, path, nil, e.token(landlordA))
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.request(http.MethodGet, path, nil, e.token(landlordB))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// ?createdBy=own narrows to accounts this landlord created.
	w = e.request(http.MethodGet, "/api/tenants?createdBy=own", nil, e.token(landlordA))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	w = e.request(http.MethodGet, "/api/tenants?createdBy=own", nil, e.token(landlordB))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))
}

func TestLandlordSeesTenantThroughActiveLease(t *testing.T) {
	e := setupEnv(t)
	landlord := e.seedUser(models.RoleLandlord)
	tenant := e.seedUser(models.RoleTenant)
	property := e.seedProperty(landlord.ID, 1)
	unit := e.seedUnit(property.ID, "A1")
	e.seedLease(tenant.ID, unit.ID)

	w := e.request(http.MethodGet, fmt.Sprintf("/api/tenants/%d", tenant.ID),
		nil, e.token(landlord))
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.request(http.MethodGet, "/api/tenants", nil, e.token(landlord))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)
}

func TestUpdateTenantOwnership(t *testing.T) {
	e := setupEnv(t)
	landlordA := e.seedUser(models.RoleLandlord)
	landlordB := e.seedUser(models.RoleLandlord)
	tenant := e.seedUser(models.RoleTenant)
	require.NoError(t, e.store.DB().Model(&models.User{}).
		Where("id = ?", tenant.ID).Update("created_by", landlordA.ID).Error)

	path := fmt.Sprintf("/api/tenants/%d", tenant.ID)
	body := map[string]interface{}{"phone": "+254700000009"}

	w := e.request(http.MethodPut, path, body, e.token(landlordB))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.request(http.MethodPut, path, body, e.token(landlordA))
	require.Equal(t, http.StatusOK, w.Code)
	updated := e.decode(w)["tenant"].(map[string]interface{})
	assert.Equal(t, "+254700000009", updated["phone"])
}

func TestDeleteTenantTerminatesLeases(t *testing.T) {
	e := setupEnv(t)
	admin := e.seedUser(models.RoleAdmin)
	landlord := e.seedUser(models.RoleLandlord)
	tenant := e.seedUser(models.RoleTenant)
	property := e.seedProperty(landlord.ID, 1)
	unit := e.seedUnit(property.ID, "A1")
	lease := e.seedLease(tenant.ID, unit.ID)

	w := e.request(http.MethodDelete, fmt.Sprintf("/api/tenants/%d", tenant.ID),
		nil, e.token(admin))
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Lease
	require.NoError(t, e.store.DB().First(&reloaded, lease.ID).Error)
	assert.Equal(t, models.LeaseTerminated, reloaded.Status)

	var unitRow models.Unit
	require.NoError(t, e.store.DB().First(&unitRow, unit.ID).Error)
	assert.Equal(t, models.UnitVacant, unitRow.Status)
}

func TestUsersEndpointAdminOnly(t *testing.T) {
	e := setupEnv(t)
	admin := e.seedUser(models.RoleAdmin)
	landlord := e.seedUser(models.RoleLandlord)

	w := e.request(http.MethodGet, "/api/users", nil, e.token(landlord))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.request(http.MethodGet, "/api/users", nil, e.token(admin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 2)
}

func TestDashboardStatsScoped(t *testing.T) {
	e := setupEnv(t)
	landlord := e.seedUser(models.RoleLandlord)
	other := e.seedUser(models.RoleLandlord)
	tenant := e.seedUser(models.RoleTenant)
	property := e.seedProperty(landlord.ID, 2)
	unit := e.seedUnit(property.ID, "A1")
	e.seedUnit(property.ID, "A2")
	e.seedProperty(other.ID, 1)
	e.seedLease(tenant.ID, unit.ID)

	w := e.request(http.MethodGet, "/api/dashboard/stats", nil, e.token(landlord))
	require.Equal(t, http.StatusOK, w.Code)

	stats := e.decode(w)
	assert.Equal(t, float64(1), stats["properties"])
	assert.Equal(t, float64(1), stats["activeLeases"])

	units := stats["units"].(map[string]interface{})
	assert.Equal(t, float64(2), units["total"])
	assert.Equal(t, float64(1), units["occupied"])
	assert.Equal(t, float64(1), units["vacant"])
}

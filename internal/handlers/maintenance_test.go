package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantMaintenanceRequiresActiveLease(t *testing.T) {
	e := setupEnv(t)
	landlord := e.seedUser(models.RoleLandlord)
	tenant := e.seedUser(models.RoleTenant)
	outsider := e.seedUser(models.RoleTenant)
	property := e.seedProperty(landlord.ID, 1)
	unit := e.seedUnit(property.ID, "A1")
	e.seedLease(tenant.ID, unit.ID)

	body := map[string]interface{}{
		"title":       "Leaking tap",
		"description": "Kitchen tap drips constantly",
		"unitId":      unit.ID,
	}

	w := e.request(http.MethodPost, "/api/maintenance", body, e.token(outsider))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.request(http.MethodPost, "/api/maintenance", body, e.token(tenant))
	require.Equal(t, http.StatusCreated, w.Code)

	request := e.decode(w)["maintenanceRequest"].(map[string]interface{})
	assert.Equal(t, "pending", request["status"])
	assert.Equal(t, "normal", request["priority"])
	// defaults to the property's landlord
	assert.Equal(t, float64(landlord.ID), request["assignedTo"])
}

func TestTenantCannotChangeMaintenanceStatus(t *testing.T) {
	e := setupEnv(t)
	landlord := e.seedUser(models.RoleLandlord)
	tenant := e.seedUser(models.RoleTenant)
	property := e.seedProperty(landlord.ID, 1)
	unit := e.seedUnit(property.ID, "A1")
	e.seedLease(tenant.ID, unit.ID)

	request := &models.Maintenance{
		Title:       "Broken window",
		Description: "Bedroom window cracked",
		Status:      models.MaintenancePending,
		Priority:    models.PriorityNormal,
		CreatedBy:   tenant.ID,
		UnitID:      unit.ID,
	}
	require.NoError(t, e.store.DB().Create(request).Error)
	path := fmt.Sprintf("/api/maintenance/%d", request.ID)

	w := e.request(http.MethodPut, path,
		map[string]interface{}{"status": "completed"}, e.token(tenant))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Description edits are allowed.
	w = e.request(http.MethodPut, path,
		map[string]interface{}{"description": "Bedroom window fully broken now"}, e.token(tenant))
	assert.Equal(t, http.StatusOK, w.Code)

	// Staff completing the request stamps completedAt.
	w = e.request(http.MethodPut, path,
		map[string]interface{}{"status": "completed"}, e.token(landlord))
	require.Equal(t, http.StatusOK, w.Code)
	updated := e.decode(w)["maintenanceRequest"].(map[string]interface{})
	assert.Equal(t, "completed", updated["status"])
	assert.NotNil(t, updated["completedAt"])
}

func TestMaintenanceVisibility(t *testing.T) {
	e := setupEnv(t)
	landlord := e.seedUser(models.RoleLandlord)
	otherLandlord := e.seedUser(models.RoleLandlord)
	tenant := e.seedUser(models.RoleTenant)
	property := e.seedProperty(landlord.ID, 1)
	unit := e.seedUnit(property.ID, "A1")
	e.seedLease(tenant.ID, unit.ID)

	request := &models.Maintenance{
		Title:       "No hot water",
		Description: "Boiler not heating",
		Status:      models.MaintenancePending,
		Priority:    models.PriorityHigh,
		CreatedBy:   tenant.ID,
		UnitID:      unit.ID,
	}
	require.NoError(t, e.store.DB().Create(request).Error)

	w := e.request(http.MethodGet, "/api/maintenance", nil, e.token(landlord))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	w = e.request(http.MethodGet, "/api/maintenance", nil, e.token(otherLandlord))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))

	w = e.request(http.MethodGet, "/api/maintenance", nil, e.token(tenant))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	path := fmt.Sprintf("/api/maintenance/%d", request.ID)
	w = e.request(http.MethodGet, path, nil, e.token(otherLandlord))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMaintenanceStatusFilter(t *testing.T) {
	e := setupEnv(t)
	admin := e.seedUser(models.RoleAdmin)
	landlord := e.seedUser(models.RoleLandlord)
	tenant := e.seedUser(models.RoleTenant)
	property := e.seedProperty(landlord.ID, 1)
	unit := e.seedUnit(property.ID, "A1")

	for _, status := range []models.MaintenanceStatus{
		models.MaintenancePending, models.MaintenanceCompleted,
	} {
		require.NoError(t, e.store.DB().Create(&models.Maintenance{
			Title:       "Request",
			Description: "Description",
			Status:      status,
			Priority:    models.PriorityNormal,
			CreatedBy:   tenant.ID,
			UnitID:      unit.ID,
		}).Error)
	}

	w := e.request(http.MethodGet, "/api/maintenance?status=pending", nil, e.token(admin))
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "pending", list[0]["status"])
}

package handlers

import (
	"net/http"

	"github.com/Prayc/angaza-real-estate/internal/access"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns summary counts for the dashboard, computed
// over the records the actor may see.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	stats := make(map[string]interface{})

	var propertyCount int64
	access.PropertiesFor(h.db().Model(&models.Property{}), actor).Count(&propertyCount)
	stats["properties"] = propertyCount

	var unitCounts struct {
		Total    int64
		Vacant   int64
		Occupied int64
	}
	access.UnitsFor(h.db().Model(&models.Unit{}), actor).Count(&unitCounts.Total)
	access.UnitsFor(h.db().Model(&models.Unit{}), actor).
		Where("units.status = ?", models.UnitVacant).Count(&unitCounts.Vacant)
	access.UnitsFor(h.db().Model(&models.Unit{}), actor).
		Where("units.status = ?", models.UnitOccupied).Count(&unitCounts.Occupied)
	stats["units"] = map[string]int64{
		"total":    unitCounts.Total,
		"vacant":   unitCounts.Vacant,
		"occupied": unitCounts.Occupied,
	}

	var activeLeases int64
	access.LeasesFor(h.db().Model(&models.Lease{}), actor).
		Where("leases.status = ?", models.LeaseActive).Count(&activeLeases)
	stats["activeLeases"] = activeLeases

	var pendingMaintenance int64
	access.MaintenanceFor(h.db().Model(&models.Maintenance{}), actor).
		Where("maintenance_requests.status = ?", models.MaintenancePending).
		Count(&pendingMaintenance)
	stats["pendingMaintenance"] = pendingMaintenance

	var paymentCount int64
	access.PaymentsFor(h.db().Model(&models.Payment{}), actor).Count(&paymentCount)
	stats["payments"] = paymentCount

	c.JSON(http.StatusOK, stats)
}

// Package access decides, per role, which records an actor may see and
// which it may change. Every list endpoint goes through a scope builder
// here, and every read-by-id or mutation re-verifies ownership against
// the loaded record, never against client input.
package access

import (
	"github.com/Prayc/angaza-real-estate/internal/models"

	"gorm.io/gorm"
)

// Identity is the verified per-request actor context.
type Identity struct {
	ID   uint
	Role models.Role
}

// none is the empty scope: a role that sees nothing gets an empty list,
// not an error and not a full scan.
func none(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

// PropertiesFor scopes property queries to what the actor may see.
func PropertiesFor(db *gorm.DB, actor Identity) *gorm.DB {
	switch actor.Role {
	case models.RoleAdmin, models.RolePropertyManager:
		return db
	case models.RoleLandlord:
		return db.Where("properties.landlord_id = ?", actor.ID)
	case models.RoleTenant:
		return none(db)
	}
	return none(db)
}

// UnitsFor scopes unit queries. Landlords see only units of their own
// properties; tenants see none via list.
func UnitsFor(db *gorm.DB, actor Identity) *gorm.DB {
	switch actor.Role {
	case models.RoleAdmin, models.RolePropertyManager:
		return db
	case models.RoleLandlord:
		return db.
			Joins("JOIN properties ON properties.id = units.property_id").
			Where("properties.landlord_id = ?", actor.ID)
	case models.RoleTenant:
		return none(db)
	}
	return none(db)
}

// LeasesFor scopes lease queries. Tenants see their own leases;
// landlords see leases on units within their own properties.
func LeasesFor(db *gorm.DB, actor Identity) *gorm.DB {
	switch actor.Role {
	case models.RoleAdmin, models.RolePropertyManager:
		return db
	case models.RoleLandlord:
		return db.
			Joins("JOIN units ON units.id = leases.unit_id").
			Joins("JOIN properties ON properties.id = units.property_id").
			Where("properties.landlord_id = ?", actor.ID)
	case models.RoleTenant:
		return db.Where("leases.tenant_id = ?", actor.ID)
	}
	return none(db)
}

// MaintenanceFor scopes maintenance-request queries.
func MaintenanceFor(db *gorm.DB, actor Identity) *gorm.DB {
	switch actor.Role {
	case models.RoleAdmin, models.RolePropertyManager:
		return db
	case models.RoleLandlord:
		return db.
			Joins("JOIN units ON units.id = maintenance_requests.unit_id").
			Joins("JOIN properties ON properties.id = units.property_id").
			Where("properties.landlord_id = ?", actor.ID)
	case models.RoleTenant:
		return db.Where("maintenance_requests.created_by = ?", actor.ID)
	}
	return none(db)
}

// PaymentsFor scopes payment queries. Only tenants are filtered; other
// roles fall through to the full set.
func PaymentsFor(db *gorm.DB, actor Identity) *gorm.DB {
	if actor.Role == models.RoleTenant {
		return db.Where("payments.tenant_id = ?", actor.ID)
	}
	return db
}

// TenantsFor scopes tenant listings. A landlord sees tenants holding an
// active lease in one of their properties, plus tenants they created.
// A landlord with zero properties still gets the created-by fallback.
func TenantsFor(db *gorm.DB, actor Identity) *gorm.DB {
	base := db.Where("users.role = ?", models.RoleTenant)

	switch actor.Role {
	case models.RoleAdmin, models.RolePropertyManager:
		return base
	case models.RoleLandlord:
		leased := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Lease{}).
			Select("leases.tenant_id").
			Joins("JOIN units ON units.id = leases.unit_id").
			Joins("JOIN properties ON properties.id = units.property_id").
			Where("leases.status = ? AND properties.landlord_id = ?", models.LeaseActive, actor.ID)
		return base.Where("users.id IN (?) OR users.created_by = ?", leased, actor.ID)
	}
	return none(db)
}

// CreatedTenantsFor scopes tenant listings to accounts the actor
// personally created (the ?createdBy=own filter).
func CreatedTenantsFor(db *gorm.DB, actor Identity) *gorm.DB {
	return db.Where("users.role = ? AND users.created_by = ?", models.RoleTenant, actor.ID)
}

package access

import (
	"github.com/Prayc/angaza-real-estate/internal/models"
)

// CanViewProperty reports whether the actor may read this property.
func CanViewProperty(actor Identity, property *models.Property) bool {
	switch actor.Role {
	case models.RoleAdmin, models.RolePropertyManager:
		return true
	case models.RoleLandlord:
		return property.LandlordID == actor.ID
	case models.RoleTenant:
		return false
	}
	return false
}

// CanManageProperty reports whether the actor may mutate this property.
// Only admins and the owning landlord may.
func CanManageProperty(actor Identity, property *models.Property) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleLandlord:
		return property.LandlordID == actor.ID
	}
	return false
}

// CanViewUnit reports whether the actor may read this unit. The unit
// must be loaded with its property.
func CanViewUnit(actor Identity, unit *models.Unit) bool {
	if actor.Role == models.RoleLandlord {
		return unit.Property != nil && unit.Property.LandlordID == actor.ID
	}
	return true
}

// CanManageUnit reports whether the actor may mutate this unit.
func CanManageUnit(actor Identity, unit *models.Unit) bool {
	switch actor.Role {
	case models.RoleAdmin, models.RolePropertyManager:
		return true
	case models.RoleLandlord:
		return unit.Property != nil && unit.Property.LandlordID == actor.ID
	}
	return false
}

// CanViewLease reports whether the actor may read this lease. The lease
// must be loaded with its unit and the unit's property.
func CanViewLease(actor Identity, lease *models.Lease) bool {
	switch actor.Role {
	case models.RoleAdmin, models.RolePropertyManager:
		return true
	case models.RoleLandlord:
		return lease.Unit != nil && lease.Unit.Property != nil &&
			lease.Unit.Property.LandlordID == actor.ID
	case models.RoleTenant:
		return lease.TenantID == actor.ID
	}
	return false
}

// CanViewMaintenance reports whether the actor may read this request.
func CanViewMaintenance(actor Identity, req *models.Maintenance) bool {
	switch actor.Role {
	case models.RoleAdmin, models.RolePropertyManager:
		return true
	case models.RoleLandlord:
		return req.Unit != nil && req.Unit.Property != nil &&
			req.Unit.Property.LandlordID == actor.ID
	case models.RoleTenant:
		return req.CreatedBy == actor.ID
	}
	return false
}

// CanUpdateMaintenance reports whether the actor may update this request
// at all. Which fields a tenant may touch is decided by the handler.
func CanUpdateMaintenance(actor Identity, req *models.Maintenance) bool {
	switch actor.Role {
	case models.RoleAdmin, models.RolePropertyManager:
		return true
	case models.RoleLandlord:
		return req.Unit != nil && req.Unit.Property != nil &&
			req.Unit.Property.LandlordID == actor.ID
	case models.RoleTenant:
		return req.CreatedBy == actor.ID
	}
	return false
}

// CanViewPayment reports whether the actor may read this payment.
func CanViewPayment(actor Identity, payment *models.Payment) bool {
	if actor.Role == models.RoleTenant {
		return payment.TenantID == actor.ID
	}
	return true
}

// CanViewTenant reports whether the actor may read this tenant record.
// Landlords qualify through an active lease in one of their properties
// or by having created the account. Leases must be preloaded with
// Unit.Property.
func CanViewTenant(actor Identity, tenant *models.User) bool {
	switch actor.Role {
	case models.RoleAdmin, models.RolePropertyManager:
		return true
	case models.RoleLandlord:
		if tenant.CreatedBy != nil && *tenant.CreatedBy == actor.ID {
			return true
		}
		for _, lease := range tenant.Leases {
			if lease.Status != models.LeaseActive {
				continue
			}
			if lease.Unit != nil && lease.Unit.Property != nil &&
				lease.Unit.Property.LandlordID == actor.ID {
				return true
			}
		}
		return false
	}
	return false
}

package database

import (
	"errors"

	"github.com/Prayc/angaza-real-estate/internal/apperr"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"gorm.io/gorm"
)

// PropertyUpdate enumerates the property fields a caller may change.
// AvailableUnits is deliberately absent: it is derived, never written
// from client input.
type PropertyUpdate struct {
	Name        *string
	Address     *string
	Type        *models.PropertyType
	Description *string
	TotalUnits  *int
	Featured    *bool
	Image       *string
	LandlordID  *uint
}

// CreateProperty inserts a property with all units initially available.
func (gdb *GormDB) CreateProperty(property *models.Property) error {
	property.AvailableUnits = property.TotalUnits
	return gdb.db.Create(property).Error
}

// UpdateProperty applies a partial update. When totalUnits changes,
// availableUnits is re-derived from the current unit statuses.
func (gdb *GormDB) UpdateProperty(id uint, upd PropertyUpdate) (*models.Property, error) {
	var property models.Property

	err := gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&property, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Property not found")
			}
			return err
		}

		totalChanged := false

		if upd.Name != nil {
			property.Name = *upd.Name
		}
		if upd.Address != nil {
			property.Address = *upd.Address
		}
		if upd.Type != nil {
			property.Type = *upd.Type
		}
		if upd.Description != nil {
			property.Description = *upd.Description
		}
		if upd.TotalUnits != nil && *upd.TotalUnits != property.TotalUnits {
			var unitCount int64
			if err := tx.Model(&models.Unit{}).
				Where("property_id = ?", property.ID).
				Count(&unitCount).Error; err != nil {
				return err
			}
			if int64(*upd.TotalUnits) < unitCount {
				return apperr.Conflict("totalUnits cannot be lower than the number of existing units")
			}
			property.TotalUnits = *upd.TotalUnits
			totalChanged = true
		}
		if upd.Featured != nil {
			property.Featured = *upd.Featured
		}
		if upd.Image != nil {
			property.Image = *upd.Image
		}
		if upd.LandlordID != nil {
			property.LandlordID = *upd.LandlordID
		}

		if err := tx.Save(&property).Error; err != nil {
			return err
		}

		if totalChanged {
			return recomputeAvailableUnits(tx, &property)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// DeleteProperty removes a property and its units. Rejected when any
// unit still has an active lease.
func (gdb *GormDB) DeleteProperty(id uint) error {
	return gdb.db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := lockForUpdate(tx).First(&property, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Property not found")
			}
			return err
		}

		var activeLeases int64
		err := tx.Model(&models.Lease{}).
			Joins("JOIN units ON units.id = leases.unit_id").
			Where("units.property_id = ? AND leases.status = ?", property.ID, models.LeaseActive).
			Count(&activeLeases).Error
		if err != nil {
			return err
		}
		if activeLeases > 0 {
			return apperr.Conflict("Cannot delete property with active leases. Please terminate all leases first.")
		}

		if err := tx.Where("property_id = ?", property.ID).
			Delete(&models.Unit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Property{}, property.ID).Error
	})
}

package database

import (
	"errors"

	"github.com/Prayc/angaza-real-estate/internal/apperr"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"gorm.io/gorm"
)

// UnitUpdate enumerates the unit fields a caller may change.
type UnitUpdate struct {
	UnitNumber  *string
	Type        *string
	Size        *float64
	Rent        *float64
	Status      *models.UnitStatus
	Description *string
}

// CreateUnit inserts a unit, rejecting the insert when the property is
// already at its totalUnits capacity. A non-vacant initial status
// consumes one available unit.
func (gdb *GormDB) CreateUnit(unit *models.Unit) error {
	return gdb.db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := lockForUpdate(tx).First(&property, unit.PropertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Property not found")
			}
			return err
		}

		var unitCount int64
		if err := tx.Model(&models.Unit{}).
			Where("property_id = ?", property.ID).
			Count(&unitCount).Error; err != nil {
			return err
		}
		if unitCount >= int64(property.TotalUnits) {
			return apperr.Conflict("Cannot add more units: property is at its total units capacity")
		}

		if unit.Status == "" {
			unit.Status = models.UnitVacant
		}
		if err := tx.Create(unit).Error; err != nil {
			return err
		}

		if unit.Status != models.UnitVacant {
			available := clampAvailable(property.AvailableUnits-1, property.TotalUnits)
			return tx.Model(&models.Property{}).Where("id = ?", property.ID).
				Update("available_units", available).Error
		}
		return nil
	})
}

// UpdateUnit applies a partial update. A status change between vacant and
// non-vacant adjusts the owning property's availableUnits by one, clamped
// to [0, totalUnits].
func (gdb *GormDB) UpdateUnit(id uint, upd UnitUpdate) (*models.Unit, error) {
	var unit models.Unit

	err := gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&unit, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Unit not found")
			}
			return err
		}

		oldStatus := unit.Status

		if upd.UnitNumber != nil {
			unit.UnitNumber = *upd.UnitNumber
		}
		if upd.Type != nil {
			unit.Type = *upd.Type
		}
		if upd.Size != nil {
			unit.Size = upd.Size
		}
		if upd.Rent != nil {
			unit.Rent = *upd.Rent
		}
		if upd.Status != nil {
			unit.Status = *upd.Status
		}
		if upd.Description != nil {
			unit.Description = *upd.Description
		}

		if err := tx.Save(&unit).Error; err != nil {
			return err
		}

		if oldStatus == unit.Status {
			return nil
		}

		var property models.Property
		if err := lockForUpdate(tx).First(&property, unit.PropertyID).Error; err != nil {
			return err
		}

		available := property.AvailableUnits
		if oldStatus == models.UnitVacant && unit.Status != models.UnitVacant {
			available--
		} else if oldStatus != models.UnitVacant && unit.Status == models.UnitVacant {
			available++
		} else {
			// occupied <-> maintenance, no availability change
			return nil
		}

		available = clampAvailable(available, property.TotalUnits)
		return tx.Model(&models.Property{}).Where("id = ?", property.ID).
			Update("available_units", available).Error
	})
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// DeleteUnit removes a unit and re-derives the property's availableUnits
// from the units that remain.
func (gdb *GormDB) DeleteUnit(id uint) error {
	return gdb.db.Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := lockForUpdate(tx).First(&unit, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Unit not found")
			}
			return err
		}

		var activeLeases int64
		if err := tx.Model(&models.Lease{}).
			Where("unit_id = ? AND status = ?", unit.ID, models.LeaseActive).
			Count(&activeLeases).Error; err != nil {
			return err
		}
		if activeLeases > 0 {
			return apperr.Conflict("Cannot delete a unit with an active lease")
		}

		if err := tx.Delete(&models.Unit{}, unit.ID).Error; err != nil {
			return err
		}

		var property models.Property
		if err := lockForUpdate(tx).First(&property, unit.PropertyID).Error; err != nil {
			return err
		}
		return recomputeAvailableUnits(tx, &property)
	})
}

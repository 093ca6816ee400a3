package database

import (
	"errors"
	"time"

	"github.com/Prayc/angaza-real-estate/internal/apperr"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"gorm.io/gorm"
)

// LeaseUpdate enumerates the lease fields a caller may change.
type LeaseUpdate struct {
	StartDate       *time.Time
	EndDate         *time.Time
	RentAmount      *float64
	SecurityDeposit *float64
	Status          *models.LeaseStatus
	Document        *string
}

// CreateLease inserts an active lease and applies the occupancy effects:
// the unit becomes occupied and the owning property loses one available
// unit. The unit row is locked so two concurrent creations against the
// same unit cannot both succeed.
func (gdb *GormDB) CreateLease(lease *models.Lease) error {
	return gdb.db.Transaction(func(tx *gorm.DB) error {
		var tenant models.User
		if err := tx.Where("id = ? AND role = ?", lease.TenantID, models.RoleTenant).
			First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Tenant not found")
			}
			return err
		}

		var unit models.Unit
		if err := lockForUpdate(tx).First(&unit, lease.UnitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Unit not found")
			}
			return err
		}

		// At most one active lease per unit.
		var activeCount int64
		if err := tx.Model(&models.Lease{}).
			Where("unit_id = ? AND status = ?", unit.ID, models.LeaseActive).
			Count(&activeCount).Error; err != nil {
			return err
		}
		if activeCount > 0 {
			return apperr.Conflict("Unit already has an active lease")
		}

		lease.Status = models.LeaseActive
		if err := tx.Create(lease).Error; err != nil {
			return err
		}

		return occupyUnit(tx, unit.ID)
	})
}

// UpdateLease applies a partial update. A transition out of active status
// (terminated or expired) vacates the unit; a transition back into active
// re-occupies it and is rejected when the unit has another active lease.
func (gdb *GormDB) UpdateLease(id uint, upd LeaseUpdate) (*models.Lease, error) {
	var lease models.Lease

	err := gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&lease, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Lease not found")
			}
			return err
		}

		wasActive := lease.Status == models.LeaseActive

		if upd.StartDate != nil {
			lease.StartDate = *upd.StartDate
		}
		if upd.EndDate != nil {
			lease.EndDate = *upd.EndDate
		}
		if upd.RentAmount != nil {
			lease.RentAmount = *upd.RentAmount
		}
		if upd.SecurityDeposit != nil {
			lease.SecurityDeposit = *upd.SecurityDeposit
		}
		if upd.Status != nil {
			lease.Status = *upd.Status
		}
		if upd.Document != nil {
			lease.Document = *upd.Document
		}

		// Reactivation is subject to the same uniqueness rule as creation:
		// at most one active lease per unit.
		becameActive := !wasActive && lease.Status == models.LeaseActive
		if becameActive {
			var unit models.Unit
			if err := lockForUpdate(tx).First(&unit, lease.UnitID).Error; err != nil {
				return err
			}

			var activeCount int64
			if err := tx.Model(&models.Lease{}).
				Where("unit_id = ? AND status = ? AND id <> ?",
					lease.UnitID, models.LeaseActive, lease.ID).
				Count(&activeCount).Error; err != nil {
				return err
			}
			if activeCount > 0 {
				return apperr.Conflict("Unit already has an active lease")
			}
		}

		if err := tx.Save(&lease).Error; err != nil {
			return err
		}

		if becameActive {
			return occupyUnit(tx, lease.UnitID)
		}
		if wasActive && lease.Status != models.LeaseActive {
			return vacateUnit(tx, lease.UnitID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

// ExpireOverdueLeases marks active leases whose end date has passed as
// expired, vacating their units. Returns the number of leases expired.
func (gdb *GormDB) ExpireOverdueLeases(now time.Time) (int, error) {
	var overdue []models.Lease
	err := gdb.db.
		Where("status = ? AND end_date < ?", models.LeaseActive, now).
		Find(&overdue).Error
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, lease := range overdue {
		err := gdb.db.Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&models.Lease{}).
				Where("id = ? AND status = ?", lease.ID, models.LeaseActive).
				Update("status", models.LeaseExpired)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// Already transitioned by a concurrent update.
				return nil
			}
			return vacateUnit(tx, lease.UnitID)
		})
		if err != nil {
			return expired, err
		}
		expired++
	}
	return expired, nil
}

package database

import (
	"errors"

	"github.com/Prayc/angaza-real-estate/internal/apperr"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"gorm.io/gorm"
)

// TenantUpdate enumerates the tenant fields a caller may change.
type TenantUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	IsActive *bool
}

// UpdateTenant applies a partial update to a user with the tenant role.
func (gdb *GormDB) UpdateTenant(id uint, upd TenantUpdate) (*models.User, error) {
	var tenant models.User
	err := gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND role = ?", id, models.RoleTenant).
			First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Tenant not found")
			}
			return err
		}

		if upd.Name != nil {
			tenant.Name = *upd.Name
		}
		if upd.Email != nil {
			tenant.Email = *upd.Email
		}
		if upd.Phone != nil {
			tenant.Phone = *upd.Phone
		}
		if upd.IsActive != nil {
			tenant.IsActive = *upd.IsActive
		}

		return tx.Save(&tenant).Error
	})
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// DeleteTenant removes a tenant account. Any active leases are
// force-terminated and their units vacated before the user row goes.
func (gdb *GormDB) DeleteTenant(id uint) error {
	return gdb.db.Transaction(func(tx *gorm.DB) error {
		var tenant models.User
		if err := tx.Where("id = ? AND role = ?", id, models.RoleTenant).
			First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Tenant not found")
			}
			return err
		}

		var activeLeases []models.Lease
		if err := tx.Where("tenant_id = ? AND status = ?", tenant.ID, models.LeaseActive).
			Find(&activeLeases).Error; err != nil {
			return err
		}

		for _, lease := range activeLeases {
			if err := tx.Model(&models.Lease{}).Where("id = ?", lease.ID).
				Update("status", models.LeaseTerminated).Error; err != nil {
				return err
			}
			if err := vacateUnit(tx, lease.UnitID); err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, tenant.ID).Error
	})
}

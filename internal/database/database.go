package database

import (
	"fmt"
	"time"

	"github.com/Prayc/angaza-real-estate/internal/config"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GormDB is the injected store handle. All cross-entity consistency
// rules live here as transactional methods.
type GormDB struct {
	db *gorm.DB
}

// NewGormDB opens a connection to the configured database.
func NewGormDB(cfg config.DatabaseConfig) (*GormDB, error) {
	var dialector gorm.Dialector

	switch cfg.Type {
	case "postgres":
		pg := cfg.Postgres
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			pg.Host, pg.Port, pg.User, pg.Password, pg.Database, pg.SSLMode)
		dialector = postgres.Open(dsn)
	case "mysql", "":
		my := cfg.MySQL
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			my.User, my.Password, my.Host, my.Port, my.Database)
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &GormDB{db: db}, nil
}

// NewGormDBFromDB creates a GormDB wrapper from an existing gorm.DB instance
func NewGormDBFromDB(db *gorm.DB) *GormDB {
	return &GormDB{db: db}
}

// DB returns the underlying gorm.DB instance
func (gdb *GormDB) DB() *gorm.DB {
	return gdb.db
}

func (gdb *GormDB) Close() error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates tables using GORM AutoMigrate
func (gdb *GormDB) InitSchema() error {
	return gdb.db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Unit{},
		&models.Lease{},
		&models.Maintenance{},
		&models.Payment{},
	)
}

// lockForUpdate applies a row lock inside a transaction. SQLite has no
// FOR UPDATE syntax; its single-writer transactions already serialize
// these updates.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// clampAvailable keeps availableUnits inside [0, totalUnits]. Decrements
// floor at zero rather than erroring.
func clampAvailable(available, total int) int {
	if available < 0 {
		return 0
	}
	if available > total {
		return total
	}
	return available
}

// recomputeAvailableUnits re-derives a property's availableUnits from its
// remaining units: total minus every unit not currently vacant. Used
// whenever incremental bookkeeping would drift (totalUnits edits, unit
// deletion).
func recomputeAvailableUnits(tx *gorm.DB, property *models.Property) error {
	var nonVacant int64
	err := tx.Model(&models.Unit{}).
		Where("property_id = ? AND status <> ?", property.ID, models.UnitVacant).
		Count(&nonVacant).Error
	if err != nil {
		return err
	}

	available := property.TotalUnits - int(nonVacant)
	if available < 0 {
		available = 0
	}
	property.AvailableUnits = available
	return tx.Model(&models.Property{}).Where("id = ?", property.ID).
		Update("available_units", available).Error
}

// occupyUnit marks a unit occupied and, when it was vacant, consumes one
// of the owning property's availableUnits. Lease creation and
// reactivation both route through here.
func occupyUnit(tx *gorm.DB, unitID uint) error {
	var unit models.Unit
	if err := lockForUpdate(tx).First(&unit, unitID).Error; err != nil {
		return err
	}

	if unit.Status == models.UnitOccupied {
		return nil
	}

	wasVacant := unit.Status == models.UnitVacant
	if err := tx.Model(&models.Unit{}).Where("id = ?", unit.ID).
		Update("status", models.UnitOccupied).Error; err != nil {
		return err
	}
	if !wasVacant {
		return nil
	}

	var property models.Property
	if err := lockForUpdate(tx).First(&property, unit.PropertyID).Error; err != nil {
		return err
	}

	available := clampAvailable(property.AvailableUnits-1, property.TotalUnits)
	return tx.Model(&models.Property{}).Where("id = ?", property.ID).
		Update("available_units", available).Error
}

// vacateUnit marks a unit vacant and restores the owning property's
// availableUnits. Lease termination and expiry both route through here so
// the two paths cannot diverge.
func vacateUnit(tx *gorm.DB, unitID uint) error {
	var unit models.Unit
	if err := lockForUpdate(tx).First(&unit, unitID).Error; err != nil {
		return err
	}

	if unit.Status == models.UnitVacant {
		return nil
	}

	if err := tx.Model(&models.Unit{}).Where("id = ?", unit.ID).
		Update("status", models.UnitVacant).Error; err != nil {
		return err
	}

	var property models.Property
	if err := lockForUpdate(tx).First(&property, unit.PropertyID).Error; err != nil {
		return err
	}

	available := clampAvailable(property.AvailableUnits+1, property.TotalUnits)
	return tx.Model(&models.Property{}).Where("id = ?", property.ID).
		Update("available_units", available).Error
}

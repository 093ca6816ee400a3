package database

import (
	"fmt"
	"testing"

	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *GormDB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := NewGormDBFromDB(db)
	require.NoError(t, store.InitSchema())
	return store
}

var userSeq int

func seedUser(t *testing.T, store *GormDB, role models.Role) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		Name:     fmt.Sprintf("%s %d", role, userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Password: "hashed",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, store.DB().Create(user).Error)
	return user
}

func seedProperty(t *testing.T, store *GormDB, landlordID uint, totalUnits int) *models.Property {
	t.Helper()
	property := &models.Property{
		Name:       fmt.Sprintf("Property %d", totalUnits),
		Address:    "1 Test Street",
		Type:       models.PropertyResidential,
		TotalUnits: totalUnits,
		LandlordID: landlordID,
	}
	require.NoError(t, store.CreateProperty(property))
	return property
}

func seedUnit(t *testing.T, store *GormDB, propertyID uint, number string, status models.UnitStatus) *models.Unit {
	t.Helper()
	unit := &models.Unit{
		UnitNumber: number,
		Type:       "apartment",
		Rent:       1000,
		Status:     status,
		PropertyID: propertyID,
	}
	require.NoError(t, store.CreateUnit(unit))
	return unit
}

func reloadProperty(t *testing.T, store *GormDB, id uint) *models.Property {
	t.Helper()
	var property models.Property
	require.NoError(t, store.DB().First(&property, id).Error)
	return &property
}

func reloadUnit(t *testing.T, store *GormDB, id uint) *models.Unit {
	t.Helper()
	var unit models.Unit
	require.NoError(t, store.DB().First(&unit, id).Error)
	return &unit
}

package models

import "time"

// UnitStatus is the occupancy state of a unit.
type UnitStatus string

const (
	UnitVacant      UnitStatus = "vacant"
	UnitOccupied    UnitStatus = "occupied"
	UnitMaintenance UnitStatus = "maintenance"
)

func (s UnitStatus) Valid() bool {
	switch s {
	case UnitVacant, UnitOccupied, UnitMaintenance:
		return true
	}
	return false
}

type Unit struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UnitNumber string     `gorm:"type:varchar(50);not null" json:"unitNumber"`
	Type       string     `gorm:"type:varchar(50);not null" json:"type"`
	Size       *float64   `json:"size,omitempty"`
	Rent       float64    `gorm:"not null" json:"rent"`
	Status     UnitStatus `gorm:"type:varchar(20);not null;default:'vacant';index" json:"status"`

	Description string `gorm:"type:text" json:"description,omitempty"`

	PropertyID uint      `gorm:"not null;index" json:"propertyId"`
	Property   *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`

	Leases []Lease `gorm:"foreignKey:UnitID" json:"leases,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Unit) TableName() string {
	return "units"
}

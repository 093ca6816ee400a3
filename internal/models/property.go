package models

import "time"

// PropertyType is the kind of building a property is.
type PropertyType string

const (
	PropertyResidential PropertyType = "residential"
	PropertyCommercial  PropertyType = "commercial"
	PropertyMixedUse    PropertyType = "mixed-use"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyResidential, PropertyCommercial, PropertyMixedUse:
		return true
	}
	return false
}

type Property struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Address     string       `gorm:"type:varchar(255);not null" json:"address"`
	Type        PropertyType `gorm:"type:varchar(20);not null" json:"type"`
	Description string       `gorm:"type:text" json:"description,omitempty"`

	// Invariant: 0 <= AvailableUnits <= TotalUnits. Maintained by unit and
	// lease transitions, never written directly from client input.
	TotalUnits     int `gorm:"not null" json:"totalUnits"`
	AvailableUnits int `gorm:"not null" json:"availableUnits"`

	Featured bool   `gorm:"not null;default:false" json:"featured"`
	Image    string `gorm:"type:varchar(500)" json:"image,omitempty"`

	LandlordID uint  `gorm:"not null;index" json:"landlordId"`
	Landlord   *User `gorm:"foreignKey:LandlordID" json:"landlord,omitempty"`

	Units []Unit `gorm:"foreignKey:PropertyID" json:"units,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Property) TableName() string {
	return "properties"
}

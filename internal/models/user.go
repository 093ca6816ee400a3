package models

import "time"

// Role is the closed set of user roles. Authorization rules switch
// exhaustively on this type rather than on raw request strings.
type Role string

const (
	RoleAdmin           Role = "admin"
	RolePropertyManager Role = "property_manager"
	RoleLandlord        Role = "landlord"
	RoleTenant          Role = "tenant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePropertyManager, RoleLandlord, RoleTenant:
		return true
	}
	return false
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;default:'tenant';index" json:"role"`
	Phone    string `gorm:"type:varchar(50)" json:"phone,omitempty"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`

	// CreatedBy tracks which landlord created a tenant account. Lookup only,
	// it confers no ownership.
	CreatedBy *uint `gorm:"index" json:"createdBy,omitempty"`
	Creator   *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`

	Properties []Property `gorm:"foreignKey:LandlordID" json:"properties,omitempty"`
	Leases     []Lease    `gorm:"foreignKey:TenantID" json:"leases,omitempty"`
	Payments   []Payment  `gorm:"foreignKey:TenantID" json:"payments,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

package models

import "time"

// LeaseStatus is the lifecycle state of a lease. Only an active lease
// implies current occupancy of the unit.
type LeaseStatus string

const (
	LeaseActive     LeaseStatus = "active"
	LeaseExpired    LeaseStatus = "expired"
	LeaseTerminated LeaseStatus = "terminated"
)

func (s LeaseStatus) Valid() bool {
	switch s {
	case LeaseActive, LeaseExpired, LeaseTerminated:
		return true
	}
	return false
}

type Lease struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	StartDate       time.Time   `gorm:"not null" json:"startDate"`
	EndDate         time.Time   `gorm:"not null" json:"endDate"`
	RentAmount      float64     `gorm:"not null" json:"rentAmount"`
	SecurityDeposit float64     `gorm:"not null" json:"securityDeposit"`
	Status          LeaseStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	TenantID uint  `gorm:"not null;index" json:"tenantId"`
	Tenant   *User `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`

	UnitID uint  `gorm:"not null;index" json:"unitId"`
	Unit   *Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`

	// Document is a reference returned by file storage, stored as-is.
	Document string `gorm:"type:varchar(500)" json:"document,omitempty"`

	Payments []Payment `gorm:"foreignKey:LeaseID" json:"payments,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Lease) TableName() string {
	return "leases"
}

// IsActive reports whether the lease currently occupies its unit.
func (l *Lease) IsActive() bool {
	return l.Status == LeaseActive
}

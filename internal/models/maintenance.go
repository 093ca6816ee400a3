package models

import "time"

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in-progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenancePending, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled:
		return true
	}
	return false
}

type MaintenancePriority string

const (
	PriorityLow       MaintenancePriority = "low"
	PriorityNormal    MaintenancePriority = "normal"
	PriorityHigh      MaintenancePriority = "high"
	PriorityEmergency MaintenancePriority = "emergency"
)

func (p MaintenancePriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityEmergency:
		return true
	}
	return false
}

type Maintenance struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Title       string              `gorm:"type:varchar(255);not null" json:"title"`
	Description string              `gorm:"type:text;not null" json:"description"`
	Status      MaintenanceStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority    MaintenancePriority `gorm:"type:varchar(20);not null;default:'normal'" json:"priority"`

	CreatedBy uint  `gorm:"not null;index" json:"createdBy"`
	Requester *User `gorm:"foreignKey:CreatedBy" json:"requester,omitempty"`

	UnitID uint  `gorm:"not null;index" json:"unitId"`
	Unit   *Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`

	AssignedTo *uint `gorm:"index" json:"assignedTo,omitempty"`
	Assignee   *User `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Maintenance) TableName() string {
	return "maintenance_requests"
}

package models

import "time"

type PaymentType string

const (
	PaymentRent        PaymentType = "rent"
	PaymentDeposit     PaymentType = "deposit"
	PaymentMaintenance PaymentType = "maintenance"
	PaymentOther       PaymentType = "other"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentRent, PaymentDeposit, PaymentMaintenance, PaymentOther:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodMobileMoney  PaymentMethod = "mobile_money"
	MethodCard         PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodMobileMoney, MethodCard:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Amount        float64       `gorm:"not null" json:"amount"`
	PaymentDate   time.Time     `gorm:"not null" json:"paymentDate"`
	PaymentType   PaymentType   `gorm:"type:varchar(20);not null" json:"paymentType"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Reference     string        `gorm:"type:varchar(255)" json:"reference,omitempty"`

	TenantID uint  `gorm:"not null;index" json:"tenantId"`
	Tenant   *User `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`

	LeaseID uint   `gorm:"not null;index" json:"leaseId"`
	Lease   *Lease `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Payment) TableName() string {
	return "payments"
}

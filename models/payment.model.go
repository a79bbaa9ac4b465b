package models

import "gorm.io/gorm"

// PaymentStatus defines the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// Payment records one completed course purchase. Rows are insert-only: the
// webhook flow never mutates a payment after creation.
type Payment struct {
	gorm.Model
	ReferenceID  string `gorm:"type:varchar(36);uniqueIndex" json:"referenceId"` // internal uuid
	StudentID    uint   `gorm:"not null;index" json:"studentId"`
	CourseID     uint   `gorm:"not null;index" json:"courseId"`
	InstructorID uint   `gorm:"not null;index" json:"instructorId"`

	Amount   int64  `gorm:"not null" json:"amount"` // smallest currency unit
	Currency string `gorm:"type:varchar(3);not null" json:"currency"`

	// PlatformFee + InstructorPayout always equals Amount.
	PlatformFee      int64 `gorm:"not null" json:"platformFee"`
	InstructorPayout int64 `gorm:"not null" json:"instructorPayout"`

	// Payment provider details
	Gateway       string        `gorm:"type:varchar(50)" json:"gateway"`
	PaymentMethod string        `gorm:"type:varchar(50)" json:"paymentMethod"` // card, upi, netbanking
	TransactionID string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"transactionId"`
	Status        PaymentStatus `gorm:"type:varchar(20);default:'COMPLETED'" json:"status"`
	RawPayload    string        `gorm:"type:text" json:"-"` // full provider event JSON

	IsDeleted bool `gorm:"default:false" json:"isDeleted"`

	// Relations - omit in JSON by default (only load when needed)
	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

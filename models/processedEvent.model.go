package models

import "gorm.io/gorm"

// EventOutcome is the terminal outcome recorded for a provider transaction id
type EventOutcome string

const (
	EventOutcomeCompleted EventOutcome = "COMPLETED"
	EventOutcomeRejected  EventOutcome = "REJECTED"
)

// ProcessedEvent is the idempotency ledger. One row per provider transaction
// id; the unique index turns a concurrent duplicate delivery into an insert
// conflict instead of a second set of side effects. Rows must outlive the
// provider's maximum redelivery window (see the retention scheduler).
//
// REJECTED rows double as a reconciliation record: they keep the transaction
// id terminal (the provider stops retrying) and stay queryable for manual
// review instead of existing only in logs.
type ProcessedEvent struct {
	gorm.Model
	TransactionID string       `gorm:"type:varchar(100);uniqueIndex;not null" json:"transactionId"`
	EventType     string       `gorm:"type:varchar(50)" json:"eventType"`
	Outcome       EventOutcome `gorm:"type:varchar(20);not null" json:"outcome"`
	Reason        string       `gorm:"type:text" json:"reason"`
	PaymentID     uint         `gorm:"default:0" json:"paymentId"` // 0 when rejected
}

func (ProcessedEvent) TableName() string {
	return "processed_events"
}

package payments

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// Provider event types. Only completed payments carry financial side effects;
// every other type is acknowledged and dropped.
const (
	EventTypePaymentCompleted = "payment.completed"
	EventTypePaymentFailed    = "payment.failed"
	EventTypePaymentPending   = "payment.pending"
)

// CompletionEvent is the parsed webhook payload for a purchase notification.
// Amount is a pointer so that a present-but-zero amount (free courses are
// legal) validates, while a missing amount still fails `required`.
type CompletionEvent struct {
	Type          string `json:"type" validate:"required"`
	TransactionID string `json:"transaction_id" validate:"required,max=100"`
	StudentID     uint   `json:"student_id" validate:"required"`
	CourseID      uint   `json:"course_id" validate:"required"`
	Amount        *int64 `json:"amount" validate:"required,gte=0"` // smallest currency unit
	Currency      string `json:"currency" validate:"required,len=3"`
	Gateway       string `json:"gateway"`
	PaymentMethod string `json:"payment_method"`

	raw []byte // original payload, persisted alongside the Payment row
}

var validate = validator.New()

// ParseEvent decodes and validates a raw webhook body. Signature verification
// must already have happened on the same bytes.
func ParseEvent(body []byte) (*CompletionEvent, error) {
	evt := new(CompletionEvent)
	if err := json.Unmarshal(body, evt); err != nil {
		return nil, err
	}
	if err := validate.Struct(evt); err != nil {
		return nil, err
	}
	evt.raw = body
	return evt, nil
}

// RawPayload returns the bytes the event was parsed from.
func (e *CompletionEvent) RawPayload() string {
	return string(e.raw)
}

package payments

import "errors"

var (
	// ErrInvalidSignature covers every verification failure (bad signature,
	// stale or malformed timestamp). Callers must not be able to tell which.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrAlreadyProcessed means this transaction id already has a terminal
	// outcome; redeliveries are acknowledged with no further effects.
	ErrAlreadyProcessed = errors.New("transaction already processed")

	// ErrIgnoredEventType means the event is not a payment completion and
	// carries no financial side effects.
	ErrIgnoredEventType = errors.New("event type carries no side effects")

	ErrCourseNotFound  = errors.New("course not found or not active")
	ErrAmountMismatch  = errors.New("event amount does not match course price")
	ErrAlreadyEnrolled = errors.New("student already enrolled in this course")
)

// IsRejection reports whether err is a validation outcome that is terminal
// for the transaction id and must be acknowledged to the provider. Anything
// else coming out of ProcessCompletion is a storage failure: the provider
// should redeliver.
func IsRejection(err error) bool {
	return errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrAmountMismatch) ||
		errors.Is(err, ErrAlreadyEnrolled)
}

package payments

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms/models"
)

// ProcessCompletion applies all side effects of a verified payment-completion
// event exactly once: the idempotency-ledger insert, the Payment row, the
// Enrollment row and the course counter increment commit or roll back as one
// transaction.
//
// Validation failures (course missing, amount mismatch, already enrolled)
// commit only a REJECTED ledger row so the transaction id turns terminal and
// the provider stops redelivering; the returned sentinel tells the handler to
// acknowledge. Storage failures roll everything back and leave the
// transaction id unseen so redelivery can retry.
func ProcessCompletion(db *gorm.DB, evt *CompletionEvent) (*models.Payment, error) {
	if evt.Type != EventTypePaymentCompleted {
		return nil, ErrIgnoredEventType
	}
	if evt.Amount == nil {
		return nil, errors.New("completion event missing amount")
	}
	amount := *evt.Amount

	// Fast path for redeliveries; the authoritative check is the unique
	// index hit inside the transaction.
	var prior models.ProcessedEvent
	if err := db.Where("transaction_id = ?", evt.TransactionID).First(&prior).Error; err == nil {
		return nil, ErrAlreadyProcessed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check idempotency ledger: %w", err)
	}

	var payment models.Payment
	var rejection error

	err := db.Transaction(func(tx *gorm.DB) error {
		ledger := models.ProcessedEvent{
			TransactionID: evt.TransactionID,
			EventType:     evt.Type,
			Outcome:       models.EventOutcomeCompleted,
		}
		if err := tx.Create(&ledger).Error; err != nil {
			if isDuplicateKey(err) {
				// A concurrent delivery of the same transaction id won the
				// insert; this one must produce no effects.
				return ErrAlreadyProcessed
			}
			return fmt.Errorf("mark transaction processed: %w", err)
		}

		// reject downgrades the transaction to the single REJECTED ledger
		// write and commits it; the sentinel reaches the caller via rejection.
		reject := func(reason string, cause error) error {
			ledger.Outcome = models.EventOutcomeRejected
			ledger.Reason = reason
			if err := tx.Save(&ledger).Error; err != nil {
				return fmt.Errorf("record rejected event: %w", err)
			}
			rejection = cause
			return nil
		}

		var course models.Course
		if err := tx.Where("id = ? AND is_deleted = false AND status = ?", evt.CourseID, "ACTIVE").
			First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return reject(fmt.Sprintf("course %d not found or not active", evt.CourseID), ErrCourseNotFound)
			}
			return fmt.Errorf("load course: %w", err)
		}

		if course.Price != amount || !strings.EqualFold(course.Currency, evt.Currency) {
			return reject(
				fmt.Sprintf("expected %d %s, event carried %d %s", course.Price, course.Currency, amount, evt.Currency),
				ErrAmountMismatch,
			)
		}

		var existing models.Enrollment
		err := tx.Where("student_id = ? AND course_id = ? AND is_deleted = false", evt.StudentID, evt.CourseID).
			First(&existing).Error
		if err == nil {
			return reject(
				fmt.Sprintf("student %d already enrolled in course %d", evt.StudentID, evt.CourseID),
				ErrAlreadyEnrolled,
			)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check existing enrollment: %w", err)
		}

		platformFee, instructorPayout := SplitFee(amount, FeeRate())

		payment = models.Payment{
			ReferenceID:      uuid.NewString(),
			StudentID:        evt.StudentID,
			CourseID:         course.ID,
			InstructorID:     course.InstructorID,
			Amount:           amount,
			Currency:         course.Currency,
			PlatformFee:      platformFee,
			InstructorPayout: instructorPayout,
			Gateway:          evt.Gateway,
			PaymentMethod:    evt.PaymentMethod,
			TransactionID:    evt.TransactionID,
			Status:           models.PaymentStatusCompleted,
			RawPayload:       evt.RawPayload(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		enrollment := models.Enrollment{
			StudentID: evt.StudentID,
			CourseID:  course.ID,
			PaymentID: payment.ID,
			Status:    "ENROLLED",
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if isDuplicateKey(err) {
				// Two different transaction ids raced for the same
				// (student, course) pair and both passed the pre-check.
				// Roll the whole unit back; the rejection is recorded below.
				return ErrAlreadyEnrolled
			}
			return fmt.Errorf("insert enrollment: %w", err)
		}

		// Single-statement increment; a read-modify-write here would lose
		// updates under concurrent completions for the same course.
		if err := tx.Model(&models.Course{}).Where("id = ?", course.ID).
			UpdateColumn("enrollment_count", gorm.Expr("enrollment_count + ?", 1)).Error; err != nil {
			return fmt.Errorf("increment enrollment count: %w", err)
		}

		ledger.PaymentID = payment.ID
		if err := tx.Save(&ledger).Error; err != nil {
			return fmt.Errorf("link ledger to payment: %w", err)
		}
		return nil
	})

	if errors.Is(err, ErrAlreadyEnrolled) {
		// The duplicate-pair race rolled the transaction back, so the
		// rejection row is written on its own. If even that insert conflicts,
		// another delivery already made the id terminal.
		recordRejection(db, evt, fmt.Sprintf("student %d already enrolled in course %d", evt.StudentID, evt.CourseID))
		return nil, ErrAlreadyEnrolled
	}
	if err != nil {
		return nil, err
	}
	if rejection != nil {
		return nil, rejection
	}
	return &payment, nil
}

func recordRejection(db *gorm.DB, evt *CompletionEvent, reason string) {
	ledger := models.ProcessedEvent{
		TransactionID: evt.TransactionID,
		EventType:     evt.Type,
		Outcome:       models.EventOutcomeRejected,
		Reason:        reason,
	}
	if err := db.Create(&ledger).Error; err != nil && !isDuplicateKey(err) {
		log.Printf("[WEBHOOK] Failed to record rejection for %s: %v", evt.TransactionID, err)
	}
}

// isDuplicateKey matches unique-constraint violations across the postgres and
// sqlite dialects. TranslateError is enabled on both connections, the string
// checks cover drivers that predate it.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

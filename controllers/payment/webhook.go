package paymentController

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/payments"
	"lms/utils"
)

// HandleProviderWebhook receives asynchronous payment notifications from the
// provider. Contract with the provider's redelivery mechanism:
//   - 400 only when the signature (or its timestamp) does not verify;
//   - 200 {received:true} for every processed, rejected or ignored event, so
//     redelivery stops;
//   - 503 when durable storage failed, so the provider redelivers.
func HandleProviderWebhook(c *fiber.Ctx) error {
	body := c.Body()
	tolerance := time.Duration(config.AppConfig.WebhookToleranceSeconds) * time.Second

	if err := payments.VerifySignature(body, c.Get(payments.SignatureHeader), config.AppConfig.WebhookSecret, tolerance); err != nil {
		// No detail on purpose: the caller must not learn whether the
		// signature or the timestamp failed.
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Webhook verification failed!", nil)
	}

	evt, err := payments.ParseEvent(body)
	if err != nil {
		// Authenticated but malformed. Ack so the provider does not loop on a
		// payload that will never parse.
		log.Printf("[WEBHOOK] Dropping malformed event: %v", err)
		return ackReceived(c)
	}

	if evt.Type != payments.EventTypePaymentCompleted {
		// Only completed payments carry financial side effects.
		return ackReceived(c)
	}

	payment, err := payments.ProcessCompletion(database.Database.Db, evt)
	switch {
	case err == nil:
		log.Printf("[WEBHOOK] Payment %s completed: student=%d course=%d amount=%d fee=%d payout=%d",
			evt.TransactionID, evt.StudentID, evt.CourseID, payment.Amount, payment.PlatformFee, payment.InstructorPayout)
		go notifyEnrollment(payment)
		return ackReceived(c)

	case errors.Is(err, payments.ErrAlreadyProcessed):
		log.Printf("[WEBHOOK] Duplicate delivery for %s, already processed", evt.TransactionID)
		return ackReceived(c)

	case errors.Is(err, payments.ErrIgnoredEventType):
		return ackReceived(c)

	case errors.Is(err, payments.ErrAmountMismatch):
		log.Printf("[WEBHOOK] Amount mismatch for %s (course=%d), flagged for review", evt.TransactionID, evt.CourseID)
		go utils.SendAmountMismatchAlert(evt.TransactionID, evt.CourseID, *evt.Amount, evt.Currency)
		return ackReceived(c)

	case payments.IsRejection(err):
		log.Printf("[WEBHOOK] Rejected event %s: %v", evt.TransactionID, err)
		return ackReceived(c)

	default:
		// Storage failure: do not ack, provider will redeliver.
		log.Printf("[WEBHOOK] Processing failed for %s: %v", evt.TransactionID, err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Event processing failed, please retry!", nil)
	}
}

func ackReceived(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
}

// notifyEnrollment hands the student confirmation off to the notification
// service. Best effort: delivery problems are logged, never surfaced to the
// provider.
func notifyEnrollment(payment *models.Payment) {
	var student models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", payment.StudentID).First(&student).Error; err != nil {
		log.Printf("[WEBHOOK] Cannot notify student %d: %v", payment.StudentID, err)
		return
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ?", payment.CourseID).First(&course).Error; err != nil {
		log.Printf("[WEBHOOK] Cannot load course %d for notification: %v", payment.CourseID, err)
		return
	}

	if err := utils.SendEnrollmentNotification(student.Email, student.Name, course.Title, payment.ReferenceID); err != nil {
		log.Printf("[WEBHOOK] Enrollment notification failed for payment %s: %v", payment.ReferenceID, err)
	}
}

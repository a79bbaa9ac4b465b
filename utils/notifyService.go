package utils

import (
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"

	"lms/config"
)

// SendEnrollmentNotification asks the notification service to mail the
// student their enrollment confirmation. Student-facing delivery (templates,
// retries, unsubscribes) is that service's problem, not ours.
func SendEnrollmentNotification(email, name, courseTitle, paymentRef string) error {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+config.AppConfig.NotifyApiKey).
		SetBody(map[string]interface{}{
			"template":    "enrollment_confirmation",
			"email":       email,
			"name":        name,
			"courseTitle": courseTitle,
			"paymentRef":  paymentRef,
		}).
		Post(config.AppConfig.NotifyApiURL)
	if err != nil {
		log.Printf("[NOTIFY] Failed to reach notification service: %v", err)
		return err
	}
	if resp.StatusCode() >= 400 {
		log.Printf("[NOTIFY] Notification service returned %d: %s", resp.StatusCode(), resp.String())
		return fmt.Errorf("notification service returned status %d", resp.StatusCode())
	}

	log.Printf("[NOTIFY] Enrollment confirmation queued for %s (payment %s)", email, paymentRef)
	return nil
}

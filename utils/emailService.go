package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"lms/config"
)

// SendEmail sends an HTML email through SendGrid
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridApiKey == "" {
		log.Printf("[EMAIL] SENDGRID_API_KEY not set, skipping email %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("Course Marketplace", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending email to %s: %v", toEmail, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("[EMAIL] SendGrid rejected email to %s: %d %s", toEmail, response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	return nil
}

// SendAmountMismatchAlert mails the review inbox when a webhook event's
// amount disagrees with the course price. The event itself is already
// acknowledged and recorded as rejected; this is the manual-review flag.
func SendAmountMismatchAlert(transactionID string, courseID uint, amount int64, currency string) {
	if config.AppConfig.ReviewAlertEmail == "" {
		log.Println("[EMAIL] REVIEW_ALERT_EMAIL not set, mismatch alert not sent")
		return
	}

	subject := fmt.Sprintf("Payment review needed: %s", transactionID)
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif;">
				<h2>Amount mismatch on payment webhook</h2>
				<p>Transaction <strong>%s</strong> for course <strong>%d</strong> carried
				<strong>%d %s</strong>, which does not match the course price.</p>
				<p>The event was rejected and recorded in the processed-events ledger.
				Check for tampering or a price change racing the checkout.</p>
			</body>
		</html>
	`, transactionID, courseID, amount, currency)

	if err := SendEmail(config.AppConfig.ReviewAlertEmail, "Payments Review", subject, body); err != nil {
		log.Printf("[EMAIL] Failed to send mismatch alert for %s: %v", transactionID, err)
	}
}

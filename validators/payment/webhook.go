package paymentValidator

import (
	"lms/middleware"
	"lms/payments"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Webhook rejects deliveries with no signature header before the handler
// touches the body; a missing header can never verify, and 4xx is reserved
// for verification failures. Everything else (content type, body shape) is
// the handler's problem: the signature is checked against the raw bytes and
// an authenticated-but-unparseable body is acknowledged, not refused.
func Webhook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.TrimSpace(c.Get(payments.SignatureHeader)) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Webhook verification failed!", nil)
		}

		return c.Next()
	}
}

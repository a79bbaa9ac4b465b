package paymentRoutes

import (
	controllers "lms/controllers/payment"
	"lms/middleware"
	validators "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up the provider webhook and payment read routes
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	// Provider callback: authenticated only by its signature, never by JWT
	paymentGroup.Post("/webhook", validators.Webhook(), controllers.HandleProviderWebhook)

	paymentGroup.Get("/history", middleware.JWTMiddleware, validators.PaymentHistory(), controllers.GetPaymentHistory)
	paymentGroup.Get("/earnings", middleware.JWTMiddleware, controllers.GetInstructorEarnings)
}

package paymentValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// PaymentHistory validates pagination and the optional status filter
func PaymentHistory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `query:"page"`
			Limit  *int   `query:"limit"`
			Status string `query:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			errors["limit"] = "Limit must be between 1 and 100!"
		}

		switch reqData.Status {
		case "", "PENDING", "COMPLETED", "FAILED", "REFUNDED":
		default:
			errors["status"] = "Invalid status filter!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPaymentHistory", reqData)
		return c.Next()
	}
}

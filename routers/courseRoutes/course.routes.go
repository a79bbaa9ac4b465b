package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/enrollments", middleware.JWTMiddleware, validators.GetUserEnrollments(), controllers.GetEnrollments)
}

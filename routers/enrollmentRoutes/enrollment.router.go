package enrollmentRoutes

import (
	controllers "coursebay/controllers/enrollment"
	"coursebay/middleware"
	validators "coursebay/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up lecture progress and enrollment lookup routes
func SetupEnrollmentRoutes(app *fiber.App) {
	enrollmentGroup := app.Group("/enrollment")

	enrollmentGroup.Post("/:id/lecture/complete", middleware.JWTMiddleware, validators.LectureProgress(), controllers.CompleteLecture)
	enrollmentGroup.Post("/:id/lecture/incomplete", middleware.JWTMiddleware, validators.LectureProgress(), controllers.IncompleteLecture)
	enrollmentGroup.Get("/course/:courseId", middleware.JWTMiddleware, validators.EnrollmentByCourse(), controllers.GetEnrollmentByCourse)
}

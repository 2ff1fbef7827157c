package courseRoutes

import (
	controllers "coursebay/controllers/course"
	"coursebay/middleware"
	"coursebay/models"
	validators "coursebay/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog and course administration routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	adminOnly := middleware.RequireRole(models.RoleAdmin)

	courseGroup.Post("/", middleware.JWTMiddleware, adminOnly, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Post("/:id/lecture", middleware.JWTMiddleware, adminOnly, validators.AddLecture(), controllers.AddLecture)
	courseGroup.Put("/:id/publish", middleware.JWTMiddleware, adminOnly, validators.CourseID(), controllers.PublishCourse)

	// Public catalog
	courseGroup.Get("/list", controllers.GetAllCourses)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseDetails)
}

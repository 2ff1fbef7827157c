package couponRoutes

import (
	controllers "coursebay/controllers/coupon"
	"coursebay/middleware"
	"coursebay/models"
	validators "coursebay/validators/coupon"

	"github.com/gofiber/fiber/v2"
)

// SetupCouponRoutes sets up coupon administration and validation routes
func SetupCouponRoutes(app *fiber.App) {
	couponGroup := app.Group("/coupon")

	adminOnly := middleware.RequireRole(models.RoleAdmin)

	couponGroup.Post("/", middleware.JWTMiddleware, adminOnly, validators.CreateCoupon(), controllers.CreateCoupon)
	couponGroup.Get("/course/:courseId", middleware.JWTMiddleware, adminOnly, validators.CouponsByCourse(), controllers.GetCouponsByCourse)
	couponGroup.Get("/:id", middleware.JWTMiddleware, adminOnly, validators.CouponID(), controllers.GetCoupon)
	couponGroup.Put("/:id", middleware.JWTMiddleware, adminOnly, validators.CouponID(), validators.UpdateCoupon(), controllers.UpdateCoupon)
	couponGroup.Delete("/:id", middleware.JWTMiddleware, adminOnly, validators.CouponID(), controllers.DeleteCoupon)

	// Public price preview; the per-student check needs authentication
	couponGroup.Post("/validate", validators.ValidateCoupon(), controllers.ValidateCoupon)
	couponGroup.Post("/validate-enrollment", middleware.JWTMiddleware, validators.ValidateCoupon(), controllers.ValidateCouponForEnrollment)
}

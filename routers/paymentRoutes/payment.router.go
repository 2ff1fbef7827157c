package paymentRoutes

import (
	controllers "coursebay/controllers/payment"
	"coursebay/middleware"
	validators "coursebay/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up payment initiation, webhook and verification routes
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/initiate", middleware.JWTMiddleware, validators.InitiatePayment(), controllers.InitiatePayment)

	// Gateway-originated callback; authenticated by payload signature, not JWT
	paymentGroup.Post("/webhook", validators.Webhook(), controllers.HandleWebhook)

	paymentGroup.Get("/verify/:transactionId", middleware.JWTMiddleware, validators.VerifyPayment(), controllers.VerifyPayment)
	paymentGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollments)
}

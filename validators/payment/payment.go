package paymentValidator

import (
	"coursebay/middleware"
	"coursebay/services"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type InitiatePaymentRequest struct {
	CourseID   uint   `json:"courseId" validate:"required"`
	CouponCode string `json:"couponCode"`
}

func InitiatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(InitiatePaymentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				if fieldErr.Field() == "CourseID" {
					errors["courseId"] = "Course ID is required!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInitiatePayment", reqData)
		return c.Next()
	}
}

func Webhook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := new(services.WebhookPayload)
		if err := c.BodyParser(payload); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook payload!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(payload.TransactionID) == "" {
			errors["transaction_id"] = "Transaction ID is required!"
		}
		if strings.TrimSpace(payload.PaymentStatus) == "" {
			errors["payment_status"] = "Payment status is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWebhook", payload)
		return c.Next()
	}
}

func VerifyPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		transactionID := strings.TrimSpace(c.Params("transactionId"))
		if transactionID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Transaction ID is required!", nil)
		}

		c.Locals("transactionID", transactionID)
		return c.Next()
	}
}

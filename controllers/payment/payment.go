package paymentController

import (
	"coursebay/config"
	"coursebay/database"
	"coursebay/middleware"
	"coursebay/models"
	"coursebay/services"
	"coursebay/utils"
	paymentValidator "coursebay/validators/payment"
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// InitiatePayment prices the course (with optional coupon), prepares the
// enrollment and asks the gateway for a hosted checkout session.
func InitiatePayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	db := database.Database.Db
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedInitiatePayment").(*paymentValidator.InitiatePaymentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := services.InitiatePayment(db, userID, reqData.CourseID, reqData.CouponCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, services.ErrAlreadyEnrolled):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You are already enrolled in this course!", nil)
		case errors.Is(err, services.ErrCouponNotFound):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid coupon code!", nil)
		case errors.Is(err, services.ErrCouponExpired):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Coupon has expired!", nil)
		case errors.Is(err, services.ErrCouponLimitReached):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Coupon usage limit reached!", nil)
		case errors.Is(err, services.ErrCouponAlreadyUsed):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You have already used this coupon!", nil)
		default:
			log.Printf("[PAYMENT] Initiation error: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to initiate payment!", nil)
		}
	}

	enrollment := result.Enrollment

	checkout := &utils.CheckoutRequest{
		FullName: user.Name,
		Email:    user.Email,
		Amount:   result.FinalAmount,
		Metadata: utils.CheckoutMetadata{
			StudentID:      strconv.FormatUint(uint64(userID), 10),
			CourseID:       strconv.FormatUint(uint64(reqData.CourseID), 10),
			EnrollmentID:   strconv.FormatUint(uint64(enrollment.ID), 10),
			TransactionID:  enrollment.TransactionID,
			CouponUsed:     result.CouponCode,
			DiscountAmount: result.DiscountAmount,
		},
		RedirectURL: config.AppConfig.PaymentSuccessURL(),
		CancelURL:   config.AppConfig.PaymentCancelURL(),
		WebhookURL:  config.AppConfig.PaymentWebhookURL(),
	}

	gatewayResp, err := utils.CreateCheckout(checkout)
	if err != nil {
		msg := "Payment initiation failed!"
		if gatewayResp != nil && gatewayResp.Message != "" {
			msg = gatewayResp.Message
		}
		if markErr := services.MarkInitiationFailed(db, enrollment.ID, msg); markErr != nil {
			log.Printf("[PAYMENT] Failed to mark enrollment %d failed: %v", enrollment.ID, markErr)
		}
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment initiated successfully!", fiber.Map{
		"payment_url":     gatewayResp.PaymentURL,
		"transaction_id":  enrollment.TransactionID,
		"amount":          result.FinalAmount,
		"discount":        result.DiscountAmount,
		"original_amount": result.OriginalAmount,
	})
}

// HandleWebhook receives the gateway's asynchronous payment callback.
// Duplicate deliveries are acknowledged with success without touching state.
func HandleWebhook(c *fiber.Ctx) error {
	payload, ok := c.Locals("validatedWebhook").(*services.WebhookPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook payload!", nil)
	}

	outcome, err := services.ReconcilePayment(database.Database.Db, payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEnrollmentNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		case errors.Is(err, services.ErrUnknownPaymentStatus):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown payment status!", nil)
		default:
			log.Printf("[PAYMENT] Webhook processing error: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Webhook processing failed!", nil)
		}
	}

	if !outcome.Transitioned {
		log.Printf("[PAYMENT] Duplicate webhook for transaction %s ignored", payload.TransactionID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Webhook processed!", nil)
}

// VerifyPayment returns the current state of a transaction for the client to poll
func VerifyPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	transactionID := c.Locals("transactionID").(string)

	var enrollment models.Enrollment
	err := database.Database.Db.
		Where("transaction_id = ? AND student_id = ?", transactionID, userID).
		Preload("Course").
		First(&enrollment).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment status fetched!", fiber.Map{
		"enrollment_id":   enrollment.ID,
		"transaction_id":  enrollment.TransactionID,
		"payment_status":  enrollment.PaymentStatus,
		"amount":          enrollment.Amount,
		"original_amount": enrollment.OriginalAmount,
		"discount_amount": enrollment.DiscountAmount,
		"enrolled_at":     enrollment.EnrolledAt,
		"course": fiber.Map{
			"id":        enrollment.Course.ID,
			"title":     enrollment.Course.Title,
			"thumbnail": enrollment.Course.Thumbnail,
		},
	})
}

// GetUserEnrollments lists the authenticated student's enrollments, newest first
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	err := database.Database.Db.
		Where("student_id = ? AND is_deleted = ?", userID, false).
		Preload("Course").
		Order("created_at desc").
		Find(&enrollments).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	list := make([]fiber.Map, 0, len(enrollments))
	for _, enrollment := range enrollments {
		list = append(list, fiber.Map{
			"id":             enrollment.ID,
			"payment_status": enrollment.PaymentStatus,
			"amount":         enrollment.Amount,
			"enrolled_at":    enrollment.EnrolledAt,
			"progress":       enrollment.Progress,
			"course": fiber.Map{
				"id":        enrollment.Course.ID,
				"title":     enrollment.Course.Title,
				"thumbnail": enrollment.Course.Thumbnail,
				"duration":  enrollment.Course.Duration,
			},
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", list)
}

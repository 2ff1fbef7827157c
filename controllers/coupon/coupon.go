package couponController

import (
	"coursebay/database"
	"coursebay/middleware"
	"coursebay/models"
	"coursebay/services"
	couponValidator "coursebay/validators/coupon"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// CreateCoupon creates a discount code scoped to one course (admin only)
func CreateCoupon(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateCoupon").(*couponValidator.CreateCouponData)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if course exists
	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check if coupon code already exists
	var existing models.Coupon
	if err := db.Where("code = ? AND is_deleted = ?", reqData.Code, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Coupon code already exists!", nil)
	}

	coupon := models.Coupon{
		Code:          reqData.Code,
		DiscountType:  reqData.DiscountType,
		DiscountValue: reqData.DiscountValue,
		ExpiryDate:    reqData.ExpiryDate,
		CourseID:      reqData.CourseID,
		UsageLimit:    reqData.UsageLimit,
	}

	if err := db.Create(&coupon).Error; err != nil {
		log.Printf("[COUPON] Create error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create coupon!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Coupon created successfully!", coupon)
}

// GetCouponsByCourse lists all coupons attached to a course (admin only)
func GetCouponsByCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var coupons []models.Coupon
	err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at desc").
		Find(&coupons).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch coupons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupons fetched successfully!", fiber.Map{
		"coupons": coupons,
		"count":   len(coupons),
	})
}

// GetCoupon fetches a single coupon by id (admin only)
func GetCoupon(c *fiber.Ctx) error {
	couponID := c.Locals("couponID").(uint)

	var coupon models.Coupon
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", couponID, false).First(&coupon).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon fetched successfully!", coupon)
}

// UpdateCoupon updates coupon fields the admin actually sent
func UpdateCoupon(c *fiber.Ctx) error {
	couponID := c.Locals("couponID").(uint)
	reqData, ok := c.Locals("validatedUpdateCoupon").(*couponValidator.UpdateCouponData)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var coupon models.Coupon
	if err := db.Where("id = ? AND is_deleted = ?", couponID, false).First(&coupon).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon not found!", nil)
	}

	if reqData.Code != nil && *reqData.Code != coupon.Code {
		var existing models.Coupon
		err := db.Where("code = ? AND id <> ? AND is_deleted = ?", *reqData.Code, couponID, false).
			First(&existing).Error
		if err == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Coupon code already exists!", nil)
		}
		coupon.Code = *reqData.Code
	}

	if errs := applyCouponUpdate(&coupon, reqData); len(errs) > 0 {
		return middleware.ValidationErrorResponse(c, errs)
	}

	if err := db.Save(&coupon).Error; err != nil {
		log.Printf("[COUPON] Update error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update coupon!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon updated successfully!", coupon)
}

// applyCouponUpdate merges the sent fields into the stored coupon and checks
// the invariants that only hold against the merged result: a percentage value
// stays within 100 whichever field the request carried, and the usage limit
// never drops below what has already been used.
func applyCouponUpdate(coupon *models.Coupon, reqData *couponValidator.UpdateCouponData) map[string]string {
	if reqData.DiscountType != nil {
		coupon.DiscountType = *reqData.DiscountType
	}
	if reqData.DiscountValue != nil {
		coupon.DiscountValue = *reqData.DiscountValue
	}
	if reqData.ExpiryDate != nil {
		coupon.ExpiryDate = reqData.ExpiryDate
	}
	if reqData.UsageLimit != nil {
		coupon.UsageLimit = *reqData.UsageLimit
	}

	errors := make(map[string]string)
	if coupon.DiscountType == models.DiscountTypePercentage && coupon.DiscountValue > 100 {
		errors["discountValue"] = "Percentage discount cannot exceed 100%!"
	}
	if coupon.UsageLimit < coupon.UsedCount {
		errors["usageLimit"] = "Usage limit cannot be lower than the current used count!"
	}
	return errors
}

// DeleteCoupon soft-deletes a coupon (admin only)
func DeleteCoupon(c *fiber.Ctx) error {
	couponID := c.Locals("couponID").(uint)

	db := database.Database.Db

	var coupon models.Coupon
	if err := db.Where("id = ? AND is_deleted = ?", couponID, false).First(&coupon).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon not found!", nil)
	}

	if err := db.Model(&coupon).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete coupon!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon deleted successfully!", nil)
}

// ValidateCoupon is the public price preview: no per-student usage check
func ValidateCoupon(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedValidateCoupon").(*couponValidator.ValidateCouponRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	quote, err := services.PreviewCoupon(database.Database.Db, reqData.Code, reqData.CourseID)
	if err != nil {
		return couponQuoteError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon is valid!", couponQuoteResponse(quote))
}

// ValidateCouponForEnrollment runs the full ledger check for the
// authenticated student, including the already-used constraint.
func ValidateCouponForEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedValidateCoupon").(*couponValidator.ValidateCouponRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	quote, err := services.QuoteCoupon(database.Database.Db, reqData.Code, reqData.CourseID, userID)
	if err != nil {
		return couponQuoteError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon is valid!", couponQuoteResponse(quote))
}

func couponQuoteError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrCouponNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invalid coupon code for this course!", nil)
	case errors.Is(err, services.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, services.ErrCouponExpired):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Coupon has expired!", nil)
	case errors.Is(err, services.ErrCouponLimitReached):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Coupon usage limit reached!", nil)
	case errors.Is(err, services.ErrCouponAlreadyUsed):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You have already used this coupon!", nil)
	default:
		log.Printf("[COUPON] Validation error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Coupon validation failed!", nil)
	}
}

func couponQuoteResponse(quote *services.CouponQuote) fiber.Map {
	return fiber.Map{
		"id":               quote.Coupon.ID,
		"code":             quote.Coupon.Code,
		"discount_type":    quote.Coupon.DiscountType,
		"discount_value":   quote.Coupon.DiscountValue,
		"original_price":   quote.OriginalPrice,
		"discounted_price": quote.DiscountedPrice,
		"discount_amount":  quote.DiscountAmount,
		"savings":          quote.DiscountAmount,
	}
}

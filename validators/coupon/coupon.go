package couponValidator

import (
	"coursebay/middleware"
	"coursebay/models"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

var validate = validator.New()

type CreateCouponRequest struct {
	Code          string  `json:"code" validate:"required"`
	DiscountType  string  `json:"discountType" validate:"required,oneof=percentage flat"`
	DiscountValue float64 `json:"discountValue" validate:"required,gt=0"`
	ExpiryDate    string  `json:"expiryDate"`
	CourseID      uint    `json:"courseId" validate:"required"`
	UsageLimit    int     `json:"usageLimit" validate:"omitempty,min=1"`
}

// CreateCouponData is the normalized form handed to the controller.
type CreateCouponData struct {
	Code          string
	DiscountType  string
	DiscountValue float64
	ExpiryDate    *time.Time
	CourseID      uint
	UsageLimit    int
}

func CreateCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCouponRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Code":
					errors["code"] = "Coupon code is required!"
				case "DiscountType":
					errors["discountType"] = "Discount type must be either percentage or flat!"
				case "DiscountValue":
					errors["discountValue"] = "Discount value must be a positive number!"
				case "CourseID":
					errors["courseId"] = "Course ID is required!"
				case "UsageLimit":
					errors["usageLimit"] = "Usage limit must be at least 1!"
				}
			}
		}

		if reqData.DiscountType == models.DiscountTypePercentage && reqData.DiscountValue > 100 {
			errors["discountValue"] = "Percentage discount cannot exceed 100%!"
		}

		expiry, expiryErr := parseExpiry(reqData.ExpiryDate)
		if expiryErr != "" {
			errors["expiryDate"] = expiryErr
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		usageLimit := reqData.UsageLimit
		if usageLimit == 0 {
			usageLimit = 1
		}

		c.Locals("validatedCreateCoupon", &CreateCouponData{
			Code:          strings.ToUpper(strings.TrimSpace(reqData.Code)),
			DiscountType:  reqData.DiscountType,
			DiscountValue: reqData.DiscountValue,
			ExpiryDate:    expiry,
			CourseID:      reqData.CourseID,
			UsageLimit:    usageLimit,
		})
		return c.Next()
	}
}

type UpdateCouponRequest struct {
	Code          *string  `json:"code"`
	DiscountType  *string  `json:"discountType" validate:"omitempty,oneof=percentage flat"`
	DiscountValue *float64 `json:"discountValue" validate:"omitempty,gt=0"`
	ExpiryDate    *string  `json:"expiryDate"`
	UsageLimit    *int     `json:"usageLimit" validate:"omitempty,min=1"`
}

// UpdateCouponData carries only the fields the admin actually sent.
type UpdateCouponData struct {
	Code          *string
	DiscountType  *string
	DiscountValue *float64
	ExpiryDate    *time.Time
	UsageLimit    *int
}

func UpdateCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCouponRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "DiscountType":
					errors["discountType"] = "Discount type must be either percentage or flat!"
				case "DiscountValue":
					errors["discountValue"] = "Discount value must be a positive number!"
				case "UsageLimit":
					errors["usageLimit"] = "Usage limit must be at least 1!"
				}
			}
		}

		if reqData.DiscountType != nil && *reqData.DiscountType == models.DiscountTypePercentage &&
			reqData.DiscountValue != nil && *reqData.DiscountValue > 100 {
			errors["discountValue"] = "Percentage discount cannot exceed 100%!"
		}

		data := &UpdateCouponData{
			DiscountType:  reqData.DiscountType,
			DiscountValue: reqData.DiscountValue,
			UsageLimit:    reqData.UsageLimit,
		}

		if reqData.Code != nil {
			code := strings.ToUpper(strings.TrimSpace(*reqData.Code))
			if code == "" {
				errors["code"] = "Coupon code cannot be empty!"
			}
			data.Code = &code
		}

		if reqData.ExpiryDate != nil {
			expiry, expiryErr := parseExpiry(*reqData.ExpiryDate)
			if expiryErr != "" {
				errors["expiryDate"] = expiryErr
			}
			data.ExpiryDate = expiry
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateCoupon", data)
		return c.Next()
	}
}

type ValidateCouponRequest struct {
	Code     string `json:"code" validate:"required"`
	CourseID uint   `json:"courseId" validate:"required"`
}

func ValidateCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ValidateCouponRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.Code) == "" {
			errors["code"] = "Coupon code is required!"
		}
		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedValidateCoupon", reqData)
		return c.Next()
	}
}

func CouponID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid coupon ID!", nil)
		}

		c.Locals("couponID", uint(id))
		return c.Next()
	}
}

func CouponsByCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("courseId"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

// parseExpiry accepts an RFC3339 timestamp or a bare date. A bare date is
// expanded to the end of that day so the coupon stays valid through it.
func parseExpiry(raw string) (*time.Time, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ""
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, ""
	}

	if t, err := time.Parse("2006-01-02", raw); err == nil {
		endOfDay := now.With(t).EndOfDay()
		return &endOfDay, ""
	}

	return nil, "Invalid expiry date! Use YYYY-MM-DD or RFC3339."
}

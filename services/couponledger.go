package services

import (
	"coursebay/models"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// CouponQuote is the result of pricing a course against a coupon.
type CouponQuote struct {
	Coupon          *models.Coupon `json:"coupon"`
	OriginalPrice   float64        `json:"original_price"`
	DiscountAmount  float64        `json:"discount_amount"`
	DiscountedPrice float64        `json:"discounted_price"`
}

// NormalizeCouponCode upper-trims a coupon code the way it is stored.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// QuoteCoupon validates a coupon code against a course for a student and
// computes the discounted price. It is read-only; the usage counter is only
// incremented when the payment completes.
func QuoteCoupon(db *gorm.DB, code string, courseID, studentID uint) (*CouponQuote, error) {
	var coupon models.Coupon
	err := db.Where("code = ? AND course_id = ? AND is_deleted = false",
		NormalizeCouponCode(code), courseID).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	if coupon.IsExpired(time.Now()) {
		return nil, ErrCouponExpired
	}
	if coupon.IsExhausted() {
		return nil, ErrCouponLimitReached
	}

	// Any enrollment referencing the coupon counts as usage for this
	// student, regardless of its payment status.
	var used int64
	err = db.Model(&models.Enrollment{}).
		Where("student_id = ? AND coupon_id = ? AND is_deleted = false", studentID, coupon.ID).
		Count(&used).Error
	if err != nil {
		return nil, err
	}
	if used > 0 {
		return nil, ErrCouponAlreadyUsed
	}

	var course models.Course
	err = db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	return priceWithCoupon(&coupon, course.Price), nil
}

// PreviewCoupon prices a coupon without per-student usage checks. Used by the
// public validation endpoint.
func PreviewCoupon(db *gorm.DB, code string, courseID uint) (*CouponQuote, error) {
	var coupon models.Coupon
	err := db.Where("code = ? AND course_id = ? AND is_deleted = false",
		NormalizeCouponCode(code), courseID).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	if coupon.IsExpired(time.Now()) {
		return nil, ErrCouponExpired
	}
	if coupon.IsExhausted() {
		return nil, ErrCouponLimitReached
	}

	var course models.Course
	err = db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	return priceWithCoupon(&coupon, course.Price), nil
}

// priceWithCoupon applies the discount. The discounted price is never negative.
func priceWithCoupon(coupon *models.Coupon, price float64) *CouponQuote {
	quote := &CouponQuote{
		Coupon:          coupon,
		OriginalPrice:   price,
		DiscountedPrice: price,
	}

	switch coupon.DiscountType {
	case models.DiscountTypePercentage:
		quote.DiscountAmount = price * coupon.DiscountValue / 100
		quote.DiscountedPrice = price - quote.DiscountAmount
	case models.DiscountTypeFlat:
		quote.DiscountAmount = coupon.DiscountValue
		quote.DiscountedPrice = price - coupon.DiscountValue
	}

	if quote.DiscountedPrice < 0 {
		quote.DiscountedPrice = 0
	}
	return quote
}

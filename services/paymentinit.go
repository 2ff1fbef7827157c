package services

import (
	"coursebay/models"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InitiationResult carries the enrollment prepared for checkout along with
// the pricing breakdown to surface to the caller.
type InitiationResult struct {
	Enrollment     *models.Enrollment
	OriginalAmount float64
	DiscountAmount float64
	FinalAmount    float64
	CouponCode     string
}

// GenerateTransactionID returns a globally unique payment reference of the
// form TXN_<unix-ms>_<random>.
func GenerateTransactionID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("TXN_%d_%s", time.Now().UnixMilli(), suffix)
}

// InitiatePayment prepares an enrollment for checkout. If the student already
// holds a non-completed enrollment for the course, it is reset and reused with
// a fresh transaction id instead of creating a duplicate row. A completed
// enrollment rejects re-initiation.
func InitiatePayment(db *gorm.DB, studentID, courseID uint, couponCode string) (*InitiationResult, error) {
	var course models.Course
	err := db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var existing *models.Enrollment
	var found models.Enrollment
	err = db.Where("student_id = ? AND course_id = ? AND is_deleted = false", studentID, courseID).
		First(&found).Error
	if err == nil {
		if found.PaymentStatus == models.PaymentStatusCompleted {
			return nil, ErrAlreadyEnrolled
		}
		existing = &found
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	finalAmount := course.Price
	discountAmount := 0.0
	var couponID *uint

	if couponCode != "" {
		quote, err := QuoteCoupon(db, couponCode, courseID, studentID)
		if err != nil {
			return nil, err
		}
		finalAmount = quote.DiscountedPrice
		discountAmount = quote.DiscountAmount
		couponID = &quote.Coupon.ID
	}

	transactionID := GenerateTransactionID()
	now := time.Now()

	var enrollment *models.Enrollment
	if existing != nil {
		// Reuse the pending/failed/cancelled row, discarding stale payment
		// state. Guarded on the status still not being completed: a webhook
		// may have completed the enrollment since it was read above.
		res := db.Model(&models.Enrollment{}).
			Where("id = ? AND payment_status <> ?", existing.ID, models.PaymentStatusCompleted).
			Updates(map[string]interface{}{
				"transaction_id":  transactionID,
				"amount":          finalAmount,
				"original_amount": course.Price,
				"discount_amount": discountAmount,
				"coupon_id":       couponID,
				"payment_status":  models.PaymentStatusPending,
				"payment_details": nil,
				"last_activity":   now,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrAlreadyEnrolled
		}
		if err := db.First(existing, existing.ID).Error; err != nil {
			return nil, err
		}
		enrollment = existing
	} else {
		enrollment = &models.Enrollment{
			StudentID:      studentID,
			CourseID:       courseID,
			TransactionID:  transactionID,
			PaymentStatus:  models.PaymentStatusPending,
			Amount:         finalAmount,
			OriginalAmount: course.Price,
			DiscountAmount: discountAmount,
			CouponID:       couponID,
			EnrolledAt:     now,
			LastActivity:   now,
		}
		if err := db.Create(enrollment).Error; err != nil {
			return nil, err
		}
	}

	return &InitiationResult{
		Enrollment:     enrollment,
		OriginalAmount: course.Price,
		DiscountAmount: discountAmount,
		FinalAmount:    finalAmount,
		CouponCode:     NormalizeCouponCode(couponCode),
	}, nil
}

// MarkInitiationFailed records a gateway rejection on a freshly initiated
// enrollment, keeping the gateway's error message for inspection.
func MarkInitiationFailed(db *gorm.DB, enrollmentID uint, gatewayMessage string) error {
	details := datatypes.JSON(fmt.Sprintf(`{"error":%q}`, gatewayMessage))
	return db.Model(&models.Enrollment{}).
		Where("id = ? AND payment_status = ?", enrollmentID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status":  models.PaymentStatusFailed,
			"payment_details": details,
			"last_activity":   time.Now(),
		}).Error
}

package services

import (
	"coursebay/models"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Gateway-side status tags carried by the webhook payload.
const (
	GatewayStatusCompleted = "COMPLETED"
	GatewayStatusFailed    = "FAILED"
	GatewayStatusCancelled = "CANCELLED"
)

// WebhookPayload is the asynchronous callback body posted by the payment
// gateway. Delivery is at-least-once and may arrive long after initiation.
type WebhookPayload struct {
	InvoiceID     string                 `json:"invoice_id"`
	TransactionID string                 `json:"transaction_id"`
	PaymentStatus string                 `json:"payment_status"`
	PaymentMethod string                 `json:"payment_method"`
	Amount        float64                `json:"amount"`
	Metadata      map[string]interface{} `json:"metadata"`
}

// ReconcileOutcome reports what a webhook delivery did. Transitioned is false
// for duplicate deliveries, which are acknowledged without mutation.
type ReconcileOutcome struct {
	Enrollment   *models.Enrollment
	Transitioned bool
}

// ReconcilePayment drives the enrollment through its payment state machine:
// pending -> completed | failed | cancelled, all terminal. The transition is
// guarded on the current status being pending, so a redelivered webhook
// never overwrites a terminal state and never double-credits the coupon or
// the course counter.
func ReconcilePayment(db *gorm.DB, payload *WebhookPayload) (*ReconcileOutcome, error) {
	var enrollment models.Enrollment
	err := db.Where("transaction_id = ?", payload.TransactionID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	switch payload.PaymentStatus {
	case GatewayStatusCompleted:
		return completeEnrollment(db, &enrollment, payload)
	case GatewayStatusFailed:
		return finalizeEnrollment(db, &enrollment, models.PaymentStatusFailed)
	case GatewayStatusCancelled:
		return finalizeEnrollment(db, &enrollment, models.PaymentStatusCancelled)
	default:
		return nil, ErrUnknownPaymentStatus
	}
}

// completeEnrollment performs the COMPLETED transition and its side effects
// in one database transaction: payment details, coupon usage, the student's
// enrolled-course set and the course student counter.
func completeEnrollment(db *gorm.DB, enrollment *models.Enrollment, payload *WebhookPayload) (*ReconcileOutcome, error) {
	details, err := json.Marshal(map[string]interface{}{
		"invoice_id":     payload.InvoiceID,
		"payment_method": payload.PaymentMethod,
		"paid_amount":    payload.Amount,
		"paid_at":        time.Now(),
	})
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	res := tx.Model(&models.Enrollment{}).
		Where("id = ? AND payment_status = ?", enrollment.ID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status":  models.PaymentStatusCompleted,
			"payment_details": details,
			"last_activity":   time.Now(),
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Already finalized: duplicate delivery or a terminal record.
		tx.Rollback()
		return noopOutcome(db, enrollment.ID)
	}

	if enrollment.CouponID != nil {
		err := tx.Model(&models.Coupon{}).
			Where("id = ? AND used_count < usage_limit", *enrollment.CouponID).
			UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// Set semantics on the student's enrolled courses.
	err = tx.Exec(
		"INSERT INTO user_enrolled_courses (user_id, course_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		enrollment.StudentID, enrollment.CourseID,
	).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	err = tx.Model(&models.Course{}).
		Where("id = ?", enrollment.CourseID).
		UpdateColumn("student_count", gorm.Expr("student_count + 1")).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := db.First(enrollment, enrollment.ID).Error; err != nil {
		return nil, err
	}
	return &ReconcileOutcome{Enrollment: enrollment, Transitioned: true}, nil
}

// finalizeEnrollment moves a pending enrollment to failed or cancelled.
// No counters move on these transitions.
func finalizeEnrollment(db *gorm.DB, enrollment *models.Enrollment, status string) (*ReconcileOutcome, error) {
	res := db.Model(&models.Enrollment{}).
		Where("id = ? AND payment_status = ?", enrollment.ID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status": status,
			"last_activity":  time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return noopOutcome(db, enrollment.ID)
	}

	if err := db.First(enrollment, enrollment.ID).Error; err != nil {
		return nil, err
	}
	return &ReconcileOutcome{Enrollment: enrollment, Transitioned: true}, nil
}

func noopOutcome(db *gorm.DB, enrollmentID uint) (*ReconcileOutcome, error) {
	var current models.Enrollment
	if err := db.First(&current, enrollmentID).Error; err != nil {
		return nil, err
	}
	return &ReconcileOutcome{Enrollment: &current, Transitioned: false}, nil
}

// CancelStalePending cancels pending enrollments whose last activity is older
// than the cutoff. Run by the payment reaper; abandoned checkouts otherwise
// hold the (student, course) slot forever.
func CancelStalePending(db *gorm.DB, olderThan time.Time) (int64, error) {
	res := db.Model(&models.Enrollment{}).
		Where("payment_status = ? AND last_activity < ?", models.PaymentStatusPending, olderThan).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusCancelled,
			"last_activity":  time.Now(),
		})
	return res.RowsAffected, res.Error
}

package services

import (
	"coursebay/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGenerateTransactionIDFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateTransactionID()
		assert.True(t, strings.HasPrefix(id, "TXN_"))
		assert.Len(t, strings.Split(id, "_"), 3)
		assert.False(t, seen[id], "transaction id collision: %s", id)
		seen[id] = true
	}
}

func TestInitiatePaymentCreatesPendingEnrollment(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 0)

	result, err := InitiatePayment(db, student.ID, course.ID, "")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPending, result.Enrollment.PaymentStatus)
	assert.Equal(t, 1000.0, result.FinalAmount)
	assert.Equal(t, 1000.0, result.OriginalAmount)
	assert.Equal(t, 0.0, result.DiscountAmount)
	assert.True(t, strings.HasPrefix(result.Enrollment.TransactionID, "TXN_"))
	assert.Nil(t, result.Enrollment.CouponID)
}

func TestInitiatePaymentAppliesFlatCoupon(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 0)
	coupon := seedCoupon(t, db, course.ID, "FLAT200", models.DiscountTypeFlat, 200, 1, nil)

	result, err := InitiatePayment(db, student.ID, course.ID, "flat200")
	require.NoError(t, err)

	assert.Equal(t, 800.0, result.FinalAmount)
	assert.Equal(t, 200.0, result.DiscountAmount)
	assert.Equal(t, "FLAT200", result.CouponCode)
	require.NotNil(t, result.Enrollment.CouponID)
	assert.Equal(t, coupon.ID, *result.Enrollment.CouponID)

	// Initiation alone must not consume the coupon.
	var fresh models.Coupon
	require.NoError(t, db.First(&fresh, coupon.ID).Error)
	assert.Equal(t, 0, fresh.UsedCount)
}

func TestInitiatePaymentUnknownCourse(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")

	_, err := InitiatePayment(db, student.ID, 9999, "")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestInitiatePaymentRejectsCompletedEnrollment(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 0)

	result, err := InitiatePayment(db, student.ID, course.ID, "")
	require.NoError(t, err)
	require.NoError(t, db.Model(result.Enrollment).
		UpdateColumn("payment_status", models.PaymentStatusCompleted).Error)

	_, err = InitiatePayment(db, student.ID, course.ID, "")
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestInitiatePaymentReusesNonCompletedEnrollment(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 0)
	seedCoupon(t, db, course.ID, "FLAT200", models.DiscountTypeFlat, 200, 1, nil)

	first, err := InitiatePayment(db, student.ID, course.ID, "")
	require.NoError(t, err)

	second, err := InitiatePayment(db, student.ID, course.ID, "FLAT200")
	require.NoError(t, err)

	// Same row, refreshed payment state.
	assert.Equal(t, first.Enrollment.ID, second.Enrollment.ID)
	assert.NotEqual(t, first.Enrollment.TransactionID, second.Enrollment.TransactionID)
	assert.Equal(t, 800.0, second.Enrollment.Amount)
	assert.Equal(t, models.PaymentStatusPending, second.Enrollment.PaymentStatus)

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestInitiatePaymentReusesFailedEnrollment(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 0)

	first, err := InitiatePayment(db, student.ID, course.ID, "")
	require.NoError(t, err)
	require.NoError(t, MarkInitiationFailed(db, first.Enrollment.ID, "gateway down"))

	second, err := InitiatePayment(db, student.ID, course.ID, "")
	require.NoError(t, err)

	assert.Equal(t, first.Enrollment.ID, second.Enrollment.ID)
	assert.Equal(t, models.PaymentStatusPending, second.Enrollment.PaymentStatus)
	assert.Empty(t, second.Enrollment.PaymentDetails)
}

func TestInitiatePaymentReuseLosesRaceToCompletion(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 0)

	first, err := InitiatePayment(db, student.ID, course.ID, "")
	require.NoError(t, err)

	// Complete the enrollment between the read and the reuse update, as a
	// concurrently delivered webhook would.
	completed := false
	err = db.Callback().Update().Before("gorm:update").Register("test:complete_enrollment", func(tx *gorm.DB) {
		if completed {
			return
		}
		completed = true
		tx.Session(&gorm.Session{NewDB: true}).Model(&models.Enrollment{}).
			Where("id = ?", first.Enrollment.ID).
			UpdateColumn("payment_status", models.PaymentStatusCompleted)
	})
	require.NoError(t, err)

	_, err = InitiatePayment(db, student.ID, course.ID, "")
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	// The completed enrollment kept its state and transaction id.
	var enrollment models.Enrollment
	require.NoError(t, db.First(&enrollment, first.Enrollment.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, enrollment.PaymentStatus)
	assert.Equal(t, first.Enrollment.TransactionID, enrollment.TransactionID)
}

func TestMarkInitiationFailed(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 0)

	result, err := InitiatePayment(db, student.ID, course.ID, "")
	require.NoError(t, err)

	require.NoError(t, MarkInitiationFailed(db, result.Enrollment.ID, "invalid api key"))

	var enrollment models.Enrollment
	require.NoError(t, db.First(&enrollment, result.Enrollment.ID).Error)
	assert.Equal(t, models.PaymentStatusFailed, enrollment.PaymentStatus)
	assert.Contains(t, string(enrollment.PaymentDetails), "invalid api key")
}

func TestMarkInitiationFailedLeavesTerminalStatesAlone(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 0)

	result, err := InitiatePayment(db, student.ID, course.ID, "")
	require.NoError(t, err)
	require.NoError(t, db.Model(result.Enrollment).
		UpdateColumn("payment_status", models.PaymentStatusCompleted).Error)

	require.NoError(t, MarkInitiationFailed(db, result.Enrollment.ID, "late rejection"))

	var enrollment models.Enrollment
	require.NoError(t, db.First(&enrollment, result.Enrollment.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, enrollment.PaymentStatus)
}

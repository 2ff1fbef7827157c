package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

const (
	CompletionInProgress = "in-progress"
	CompletionCompleted  = "completed"
)

// Enrollment is the per-student-per-course record tracking payment outcome
// and learning progress. At most one enrollment exists per (student, course)
// pair; re-initiating payment reuses the row instead of creating a duplicate.
type Enrollment struct {
	gorm.Model
	StudentID         uint           `json:"student_id" gorm:"uniqueIndex:idx_enrollments_student_course;not null"`
	Student           User           `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	CourseID          uint           `json:"course_id" gorm:"uniqueIndex:idx_enrollments_student_course;not null"`
	Course            Course         `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	TransactionID     string         `json:"transaction_id" gorm:"unique;not null"`
	PaymentStatus     string         `json:"payment_status" gorm:"default:'pending'"` // pending, completed, failed, cancelled
	Amount            float64        `json:"amount" gorm:"not null"`
	OriginalAmount    float64        `json:"original_amount" gorm:"not null"`
	DiscountAmount    float64        `json:"discount_amount" gorm:"default:0"`
	CouponID          *uint          `json:"coupon_id"`
	Coupon            *Coupon        `json:"coupon,omitempty" gorm:"foreignKey:CouponID"`
	Currency          string         `json:"currency" gorm:"default:'BDT'"`
	PaymentMethod     string         `json:"payment_method" gorm:"default:'uddoktapay'"`
	PaymentDetails    datatypes.JSON `json:"payment_details"` // opaque gateway blob, set on webhook
	EnrolledAt        time.Time      `json:"enrolled_at" gorm:"autoCreateTime"`
	CompletionStatus  string         `json:"completion_status" gorm:"default:'in-progress'"` // in-progress, completed
	Progress          int            `json:"progress" gorm:"default:0"` // 0-100, clamped
	CompletedLectures []Lecture      `json:"completed_lectures,omitempty" gorm:"many2many:enrollment_completed_lectures"`
	LastActivity      time.Time      `json:"last_activity" gorm:"autoCreateTime"`
	IsDeleted         bool           `json:"-" gorm:"default:false"`
}

// IsTerminal reports whether the payment status permits no further transition.
func (e *Enrollment) IsTerminal() bool {
	return e.PaymentStatus == PaymentStatusCompleted ||
		e.PaymentStatus == PaymentStatusFailed ||
		e.PaymentStatus == PaymentStatusCancelled
}

// ClampProgress rounds and clamps a completed/total ratio to the 0-100 range.
// A course without lectures yields 0 progress.
func ClampProgress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(float64(completed)/float64(total)*100 + 0.5)
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p
}

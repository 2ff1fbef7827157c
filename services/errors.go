package services

import "errors"

// Sentinel errors returned by the enrollment and payment services.
// Controllers map these onto HTTP statuses.
var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrCouponNotFound       = errors.New("invalid coupon code for this course")
	ErrCouponExpired        = errors.New("coupon has expired")
	ErrCouponLimitReached   = errors.New("coupon usage limit reached")
	ErrCouponAlreadyUsed    = errors.New("you have already used this coupon")
	ErrAlreadyEnrolled      = errors.New("you are already enrolled in this course")
	ErrEnrollmentNotFound   = errors.New("enrollment not found")
	ErrLectureNotFound      = errors.New("lecture not found in this course")
	ErrNotEnrollmentOwner   = errors.New("enrollment belongs to another student")
	ErrUnknownPaymentStatus = errors.New("unknown payment status")
)

package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFlat       = "flat"
)

// Coupon is a discount code scoped to exactly one course.
// UsedCount is incremented only when a payment completes and never exceeds UsageLimit.
type Coupon struct {
	gorm.Model
	Code          string     `json:"code" gorm:"unique;not null"` // stored upper-trimmed
	DiscountType  string     `json:"discount_type" gorm:"not null"` // percentage, flat
	DiscountValue float64    `json:"discount_value" gorm:"not null"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	CourseID      uint       `json:"course_id" gorm:"index;not null"`
	UsageLimit    int        `json:"usage_limit" gorm:"default:1"`
	UsedCount     int        `json:"used_count" gorm:"default:0"`
	IsDeleted     bool       `json:"-" gorm:"default:false"`
}

// IsExpired reports whether the coupon's expiry date has passed. A coupon
// without an expiry date never expires.
func (c *Coupon) IsExpired(at time.Time) bool {
	return c.ExpiryDate != nil && at.After(*c.ExpiryDate)
}

// IsExhausted reports whether the usage limit has been reached.
func (c *Coupon) IsExhausted() bool {
	return c.UsedCount >= c.UsageLimit
}

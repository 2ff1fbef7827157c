package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CourseStatusPending   = "PENDING"
	CourseStatusPublished = "PUBLISHED"
	CourseStatusRejected  = "REJECTED"
)

// Course represents a sellable course in the catalog
type Course struct {
	gorm.Model
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description"`
	Thumbnail       string         `json:"thumbnail"`
	Price           float64        `json:"price" gorm:"not null"`
	Features        datatypes.JSON `json:"features"` // normalized string list
	Duration        int64          `json:"duration" gorm:"default:0"` // duration in hours
	EnrollmentStart *time.Time     `json:"enrollment_start"`
	EnrollmentEnd   *time.Time     `json:"enrollment_end"`
	Status          string         `json:"status" gorm:"default:'PENDING'"` // PENDING, PUBLISHED, REJECTED
	Featured        bool           `json:"featured" gorm:"default:false"`
	StudentCount    uint           `json:"student_count" gorm:"default:0"` // incremented only on confirmed payment
	Lectures        []Lecture      `json:"lectures,omitempty" gorm:"foreignKey:CourseID"`
	IsDeleted       bool           `json:"-" gorm:"default:false"`
}

package models

import "gorm.io/gorm"

// Lecture is a single unit of course content; enrollment progress is
// derived from how many of a course's lectures a student has completed.
type Lecture struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Title     string `json:"title" gorm:"not null"`
	VideoURL  string `json:"video_url"`
	Position  int    `json:"position" gorm:"default:0"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}

package models

import (
	"gorm.io/gorm"
)

const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	Name            string   `json:"name" gorm:"default:''"`
	Email           string   `json:"email" gorm:"unique;not null"`
	Mobile          string   `json:"mobile" gorm:"default:''"`
	Role            string   `json:"role" gorm:"default:'STUDENT'"` // STUDENT, TEACHER, ADMIN
	Password        string   `json:"-" gorm:"not null"`
	Avatar          string   `json:"avatar" gorm:"default:''"`
	Address         string   `json:"address"`
	EnrolledCourses []Course `json:"enrolled_courses,omitempty" gorm:"many2many:user_enrolled_courses"`
	IsEmailVerified bool     `json:"is_email_verified" gorm:"default:false"`
	IsBanned        bool     `json:"is_banned" gorm:"default:false"`
	IsDeleted       bool     `json:"-" gorm:"default:false"`
}

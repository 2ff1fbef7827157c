package services

import (
	"coursebay/models"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second pool connection would see its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lecture{},
		&models.Coupon{},
		&models.Enrollment{},
	))

	return db
}

func seedStudent(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     "Test Student",
		Email:    email,
		Password: "hashed",
		Role:     models.RoleStudent,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, price float64, lectureCount int) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:  "Test Course",
		Price:  price,
		Status: models.CourseStatusPublished,
	}
	require.NoError(t, db.Create(course).Error)

	for i := 0; i < lectureCount; i++ {
		lecture := &models.Lecture{
			CourseID: course.ID,
			Title:    fmt.Sprintf("Lecture %d", i+1),
			Position: i,
		}
		require.NoError(t, db.Create(lecture).Error)
	}

	return course
}

func seedCoupon(t *testing.T, db *gorm.DB, courseID uint, code, discountType string, value float64, usageLimit int, expiry *time.Time) *models.Coupon {
	t.Helper()

	coupon := &models.Coupon{
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: value,
		ExpiryDate:    expiry,
		CourseID:      courseID,
		UsageLimit:    usageLimit,
	}
	require.NoError(t, db.Create(coupon).Error)
	return coupon
}

func courseLectures(t *testing.T, db *gorm.DB, courseID uint) []models.Lecture {
	t.Helper()

	var lectures []models.Lecture
	require.NoError(t, db.Where("course_id = ?", courseID).Order("position").Find(&lectures).Error)
	return lectures
}

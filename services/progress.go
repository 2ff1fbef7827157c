package services

import (
	"coursebay/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CompleteLecture marks a lecture done on the student's enrollment and
// recomputes progress against the course's lecture count. Calling it again
// for the same lecture is a no-op returning the current state.
func CompleteLecture(db *gorm.DB, enrollmentID, lectureID, requesterID uint) (*models.Enrollment, error) {
	enrollment, lecture, err := loadProgressTarget(db, enrollmentID, lectureID, requesterID)
	if err != nil {
		return nil, err
	}

	done, err := lectureCompleted(db, enrollment.ID, lecture.ID)
	if err != nil {
		return nil, err
	}
	if done {
		return reloadWithProgress(db, enrollment.ID)
	}

	err = db.Model(enrollment).Association("CompletedLectures").Append(lecture)
	if err != nil {
		return nil, err
	}

	if err := recomputeProgress(db, enrollment); err != nil {
		return nil, err
	}
	return reloadWithProgress(db, enrollment.ID)
}

// IncompleteLecture removes a lecture from the completed set and recomputes
// progress. Removing a lecture that was never completed is a no-op.
func IncompleteLecture(db *gorm.DB, enrollmentID, lectureID, requesterID uint) (*models.Enrollment, error) {
	enrollment, lecture, err := loadProgressTarget(db, enrollmentID, lectureID, requesterID)
	if err != nil {
		return nil, err
	}

	done, err := lectureCompleted(db, enrollment.ID, lecture.ID)
	if err != nil {
		return nil, err
	}
	if !done {
		return reloadWithProgress(db, enrollment.ID)
	}

	err = db.Model(enrollment).Association("CompletedLectures").Delete(lecture)
	if err != nil {
		return nil, err
	}

	if err := recomputeProgress(db, enrollment); err != nil {
		return nil, err
	}
	return reloadWithProgress(db, enrollment.ID)
}

func loadProgressTarget(db *gorm.DB, enrollmentID, lectureID, requesterID uint) (*models.Enrollment, *models.Lecture, error) {
	var enrollment models.Enrollment
	err := db.Where("id = ? AND is_deleted = false", enrollmentID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEnrollmentNotFound
		}
		return nil, nil, err
	}

	if enrollment.StudentID != requesterID {
		return nil, nil, ErrNotEnrollmentOwner
	}

	var lecture models.Lecture
	err = db.Where("id = ? AND course_id = ? AND is_deleted = false", lectureID, enrollment.CourseID).
		First(&lecture).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrLectureNotFound
		}
		return nil, nil, err
	}

	return &enrollment, &lecture, nil
}

func lectureCompleted(db *gorm.DB, enrollmentID, lectureID uint) (bool, error) {
	var count int64
	err := db.Table("enrollment_completed_lectures").
		Where("enrollment_id = ? AND lecture_id = ?", enrollmentID, lectureID).
		Count(&count).Error
	return count > 0, err
}

// recomputeProgress derives progress from the completed set and flips the
// completion status at exactly 100%.
func recomputeProgress(db *gorm.DB, enrollment *models.Enrollment) error {
	var total int64
	err := db.Model(&models.Lecture{}).
		Where("course_id = ? AND is_deleted = false", enrollment.CourseID).
		Count(&total).Error
	if err != nil {
		return err
	}

	var completed int64
	err = db.Table("enrollment_completed_lectures").
		Where("enrollment_id = ?", enrollment.ID).
		Count(&completed).Error
	if err != nil {
		return err
	}

	progress := models.ClampProgress(int(completed), int(total))
	status := models.CompletionInProgress
	if progress == 100 {
		status = models.CompletionCompleted
	}

	return db.Model(enrollment).Updates(map[string]interface{}{
		"progress":          progress,
		"completion_status": status,
		"last_activity":     time.Now(),
	}).Error
}

func reloadWithProgress(db *gorm.DB, enrollmentID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := db.Preload("CompletedLectures").First(&enrollment, enrollmentID).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

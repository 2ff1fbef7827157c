package enrollmentController

import (
	"coursebay/database"
	"coursebay/middleware"
	"coursebay/models"
	"coursebay/services"
	enrollmentValidator "coursebay/validators/enrollment"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CompleteLecture marks a lecture finished for the requesting student
func CompleteLecture(c *fiber.Ctx) error {
	return updateLectureProgress(c, services.CompleteLecture, "Lecture marked as completed!")
}

// IncompleteLecture reverts a previously completed lecture
func IncompleteLecture(c *fiber.Ctx) error {
	return updateLectureProgress(c, services.IncompleteLecture, "Lecture marked as incomplete!")
}

func updateLectureProgress(
	c *fiber.Ctx,
	op func(db *gorm.DB, enrollmentID, lectureID, requesterID uint) (*models.Enrollment, error),
	successMessage string,
) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(uint)
	reqData, ok := c.Locals("validatedLectureProgress").(*enrollmentValidator.LectureProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	enrollment, err := op(database.Database.Db, enrollmentID, reqData.LectureID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEnrollmentNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		case errors.Is(err, services.ErrNotEnrollmentOwner):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized access!", nil)
		case errors.Is(err, services.ErrLectureNotFound):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lecture not found in this course!", nil)
		default:
			log.Printf("[ENROLLMENT] Lecture progress error: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture progress!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, successMessage, fiber.Map{
		"enrollment": enrollment,
		"progress":   enrollment.Progress,
	})
}

// GetEnrollmentByCourse returns the student's completed enrollment for a course
func GetEnrollmentByCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var enrollment models.Enrollment
	err := database.Database.Db.
		Where("student_id = ? AND course_id = ? AND payment_status = ? AND is_deleted = ?",
			userID, courseID, models.PaymentStatusCompleted, false).
		Preload("Course").
		Preload("CompletedLectures").
		First(&enrollment).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found for this course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", enrollment)
}

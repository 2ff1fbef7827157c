package enrollmentValidator

import (
	"coursebay/middleware"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type LectureProgressRequest struct {
	LectureID uint `json:"lectureId" validate:"required"`
}

// LectureProgress validates the enrollment id param and the lecture body for
// the complete/incomplete lecture endpoints.
func LectureProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentIDStr := strings.TrimSpace(c.Params("id"))
		enrollmentID, err := strconv.Atoi(enrollmentIDStr)
		if err != nil || enrollmentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
		}

		reqData := new(LectureProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"lectureId": "Lecture ID is required!",
			})
		}

		c.Locals("enrollmentID", uint(enrollmentID))
		c.Locals("validatedLectureProgress", reqData)
		return c.Next()
	}
}

func EnrollmentByCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("courseId"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}

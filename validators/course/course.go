package courseValidator

import (
	"coursebay/middleware"
	"coursebay/utils"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type CreateCourseRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Thumbnail   string          `json:"thumbnail"`
	Price       float64         `json:"price" validate:"required,gt=0"`
	Features    json.RawMessage `json:"features"`
	Duration    int64           `json:"duration" validate:"omitempty,min=0"`
}

// CreateCourseData is the normalized form handed to the controller.
type CreateCourseData struct {
	Title       string
	Description string
	Thumbnail   string
	Price       float64
	Features    []string
	Duration    int64
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Title":
					errors["title"] = "Title is required!"
				case "Price":
					errors["price"] = "Price must be a positive number!"
				case "Duration":
					errors["duration"] = "Duration cannot be negative!"
				}
			}
		}

		features, ok := normalizeFeatures(reqData.Features)
		if !ok {
			errors["features"] = "Features must be an array, a comma separated string, or a single value!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateCourse", &CreateCourseData{
			Title:       strings.TrimSpace(reqData.Title),
			Description: reqData.Description,
			Thumbnail:   reqData.Thumbnail,
			Price:       reqData.Price,
			Features:    features,
			Duration:    reqData.Duration,
		})
		return c.Next()
	}
}

type AddLectureRequest struct {
	Title    string `json:"title" validate:"required"`
	VideoURL string `json:"videoUrl"`
	Position int    `json:"position" validate:"omitempty,min=0"`
}

func AddLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(AddLectureRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"title": "Lecture title is required!",
			})
		}

		c.Locals("courseID", uint(courseID))
		c.Locals("validatedAddLecture", reqData)
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

// normalizeFeatures applies the documented fallback order for the loosely
// typed features field: JSON array, then string (itself parsed JSON first,
// then comma split, then single element).
func normalizeFeatures(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 {
		return []string{}, true
	}

	var asArray []string
	if err := json.Unmarshal(raw, &asArray); err == nil {
		out := make([]string, 0, len(asArray))
		for _, f := range asArray {
			f = strings.TrimSpace(f)
			if f == "" {
				return nil, false
			}
			out = append(out, f)
		}
		return out, true
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return utils.ParseStringList(asString), true
	}

	return nil, false
}

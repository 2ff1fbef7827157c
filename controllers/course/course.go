package courseController

import (
	"coursebay/database"
	"coursebay/middleware"
	"coursebay/models"
	courseValidator "coursebay/validators/course"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse creates a new course in PENDING status (admin only)
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateCourse").(*courseValidator.CreateCourseData)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	features, err := json.Marshal(reqData.Features)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid features format!", nil)
	}

	course := models.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Thumbnail:   reqData.Thumbnail,
		Price:       reqData.Price,
		Features:    features,
		Duration:    reqData.Duration,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("[COURSE] Create error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AddLecture appends a lecture to a course (admin only)
func AddLecture(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedAddLecture").(*courseValidator.AddLectureRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	lecture := models.Lecture{
		CourseID: courseID,
		Title:    reqData.Title,
		VideoURL: reqData.VideoURL,
		Position: reqData.Position,
	}

	if err := db.Create(&lecture).Error; err != nil {
		log.Printf("[COURSE] Add lecture error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture added successfully!", lecture)
}

// PublishCourse moves a course to PUBLISHED status (admin only)
func PublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := db.Model(&course).Update("status", models.CourseStatusPublished).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&models.Course{}).
		Where("status = ? AND is_deleted = ?", models.CourseStatusPublished, false)

	var total int64
	query.Count(&total)

	var courses []models.Course
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns a course with its lectures
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", courseID, false).
		Preload("Lectures", "is_deleted = ?", false).
		First(&course).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// LessonBody is the create/update lesson payload
type LessonBody struct {
	SequenceNumber int    `json:"sequence_number"`
	Title          string `json:"title"`
	ContentType    string `json:"content_type"`
	ContentText    string `json:"content_text"`
	ContentURL     string `json:"content_url"`
}

func validateLessonBody(reqData *LessonBody) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(reqData.Title) == "" {
		errors["title"] = "Title is required!"
	}
	if reqData.SequenceNumber <= 0 {
		errors["sequence_number"] = "Sequence number must be greater than 0!"
	}

	reqData.ContentType = strings.ToUpper(strings.TrimSpace(reqData.ContentType))
	switch reqData.ContentType {
	case courseModels.ContentTypeText:
		if strings.TrimSpace(reqData.ContentText) == "" {
			errors["content_text"] = "Content text is required for TEXT lessons!"
		}
	case courseModels.ContentTypeVideo, courseModels.ContentTypePDF:
		if strings.TrimSpace(reqData.ContentURL) == "" {
			errors["content_url"] = "Content URL is required for " + reqData.ContentType + " lessons!"
		}
	default:
		errors["content_type"] = "Content type must be TEXT, VIDEO or PDF!"
	}

	return errors
}

// CreateLesson validates the :id course parameter and the lesson payload
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := CourseIDParam(c); err != nil {
			return err
		}

		reqData := new(LessonBody)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateLessonBody(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validates course/lesson parameters and the lesson payload
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := CourseIDParam(c); err != nil {
			return err
		}
		if err := lessonIDParam(c); err != nil {
			return err
		}

		reqData := new(LessonBody)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateLessonBody(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// LessonID validates the :id and :lesson_id route parameters
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := CourseIDParam(c); err != nil {
			return err
		}
		if err := lessonIDParam(c); err != nil {
			return err
		}
		return c.Next()
	}
}

func lessonIDParam(c *fiber.Ctx) error {
	lessonIDStr := strings.TrimSpace(c.Params("lesson_id"))
	if lessonIDStr == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson ID is required!", nil)
	}

	lessonID, err := strconv.Atoi(lessonIDStr)
	if err != nil || lessonID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
	}

	c.Locals("lessonID", lessonID)
	return nil
}

package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/services"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// AddLesson appends a lesson to a course
func AddLesson(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	reqData, ok := c.Locals("validatedLesson").(*courseValidators.LessonBody)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson, err := services.AddLesson(database.Database.Db, user, courseID, services.LessonInput{
		SequenceNumber: reqData.SequenceNumber,
		Title:          reqData.Title,
		ContentType:    reqData.ContentType,
		ContentText:    reqData.ContentText,
		ContentURL:     reqData.ContentURL,
	})
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson rewrites a lesson's fields
func UpdateLesson(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))
	lessonID := uint(c.Locals("lessonID").(int))

	reqData, ok := c.Locals("validatedLesson").(*courseValidators.LessonBody)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson, err := services.UpdateLesson(database.Database.Db, user, courseID, lessonID, services.LessonInput{
		SequenceNumber: reqData.SequenceNumber,
		Title:          reqData.Title,
		ContentType:    reqData.ContentType,
		ContentText:    reqData.ContentText,
		ContentURL:     reqData.ContentURL,
	})
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson removes a lesson from a course
func DeleteLesson(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))
	lessonID := uint(c.Locals("lessonID").(int))

	if err := services.DeleteLesson(database.Database.Db, user, courseID, lessonID); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

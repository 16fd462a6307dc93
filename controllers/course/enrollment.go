package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the caller in an approved course (free path)
func EnrollInCourse(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	enrollment, err := services.EnrollInCourse(database.Database.Db, user, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	if course, cerr := services.GetCourse(database.Database.Db, courseID); cerr == nil {
		go utils.SendEnrollmentEmail(user.Email, user.FullName, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the caller's enrollments with pagination
func GetEnrollments(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := 1
	limit := 10
	if reqData, ok := c.Locals("validatedEnrollmentList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	}); ok {
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Enrollment{}).Where("student_id = ?", user.ID)

	var total int64
	db.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := db.Order("enrollment_date desc").Offset(offset).Limit(limit).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UnenrollFromCourse removes the caller's enrollment
func UnenrollFromCourse(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	if err := services.UnenrollFromCourse(database.Database.Db, user, courseID); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unenrolled from course successfully!", nil)
}

// UpdateProgress sets the caller's completion percentage for a course
func UpdateProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))
	progress := c.Locals("validatedProgress").(int)

	enrollment, err := services.UpdateProgress(database.Database.Db, user, courseID, progress)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"enrollment":  enrollment,
		"isCompleted": enrollment.IsCompleted(),
	})
}

// CompleteLesson marks a lesson done and recomputes progress
func CompleteLesson(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))
	lessonID := uint(c.Locals("lessonID").(int))

	enrollment, err := services.CompleteLesson(database.Database.Db, user, courseID, lessonID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", fiber.Map{
		"enrollment":  enrollment,
		"isCompleted": enrollment.IsCompleted(),
	})
}

// GetCourseProgress returns the caller's progress summary for a course
func GetCourseProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	enrollment, err := services.GetEnrollment(database.Database.Db, user.ID, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	var totalLessons int64
	database.Database.Db.Model(&courseModels.Lesson{}).Where("course_id = ?", courseID).Count(&totalLessons)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress":         enrollment.Progress,
		"isCompleted":      enrollment.IsCompleted(),
		"completedLessons": enrollment.CompletedLessonIDs(),
		"totalLessons":     totalLessons,
		"enrollmentDate":   enrollment.EnrollmentDate,
	})
}

// GetCourseEnrollments returns a course's roster (admin or owning instructor)
func GetCourseEnrollments(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	enrollments, err := services.CourseEnrollments(database.Database.Db, user, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"total":       len(enrollments),
	})
}

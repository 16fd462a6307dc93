package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course catalog, authoring and enrollment routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog (approved courses)
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/mine", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor, models.RoleAdmin), controllers.GetMyCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Authoring (service layer enforces ownership)
	courseGroup.Post("/create", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor, models.RoleAdmin), validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.DeleteCourse)
	courseGroup.Post("/:id/submit", middleware.JWTMiddleware, validators.CourseID(), controllers.SubmitForApproval)

	// Lesson management
	courseGroup.Post("/:id/lesson", middleware.JWTMiddleware, validators.CreateLesson(), controllers.AddLesson)
	courseGroup.Put("/:id/lesson/:lesson_id", middleware.JWTMiddleware, validators.UpdateLesson(), controllers.UpdateLesson)
	courseGroup.Delete("/:id/lesson/:lesson_id", middleware.JWTMiddleware, validators.LessonID(), controllers.DeleteLesson)

	// Enrollment (free path) and progress
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)
	courseGroup.Delete("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.UnenrollFromCourse)
	courseGroup.Put("/:id/progress", middleware.JWTMiddleware, validators.UpdateProgress(), controllers.UpdateProgress)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseProgress)
	courseGroup.Post("/:id/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.LessonID(), controllers.CompleteLesson)

	// Roster (admin or owning instructor)
	courseGroup.Get("/:id/enrollments", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseEnrollments)

	// Student's own enrollments
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, validators.GetUserEnrollments(), controllers.GetEnrollments)
}

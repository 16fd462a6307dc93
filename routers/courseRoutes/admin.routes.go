package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up the admin approval lifecycle routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/list", validators.CourseList(), controllers.AdminGetAllCourses)
	adminGroup.Get("/pending", controllers.AdminGetPendingCourses)
	adminGroup.Post("/:id/approve", validators.CourseID(), controllers.AdminApproveCourse)
	adminGroup.Post("/:id/reject", validators.CourseID(), controllers.AdminRejectCourse)
}

package adminRoutes

import (
	adminControllers "lms/controllers/admin"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminUserRoutes sets up the account administration routes
func SetupAdminUserRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/user", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/list", adminControllers.AdminListUsers)
	adminGroup.Patch("/:user_id/enabled", adminControllers.AdminSetUserEnabled)
	adminGroup.Put("/:user_id", adminControllers.AdminUpdateUser)
	adminGroup.Delete("/:user_id", adminControllers.AdminDeleteUser)
}

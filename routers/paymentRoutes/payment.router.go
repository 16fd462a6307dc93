package paymentRoutes

import (
	paymentControllers "lms/controllers/payment"
	"lms/middleware"
	"lms/models"
	courseValidators "lms/validators/course"
	paymentValidators "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up the payment workflow routes
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/create", middleware.JWTMiddleware, paymentValidators.CreatePayment(), paymentControllers.CreatePayment)
	paymentGroup.Post("/:id/process", middleware.JWTMiddleware, paymentValidators.PaymentID(), paymentControllers.ProcessPayment)
	paymentGroup.Post("/:id/cancel", middleware.JWTMiddleware, paymentValidators.PaymentID(), paymentControllers.CancelPayment)
	paymentGroup.Get("/history", middleware.JWTMiddleware, paymentValidators.PaymentList(), paymentControllers.GetMyPayments)
	paymentGroup.Get("/txn/:txn_id", middleware.JWTMiddleware, paymentValidators.TransactionID(), paymentControllers.GetPaymentByTransactionID)
	paymentGroup.Get("/course/:id", middleware.JWTMiddleware, courseValidators.CourseID(), paymentControllers.GetCoursePayments)
	paymentGroup.Get("/:id", middleware.JWTMiddleware, paymentValidators.PaymentID(), paymentControllers.GetPayment)

	adminGroup := app.Group("/admin/payment", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))
	adminGroup.Get("/recent", paymentControllers.AdminGetRecentPayments)
	adminGroup.Get("/stats", paymentControllers.AdminGetPaymentStats)
}

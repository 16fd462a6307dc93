package paymentController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/policy"
	"lms/services"
	"lms/utils"
	paymentValidators "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func currentUser(c *fiber.Ctx) (models.User, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return models.User{}, false
	}
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND enabled = ?", userID, false, true).
		First(&user).Error; err != nil {
		return models.User{}, false
	}
	return user, true
}

// CreatePayment opens a PENDING payment for a course purchase
func CreatePayment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPayment").(*paymentValidators.CreatePaymentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	payment, err := services.CreatePayment(database.Database.Db, user, reqData.CourseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment created successfully!", payment)
}

// ProcessPayment runs the gateway on a PENDING payment. The response always
// carries the payment; its status tells the outcome.
func ProcessPayment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	paymentID := uint(c.Locals("paymentID").(int))

	// Only the paying student or an admin may trigger processing
	existing, err := services.GetPayment(database.Database.Db, user, paymentID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	if !policy.CanProcessPayment(user, *existing) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot process this payment!", nil)
	}

	payment, err := services.ProcessPayment(database.Database.Db, paymentID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	message := "Payment failed."
	if payment.Status == models.PaymentStatusCompleted {
		message = "Payment completed successfully!"
		if course, cerr := services.GetCourse(database.Database.Db, payment.CourseID); cerr == nil {
			go utils.SendPaymentReceiptEmail(user.Email, user.FullName, course.Title, payment.TransactionID, payment.Amount)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, payment)
}

// CancelPayment cancels a PENDING payment
func CancelPayment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	paymentID := uint(c.Locals("paymentID").(int))

	payment, err := services.CancelPayment(database.Database.Db, user, paymentID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment cancelled successfully!", payment)
}

// GetPayment fetches a payment by id
func GetPayment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	paymentID := uint(c.Locals("paymentID").(int))

	payment, err := services.GetPayment(database.Database.Db, user, paymentID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment fetched successfully!", payment)
}

// GetPaymentByTransactionID fetches a payment by its gateway reference
func GetPaymentByTransactionID(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	transactionID := c.Locals("transactionID").(string)

	payment, err := services.GetPaymentByTransactionID(database.Database.Db, user, transactionID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment fetched successfully!", payment)
}

// GetMyPayments lists the caller's payments with optional status filter
func GetMyPayments(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := 1
	limit := 10
	status := ""
	if reqData, ok := c.Locals("validatedPaymentList").(*struct {
		Page   *int   `json:"page"`
		Limit  *int   `json:"limit"`
		Status string `json:"status"`
	}); ok {
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
		status = reqData.Status
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Payment{}).Where("student_id = ?", user.ID)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var payments []models.Payment
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": payments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCoursePayments lists payments for a course (admin or owning instructor)
func GetCoursePayments(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	course, err := services.GetCourse(database.Database.Db, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	if !policy.CanViewCoursePayments(user, *course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view payments for your own courses!", nil)
	}

	var payments []models.Payment
	if err := database.Database.Db.
		Where("course_id = ?", course.ID).
		Order("created_at desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": payments,
		"total":    len(payments),
	})
}

// AdminGetRecentPayments lists the latest payments across all courses
func AdminGetRecentPayments(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}

	var payments []models.Payment
	if err := database.Database.Db.
		Order("created_at desc").Limit(limit).Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recent payments fetched successfully!", fiber.Map{
		"payments": payments,
	})
}

// AdminGetPaymentStats aggregates payment counts by status
func AdminGetPaymentStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	stats, err := services.GetPaymentStats(database.Database.Db, user)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment statistics fetched successfully!", stats)
}

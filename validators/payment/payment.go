package paymentValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	"lms/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreatePaymentRequest is the payment creation payload
type CreatePaymentRequest struct {
	CourseID uint `json:"courseId" validate:"required,gt=0"`
}

// CreatePayment validates the payment creation payload
func CreatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreatePaymentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"courseId": "A valid course ID is required!",
			})
		}

		c.Locals("validatedPayment", reqData)
		return c.Next()
	}
}

// PaymentID validates the :id route parameter
func PaymentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		paymentIDStr := strings.TrimSpace(c.Params("id"))
		if paymentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment ID is required!", nil)
		}

		paymentID, err := strconv.Atoi(paymentIDStr)
		if err != nil || paymentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Payment ID!", nil)
		}

		c.Locals("paymentID", paymentID)
		return c.Next()
	}
}

// TransactionID validates the :txn_id route parameter
func TransactionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		txnID := strings.TrimSpace(c.Params("txn_id"))
		if txnID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Transaction ID is required!", nil)
		}

		c.Locals("transactionID", txnID)
		return c.Next()
	}
}

// PaymentList validates pagination and the optional status filter
func PaymentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `json:"page"`
			Limit  *int   `json:"limit"`
			Status string `json:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if reqData.Status != "" {
			switch models.PaymentStatus(strings.ToUpper(reqData.Status)) {
			case models.PaymentStatusPending, models.PaymentStatusProcessing, models.PaymentStatusCompleted,
				models.PaymentStatusFailed, models.PaymentStatusCancelled, models.PaymentStatusRefunded:
				reqData.Status = strings.ToUpper(reqData.Status)
			default:
				errors["status"] = "Unknown payment status!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPaymentList", reqData)
		return c.Next()
	}
}

package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/models"

	"github.com/go-resty/resty/v2"
)

// NotifyPaymentWebhook POSTs a terminal payment state to the configured
// webhook URL. Failures are logged only; payment processing never depends
// on the webhook.
func NotifyPaymentWebhook(payment models.Payment) {
	url := config.AppConfig.PaymentWebhookURL
	if url == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"transactionId": payment.TransactionID,
			"status":        payment.Status,
			"amount":        payment.Amount,
			"studentId":     payment.StudentID,
			"courseId":      payment.CourseID,
		}).
		Post(url)
	if err != nil {
		log.Printf("Payment webhook call failed for %s: %v", payment.TransactionID, err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Payment webhook for %s returned %d: %s", payment.TransactionID, resp.StatusCode(), resp.String())
	}
}

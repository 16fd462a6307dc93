package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializePaymentScheduler starts the background job that cancels
// abandoned PENDING payments
func InitializePaymentScheduler() {
	log.Println("[PAYMENT-SCHEDULER] Initializing payment scheduler...")

	c := cron.New()

	// Run hourly to cancel payments that never got processed
	c.AddFunc("0 * * * *", func() {
		log.Println("[PAYMENT-SCHEDULER] Running stale payment check...")
		ExpireStalePayments(database.Database.Db)
	})

	c.Start()
	log.Println("[PAYMENT-SCHEDULER] Payment scheduler started - runs hourly")
}

// ExpireStalePayments cancels PENDING payments older than the configured TTL
// and notifies the webhook for each, CANCELLED being a terminal state.
func ExpireStalePayments(db *gorm.DB) {
	cutoff := time.Now().Add(-time.Duration(config.AppConfig.PaymentPendingTTLHrs) * time.Hour)

	var stale []models.Payment
	if err := db.Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("[PAYMENT-SCHEDULER] Error fetching stale payments: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	result := db.Model(&models.Payment{}).
		Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Update("status", models.PaymentStatusCancelled)

	if result.Error != nil {
		log.Printf("[PAYMENT-SCHEDULER] Error cancelling stale payments: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[PAYMENT-SCHEDULER] Cancelled %d stale pending payments", result.RowsAffected)
	}

	for _, payment := range stale {
		payment.Status = models.PaymentStatusCancelled
		NotifyPaymentWebhook(payment)
	}
}

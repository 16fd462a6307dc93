package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms/config"
	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestExpireStalePayments(t *testing.T) {
	received := make(chan models.PaymentStatus, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- models.PaymentStatusCancelled
	}))
	t.Cleanup(server.Close)

	prev := config.AppConfig
	config.AppConfig = &config.Config{
		PaymentPendingTTLHrs: 24,
		PaymentWebhookURL:    server.URL,
	}
	t.Cleanup(func() { config.AppConfig = prev })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Payment{}))

	stale := models.Payment{
		StudentID:     1,
		CourseID:      1,
		Amount:        10,
		Status:        models.PaymentStatusPending,
		TransactionID: "TXN-STALE001",
	}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Model(&stale).Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	fresh := models.Payment{
		StudentID:     2,
		CourseID:      1,
		Amount:        10,
		Status:        models.PaymentStatusPending,
		TransactionID: "TXN-FRESH001",
	}
	require.NoError(t, db.Create(&fresh).Error)

	ExpireStalePayments(db)

	var reloaded models.Payment
	require.NoError(t, db.First(&reloaded, stale.ID).Error)
	assert.Equal(t, models.PaymentStatusCancelled, reloaded.Status)

	reloaded = models.Payment{}
	require.NoError(t, db.First(&reloaded, fresh.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, reloaded.Status, "payments inside the TTL stay pending")

	// Webhook is called synchronously, once per cancelled payment
	assert.Len(t, received, 1)

	// A second run finds nothing stale and stays quiet
	ExpireStalePayments(db)
	assert.Len(t, received, 1)
}

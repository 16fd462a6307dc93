package services

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"lms/config"
	"lms/models"
	courseModels "lms/models/course"
	"lms/policy"
	"lms/utils"

	"gorm.io/gorm"
)

// GatewayFunc decides whether the simulated payment gateway approves a
// payment. Swappable so tests can force deterministic outcomes.
type GatewayFunc func(payment *models.Payment) bool

// PaymentGateway is the active outcome decider
var PaymentGateway GatewayFunc = simulatedGateway

var gatewayRand = rand.New(rand.NewSource(time.Now().UnixNano()))

func simulatedGateway(_ *models.Payment) bool {
	rate := 0.9
	if config.AppConfig != nil {
		rate = config.AppConfig.PaymentSuccessRate
	}
	return gatewayRand.Float64() < rate
}

func processingDelay() time.Duration {
	if config.AppConfig == nil {
		return 0
	}
	return time.Duration(config.AppConfig.PaymentProcessingMs) * time.Millisecond
}

// PaymentStats aggregates payment counts by status
type PaymentStats struct {
	PendingPayments   int64 `json:"pendingPayments"`
	CompletedPayments int64 `json:"completedPayments"`
	FailedPayments    int64 `json:"failedPayments"`
	CancelledPayments int64 `json:"cancelledPayments"`
}

// CreatePayment opens a PENDING payment for a student buying a course.
// Blocked when the student already completed a payment for the course or is
// already enrolled.
func CreatePayment(db *gorm.DB, actor models.User, courseID uint) (*models.Payment, error) {
	if !policy.CanEnroll(actor) {
		return nil, fmt.Errorf("%w: only students can purchase courses", ErrUnauthorized)
	}

	course, err := GetCourse(db, courseID)
	if err != nil {
		return nil, err
	}

	var completed int64
	if err := db.Model(&models.Payment{}).
		Where("student_id = ? AND course_id = ? AND status = ?", actor.ID, course.ID, models.PaymentStatusCompleted).
		Count(&completed).Error; err != nil {
		return nil, err
	}
	if completed > 0 {
		return nil, fmt.Errorf("%w: already paid for this course", ErrConflict)
	}

	var enrolled int64
	if err := db.Model(&courseModels.Enrollment{}).
		Where("student_id = ? AND course_id = ?", actor.ID, course.ID).
		Count(&enrolled).Error; err != nil {
		return nil, err
	}
	if enrolled > 0 {
		return nil, fmt.Errorf("%w: already enrolled in this course", ErrConflict)
	}

	payment := models.Payment{
		StudentID:     actor.ID,
		CourseID:      course.ID,
		Amount:        course.Price,
		Status:        models.PaymentStatusPending,
		TransactionID: utils.GenerateTransactionID(),
	}
	if err := db.Create(&payment).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: duplicate payment", ErrConflict)
		}
		return nil, err
	}
	return &payment, nil
}

// ProcessPayment runs the simulated gateway on a PENDING payment.
//
// The PENDING to PROCESSING flip is a conditional update keyed on the prior
// status, so a concurrent call on the same payment sees zero rows affected
// and stops instead of double-processing. PROCESSING is persisted before
// the gateway runs; gateway failures resolve to FAILED rather than
// propagating. On success the enrollment is created in the same transaction
// that records COMPLETED.
func ProcessPayment(db *gorm.DB, paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := db.First(&payment, paymentID).Error; err != nil {
		return nil, fmt.Errorf("%w: payment %d", ErrNotFound, paymentID)
	}
	if payment.Status != models.PaymentStatusPending {
		return nil, fmt.Errorf("%w: payment is not in pending status", ErrConflict)
	}

	res := db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, models.PaymentStatusPending).
		Update("status", models.PaymentStatusProcessing)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: payment is already being processed", ErrConflict)
	}
	payment.Status = models.PaymentStatusProcessing

	// Simulated gateway latency
	time.Sleep(processingDelay())

	if PaymentGateway(&payment) {
		err := db.Transaction(func(tx *gorm.DB) error {
			enrollment, err := createEnrollmentFromPayment(tx, &payment)
			if err != nil {
				return err
			}
			now := time.Now()
			return tx.Model(&models.Payment{}).
				Where("id = ? AND status = ?", payment.ID, models.PaymentStatusProcessing).
				Updates(map[string]interface{}{
					"status":        models.PaymentStatusCompleted,
					"completed_at":  now,
					"enrollment_id": enrollment.ID,
				}).Error
		})
		if err != nil {
			// Whatever went wrong mid-processing, the caller gets a FAILED
			// payment, never an exception.
			log.Printf("Error completing payment %d: %v", payment.ID, err)
			failPayment(db, &payment)
		}
	} else {
		log.Printf("Payment %d declined by gateway", payment.ID)
		failPayment(db, &payment)
	}

	if err := db.First(&payment, payment.ID).Error; err != nil {
		return nil, err
	}

	notifyTerminalState(payment)
	return &payment, nil
}

func failPayment(db *gorm.DB, payment *models.Payment) {
	if err := db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, models.PaymentStatusProcessing).
		Update("status", models.PaymentStatusFailed).Error; err != nil {
		log.Printf("Error marking payment %d failed: %v", payment.ID, err)
	}
}

func notifyTerminalState(payment models.Payment) {
	if config.AppConfig == nil || config.AppConfig.PaymentWebhookURL == "" {
		return
	}
	go utils.NotifyPaymentWebhook(payment)
}

// CancelPayment moves a PENDING payment to CANCELLED. Allowed for the
// paying student or an admin; any other status is rejected.
func CancelPayment(db *gorm.DB, actor models.User, paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := db.First(&payment, paymentID).Error; err != nil {
		return nil, fmt.Errorf("%w: payment %d", ErrNotFound, paymentID)
	}
	if !policy.CanCancelPayment(actor, payment) {
		return nil, fmt.Errorf("%w: you cannot cancel this payment", ErrUnauthorized)
	}

	res := db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, models.PaymentStatusPending).
		Update("status", models.PaymentStatusCancelled)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: only pending payments can be cancelled", ErrConflict)
	}

	if err := db.First(&payment, payment.ID).Error; err != nil {
		return nil, err
	}

	// CANCELLED is terminal too
	notifyTerminalState(payment)
	return &payment, nil
}

// GetPayment fetches a payment with its view policy applied
func GetPayment(db *gorm.DB, actor models.User, paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := db.First(&payment, paymentID).Error; err != nil {
		return nil, fmt.Errorf("%w: payment %d", ErrNotFound, paymentID)
	}
	return authorizePaymentView(db, actor, payment)
}

// GetPaymentByTransactionID fetches a payment by its gateway reference
func GetPaymentByTransactionID(db *gorm.DB, actor models.User, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := db.Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
		return nil, fmt.Errorf("%w: transaction %s", ErrNotFound, transactionID)
	}
	return authorizePaymentView(db, actor, payment)
}

func authorizePaymentView(db *gorm.DB, actor models.User, payment models.Payment) (*models.Payment, error) {
	var purchased courseModels.Course
	if err := db.First(&purchased, payment.CourseID).Error; err != nil {
		// Course row gone; fall back to role/ownership on the payment alone
		purchased = courseModels.Course{}
	}
	if !policy.CanViewPayment(actor, payment, purchased) {
		return nil, fmt.Errorf("%w: you cannot view this payment", ErrUnauthorized)
	}
	return &payment, nil
}

// HasStudentPaidForCourse reports whether a COMPLETED payment exists for the pair
func HasStudentPaidForCourse(db *gorm.DB, studentID, courseID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Payment{}).
		Where("student_id = ? AND course_id = ? AND status = ?", studentID, courseID, models.PaymentStatusCompleted).
		Count(&count).Error
	return count > 0, err
}

// GetPaymentStats aggregates payment counts by status (admin dashboards)
func GetPaymentStats(db *gorm.DB, actor models.User) (*PaymentStats, error) {
	if !policy.CanManageUsers(actor) {
		return nil, fmt.Errorf("%w: only administrators can view payment statistics", ErrUnauthorized)
	}

	stats := &PaymentStats{}
	counts := []struct {
		status models.PaymentStatus
		target *int64
	}{
		{models.PaymentStatusPending, &stats.PendingPayments},
		{models.PaymentStatusCompleted, &stats.CompletedPayments},
		{models.PaymentStatusFailed, &stats.FailedPayments},
		{models.PaymentStatusCancelled, &stats.CancelledPayments},
	}
	for _, c := range counts {
		if err := db.Model(&models.Payment{}).Where("status = ?", c.status).Count(c.target).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}

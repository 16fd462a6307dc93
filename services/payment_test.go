package services

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"lms/config"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway forces a deterministic gateway outcome for the test's duration
func stubGateway(t *testing.T, approve bool) {
	t.Helper()
	prev := PaymentGateway
	PaymentGateway = func(*models.Payment) bool { return approve }
	t.Cleanup(func() { PaymentGateway = prev })
}

func TestCreatePayment(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, instructor, true, 79.50)

	payment, err := CreatePayment(db, student, course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Equal(t, 79.50, payment.Amount, "amount comes from the course price, not the caller")
	assert.Regexp(t, regexp.MustCompile(`^TXN-[0-9A-F]{8}$`), payment.TransactionID)
	assert.Nil(t, payment.EnrollmentID)

	_, err = CreatePayment(db, instructor, course.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreatePaymentBlockedAfterCompletion(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, instructor, true, 10)
	stubGateway(t, true)

	payment, err := CreatePayment(db, student, course.ID)
	require.NoError(t, err)

	_, err = ProcessPayment(db, payment.ID)
	require.NoError(t, err)

	_, err = CreatePayment(db, student, course.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreatePaymentBlockedWhenEnrolled(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, instructor, true, 0)

	_, err := EnrollInCourse(db, student, course.ID)
	require.NoError(t, err)

	_, err = CreatePayment(db, student, course.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProcessPaymentSuccess(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, instructor, true, 10)
	stubGateway(t, true)

	created, err := CreatePayment(db, student, course.ID)
	require.NoError(t, err)

	payment, err := ProcessPayment(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	require.NotNil(t, payment.CompletedAt)
	require.NotNil(t, payment.EnrollmentID)

	// Enrollment and payment reference each other
	var enrollment courseModels.Enrollment
	require.NoError(t, db.First(&enrollment, *payment.EnrollmentID).Error)
	assert.Equal(t, student.ID, enrollment.StudentID)
	assert.Equal(t, course.ID, enrollment.CourseID)
	require.NotNil(t, enrollment.PaymentID)
	assert.Equal(t, payment.ID, *enrollment.PaymentID)

	paid, err := HasStudentPaidForCourse(db, student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, paid)
}

func TestProcessPaymentDeclined(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, instructor, true, 10)
	stubGateway(t, false)

	created, err := CreatePayment(db, student, course.ID)
	require.NoError(t, err)

	payment, err := ProcessPayment(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)
	assert.Nil(t, payment.EnrollmentID)
	assert.Nil(t, payment.CompletedAt)

	// A declined payment never enrolls the student
	var enrollments int64
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&enrollments).Error)
	assert.Zero(t, enrollments)

	// The student can retry with a fresh payment
	_, err = CreatePayment(db, student, course.ID)
	require.NoError(t, err)
}

func TestProcessPaymentRequiresPending(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, instructor, true, 10)
	stubGateway(t, false)

	created, err := CreatePayment(db, student, course.ID)
	require.NoError(t, err)

	_, err = ProcessPayment(db, created.ID)
	require.NoError(t, err)

	// Reprocessing a FAILED payment is rejected without touching it
	_, err = ProcessPayment(db, created.ID)
	assert.ErrorIs(t, err, ErrConflict)

	var payment models.Payment
	require.NoError(t, db.First(&payment, created.ID).Error)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)
}

func TestProcessPaymentNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := ProcessPayment(db, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelPayment(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)
	otherStudent := createUser(t, db, models.RoleStudent)
	admin := createUser(t, db, models.RoleAdmin)
	course := createCourse(t, db, instructor, true, 10)

	created, err := CreatePayment(db, student, course.ID)
	require.NoError(t, err)

	_, err = CancelPayment(db, otherStudent, created.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	payment, err := CancelPayment(db, student, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCancelled, payment.Status)

	// CANCELLED is terminal
	_, err = CancelPayment(db, student, created.ID)
	assert.ErrorIs(t, err, ErrConflict)
	_, err = ProcessPayment(db, created.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// Admins can cancel on a student's behalf
	second, err := CreatePayment(db, student, course.ID)
	require.NoError(t, err)
	payment, err = CancelPayment(db, admin, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCancelled, payment.Status)
}

func TestCancelPaymentNotifiesWebhook(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, instructor, true, 10)

	received := make(chan struct{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- struct{}{}
	}))
	t.Cleanup(server.Close)

	prev := config.AppConfig.PaymentWebhookURL
	config.AppConfig.PaymentWebhookURL = server.URL
	t.Cleanup(func() { config.AppConfig.PaymentWebhookURL = prev })

	created, err := CreatePayment(db, student, course.ID)
	require.NoError(t, err)

	_, err = CancelPayment(db, student, created.ID)
	require.NoError(t, err)

	select {
	case <-received:
	case <-time.After(3 * time.Second):
		t.Fatal("webhook was not notified of the cancellation")
	}
}

func TestCancelCompletedPayment(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, instructor, true, 10)
	stubGateway(t, true)

	created, err := CreatePayment(db, student, course.ID)
	require.NoError(t, err)
	_, err = ProcessPayment(db, created.ID)
	require.NoError(t, err)

	_, err = CancelPayment(db, student, created.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPaymentVisibility(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	otherInstructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)
	otherStudent := createUser(t, db, models.RoleStudent)
	admin := createUser(t, db, models.RoleAdmin)
	course := createCourse(t, db, instructor, true, 10)

	created, err := CreatePayment(db, student, course.ID)
	require.NoError(t, err)

	for _, viewer := range []models.User{student, admin, instructor} {
		_, err := GetPayment(db, viewer, created.ID)
		assert.NoError(t, err, "role %s should see the payment", viewer.Role)
	}
	for _, viewer := range []models.User{otherStudent, otherInstructor} {
		_, err := GetPayment(db, viewer, created.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	}

	byTxn, err := GetPaymentByTransactionID(db, student, created.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byTxn.ID)

	_, err = GetPaymentByTransactionID(db, student, "TXN-DEADBEEF")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPaymentStats(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	admin := createUser(t, db, models.RoleAdmin)
	courseOne := createCourse(t, db, instructor, true, 10)
	courseTwo := createCourse(t, db, instructor, true, 20)

	buyer := createUser(t, db, models.RoleStudent)
	stubGateway(t, true)
	completed, err := CreatePayment(db, buyer, courseOne.ID)
	require.NoError(t, err)
	_, err = ProcessPayment(db, completed.ID)
	require.NoError(t, err)

	_, err = CreatePayment(db, buyer, courseTwo.ID)
	require.NoError(t, err)

	decliner := createUser(t, db, models.RoleStudent)
	stubGateway(t, false)
	failed, err := CreatePayment(db, decliner, courseOne.ID)
	require.NoError(t, err)
	_, err = ProcessPayment(db, failed.ID)
	require.NoError(t, err)

	cancelled, err := CreatePayment(db, decliner, courseTwo.ID)
	require.NoError(t, err)
	_, err = CancelPayment(db, decliner, cancelled.ID)
	require.NoError(t, err)

	stats, err := GetPaymentStats(db, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.PendingPayments)
	assert.Equal(t, int64(1), stats.CompletedPayments)
	assert.Equal(t, int64(1), stats.FailedPayments)
	assert.Equal(t, int64(1), stats.CancelledPayments)

	_, err = GetPaymentStats(db, instructor)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

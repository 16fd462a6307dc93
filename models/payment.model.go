package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentStatus defines the state of a payment
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED" // reserved, no transition targets it yet
)

// IsTerminal reports whether no further transition is allowed from the status
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment tracks a simulated gateway transaction for a course purchase.
// A COMPLETED payment owns the enrollment it created via EnrollmentID.
type Payment struct {
	gorm.Model
	StudentID     uint          `gorm:"index;not null" json:"studentId"`
	CourseID      uint          `gorm:"index;not null" json:"courseId"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Status        PaymentStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	TransactionID string        `gorm:"uniqueIndex;not null" json:"transactionId"`
	EnrollmentID  *uint         `gorm:"uniqueIndex" json:"enrollmentId"`
	CompletedAt   *time.Time    `json:"completedAt"`
}

func (Payment) TableName() string {
	return "payments"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginTracking records successful logins for the login history endpoint
type LoginTracking struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"userId"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	LoginAt   time.Time `gorm:"not null" json:"loginAt"`
}

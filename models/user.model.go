package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin      = "ADMIN"
	RoleInstructor = "INSTRUCTOR"
	RoleStudent    = "STUDENT"
)

type User struct {
	gorm.Model
	Username  string     `gorm:"uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	FullName  string     `gorm:"default:''" json:"fullName"`
	Password  string     `gorm:"not null" json:"-"`
	Role      string     `gorm:"default:'STUDENT'" json:"role"` // ADMIN, INSTRUCTOR, STUDENT
	Enabled   bool       `gorm:"default:true" json:"enabled"`
	LastLogin *time.Time `json:"lastLogin"`
	IsDeleted bool       `gorm:"default:false" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

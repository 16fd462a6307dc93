package services

import (
	"fmt"
	"strings"

	"lms/models"
	courseModels "lms/models/course"
	"lms/policy"

	"gorm.io/gorm"
)

// UserUpdateInput carries the admin-editable account fields
type UserUpdateInput struct {
	FullName string
	Email    string
}

// GetUser fetches a live user by id
func GetUser(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	return &user, nil
}

// SetUserEnabled toggles an account's enabled flag (admin only)
func SetUserEnabled(db *gorm.DB, actor models.User, userID uint, enabled bool) (*models.User, error) {
	if !policy.CanManageUsers(actor) {
		return nil, fmt.Errorf("%w: only administrators can manage accounts", ErrUnauthorized)
	}

	user, err := GetUser(db, userID)
	if err != nil {
		return nil, err
	}

	user.Enabled = enabled
	if err := db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser edits an account's display fields (admin only)
func UpdateUser(db *gorm.DB, actor models.User, userID uint, input UserUpdateInput) (*models.User, error) {
	if !policy.CanManageUsers(actor) {
		return nil, fmt.Errorf("%w: only administrators can manage accounts", ErrUnauthorized)
	}

	user, err := GetUser(db, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.FullName) != "" {
		user.FullName = input.FullName
	}
	if strings.TrimSpace(input.Email) != "" {
		var existing int64
		if err := db.Model(&models.User{}).
			Where("email = ? AND id <> ?", input.Email, user.ID).
			Count(&existing).Error; err != nil {
			return nil, err
		}
		if existing > 0 {
			return nil, fmt.Errorf("%w: email is already in use", ErrConflict)
		}
		user.Email = input.Email
	}

	if err := db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft deletes an account. Rejected while the user still owns
// courses or holds enrollments so dependent records keep a valid owner.
func DeleteUser(db *gorm.DB, actor models.User, userID uint) error {
	if !policy.CanManageUsers(actor) {
		return fmt.Errorf("%w: only administrators can manage accounts", ErrUnauthorized)
	}

	user, err := GetUser(db, userID)
	if err != nil {
		return err
	}

	var ownedCourses int64
	if err := db.Model(&courseModels.Course{}).
		Where("instructor_id = ? AND is_deleted = ?", user.ID, false).
		Count(&ownedCourses).Error; err != nil {
		return err
	}
	if ownedCourses > 0 {
		return fmt.Errorf("%w: user still owns courses", ErrConflict)
	}

	var enrollments int64
	if err := db.Model(&courseModels.Enrollment{}).Where("student_id = ?", user.ID).Count(&enrollments).Error; err != nil {
		return err
	}
	if enrollments > 0 {
		return fmt.Errorf("%w: user still holds enrollments", ErrConflict)
	}

	user.IsDeleted = true
	return db.Save(user).Error
}

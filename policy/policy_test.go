package policy

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func user(id uint, role string) models.User {
	return models.User{Model: gorm.Model{ID: id}, Role: role}
}

func TestCanCreateCourse(t *testing.T) {
	assert.True(t, CanCreateCourse(user(1, models.RoleAdmin)))
	assert.True(t, CanCreateCourse(user(2, models.RoleInstructor)))
	assert.False(t, CanCreateCourse(user(3, models.RoleStudent)))
}

func TestCanEditCourse(t *testing.T) {
	owned := courseModels.Course{InstructorID: 2}

	assert.True(t, CanEditCourse(user(1, models.RoleAdmin), owned))
	assert.True(t, CanEditCourse(user(2, models.RoleInstructor), owned))
	assert.False(t, CanEditCourse(user(5, models.RoleInstructor), owned), "instructors cannot edit other instructors' courses")
	assert.False(t, CanEditCourse(user(2, models.RoleStudent), owned), "ownership without the instructor role is not enough")
}

func TestCanDeleteCourse(t *testing.T) {
	draft := courseModels.Course{InstructorID: 2, IsApproved: false}
	approved := courseModels.Course{InstructorID: 2, IsApproved: true}

	assert.True(t, CanDeleteCourse(user(1, models.RoleAdmin), approved))
	assert.True(t, CanDeleteCourse(user(2, models.RoleInstructor), draft))
	assert.False(t, CanDeleteCourse(user(2, models.RoleInstructor), approved), "owners cannot delete approved courses")
	assert.False(t, CanDeleteCourse(user(5, models.RoleInstructor), draft))
	assert.False(t, CanDeleteCourse(user(3, models.RoleStudent), draft))
}

func TestCanApproveCourse(t *testing.T) {
	assert.True(t, CanApproveCourse(user(1, models.RoleAdmin)))
	assert.False(t, CanApproveCourse(user(2, models.RoleInstructor)))
	assert.False(t, CanApproveCourse(user(3, models.RoleStudent)))
}

func TestCanEnroll(t *testing.T) {
	assert.True(t, CanEnroll(user(3, models.RoleStudent)))
	assert.False(t, CanEnroll(user(1, models.RoleAdmin)))
	assert.False(t, CanEnroll(user(2, models.RoleInstructor)))
}

func TestCanViewCourseEnrollments(t *testing.T) {
	owned := courseModels.Course{InstructorID: 2}

	assert.True(t, CanViewCourseEnrollments(user(1, models.RoleAdmin), owned))
	assert.True(t, CanViewCourseEnrollments(user(2, models.RoleInstructor), owned))
	assert.False(t, CanViewCourseEnrollments(user(5, models.RoleInstructor), owned))
	assert.False(t, CanViewCourseEnrollments(user(3, models.RoleStudent), owned))
}

func TestCanViewPayment(t *testing.T) {
	payment := models.Payment{StudentID: 3}
	purchased := courseModels.Course{InstructorID: 2}

	assert.True(t, CanViewPayment(user(1, models.RoleAdmin), payment, purchased))
	assert.True(t, CanViewPayment(user(3, models.RoleStudent), payment, purchased))
	assert.True(t, CanViewPayment(user(2, models.RoleInstructor), payment, purchased))
	assert.False(t, CanViewPayment(user(4, models.RoleStudent), payment, purchased))
	assert.False(t, CanViewPayment(user(5, models.RoleInstructor), payment, purchased))
}

func TestCanCancelPayment(t *testing.T) {
	payment := models.Payment{StudentID: 3}

	assert.True(t, CanCancelPayment(user(3, models.RoleStudent), payment))
	assert.True(t, CanCancelPayment(user(1, models.RoleAdmin), payment))
	assert.False(t, CanCancelPayment(user(4, models.RoleStudent), payment))
	assert.False(t, CanCancelPayment(user(2, models.RoleInstructor), payment))
}

func TestCanProcessPayment(t *testing.T) {
	payment := models.Payment{StudentID: 3}

	assert.True(t, CanProcessPayment(user(3, models.RoleStudent), payment))
	assert.True(t, CanProcessPayment(user(1, models.RoleAdmin), payment))
	assert.False(t, CanProcessPayment(user(4, models.RoleStudent), payment))
	assert.False(t, CanProcessPayment(user(2, models.RoleInstructor), payment))
}

func TestCanViewCoursePayments(t *testing.T) {
	owned := courseModels.Course{InstructorID: 2}

	assert.True(t, CanViewCoursePayments(user(1, models.RoleAdmin), owned))
	assert.True(t, CanViewCoursePayments(user(2, models.RoleInstructor), owned))
	assert.False(t, CanViewCoursePayments(user(5, models.RoleInstructor), owned))
	assert.False(t, CanViewCoursePayments(user(3, models.RoleStudent), owned))
}

func TestCanManageUsers(t *testing.T) {
	assert.True(t, CanManageUsers(user(1, models.RoleAdmin)))
	assert.False(t, CanManageUsers(user(2, models.RoleInstructor)))
	assert.False(t, CanManageUsers(user(3, models.RoleStudent)))
}

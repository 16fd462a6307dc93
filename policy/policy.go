// Package policy centralizes the role and ownership checks gating course,
// enrollment and payment operations. Each action gets one predicate taking
// the caller (and target where ownership matters) so the rules are testable
// without a database.
package policy

import (
	"lms/models"
	courseModels "lms/models/course"
)

// CanCreateCourse allows instructors and admins to author courses
func CanCreateCourse(caller models.User) bool {
	return caller.IsAdmin() || caller.IsInstructor()
}

// CanEditCourse allows admins, and instructors on their own courses.
// Covers update, lesson management and submit-for-approval.
func CanEditCourse(caller models.User, c courseModels.Course) bool {
	if caller.IsAdmin() {
		return true
	}
	return caller.IsInstructor() && c.InstructorID == caller.ID
}

// CanDeleteCourse allows admins always; owning instructors only while the
// course is still unapproved. The no-enrollments rule is enforced separately
// since it applies to admins too.
func CanDeleteCourse(caller models.User, c courseModels.Course) bool {
	if caller.IsAdmin() {
		return true
	}
	return caller.IsInstructor() && c.InstructorID == caller.ID && !c.IsApproved
}

// CanApproveCourse gates the approve/reject transitions to admins
func CanApproveCourse(caller models.User) bool {
	return caller.IsAdmin()
}

// CanEnroll restricts self-service enrollment actions to students
func CanEnroll(caller models.User) bool {
	return caller.IsStudent()
}

// CanViewCourseEnrollments allows admins on any course and instructors on
// their own; students never see another student's enrollment roster.
func CanViewCourseEnrollments(caller models.User, c courseModels.Course) bool {
	if caller.IsAdmin() {
		return true
	}
	return caller.IsInstructor() && c.InstructorID == caller.ID
}

// CanViewPayment allows the paying student, admins, and the instructor who
// owns the purchased course.
func CanViewPayment(caller models.User, p models.Payment, c courseModels.Course) bool {
	if caller.IsAdmin() || p.StudentID == caller.ID {
		return true
	}
	return caller.IsInstructor() && c.InstructorID == caller.ID
}

// CanCancelPayment allows the paying student or an admin
func CanCancelPayment(caller models.User, p models.Payment) bool {
	return caller.IsAdmin() || p.StudentID == caller.ID
}

// CanProcessPayment allows the paying student or an admin to trigger the
// gateway on a payment
func CanProcessPayment(caller models.User, p models.Payment) bool {
	return caller.IsAdmin() || p.StudentID == caller.ID
}

// CanViewCoursePayments allows admins on any course and instructors on
// their own
func CanViewCoursePayments(caller models.User, c courseModels.Course) bool {
	if caller.IsAdmin() {
		return true
	}
	return caller.IsInstructor() && c.InstructorID == caller.ID
}

// CanManageUsers gates account administration to admins
func CanManageUsers(caller models.User) bool {
	return caller.IsAdmin()
}

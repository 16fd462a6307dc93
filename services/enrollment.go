package services

import (
	"fmt"
	"time"

	"lms/models"
	courseModels "lms/models/course"
	"lms/policy"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnrollInCourse enrolls a student in an approved course (free path).
// The unique (student, course) index backstops the existence check.
func EnrollInCourse(db *gorm.DB, actor models.User, courseID uint) (*courseModels.Enrollment, error) {
	if !policy.CanEnroll(actor) {
		return nil, fmt.Errorf("%w: only students can enroll in courses", ErrUnauthorized)
	}

	course, err := GetCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsApproved {
		return nil, fmt.Errorf("%w: cannot enroll in unapproved courses", ErrConflict)
	}

	var existing int64
	if err := db.Model(&courseModels.Enrollment{}).
		Where("student_id = ? AND course_id = ?", actor.ID, course.ID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: already enrolled in this course", ErrConflict)
	}

	enrollment := courseModels.Enrollment{
		StudentID:        actor.ID,
		CourseID:         course.ID,
		EnrollmentDate:   time.Now(),
		Progress:         0,
		CompletedLessons: datatypes.JSON("[]"),
	}
	if err := db.Create(&enrollment).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: already enrolled in this course", ErrConflict)
		}
		return nil, err
	}
	return &enrollment, nil
}

// createEnrollmentFromPayment creates the enrollment for a successful
// payment inside the payment's transaction. CreatePayment already blocks a
// second completed payment per (student, course), so the uniqueness
// invariant holds on this path too.
func createEnrollmentFromPayment(tx *gorm.DB, payment *models.Payment) (*courseModels.Enrollment, error) {
	paymentID := payment.ID
	enrollment := courseModels.Enrollment{
		StudentID:        payment.StudentID,
		CourseID:         payment.CourseID,
		EnrollmentDate:   time.Now(),
		Progress:         0,
		CompletedLessons: datatypes.JSON("[]"),
		PaymentID:        &paymentID,
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: already enrolled in this course", ErrConflict)
		}
		return nil, err
	}
	return &enrollment, nil
}

// GetEnrollment fetches a student's enrollment for a course
func GetEnrollment(db *gorm.DB, studentID, courseID uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error; err != nil {
		return nil, fmt.Errorf("%w: not enrolled in this course", ErrNotFound)
	}
	return &enrollment, nil
}

// UpdateProgress sets the completion percentage for the caller's enrollment.
// Bounds are inclusive; 0 and 100 are accepted.
func UpdateProgress(db *gorm.DB, actor models.User, courseID uint, progress int) (*courseModels.Enrollment, error) {
	if !policy.CanEnroll(actor) {
		return nil, fmt.Errorf("%w: only students can update enrollment progress", ErrUnauthorized)
	}
	if progress < 0 || progress > 100 {
		return nil, fmt.Errorf("%w: progress must be between 0 and 100", ErrInvalidInput)
	}

	enrollment, err := GetEnrollment(db, actor.ID, courseID)
	if err != nil {
		return nil, err
	}

	enrollment.Progress = progress
	if progress >= 100 {
		if enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
	} else {
		enrollment.CompletedAt = nil
	}

	if err := db.Save(enrollment).Error; err != nil {
		return nil, err
	}
	return enrollment, nil
}

// CompleteLesson records a lesson as done and recomputes progress from the
// completed / total lesson ratio.
func CompleteLesson(db *gorm.DB, actor models.User, courseID, lessonID uint) (*courseModels.Enrollment, error) {
	if !policy.CanEnroll(actor) {
		return nil, fmt.Errorf("%w: only students can complete lessons", ErrUnauthorized)
	}

	enrollment, err := GetEnrollment(db, actor.ID, courseID)
	if err != nil {
		return nil, err
	}

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		return nil, fmt.Errorf("%w: lesson %d", ErrNotFound, lessonID)
	}

	if !enrollment.MarkLessonCompleted(lesson.ID) {
		return nil, fmt.Errorf("%w: lesson already completed", ErrConflict)
	}

	var total int64
	if err := db.Model(&courseModels.Lesson{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return nil, err
	}
	if total > 0 {
		enrollment.Progress = len(enrollment.CompletedLessonIDs()) * 100 / int(total)
	}
	if enrollment.Progress >= 100 && enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.CompletedAt = &now
	}

	if err := db.Save(enrollment).Error; err != nil {
		return nil, err
	}
	return enrollment, nil
}

// UnenrollFromCourse removes the caller's enrollment. The row is hard
// deleted so the student can re-enroll later without tripping the unique
// index.
func UnenrollFromCourse(db *gorm.DB, actor models.User, courseID uint) error {
	if !policy.CanEnroll(actor) {
		return fmt.Errorf("%w: only students can unenroll from courses", ErrUnauthorized)
	}

	enrollment, err := GetEnrollment(db, actor.ID, courseID)
	if err != nil {
		return err
	}

	return db.Unscoped().Delete(enrollment).Error
}

// CourseEnrollments returns a course's enrollment roster, gated to admins
// and the owning instructor.
func CourseEnrollments(db *gorm.DB, actor models.User, courseID uint) ([]courseModels.Enrollment, error) {
	course, err := GetCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewCourseEnrollments(actor, *course) {
		return nil, fmt.Errorf("%w: you can only view enrollments for your own courses", ErrUnauthorized)
	}

	var enrollments []courseModels.Enrollment
	if err := db.Where("course_id = ?", course.ID).Order("enrollment_date desc").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

package services

import (
	"fmt"
	"strings"

	"lms/models"
	courseModels "lms/models/course"
	"lms/policy"

	"gorm.io/gorm"
)

// CourseInput carries the writable course fields. Price is a pointer so
// partial updates can leave it untouched; 0 is a valid price (free course).
type CourseInput struct {
	Title       string
	Description string
	Price       *float64
}

// LessonInput carries the writable lesson fields
type LessonInput struct {
	SequenceNumber int
	Title          string
	ContentType    string
	ContentText    string
	ContentURL     string
}

// CreateCourse creates an unapproved course owned by the caller
func CreateCourse(db *gorm.DB, actor models.User, input CourseInput) (*courseModels.Course, error) {
	if !policy.CanCreateCourse(actor) {
		return nil, fmt.Errorf("%w: only instructors and admins can create courses", ErrUnauthorized)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	price := 0.0
	if input.Price != nil {
		price = *input.Price
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}

	course := courseModels.Course{
		Title:        input.Title,
		Description:  input.Description,
		Price:        price,
		IsApproved:   false,
		InstructorID: actor.ID,
	}
	if err := db.Create(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// UpdateCourse updates title/description/price of an existing course
func UpdateCourse(db *gorm.DB, actor models.User, courseID uint, input CourseInput) (*courseModels.Course, error) {
	course, err := GetCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditCourse(actor, *course) {
		return nil, fmt.Errorf("%w: you are not authorized to edit this course", ErrUnauthorized)
	}

	if strings.TrimSpace(input.Title) != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
		}
		course.Price = *input.Price
	}

	if err := db.Save(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

// SubmitForApproval validates ownership and state. The course stays
// unapproved; the flag only moves through ApproveCourse/RejectCourse.
func SubmitForApproval(db *gorm.DB, actor models.User, courseID uint) (*courseModels.Course, error) {
	course, err := GetCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditCourse(actor, *course) {
		return nil, fmt.Errorf("%w: you are not authorized to submit this course", ErrUnauthorized)
	}
	if course.IsApproved {
		return nil, fmt.Errorf("%w: approved courses cannot be resubmitted", ErrConflict)
	}

	if err := db.Save(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

// ApproveCourse flips an unapproved course to approved (admin only)
func ApproveCourse(db *gorm.DB, actor models.User, courseID uint) (*courseModels.Course, error) {
	if !policy.CanApproveCourse(actor) {
		return nil, fmt.Errorf("%w: only administrators can approve courses", ErrUnauthorized)
	}

	course, err := GetCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if course.IsApproved {
		return nil, fmt.Errorf("%w: course is already approved", ErrConflict)
	}

	course.IsApproved = true
	if err := db.Save(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

// RejectCourse flips an approved course back to unapproved (admin only)
func RejectCourse(db *gorm.DB, actor models.User, courseID uint) (*courseModels.Course, error) {
	if !policy.CanApproveCourse(actor) {
		return nil, fmt.Errorf("%w: only administrators can reject courses", ErrUnauthorized)
	}

	course, err := GetCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsApproved {
		return nil, fmt.Errorf("%w: only approved courses can be rejected", ErrConflict)
	}

	course.IsApproved = false
	if err := db.Save(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse soft deletes a course and its lessons. Rejected for any
// caller while enrollments exist, so student records stay intact.
func DeleteCourse(db *gorm.DB, actor models.User, courseID uint) error {
	course, err := GetCourse(db, courseID)
	if err != nil {
		return err
	}
	if !policy.CanDeleteCourse(actor, *course) {
		return fmt.Errorf("%w: you are not authorized to delete this course", ErrUnauthorized)
	}

	var enrollments int64
	if err := db.Model(&courseModels.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrollments).Error; err != nil {
		return err
	}
	if enrollments > 0 {
		return fmt.Errorf("%w: course has active enrollments", ErrConflict)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", course.ID).Delete(&courseModels.Lesson{}).Error; err != nil {
			return err
		}
		course.IsDeleted = true
		return tx.Save(course).Error
	})
}

// GetCourse fetches a live course by id
func GetCourse(db *gorm.DB, courseID uint) (*courseModels.Course, error) {
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, fmt.Errorf("%w: course %d", ErrNotFound, courseID)
	}
	return &course, nil
}

// AddLesson appends a lesson to a course. Sequence numbers are unique per
// course; content fields must match the declared content type.
func AddLesson(db *gorm.DB, actor models.User, courseID uint, input LessonInput) (*courseModels.Lesson, error) {
	course, err := GetCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditCourse(actor, *course) {
		return nil, fmt.Errorf("%w: you are not authorized to edit this course", ErrUnauthorized)
	}
	if err := validateLessonInput(input); err != nil {
		return nil, err
	}

	var existing int64
	if err := db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND sequence_number = ?", course.ID, input.SequenceNumber).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: sequence number %d already used in this course", ErrConflict, input.SequenceNumber)
	}

	lesson := courseModels.Lesson{
		CourseID:       course.ID,
		SequenceNumber: input.SequenceNumber,
		Title:          input.Title,
		ContentType:    input.ContentType,
		ContentText:    input.ContentText,
		ContentURL:     input.ContentURL,
	}
	if err := db.Create(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// UpdateLesson rewrites a lesson's fields
func UpdateLesson(db *gorm.DB, actor models.User, courseID, lessonID uint, input LessonInput) (*courseModels.Lesson, error) {
	course, err := GetCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditCourse(actor, *course) {
		return nil, fmt.Errorf("%w: you are not authorized to edit this course", ErrUnauthorized)
	}
	if err := validateLessonInput(input); err != nil {
		return nil, err
	}

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ?", lessonID, course.ID).First(&lesson).Error; err != nil {
		return nil, fmt.Errorf("%w: lesson %d", ErrNotFound, lessonID)
	}

	if input.SequenceNumber != lesson.SequenceNumber {
		var existing int64
		if err := db.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND sequence_number = ? AND id <> ?", course.ID, input.SequenceNumber, lesson.ID).
			Count(&existing).Error; err != nil {
			return nil, err
		}
		if existing > 0 {
			return nil, fmt.Errorf("%w: sequence number %d already used in this course", ErrConflict, input.SequenceNumber)
		}
	}

	lesson.SequenceNumber = input.SequenceNumber
	lesson.Title = input.Title
	lesson.ContentType = input.ContentType
	lesson.ContentText = input.ContentText
	lesson.ContentURL = input.ContentURL

	if err := db.Save(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// DeleteLesson removes a lesson from a course
func DeleteLesson(db *gorm.DB, actor models.User, courseID, lessonID uint) error {
	course, err := GetCourse(db, courseID)
	if err != nil {
		return err
	}
	if !policy.CanEditCourse(actor, *course) {
		return fmt.Errorf("%w: you are not authorized to edit this course", ErrUnauthorized)
	}

	res := db.Where("id = ? AND course_id = ?", lessonID, course.ID).Delete(&courseModels.Lesson{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: lesson %d", ErrNotFound, lessonID)
	}
	return nil
}

// ListLessons returns a course's lessons ordered by sequence number
func ListLessons(db *gorm.DB, courseID uint) ([]courseModels.Lesson, error) {
	var lessons []courseModels.Lesson
	if err := db.Where("course_id = ?", courseID).Order("sequence_number asc").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func validateLessonInput(input LessonInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: lesson title is required", ErrInvalidInput)
	}
	if input.SequenceNumber <= 0 {
		return fmt.Errorf("%w: sequence number must be positive", ErrInvalidInput)
	}
	switch input.ContentType {
	case courseModels.ContentTypeText:
		if strings.TrimSpace(input.ContentText) == "" {
			return fmt.Errorf("%w: TEXT lessons require content text", ErrInvalidInput)
		}
	case courseModels.ContentTypeVideo, courseModels.ContentTypePDF:
		if strings.TrimSpace(input.ContentURL) == "" {
			return fmt.Errorf("%w: %s lessons require a content URL", ErrInvalidInput, input.ContentType)
		}
	default:
		return fmt.Errorf("%w: unknown content type %q", ErrInvalidInput, input.ContentType)
	}
	return nil
}

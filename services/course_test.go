package services

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourse(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)

	course, err := CreateCourse(db, instructor, CourseInput{
		Title:       "Go Fundamentals",
		Description: "Basics of Go",
		Price:       floatPtr(49.99),
	})
	require.NoError(t, err)
	assert.False(t, course.IsApproved, "new courses must start unapproved")
	assert.Equal(t, instructor.ID, course.InstructorID)
	assert.Equal(t, 49.99, course.Price)

	// Omitted price defaults to free
	free, err := CreateCourse(db, instructor, CourseInput{Title: "Free Course", Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, free.Price)

	_, err = CreateCourse(db, student, CourseInput{Title: "Nope", Description: "x", Price: floatPtr(1)})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = CreateCourse(db, instructor, CourseInput{Title: "Bad price", Price: floatPtr(-5)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestApproveRejectLifecycle(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, models.RoleAdmin)
	instructor := createUser(t, db, models.RoleInstructor)
	course := createCourse(t, db, instructor, false, 10)

	// Only admins may approve
	_, err := ApproveCourse(db, instructor, course.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	approved, err := ApproveCourse(db, admin, course.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	// Re-approving an approved course is a conflict
	_, err = ApproveCourse(db, admin, course.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// Approved courses cannot be resubmitted
	_, err = SubmitForApproval(db, instructor, course.ID)
	assert.ErrorIs(t, err, ErrConflict)

	rejected, err := RejectCourse(db, admin, course.ID)
	require.NoError(t, err)
	assert.False(t, rejected.IsApproved)

	// Rejecting an unapproved course is a conflict
	_, err = RejectCourse(db, admin, course.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateCourseOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, models.RoleInstructor)
	other := createUser(t, db, models.RoleInstructor)
	admin := createUser(t, db, models.RoleAdmin)
	course := createCourse(t, db, owner, false, 10)

	_, err := UpdateCourse(db, other, course.ID, CourseInput{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	updated, err := UpdateCourse(db, owner, course.ID, CourseInput{Title: "Renamed", Price: floatPtr(20)})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 20.0, updated.Price)

	updated, err = UpdateCourse(db, admin, course.ID, CourseInput{Description: "Admin edit"})
	require.NoError(t, err)
	assert.Equal(t, "Admin edit", updated.Description)
}

func TestUpdateCoursePartial(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	course := createCourse(t, db, instructor, false, 49.99)

	// A title-only update must not touch the price
	updated, err := UpdateCourse(db, instructor, course.ID, CourseInput{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 49.99, updated.Price)

	// An explicit zero makes the course free
	updated, err = UpdateCourse(db, instructor, course.ID, CourseInput{Price: floatPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.Price)

	_, err = UpdateCourse(db, instructor, course.ID, CourseInput{Price: floatPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteCourse(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, models.RoleAdmin)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)

	t.Run("owner can delete unapproved course with lessons", func(t *testing.T) {
		course := createCourse(t, db, instructor, false, 10)
		createLesson(t, db, course.ID, 1)

		require.NoError(t, DeleteCourse(db, instructor, course.ID))

		_, err := GetCourse(db, course.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		var lessons int64
		require.NoError(t, db.Model(&courseModels.Lesson{}).Where("course_id = ?", course.ID).Count(&lessons).Error)
		assert.Zero(t, lessons)
	})

	t.Run("owner cannot delete once approved", func(t *testing.T) {
		course := createCourse(t, db, instructor, true, 10)
		err := DeleteCourse(db, instructor, course.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("blocked while enrollments exist", func(t *testing.T) {
		course := createCourse(t, db, instructor, true, 10)
		_, err := EnrollInCourse(db, student, course.ID)
		require.NoError(t, err)

		err = DeleteCourse(db, admin, course.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestLessonSequenceUniqueness(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	course := createCourse(t, db, instructor, false, 10)

	first, err := AddLesson(db, instructor, course.ID, LessonInput{
		SequenceNumber: 1,
		Title:          "Intro",
		ContentType:    courseModels.ContentTypeText,
		ContentText:    "welcome",
	})
	require.NoError(t, err)

	_, err = AddLesson(db, instructor, course.ID, LessonInput{
		SequenceNumber: 1,
		Title:          "Duplicate",
		ContentType:    courseModels.ContentTypeText,
		ContentText:    "clash",
	})
	assert.ErrorIs(t, err, ErrConflict)

	second, err := AddLesson(db, instructor, course.ID, LessonInput{
		SequenceNumber: 2,
		Title:          "Video",
		ContentType:    courseModels.ContentTypeVideo,
		ContentURL:     "https://videos.example/intro.mp4",
	})
	require.NoError(t, err)

	// Moving the second lesson onto an occupied slot is rejected
	_, err = UpdateLesson(db, instructor, course.ID, second.ID, LessonInput{
		SequenceNumber: 1,
		Title:          "Video",
		ContentType:    courseModels.ContentTypeVideo,
		ContentURL:     "https://videos.example/intro.mp4",
	})
	assert.ErrorIs(t, err, ErrConflict)

	lessons, err := ListLessons(db, course.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, first.ID, lessons[0].ID)
}

func TestLessonContentValidation(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	course := createCourse(t, db, instructor, false, 10)

	cases := []struct {
		name  string
		input LessonInput
	}{
		{"text without body", LessonInput{SequenceNumber: 1, Title: "T", ContentType: courseModels.ContentTypeText}},
		{"video without url", LessonInput{SequenceNumber: 1, Title: "V", ContentType: courseModels.ContentTypeVideo}},
		{"pdf without url", LessonInput{SequenceNumber: 1, Title: "P", ContentType: courseModels.ContentTypePDF}},
		{"unknown type", LessonInput{SequenceNumber: 1, Title: "X", ContentType: "AUDIO", ContentText: "x"}},
		{"zero sequence", LessonInput{SequenceNumber: 0, Title: "Z", ContentType: courseModels.ContentTypeText, ContentText: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AddLesson(db, instructor, course.ID, tc.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDeleteLesson(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	course := createCourse(t, db, instructor, false, 10)
	lesson := createLesson(t, db, course.ID, 1)

	require.NoError(t, DeleteLesson(db, instructor, course.ID, lesson.ID))
	assert.ErrorIs(t, DeleteLesson(db, instructor, course.ID, lesson.ID), ErrNotFound)
}

package services

import (
	"testing"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestEnrollInCourse(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)

	t.Run("only approved courses accept enrollments", func(t *testing.T) {
		pending := createCourse(t, db, instructor, false, 10)
		_, err := EnrollInCourse(db, student, pending.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("only students can enroll", func(t *testing.T) {
		course := createCourse(t, db, instructor, true, 10)
		_, err := EnrollInCourse(db, instructor, course.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unique index violations surface as conflicts", func(t *testing.T) {
		// Simulates a racing writer that commits between the existence
		// check and the insert: the index violation must be recognized
		// so callers get a conflict, not a raw database error.
		course := createCourse(t, db, instructor, true, 10)
		racer := createUser(t, db, models.RoleStudent)

		_, err := EnrollInCourse(db, racer, course.ID)
		require.NoError(t, err)

		dup := courseModels.Enrollment{
			StudentID:        racer.ID,
			CourseID:         course.ID,
			EnrollmentDate:   time.Now(),
			CompletedLessons: datatypes.JSON("[]"),
		}
		err = db.Create(&dup).Error
		require.Error(t, err)
		assert.True(t, isDuplicateKey(err))
	})

	t.Run("duplicate enrollment is a conflict", func(t *testing.T) {
		course := createCourse(t, db, instructor, true, 10)

		enrollment, err := EnrollInCourse(db, student, course.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, enrollment.Progress)
		assert.Nil(t, enrollment.PaymentID)

		_, err = EnrollInCourse(db, student, course.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestUpdateProgressBounds(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, instructor, true, 10)

	_, err := EnrollInCourse(db, student, course.ID)
	require.NoError(t, err)

	for _, bad := range []int{-1, 101} {
		_, err := UpdateProgress(db, student, course.ID, bad)
		assert.ErrorIs(t, err, ErrInvalidInput, "progress %d must be rejected", bad)
	}

	// Bounds are inclusive
	enrollment, err := UpdateProgress(db, student, course.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, enrollment.Progress)
	assert.Nil(t, enrollment.CompletedAt)

	enrollment, err = UpdateProgress(db, student, course.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, enrollment.Progress)
	assert.True(t, enrollment.IsCompleted())
	require.NotNil(t, enrollment.CompletedAt)

	// Dropping below 100 clears the completion timestamp
	enrollment, err = UpdateProgress(db, student, course.ID, 50)
	require.NoError(t, err)
	assert.Nil(t, enrollment.CompletedAt)
}

func TestCompleteLesson(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, instructor, true, 10)
	lessonOne := createLesson(t, db, course.ID, 1)
	lessonTwo := createLesson(t, db, course.ID, 2)

	_, err := EnrollInCourse(db, student, course.ID)
	require.NoError(t, err)

	enrollment, err := CompleteLesson(db, student, course.ID, lessonOne.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, enrollment.Progress)
	assert.Equal(t, []uint{lessonOne.ID}, enrollment.CompletedLessonIDs())

	// Completing the same lesson twice is a conflict
	_, err = CompleteLesson(db, student, course.ID, lessonOne.ID)
	assert.ErrorIs(t, err, ErrConflict)

	enrollment, err = CompleteLesson(db, student, course.ID, lessonTwo.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, enrollment.Progress)
	require.NotNil(t, enrollment.CompletedAt)

	// Lessons from another course never count
	other := createCourse(t, db, instructor, true, 10)
	foreign := createLesson(t, db, other.ID, 1)
	_, err = CompleteLesson(db, student, course.ID, foreign.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnenrollAllowsReenrollment(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, instructor, true, 10)

	_, err := EnrollInCourse(db, student, course.ID)
	require.NoError(t, err)

	require.NoError(t, UnenrollFromCourse(db, student, course.ID))

	_, err = GetEnrollment(db, student.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The row is hard deleted, so the unique index does not block this
	_, err = EnrollInCourse(db, student, course.ID)
	require.NoError(t, err)
}

func TestCourseEnrollmentsVisibility(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, models.RoleInstructor)
	other := createUser(t, db, models.RoleInstructor)
	admin := createUser(t, db, models.RoleAdmin)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, instructor, true, 10)

	_, err := EnrollInCourse(db, student, course.ID)
	require.NoError(t, err)

	roster, err := CourseEnrollments(db, instructor, course.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	roster, err = CourseEnrollments(db, admin, course.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	_, err = CourseEnrollments(db, other, course.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = CourseEnrollments(db, student, course.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

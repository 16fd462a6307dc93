package course

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment tracks a student's enrollment in a course with progress.
// The (StudentID, CourseID) unique index is the backstop against duplicate
// enrollments racing past the service-level check.
type Enrollment struct {
	gorm.Model
	StudentID        uint           `json:"student_id" gorm:"uniqueIndex:idx_student_course;not null"`
	CourseID         uint           `json:"course_id" gorm:"uniqueIndex:idx_student_course;not null"`
	EnrollmentDate   time.Time      `json:"enrollment_date" gorm:"not null"`
	Progress         int            `json:"progress" gorm:"default:0"` // Completion percentage (0-100)
	CompletedLessons datatypes.JSON `json:"completed_lessons" gorm:"default:'[]'"`
	PaymentID        *uint          `json:"payment_id" gorm:"uniqueIndex"`
	CompletedAt      *time.Time     `json:"completed_at"`
}

// IsCompleted reports whether the course has been fully completed
func (e *Enrollment) IsCompleted() bool {
	return e.Progress >= 100
}

// CompletedLessonIDs decodes the completed-lessons JSON column
func (e *Enrollment) CompletedLessonIDs() []uint {
	var ids []uint
	if len(e.CompletedLessons) == 0 {
		return ids
	}
	_ = json.Unmarshal(e.CompletedLessons, &ids)
	return ids
}

// MarkLessonCompleted adds a lesson id to the completed set.
// Returns false when the lesson was already recorded.
func (e *Enrollment) MarkLessonCompleted(lessonID uint) bool {
	ids := e.CompletedLessonIDs()
	for _, id := range ids {
		if id == lessonID {
			return false
		}
	}
	ids = append(ids, lessonID)
	raw, err := json.Marshal(ids)
	if err != nil {
		return false
	}
	e.CompletedLessons = raw
	return true
}

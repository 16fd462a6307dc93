package course

import "gorm.io/gorm"

// Lesson content types
const (
	ContentTypeText  = "TEXT"
	ContentTypeVideo = "VIDEO"
	ContentTypePDF   = "PDF"
)

// Lesson represents ordered content within a course
type Lesson struct {
	gorm.Model
	CourseID       uint   `json:"course_id" gorm:"uniqueIndex:idx_course_sequence;not null"`
	SequenceNumber int    `json:"sequence_number" gorm:"uniqueIndex:idx_course_sequence;not null"`
	Title          string `json:"title"`
	ContentType    string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, VIDEO, PDF
	ContentText    string `json:"content_text" gorm:"type:text"`      // For TEXT type
	ContentURL     string `json:"content_url"`                        // For VIDEO and PDF types
}

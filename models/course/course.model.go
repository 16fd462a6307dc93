package course

import "gorm.io/gorm"

// Course represents a learning course owned by an instructor
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" gorm:"default:0"`
	IsApproved   bool    `json:"is_approved" gorm:"default:false"`
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	IsDeleted    bool    `gorm:"default:false" json:"-"`
}

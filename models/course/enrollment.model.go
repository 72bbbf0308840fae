package course

import (
	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a generated course. The course
// itself lives in the AI backend; only the id and a title snapshot are kept.
type Enrollment struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	CourseID    string `json:"course_id" gorm:"index;not null"`
	CourseTitle string `json:"course_title" gorm:"default:''"`
	Status      string `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressRecord is the server-side mirror of a user's per-course progress.
// The browser-local copy is authoritative for lastVisited; the two are
// reconciled on write, not kept transactionally consistent.
type ProgressRecord struct {
	gorm.Model
	UserID          uint           `json:"user_id" gorm:"index;not null"`
	CourseID        string         `json:"course_id" gorm:"index;not null"`
	IsEnrolled      bool           `json:"is_enrolled" gorm:"default:false"`
	CompletedTopics datatypes.JSON `json:"completed_topics"` // JSON array of "<unit>-<subtopic>" keys
	LastVisited     string         `json:"last_visited" gorm:"default:''"`
	IsDeleted       bool           `json:"-" gorm:"default:false"`
}

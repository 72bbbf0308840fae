package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizAttempt records one completed evaluate cycle for a (user, course, unit).
// Append-only; AttemptNumber is assigned server-side as count+1.
type QuizAttempt struct {
	gorm.Model
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	CourseID      string         `json:"course_id" gorm:"index;not null"`
	UnitNumber    int            `json:"unit_number" gorm:"index;not null"`
	AttemptNumber int            `json:"attempt_number" gorm:"default:1"`
	Percentage    int            `json:"percentage"`
	Passed        bool           `json:"passed" gorm:"default:false"`
	McqScore      int            `json:"mcq_score"`
	McqTotal      int            `json:"mcq_total"`
	FrqScore      int            `json:"frq_score"`
	FrqTotal      int            `json:"frq_total"`
	TotalScore    int            `json:"total_score"`
	TotalPossible int            `json:"total_possible"`
	WeakSubtopics datatypes.JSON `json:"weak_subtopics"` // JSON array of subtopic names
	IsDeleted     bool           `json:"-" gorm:"default:false"`
}

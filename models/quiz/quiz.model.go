// Package quiz defines the wire schemas exchanged with the AI backend.
// Payloads are decoded into these types and validated at the boundary
// instead of being trusted at point of use.
package quiz

import (
	"fmt"
	"math"
)

// PassThreshold is the fixed product-wide passing percentage for module
// quizzes. Attempt color-coding and pass/fail messaging depend on it.
const PassThreshold = 80

// CourseMetadata describes the audience a course was generated for.
type CourseMetadata struct {
	SkillLevel             string `json:"skillLevel"`
	AgeGroup               string `json:"ageGroup"`
	EstimatedTotalDuration string `json:"estimatedTotalDuration"`
}

// UnitQuizInfo is the quiz summary embedded in a course unit.
type UnitQuizInfo struct {
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
}

// Unit is a numbered curriculum segment with subtopics and one quiz.
type Unit struct {
	UnitNumber  int          `json:"unitNumber"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Duration    string       `json:"duration"`
	Subtopics   []string     `json:"subtopics"`
	Quiz        UnitQuizInfo `json:"quiz"`
}

// CoursePlan is a full generated course.
type CoursePlan struct {
	CourseTitle string         `json:"courseTitle"`
	Description string         `json:"description"`
	Metadata    CourseMetadata `json:"metadata"`
	Units       []Unit         `json:"units"`
	CourseID    string         `json:"course_id"`
}

// Validate checks the minimum shape a usable course plan must have.
func (p *CoursePlan) Validate() error {
	if p.CourseTitle == "" {
		return fmt.Errorf("course plan missing courseTitle")
	}
	if len(p.Units) == 0 {
		return fmt.Errorf("course plan %q has no units", p.CourseTitle)
	}
	return nil
}

// MCQQuestion is a multiple-choice question with one correct option.
type MCQQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// FRQQuestion is a free-response question scored against key points.
type FRQQuestion struct {
	Question     string   `json:"question"`
	SampleAnswer string   `json:"sampleAnswer"`
	KeyPoints    []string `json:"keyPoints"`
	MaxPoints    int      `json:"maxPoints"`
}

// ModuleQuiz is a freshly generated quiz for one course unit. It is never
// persisted beyond the active session.
type ModuleQuiz struct {
	Title          string        `json:"title"`
	MultipleChoice []MCQQuestion `json:"multipleChoice"`
	FreeResponse   []FRQQuestion `json:"freeResponse"`
}

// Validate rejects quizzes the session controller cannot run.
func (q *ModuleQuiz) Validate() error {
	if len(q.MultipleChoice) == 0 && len(q.FreeResponse) == 0 {
		return fmt.Errorf("quiz %q has no questions", q.Title)
	}
	for i, mcq := range q.MultipleChoice {
		if len(mcq.Options) == 0 {
			return fmt.Errorf("mcq %d has no options", i)
		}
		if mcq.CorrectAnswerIndex < 0 || mcq.CorrectAnswerIndex >= len(mcq.Options) {
			return fmt.Errorf("mcq %d has out-of-range correctAnswerIndex %d", i, mcq.CorrectAnswerIndex)
		}
	}
	return nil
}

// MCQResult is the per-question outcome of an evaluated MCQ.
type MCQResult struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	SelectedIndex      int      `json:"selectedIndex"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
	Correct            bool     `json:"correct"`
}

// FRQEvaluation is the scored outcome of one free-response answer.
type FRQEvaluation struct {
	QuestionIndex int    `json:"questionIndex"`
	Score         int    `json:"score"`
	MaxPoints     int    `json:"maxPoints"`
	Feedback      string `json:"feedback"`
}

// EvaluationResult is produced once per submission by the evaluation
// service. Percentage and Passed are pointers: the backend value is
// authoritative when present, and the client-side formula is only a
// display fallback when the fields are absent.
type EvaluationResult struct {
	MCQResults      []MCQResult     `json:"mcqResults"`
	McqScore        int             `json:"mcqScore"`
	McqTotal        int             `json:"mcqTotal"`
	FRQEvaluations  []FRQEvaluation `json:"frqEvaluations"`
	FRQQuestions    []FRQQuestion   `json:"frqQuestions"`
	FRQAnswers      []string        `json:"frqAnswers"`
	FrqScore        int             `json:"frqScore"`
	FrqTotal        int             `json:"frqTotal"`
	TotalScore      int             `json:"totalScore"`
	TotalPossible   int             `json:"totalPossible"`
	Percentage      *int            `json:"percentage,omitempty"`
	Passed          *bool           `json:"passed,omitempty"`
	AttemptNumber   int             `json:"attemptNumber,omitempty"`
	WeakSubtopics   []string        `json:"weakSubtopics,omitempty"`
	OverallFeedback string          `json:"overallFeedback"`
}

// Percent returns the backend percentage when provided, otherwise
// round(100 * totalScore / totalPossible). A zero totalPossible yields 0.
func (r *EvaluationResult) Percent() int {
	if r.Percentage != nil {
		return *r.Percentage
	}
	if r.TotalPossible == 0 {
		return 0
	}
	return int(math.Round(float64(r.TotalScore) * 100 / float64(r.TotalPossible)))
}

// IsPassed returns the backend verdict when provided, otherwise applies the
// fixed 80% threshold to Percent.
func (r *EvaluationResult) IsPassed() bool {
	if r.Passed != nil {
		return *r.Passed
	}
	return r.Percent() >= PassThreshold
}

// Normalize fills Percentage and Passed in place when the backend omitted
// them, so stored attempts and API responses always carry both.
func (r *EvaluationResult) Normalize() {
	if r.Percentage == nil {
		pct := r.Percent()
		r.Percentage = &pct
	}
	if r.Passed == nil {
		passed := r.IsPassed()
		r.Passed = &passed
	}
}

// TopicSection is one rendered section of a generated lesson.
type TopicSection struct {
	Heading string   `json:"heading"`
	Content string   `json:"content"`
	Videos  []string `json:"videos,omitempty"`
}

// TopicContent is a generated lesson for a single subtopic.
type TopicContent struct {
	Title             string         `json:"title"`
	Sections          []TopicSection `json:"sections"`
	Quiz              []MCQQuestion  `json:"quiz,omitempty"`
	SearchAttribution string         `json:"searchAttribution,omitempty"`
}

// Package quizsession runs the quiz-taking flow for one (course, unit) pair
// as an explicit state machine. A single State field replaces the ad hoc
// loading/error/results/retaking flag combinations, so invalid mixtures such
// as "loading with results" cannot be represented.
package quizsession

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mdv314/claritas-learning/models/quiz"
)

// State is the session's single current state.
type State string

const (
	StateLoading    State = "LOADING"
	StateReady      State = "READY"
	StateSubmitting State = "SUBMITTING"
	StateResults    State = "RESULTS"
	StateError      State = "ERROR"
)

// Attempt is the history view of one completed evaluate cycle, ordered by
// attempt number ascending.
type Attempt struct {
	AttemptNumber int       `json:"attempt_number"`
	Percentage    int       `json:"percentage"`
	Passed        bool      `json:"passed"`
	McqScore      int       `json:"mcq_score"`
	McqTotal      int       `json:"mcq_total"`
	FrqScore      int       `json:"frq_score"`
	FrqTotal      int       `json:"frq_total"`
	TotalScore    int       `json:"total_score"`
	TotalPossible int       `json:"total_possible"`
	CreatedAt     time.Time `json:"created_at"`
}

// Generator produces quizzes. GenerateAdaptive may fail (unauthenticated
// caller, endpoint unavailable); retakes then degrade to Generate with the
// retake flag rather than failing outright.
type Generator interface {
	Generate(courseID string, unitNumber int, retake bool) (*quiz.ModuleQuiz, error)
	GenerateAdaptive(userID uint, courseID string, unitNumber int) (*quiz.ModuleQuiz, error)
}

// Evaluator scores a submission. Implementations persist the attempt and
// assign the server-tracked attempt number; the session never computes it.
type Evaluator interface {
	Evaluate(userID uint, courseID string, unitNumber int, mcqAnswers []int, frqAnswers []string) (*quiz.EvaluationResult, error)
}

// HistoryReader lists prior attempts. Failures are swallowed by the session:
// attempt history is supplementary and must not block the quiz flow.
type HistoryReader interface {
	Attempts(userID uint, courseID string, unitNumber int) ([]Attempt, error)
}

// Session holds the in-progress answers and results for one quiz run.
// Answer state is session-scoped and never persisted.
type Session struct {
	ID         string
	UserID     uint
	CourseID   string
	UnitNumber int

	mu         sync.Mutex
	state      State
	quiz       *quiz.ModuleQuiz
	mcqAnswers map[int]int
	frqAnswers map[int]string
	results    *quiz.EvaluationResult
	lastError  string
	attempts   []Attempt
	lastActive time.Time
}

func newSession(id string, userID uint, courseID string, unitNumber int) *Session {
	return &Session{
		ID:         id,
		UserID:     userID,
		CourseID:   courseID,
		UnitNumber: unitNumber,
		state:      StateLoading,
		mcqAnswers: map[int]int{},
		frqAnswers: map[int]string{},
		lastActive: time.Now(),
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the failure reason surfaced to the user, if any.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Results returns the evaluation result once in RESULTS state.
func (s *Session) Results() *quiz.EvaluationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Attempts returns the last fetched attempt history.
func (s *Session) Attempts() []Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}

// SelectOption records an MCQ selection. Exactly one selection per question;
// re-selecting overwrites (last-write-wins).
func (s *Session) SelectOption(questionIndex, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.state != StateReady {
		return fmt.Errorf("cannot answer in state %s", s.state)
	}
	if questionIndex < 0 || questionIndex >= len(s.quiz.MultipleChoice) {
		return fmt.Errorf("mcq index %d out of range", questionIndex)
	}
	if optionIndex < 0 || optionIndex >= len(s.quiz.MultipleChoice[questionIndex].Options) {
		return fmt.Errorf("option index %d out of range for mcq %d", optionIndex, questionIndex)
	}
	s.mcqAnswers[questionIndex] = optionIndex
	return nil
}

// SetResponse records FRQ text verbatim, including the empty string.
func (s *Session) SetResponse(questionIndex int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.state != StateReady {
		return fmt.Errorf("cannot answer in state %s", s.state)
	}
	if questionIndex < 0 || questionIndex >= len(s.quiz.FreeResponse) {
		return fmt.Errorf("frq index %d out of range", questionIndex)
	}
	s.frqAnswers[questionIndex] = text
	return nil
}

// AllAnswered is the submission gate: every MCQ has a selection and every
// FRQ has non-blank text after trimming. This is a UI-level guard only; the
// evaluation contract still accepts unanswered sentinels.
func (s *Session) AllAnswered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allAnsweredLocked()
}

func (s *Session) allAnsweredLocked() bool {
	if s.quiz == nil {
		return false
	}
	for i := range s.quiz.MultipleChoice {
		if _, ok := s.mcqAnswers[i]; !ok {
			return false
		}
	}
	for i := range s.quiz.FreeResponse {
		if strings.TrimSpace(s.frqAnswers[i]) == "" {
			return false
		}
	}
	return true
}

// answerArrays builds the positional submission arrays. Unanswered MCQs
// become -1 and unanswered FRQs the empty string; the evaluator scores them
// incorrect instead of rejecting the request.
func (s *Session) answerArrays() (mcq []int, frq []string) {
	mcq = make([]int, len(s.quiz.MultipleChoice))
	for i := range mcq {
		if sel, ok := s.mcqAnswers[i]; ok {
			mcq[i] = sel
		} else {
			mcq[i] = -1
		}
	}
	frq = make([]string, len(s.quiz.FreeResponse))
	for i := range frq {
		frq[i] = s.frqAnswers[i]
	}
	return mcq, frq
}

// View is the JSON snapshot served to the client.
type View struct {
	ID          string                 `json:"id"`
	CourseID    string                 `json:"courseId"`
	UnitNumber  int                    `json:"unitNumber"`
	State       State                  `json:"state"`
	Quiz        *quiz.ModuleQuiz       `json:"quiz,omitempty"`
	MCQAnswers  map[int]int            `json:"mcqAnswers"`
	FRQAnswers  map[int]string         `json:"frqAnswers"`
	AllAnswered bool                   `json:"allAnswered"`
	Results     *quiz.EvaluationResult `json:"results,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Attempts    []Attempt              `json:"attempts"`
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	mcq := make(map[int]int, len(s.mcqAnswers))
	for k, v := range s.mcqAnswers {
		mcq[k] = v
	}
	frq := make(map[int]string, len(s.frqAnswers))
	for k, v := range s.frqAnswers {
		frq[k] = v
	}
	attempts := s.attempts
	if attempts == nil {
		attempts = []Attempt{}
	}

	return View{
		ID:          s.ID,
		CourseID:    s.CourseID,
		UnitNumber:  s.UnitNumber,
		State:       s.state,
		Quiz:        s.quiz,
		MCQAnswers:  mcq,
		FRQAnswers:  frq,
		AllAnswered: s.allAnsweredLocked(),
		Results:     s.results,
		Error:       s.lastError,
		Attempts:    attempts,
	}
}

package quizsession

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager owns the live sessions and drives their state transitions through
// the injected Generator, Evaluator and HistoryReader.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	gen     Generator
	eval    Evaluator
	history HistoryReader
}

// NewManager builds a manager around the given collaborators.
func NewManager(gen Generator, eval Evaluator, history HistoryReader) *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		gen:      gen,
		eval:     eval,
		history:  history,
	}
}

// Start creates a session and runs the initial generation synchronously:
// LOADING then READY on success, ERROR with the reason verbatim on failure.
// Attempt history is fetched alongside; its failure is swallowed.
func (m *Manager) Start(userID uint, courseID string, unitNumber int) *Session {
	s := newSession(uuid.NewString(), userID, courseID, unitNumber)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.load(s, false)
	return s
}

// Get looks up a live session by id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove tears down a session, e.g. when the user navigates away.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// PruneIdle drops sessions with no activity for maxAge and returns how many
// were removed. Abandoned in-flight requests simply expire with them.
func (m *Manager) PruneIdle(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastActive.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			pruned++
		}
	}
	return pruned
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// load runs one generation cycle for a session already in LOADING.
func (m *Manager) load(s *Session, retake bool) {
	q, err := m.gen.Generate(s.CourseID, s.UnitNumber, retake)

	s.mu.Lock()
	s.touch()
	if err != nil {
		s.state = StateError
		s.lastError = err.Error()
		s.mu.Unlock()
		return
	}
	s.quiz = q
	s.state = StateReady
	s.mu.Unlock()

	m.refreshHistory(s)
}

// refreshHistory updates the attempt list, silently keeping the old one on
// failure (unauthenticated callers simply see an empty history).
func (m *Manager) refreshHistory(s *Session) {
	attempts, err := m.history.Attempts(s.UserID, s.CourseID, s.UnitNumber)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.attempts = attempts
	s.mu.Unlock()
}

// Submit runs READY -> SUBMITTING -> RESULTS, or ERROR when evaluation
// fails. The positional arrays carry -1 / "" sentinels for anything
// unanswered.
func (m *Manager) Submit(s *Session) error {
	s.mu.Lock()
	s.touch()
	if s.state != StateReady || s.quiz == nil {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("cannot submit in state %s", state)
	}
	mcq, frq := s.answerArrays()
	s.state = StateSubmitting
	s.mu.Unlock()

	result, err := m.eval.Evaluate(s.UserID, s.CourseID, s.UnitNumber, mcq, frq)

	s.mu.Lock()
	s.touch()
	if err != nil {
		s.state = StateError
		s.lastError = err.Error()
		s.mu.Unlock()
		return nil
	}
	result.Normalize()
	s.results = result
	s.state = StateResults
	s.mu.Unlock()

	// Re-fetch so the history shows the attempt that was just recorded.
	m.refreshHistory(s)
	return nil
}

// Retake is only offered after a failing result. It clears all answer and
// result state, re-enters LOADING and requests an adaptive quiz biased
// toward the recorded weak subtopics; when the adaptive endpoint is
// unavailable it degrades to a plain generation with the retake flag.
func (m *Manager) Retake(s *Session) error {
	s.mu.Lock()
	s.touch()
	if s.state != StateResults {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("cannot retake in state %s", state)
	}
	if s.results != nil && s.results.IsPassed() {
		s.mu.Unlock()
		return fmt.Errorf("module already passed; no retake offered")
	}
	s.mcqAnswers = map[int]int{}
	s.frqAnswers = map[int]string{}
	s.results = nil
	s.lastError = ""
	s.quiz = nil
	s.state = StateLoading
	s.mu.Unlock()

	q, err := m.gen.GenerateAdaptive(s.UserID, s.CourseID, s.UnitNumber)
	if err != nil {
		// Graceful degradation: fresh non-adaptive quiz.
		q, err = m.gen.Generate(s.CourseID, s.UnitNumber, true)
	}

	s.mu.Lock()
	s.touch()
	if err != nil {
		s.state = StateError
		s.lastError = err.Error()
		s.mu.Unlock()
		return nil
	}
	s.quiz = q
	s.state = StateReady
	s.mu.Unlock()

	m.refreshHistory(s)
	return nil
}

// Retry restarts a failed session from LOADING. Only valid in ERROR state.
func (m *Manager) Retry(s *Session) error {
	s.mu.Lock()
	s.touch()
	if s.state != StateError {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("cannot retry in state %s", state)
	}
	s.mcqAnswers = map[int]int{}
	s.frqAnswers = map[int]string{}
	s.results = nil
	s.lastError = ""
	s.quiz = nil
	s.state = StateLoading
	s.mu.Unlock()

	m.load(s, false)
	return nil
}

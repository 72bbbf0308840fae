// Package progress owns per-course completion state. The primary copy is a
// local JSON key-value file (the equivalent of the browser's local storage);
// an authenticated server-side mirror may exist and is reconciled with Merge
// opportunistically, never transactionally.
package progress

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// CourseProgress is the stored value for one course id.
type CourseProgress struct {
	IsEnrolled      bool     `json:"isEnrolled"`
	CompletedTopics []string `json:"completedTopics"` // "<unitNumber>-<subtopicIndex>" keys, unique, unordered
	LastVisited     *string  `json:"lastVisited"`     // same key format, nil when never visited
}

// Default returns the zero-value progress used when nothing is stored.
func Default() CourseProgress {
	return CourseProgress{CompletedTopics: []string{}}
}

// HasTopic reports whether the composite topic key is marked completed.
func (p CourseProgress) HasTopic(key string) bool {
	for _, t := range p.CompletedTopics {
		if t == key {
			return true
		}
	}
	return false
}

// AddTopic marks a topic key completed, keeping the set unique.
func (p *CourseProgress) AddTopic(key string) {
	if !p.HasTopic(key) {
		p.CompletedTopics = append(p.CompletedTopics, key)
	}
}

// Store reads and writes per-course progress. Load never fails: absence is a
// valid state, not an error. Save fully overwrites the record for the course
// id; callers must read-modify-write the whole structure.
type Store interface {
	Load(courseID string) CourseProgress
	Save(courseID string, p CourseProgress) error
}

// FileStore keeps all course records in a single JSON file keyed by
// course id.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the given file path. The file and
// its directory are created lazily on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) readAll() map[string]CourseProgress {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]CourseProgress{}
	}
	var all map[string]CourseProgress
	if err := json.Unmarshal(data, &all); err != nil || all == nil {
		// A corrupt file reads as empty; the next Save rewrites it.
		return map[string]CourseProgress{}
	}
	return all
}

// Load returns the stored progress for a course id, or the default value.
func (s *FileStore) Load(courseID string) CourseProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.readAll()[courseID]
	if !ok {
		return Default()
	}
	if p.CompletedTopics == nil {
		p.CompletedTopics = []string{}
	}
	return p
}

// Save overwrites the record for the course id.
func (s *FileStore) Save(courseID string, p CourseProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.readAll()
	if p.CompletedTopics == nil {
		p.CompletedTopics = []string{}
	}
	all[courseID] = p

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(all, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Merge reconciles a local copy with a server-side mirror: enrollment is
// sticky, completed topics are unioned, and the local lastVisited pointer
// wins when set since it reflects the most recent interaction.
func Merge(local, remote CourseProgress) CourseProgress {
	merged := Default()
	merged.IsEnrolled = local.IsEnrolled || remote.IsEnrolled

	for _, t := range local.CompletedTopics {
		merged.AddTopic(t)
	}
	for _, t := range remote.CompletedTopics {
		merged.AddTopic(t)
	}

	if local.LastVisited != nil {
		merged.LastVisited = local.LastVisited
	} else {
		merged.LastVisited = remote.LastVisited
	}
	return merged
}

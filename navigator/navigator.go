// Package navigator derives the current unit and topic from identifiers and
// stored progress. Stale pointers are tolerated everywhere: course content
// can be regenerated underneath saved progress, so lookups fall back instead
// of failing.
package navigator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mdv314/claritas-learning/models/quiz"
	"github.com/mdv314/claritas-learning/progress"
)

// TopicKey builds the "<unitNumber>-<subtopicIndex>" composite key.
func TopicKey(unitNumber, subtopicIndex int) string {
	return fmt.Sprintf("%d-%d", unitNumber, subtopicIndex)
}

// ParseTopicKey splits a composite key. ok is false for malformed keys.
func ParseTopicKey(key string) (unitNumber, subtopicIndex int, ok bool) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	unitNumber, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	subtopicIndex, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return unitNumber, subtopicIndex, true
}

// ResolveModule finds a unit by exact unitNumber match. A missing unit is a
// user-visible not-found state, not an error.
func ResolveModule(plan *quiz.CoursePlan, unitNumber int) (*quiz.Unit, bool) {
	if plan == nil {
		return nil, false
	}
	for i := range plan.Units {
		if plan.Units[i].UnitNumber == unitNumber {
			return &plan.Units[i], true
		}
	}
	return nil, false
}

// ModuleProgress counts completed subtopics for a unit against its total.
func ModuleProgress(unit *quiz.Unit, p progress.CourseProgress) (completed, total int) {
	if unit == nil {
		return 0, 0
	}
	total = len(unit.Subtopics)
	for idx := range unit.Subtopics {
		if p.HasTopic(TopicKey(unit.UnitNumber, idx)) {
			completed++
		}
	}
	return completed, total
}

// Percent converts a completed/total pair to a whole percentage. A unit with
// no subtopics renders as 0%, never a division error.
func Percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return completed * 100 / total
}

// ResumeTarget picks the unit to resume at: the lastVisited unit when it
// still exists in the plan, otherwise the first unit in course order. The
// fallback is mandatory; a stale pointer must never error.
func ResumeTarget(plan *quiz.CoursePlan, p progress.CourseProgress) int {
	if plan == nil || len(plan.Units) == 0 {
		return 0
	}
	if p.LastVisited != nil {
		if unitNumber, _, ok := ParseTopicKey(*p.LastVisited); ok {
			if _, found := ResolveModule(plan, unitNumber); found {
				return unitNumber
			}
		}
	}
	return plan.Units[0].UnitNumber
}

// MarkVisited records the topic as the lastVisited pointer and persists the
// full record. Visiting does not complete a topic; completion is driven by
// passing the unit quiz.
func MarkVisited(store progress.Store, courseID string, unitNumber, subtopicIndex int) error {
	p := store.Load(courseID)
	key := TopicKey(unitNumber, subtopicIndex)
	p.LastVisited = &key
	return store.Save(courseID, p)
}

// MarkCompleted adds the topic to the completed set and persists.
func MarkCompleted(store progress.Store, courseID string, unitNumber, subtopicIndex int) error {
	p := store.Load(courseID)
	p.AddTopic(TopicKey(unitNumber, subtopicIndex))
	return store.Save(courseID, p)
}

package navigator

import (
	"testing"

	"github.com/mdv314/claritas-learning/models/quiz"
	"github.com/mdv314/claritas-learning/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() *quiz.CoursePlan {
	return &quiz.CoursePlan{
		CourseTitle: "Intro to Networks",
		Units: []quiz.Unit{
			{UnitNumber: 1, Title: "Basics", Subtopics: []string{"a", "b", "c"}},
			{UnitNumber: 2, Title: "Routing", Subtopics: []string{"d", "e"}},
			{UnitNumber: 3, Title: "Security", Subtopics: []string{}},
		},
	}
}

func TestParseTopicKey(t *testing.T) {
	unit, sub, ok := ParseTopicKey("2-1")
	require.True(t, ok)
	assert.Equal(t, 2, unit)
	assert.Equal(t, 1, sub)

	for _, bad := range []string{"", "2", "x-1", "2-y", "-"} {
		_, _, ok := ParseTopicKey(bad)
		assert.False(t, ok, "key %q should not parse", bad)
	}
}

func TestTopicKeyRoundTrip(t *testing.T) {
	unit, sub, ok := ParseTopicKey(TopicKey(4, 7))
	require.True(t, ok)
	assert.Equal(t, 4, unit)
	assert.Equal(t, 7, sub)
}

func TestResolveModule(t *testing.T) {
	plan := testPlan()

	unit, found := ResolveModule(plan, 2)
	require.True(t, found)
	assert.Equal(t, "Routing", unit.Title)

	_, found = ResolveModule(plan, 9)
	assert.False(t, found)

	_, found = ResolveModule(nil, 1)
	assert.False(t, found)
}

func TestModuleProgress(t *testing.T) {
	plan := testPlan()
	p := progress.Default()
	p.AddTopic("1-0")
	p.AddTopic("1-2")
	p.AddTopic("2-0")

	unit, _ := ResolveModule(plan, 1)
	completed, total := ModuleProgress(unit, p)
	assert.Equal(t, 2, completed)
	assert.Equal(t, 3, total)

	// A unit with no subtopics reports 0/0.
	empty, _ := ResolveModule(plan, 3)
	completed, total = ModuleProgress(empty, p)
	assert.Equal(t, 0, completed)
	assert.Equal(t, 0, total)

	completed, total = ModuleProgress(nil, p)
	assert.Equal(t, 0, completed)
	assert.Equal(t, 0, total)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 0, Percent(0, 3))
	assert.Equal(t, 66, Percent(2, 3))
	assert.Equal(t, 100, Percent(2, 2))
}

func TestResumeTargetFollowsLastVisited(t *testing.T) {
	plan := testPlan()
	last := "2-1"
	p := progress.CourseProgress{LastVisited: &last}

	assert.Equal(t, 2, ResumeTarget(plan, p))
}

func TestResumeTargetFallsBackOnStalePointer(t *testing.T) {
	plan := testPlan()

	// Unit 7 no longer exists in the regenerated plan.
	stale := "7-2"
	assert.Equal(t, 1, ResumeTarget(plan, progress.CourseProgress{LastVisited: &stale}))

	// Malformed pointer falls back too.
	bad := "garbage"
	assert.Equal(t, 1, ResumeTarget(plan, progress.CourseProgress{LastVisited: &bad}))

	// Never visited: first unit.
	assert.Equal(t, 1, ResumeTarget(plan, progress.Default()))

	assert.Equal(t, 0, ResumeTarget(nil, progress.Default()))
}

func TestMarkVisitedDoesNotComplete(t *testing.T) {
	store := progress.NewFileStore(t.TempDir() + "/progress.json")

	require.NoError(t, MarkVisited(store, "course-1", 2, 1))

	p := store.Load("course-1")
	require.NotNil(t, p.LastVisited)
	assert.Equal(t, "2-1", *p.LastVisited)
	assert.Empty(t, p.CompletedTopics)
}

func TestMarkCompleted(t *testing.T) {
	store := progress.NewFileStore(t.TempDir() + "/progress.json")

	require.NoError(t, MarkCompleted(store, "course-1", 1, 0))
	require.NoError(t, MarkCompleted(store, "course-1", 1, 0))
	require.NoError(t, MarkCompleted(store, "course-1", 1, 1))

	p := store.Load("course-1")
	assert.Equal(t, []string{"1-0", "1-1"}, p.CompletedTopics)
}

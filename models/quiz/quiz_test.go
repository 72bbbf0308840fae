package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentUsesBackendValueWhenPresent(t *testing.T) {
	pct := 42
	r := EvaluationResult{TotalScore: 9, TotalPossible: 10, Percentage: &pct}

	assert.Equal(t, 42, r.Percent())
}

func TestPercentFallbackRounds(t *testing.T) {
	cases := []struct {
		score, possible, want int
	}{
		{76, 95, 80}, // rounds up to the threshold exactly
		{2, 3, 67},
		{1, 3, 33},
		{0, 0, 0}, // empty quiz never divides by zero
		{5, 5, 100},
	}
	for _, c := range cases {
		r := EvaluationResult{TotalScore: c.score, TotalPossible: c.possible}
		assert.Equal(t, c.want, r.Percent(), "%d/%d", c.score, c.possible)
	}
}

func TestIsPassedPrefersBackendVerdict(t *testing.T) {
	// Backend says failed even though the fallback math would pass.
	failed := false
	r := EvaluationResult{TotalScore: 9, TotalPossible: 10, Passed: &failed}
	assert.False(t, r.IsPassed())

	// No verdict: threshold applies, 80 passes and 79 does not.
	r = EvaluationResult{TotalScore: 80, TotalPossible: 100}
	assert.True(t, r.IsPassed())
	r = EvaluationResult{TotalScore: 79, TotalPossible: 100}
	assert.False(t, r.IsPassed())
}

func TestNormalizeFillsMissingFields(t *testing.T) {
	r := EvaluationResult{TotalScore: 76, TotalPossible: 95}
	r.Normalize()

	require.NotNil(t, r.Percentage)
	assert.Equal(t, 80, *r.Percentage)
	require.NotNil(t, r.Passed)
	assert.True(t, *r.Passed)
}

func TestNormalizeKeepsBackendValues(t *testing.T) {
	pct := 10
	passed := true
	r := EvaluationResult{Percentage: &pct, Passed: &passed}
	r.Normalize()

	assert.Equal(t, 10, *r.Percentage)
	assert.True(t, *r.Passed)
}

func TestCoursePlanValidate(t *testing.T) {
	plan := CoursePlan{}
	assert.Error(t, plan.Validate())

	plan.CourseTitle = "Chemistry"
	assert.Error(t, plan.Validate())

	plan.Units = []Unit{{UnitNumber: 1, Title: "Atoms"}}
	assert.NoError(t, plan.Validate())
}

func TestModuleQuizValidate(t *testing.T) {
	q := ModuleQuiz{Title: "empty"}
	assert.Error(t, q.Validate())

	q = ModuleQuiz{
		MultipleChoice: []MCQQuestion{{Question: "q", Options: []string{"a", "b"}, CorrectAnswerIndex: 2}},
	}
	assert.Error(t, q.Validate())

	q.MultipleChoice[0].CorrectAnswerIndex = 1
	assert.NoError(t, q.Validate())

	// FRQ-only quizzes are valid.
	q = ModuleQuiz{FreeResponse: []FRQQuestion{{Question: "explain", MaxPoints: 5}}}
	assert.NoError(t, q.Validate())
}

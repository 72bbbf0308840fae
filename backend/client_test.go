package backend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, 5*time.Second), srv
}

func TestGetCourseDecodesPlan(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/course/abc123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"courseTitle": "Linear Algebra",
			"units": [{"unitNumber": 1, "title": "Vectors", "subtopics": ["a", "b"]}],
			"course_id": "abc123"
		}`))
	})
	defer srv.Close()

	plan, err := c.GetCourse("abc123")
	require.NoError(t, err)
	assert.Equal(t, "Linear Algebra", plan.CourseTitle)
	require.Len(t, plan.Units, 1)
	assert.Equal(t, []string{"a", "b"}, plan.Units[0].Subtopics)
}

func TestGetCourseRejectsEmptyPlan(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"courseTitle": "Empty", "units": []}`))
	})
	defer srv.Close()

	_, err := c.GetCourse("abc123")
	assert.Error(t, err)
}

func TestUpstreamStatusBecomesAPIError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "course not found"}`))
	})
	defer srv.Close()

	_, err := c.GetCourse("missing")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "course not found")
}

func TestGenerateModuleQuizSendsRetakeFlag(t *testing.T) {
	var got map[string]interface{}
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate_module_quiz", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{
			"title": "Unit 2 Quiz",
			"multipleChoice": [{"question": "q", "options": ["a", "b"], "correctAnswerIndex": 0}]
		}`))
	})
	defer srv.Close()

	q, err := c.GenerateModuleQuiz("abc123", 2, true)
	require.NoError(t, err)
	assert.Equal(t, "Unit 2 Quiz", q.Title)

	assert.Equal(t, "abc123", got["courseId"])
	assert.Equal(t, float64(2), got["unitNumber"])
	assert.Equal(t, true, got["retake"])
}

func TestGenerateModuleQuizOmitsRetakeWhenFalse(t *testing.T) {
	var got map[string]interface{}
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{
			"title": "Unit 2 Quiz",
			"multipleChoice": [{"question": "q", "options": ["a", "b"], "correctAnswerIndex": 0}]
		}`))
	})
	defer srv.Close()

	_, err := c.GenerateModuleQuiz("abc123", 2, false)
	require.NoError(t, err)

	_, present := got["retake"]
	assert.False(t, present)
}

func TestEvaluateModuleQuizSendsSentinelArrays(t *testing.T) {
	var got map[string]interface{}
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/evaluate_module_quiz", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{
			"mcqScore": 1, "mcqTotal": 2,
			"frqScore": 0, "frqTotal": 5,
			"totalScore": 1, "totalPossible": 7,
			"percentage": 14, "passed": false
		}`))
	})
	defer srv.Close()

	result, err := c.EvaluateModuleQuiz("abc123", 1, []int{1, -1}, []string{""}, "7")
	require.NoError(t, err)

	assert.Equal(t, []interface{}{float64(1), float64(-1)}, got["mcqAnswers"])
	assert.Equal(t, []interface{}{""}, got["frqAnswers"])
	assert.Equal(t, "7", got["auth_id"])

	require.NotNil(t, result.Percentage)
	assert.Equal(t, 14, *result.Percentage)
	require.NotNil(t, result.Passed)
	assert.False(t, *result.Passed)
}

func TestEvaluateModuleQuizOmitsAuthIDForAnonymous(t *testing.T) {
	var got map[string]interface{}
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"totalScore": 0, "totalPossible": 7}`))
	})
	defer srv.Close()

	_, err := c.EvaluateModuleQuiz("abc123", 1, []int{-1}, []string{""}, "")
	require.NoError(t, err)

	_, present := got["auth_id"]
	assert.False(t, present)
}

func TestGenerateRetakeQuizTargetsAdaptiveEndpoint(t *testing.T) {
	var got map[string]interface{}
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate_module_quiz_retake", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{
			"title": "Retake",
			"multipleChoice": [{"question": "q", "options": ["a", "b"], "correctAnswerIndex": 1}]
		}`))
	})
	defer srv.Close()

	_, err := c.GenerateRetakeQuiz("abc123", 3, "7")
	require.NoError(t, err)
	assert.Equal(t, "7", got["auth_id"])
	assert.Equal(t, true, got["retake"])
}

func TestQuizHelpText(t *testing.T) {
	var got map[string]interface{}
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quiz_help/text", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"response": "Think about the base case."}`))
	})
	defer srv.Close()

	reply, err := c.QuizHelpText("abc123", 1, 0, "mcq",
		[]HelpMessage{{Role: "user", Content: "hint?"}}, "I am stuck")
	require.NoError(t, err)
	assert.Equal(t, "Think about the base case.", reply)
	assert.Equal(t, "mcq", got["questionType"])
	assert.Equal(t, "I am stuck", got["studentMessage"])
}

func TestInvalidJSONBecomesError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	})
	defer srv.Close()

	_, err := c.GetCourse("abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

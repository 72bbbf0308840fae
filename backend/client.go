// Package backend is the HTTP client for the external AI course backend.
// The generation and evaluation algorithms are opaque; this package only
// owns the wire contracts and error propagation.
package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mdv314/claritas-learning/models/quiz"

	"github.com/go-resty/resty/v2"
)

// APIError carries the upstream status and body so proxy handlers can
// propagate the backend status instead of collapsing everything to 500.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
}

// Client talks to the AI backend.
type Client struct {
	rest *resty.Client
}

// New builds a client for the given base URL. Generation calls are slow, so
// the timeout is generous and there is deliberately no retry: a failed call
// surfaces to the caller, per the single-attempt error model.
func New(baseURL string, timeout time.Duration) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{rest: rest}
}

// decode unmarshals a successful response or converts it into an APIError.
func decode(resp *resty.Response, err error, out interface{}) error {
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("backend returned invalid JSON: %w", err)
	}
	return nil
}

// GenerateCourseRequest is the multipart form sent to /generate_course.
type GenerateCourseRequest struct {
	Topic           string
	SkillLevel      string
	AgeGroup        string
	AdditionalNotes string
	MaterialsText   string
	FileName        string
	File            io.Reader
}

// GenerateCourse requests a full course plan.
func (c *Client) GenerateCourse(req GenerateCourseRequest) (*quiz.CoursePlan, error) {
	r := c.rest.R().SetFormData(map[string]string{
		"topic":            req.Topic,
		"skill_level":      req.SkillLevel,
		"age_group":        req.AgeGroup,
		"additional_notes": req.AdditionalNotes,
		"materials_text":   req.MaterialsText,
	})
	if req.File != nil {
		r.SetFileReader("file", req.FileName, req.File)
	}

	resp, err := r.Post("/generate_course")
	var plan quiz.CoursePlan
	if err := decode(resp, err, &plan); err != nil {
		return nil, err
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetCourse fetches a previously generated course plan by id.
func (c *Client) GetCourse(courseID string) (*quiz.CoursePlan, error) {
	resp, err := c.rest.R().Get("/course/" + courseID)
	var plan quiz.CoursePlan
	if err := decode(resp, err, &plan); err != nil {
		return nil, err
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// GenerateModuleQuiz requests a fresh quiz for a unit. The retake flag asks
// for new questions without weakness data.
func (c *Client) GenerateModuleQuiz(courseID string, unitNumber int, retake bool) (*quiz.ModuleQuiz, error) {
	body := map[string]interface{}{
		"courseId":   courseID,
		"unitNumber": unitNumber,
	}
	if retake {
		body["retake"] = true
	}

	resp, err := c.rest.R().SetBody(body).Post("/generate_module_quiz")
	var q quiz.ModuleQuiz
	if err := decode(resp, err, &q); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &q, nil
}

// GenerateRetakeQuiz requests an adaptive retake biased toward the weak
// subtopics recorded for the user's previous attempts. Callers fall back to
// GenerateModuleQuiz with retake=true when this endpoint is unavailable.
func (c *Client) GenerateRetakeQuiz(courseID string, unitNumber int, authID string) (*quiz.ModuleQuiz, error) {
	resp, err := c.rest.R().SetBody(map[string]interface{}{
		"courseId":   courseID,
		"unitNumber": unitNumber,
		"auth_id":    authID,
		"retake":     true,
	}).Post("/generate_module_quiz_retake")

	var q quiz.ModuleQuiz
	if err := decode(resp, err, &q); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &q, nil
}

// EvaluateModuleQuiz submits positional answer arrays for scoring.
// Unanswered questions are sent as -1 / "" and scored incorrect upstream,
// never rejected: the client-side answer gate is advisory only.
func (c *Client) EvaluateModuleQuiz(courseID string, unitNumber int, mcqAnswers []int, frqAnswers []string, authID string) (*quiz.EvaluationResult, error) {
	body := map[string]interface{}{
		"courseId":   courseID,
		"unitNumber": unitNumber,
		"mcqAnswers": mcqAnswers,
		"frqAnswers": frqAnswers,
	}
	if authID != "" {
		body["auth_id"] = authID
	}

	resp, err := c.rest.R().SetBody(body).Post("/evaluate_module_quiz")
	var result quiz.EvaluationResult
	if err := decode(resp, err, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateTopic requests lesson content for a single subtopic.
func (c *Client) GenerateTopic(courseID string, unitNumber, subtopicIndex int) (*quiz.TopicContent, error) {
	resp, err := c.rest.R().SetBody(map[string]interface{}{
		"courseId":      courseID,
		"unitNumber":    unitNumber,
		"subtopicIndex": subtopicIndex,
	}).Post("/generate_topic")

	var topic quiz.TopicContent
	if err := decode(resp, err, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// HelpMessage is one turn of a quiz-help conversation.
type HelpMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QuizHelpText asks the tutoring endpoint for a reply to the student.
func (c *Client) QuizHelpText(courseID string, unitNumber, questionIndex int, questionType string, history []HelpMessage, studentMessage string) (string, error) {
	resp, err := c.rest.R().SetBody(map[string]interface{}{
		"courseId":            courseID,
		"unitNumber":          unitNumber,
		"questionIndex":       questionIndex,
		"questionType":        questionType,
		"conversationHistory": history,
		"studentMessage":      studentMessage,
	}).Post("/quiz_help/text")

	var out struct {
		Response string `json:"response"`
	}
	if err := decode(resp, err, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

package courseController

import (
	"encoding/json"
	"log"

	"github.com/mdv314/claritas-learning/database"
	"github.com/mdv314/claritas-learning/middleware"
	courseModels "github.com/mdv314/claritas-learning/models/course"
	"github.com/mdv314/claritas-learning/navigator"
	"github.com/mdv314/claritas-learning/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// mirrorStore adapts the server-side ProgressRecord rows to the
// progress.Store contract for one user, so the navigator works identically
// against the local file store and the authenticated mirror.
type mirrorStore struct {
	userID uint
}

func (s mirrorStore) Load(courseID string) progress.CourseProgress {
	p := progress.Default()
	if s.userID == 0 {
		return p
	}

	var rec courseModels.ProgressRecord
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", s.userID, courseID, false).
		First(&rec).Error; err != nil {
		// Absence is a valid state, not an error
		return p
	}

	p.IsEnrolled = rec.IsEnrolled
	var topics []string
	if len(rec.CompletedTopics) > 0 {
		if err := json.Unmarshal(rec.CompletedTopics, &topics); err != nil {
			log.Printf("Corrupt completed_topics for user %d course %s: %v", s.userID, courseID, err)
		}
	}
	for _, t := range topics {
		p.AddTopic(t)
	}
	if rec.LastVisited != "" {
		lv := rec.LastVisited
		p.LastVisited = &lv
	}
	return p
}

func (s mirrorStore) Save(courseID string, p progress.CourseProgress) error {
	topics, err := json.Marshal(p.CompletedTopics)
	if err != nil {
		return err
	}
	lastVisited := ""
	if p.LastVisited != nil {
		lastVisited = *p.LastVisited
	}

	db := database.Database.Db
	var rec courseModels.ProgressRecord
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", s.userID, courseID, false).
		First(&rec).Error; err != nil {
		rec = courseModels.ProgressRecord{
			UserID:   s.userID,
			CourseID: courseID,
		}
	}
	rec.IsEnrolled = p.IsEnrolled
	rec.CompletedTopics = datatypes.JSON(topics)
	rec.LastVisited = lastVisited
	return db.Save(&rec).Error
}

// Enroll registers the caller in a course and flips the progress mirror's
// enrollment flag.
func Enroll(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	reqData := c.Locals("enrollRequest").(*EnrollRequest)

	db := database.Database.Db

	var existing courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, reqData.CourseID, false).
		First(&existing).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Already enrolled in this course")
	}

	enrollment := courseModels.Enrollment{
		UserID:      userID,
		CourseID:    reqData.CourseID,
		CourseTitle: reqData.CourseTitle,
		Status:      "ENROLLED",
	}
	if err := db.Create(&enrollment).Error; err != nil {
		log.Printf("Error creating enrollment: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to enroll")
	}

	store := mirrorStore{userID: userID}
	p := store.Load(reqData.CourseID)
	p.IsEnrolled = true
	if err := store.Save(reqData.CourseID, p); err != nil {
		log.Printf("Error updating progress mirror on enroll: %v", err)
	}

	return c.JSON(enrollment)
}

// EnrollRequest is the validated body for Enroll.
type EnrollRequest struct {
	CourseID    string `json:"course_id"`
	CourseTitle string `json:"course_title"`
}

// GetProgress returns the stored progress for a course. Authenticated
// callers read the database mirror, anonymous callers the local file store.
// A missing record reads as the zero-value default.
func GetProgress(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	courseID := c.Locals("courseID").(string)

	return c.JSON(progressStore(userID).Load(courseID))
}

// SaveProgress merges a client-submitted progress copy into the mirror.
// The two copies are reconciled, not overwritten: completed topics are
// unioned and the client's lastVisited pointer wins.
func SaveProgress(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	reqData := c.Locals("progressRequest").(*ProgressRequest)

	store := progressStore(userID)
	merged := progress.Merge(reqData.Progress, store.Load(reqData.CourseID))
	if err := store.Save(reqData.CourseID, merged); err != nil {
		log.Printf("Error saving progress mirror: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save progress")
	}
	return c.JSON(merged)
}

// ProgressRequest is the validated body for SaveProgress.
type ProgressRequest struct {
	CourseID string                  `json:"course_id"`
	Progress progress.CourseProgress `json:"progress"`
}

// TopicVisited updates the mirror's lastVisited pointer. Visiting never
// marks the topic completed.
func TopicVisited(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	reqData := c.Locals("visitRequest").(*VisitRequest)

	store := progressStore(userID)
	if err := navigator.MarkVisited(store, reqData.CourseID, reqData.UnitNumber, reqData.SubtopicIndex); err != nil {
		log.Printf("Error marking topic visited: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record visit")
	}
	return c.JSON(fiber.Map{"success": true})
}

// VisitRequest is the validated body for TopicVisited.
type VisitRequest struct {
	CourseID      string `json:"course_id"`
	UnitNumber    int    `json:"unitNumber"`
	SubtopicIndex int    `json:"subtopicIndex"`
}

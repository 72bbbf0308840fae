package utils

import (
	"log"
	"time"

	"github.com/mdv314/claritas-learning/quizsession"

	"github.com/robfig/cron/v3"
)

// Sessions have no explicit cancellation: a user navigating away just
// abandons them. The janitor gives abandoned sessions a bounded lifetime.
const sessionMaxIdle = time.Hour

// StartSessionJanitor sweeps idle quiz sessions on a fixed schedule.
func StartSessionJanitor(m *quizsession.Manager) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@every 10m", func() {
		if pruned := m.PruneIdle(sessionMaxIdle); pruned > 0 {
			log.Printf("[SESSION-JANITOR] Pruned %d idle quiz sessions, %d remaining", pruned, m.Count())
		}
	})
	if err != nil {
		log.Printf("Failed to schedule session janitor: %v", err)
		return c
	}

	c.Start()
	log.Println("Session janitor started.")
	return c
}

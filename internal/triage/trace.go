package triage

import (
	"time"

	"github.com/condoguard/backend/internal/models"
)

// Recorder accumulates the agent trace for a single triage run. One recorder
// is owned per invocation; entries are append-only and keep generation order.
type Recorder struct {
	entries []models.AgentTrace
}

func (r *Recorder) Add(agent, step, status, details string) {
	r.entries = append(r.entries, models.AgentTrace{
		Agent:     agent,
		Step:      step,
		Status:    status,
		Details:   details,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (r *Recorder) Entries() []models.AgentTrace {
	return r.entries
}

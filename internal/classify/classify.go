package classify

import (
	"context"

	"github.com/condoguard/backend/internal/models"
)

// Result is the baseline classification a strategy produces for a message.
// Sub-flows in the triage service may override every field of it.
type Result struct {
	Priority          models.Priority
	Category          models.Category
	Confidence        float64
	ActionRequired    bool
	Summary           string
	SuggestedResponse string
	Rationale         string
}

// Classifier is the classification strategy port. The rule-based
// implementation is the default; a model-backed one can replace it without
// touching the triage sub-flows.
type Classifier interface {
	Classify(ctx context.Context, message string) (Result, error)
}

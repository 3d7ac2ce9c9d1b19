package triage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/condoguard/backend/internal/classify"
	"github.com/condoguard/backend/internal/models"
)

// ErrSchemaValidation marks an assembled result that failed the schema gate.
// The triage attempt fails as a whole; no partial result is returned.
var ErrSchemaValidation = errors.New("schema validation failed")

// Service runs the triage pipeline: baseline classification, intent
// sub-flows in fixed precedence order, trace assembly and the schema gate.
// Stateless across invocations; safe for concurrent use.
type Service struct {
	Classifier classify.Classifier
	Validator  *Validator
	Logger     zerolog.Logger

	// StepDelay inserts a cosmetic pause between trace points so the UI can
	// animate the agent narrative. Zero disables it.
	StepDelay time.Duration
}

// Analyze triages one message. Precedence between intents is strictly
// sequential: reservation, then access, then regulation, each gated on the
// prior being absent.
func (s *Service) Analyze(ctx context.Context, req models.TriageRequest) (models.TriageOutput, error) {
	lowerMsg := strings.ToLower(req.Message)
	rec := &Recorder{}

	rec.Add(models.AgentAnalyst, "Ingesting message from source", models.TraceProcessing, "")
	s.pause(ctx)
	rec.Add(models.AgentAnalyst, "Parsing semantics and intent", models.TraceSuccess,
		fmt.Sprintf("Detected keywords in \"%s...\"", snippet(lowerMsg, 20)))

	base, err := s.Classifier.Classify(ctx, req.Message)
	if err != nil {
		return models.TriageOutput{}, fmt.Errorf("classify: %w", err)
	}

	reservation := s.reservationFlow(lowerMsg, req.SenderUnit, &base, rec)

	var access *models.VisitorAccess
	if reservation == nil {
		access = s.accessFlow(ctx, req.Message, lowerMsg, &base, rec)
	}

	var rag *models.RAGResponse
	if reservation == nil && access == nil {
		rag = s.regulationFlow(ctx, req.Message, lowerMsg, &base, rec)
	}

	rec.Add(models.AgentAnalyst, "Determining Priority Protocol", models.TraceSuccess,
		fmt.Sprintf("Classified as %s based on keyword match", base.Priority))

	rec.Add(models.AgentArchitect, "Validating JSON Schema compliance", models.TraceProcessing, "")
	s.pause(ctx)
	if base.Confidence < 0.8 && (base.Priority == models.PriorityP0 || base.Priority == models.PriorityP1) {
		rec.Add(models.AgentArchitect, "Quality Gate Warning", models.TraceWarning, "High priority with low confidence requires human review")
	} else {
		rec.Add(models.AgentArchitect, "Quality Gate Passed", models.TraceSuccess, "Schema and Confidence thresholds met")
	}

	if base.ActionRequired {
		rec.Add(models.AgentDev, "Triggering Emergency Workflows", models.TraceProcessing, "")
		s.pause(ctx)
		rec.Add(models.AgentDev, "Webhook Dispatched", models.TraceSuccess, "Sent payload to OpsGenie/Twilio")
	} else {
		rec.Add(models.AgentDev, "Logging Routine Interaction", models.TraceSuccess, "Saved to database without escalation")
	}

	out := models.TriageOutput{
		TriageID:  uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Source:    req.Source,
		Sender: models.Sender{
			ID:   req.SenderID,
			Name: req.SenderName,
			Unit: req.SenderUnit,
		},
		Classification: models.Classification{
			Priority:        base.Priority,
			Category:        base.Category,
			ConfidenceScore: base.Confidence,
		},
		Summary:           base.Summary,
		ActionRequired:    base.ActionRequired,
		SuggestedResponse: base.SuggestedResponse,
		OriginalMessage:   req.Message,
		AgentTraces:       rec.Entries(),
		Reservation:       reservation,
		VisitorAccess:     access,
		RAGResponse:       rag,
	}

	if err := s.Validator.Validate(&out); err != nil {
		s.Logger.Error().Err(err).Str("triage_id", out.TriageID).Msg("triage result failed schema validation")
		return models.TriageOutput{}, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	return out, nil
}

// pause suspends cooperatively between trace points. Never reorders entries.
func (s *Service) pause(ctx context.Context) {
	if s.StepDelay <= 0 {
		return
	}
	t := time.NewTimer(s.StepDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func containsAny(msg string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(msg, t) {
			return true
		}
	}
	return false
}

func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

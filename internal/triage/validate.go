package triage

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/condoguard/backend/internal/models"
)

// Validator is the schema gate every assembled TriageOutput must pass before
// it leaves the core. A violation fails the whole triage attempt.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterStructValidation(triageOutputRules, models.TriageOutput{})
	return &Validator{v: v}
}

func (val *Validator) Validate(out *models.TriageOutput) error {
	return val.v.Struct(out)
}

// triageOutputRules enforces the cross-field invariants the tag syntax cannot
// express.
func triageOutputRules(sl validator.StructLevel) {
	out := sl.Current().Interface().(models.TriageOutput)

	// P0/P1 requires high confidence.
	p := out.Classification.Priority
	if (p == models.PriorityP0 || p == models.PriorityP1) && out.Classification.ConfidenceScore < 0.8 {
		sl.ReportError(out.Classification.ConfidenceScore, "classification.confidence_score", "ConfidenceScore", "priority_confidence", "")
	}

	// At most one intent sub-output per result.
	populated := 0
	if out.Reservation != nil {
		populated++
	}
	if out.VisitorAccess != nil {
		populated++
	}
	if out.RAGResponse != nil {
		populated++
	}
	if populated > 1 {
		sl.ReportError(out.Reservation, "reservation", "Reservation", "exclusive_intent", "")
	}

	if r := out.Reservation; r != nil {
		if r.Status == models.ReservationDenied && r.MotivoRecusa == "" {
			sl.ReportError(r.MotivoRecusa, "reservation.motivo_recusa", "MotivoRecusa", "denial_reason", "")
		}
		if r.Status == models.ReservationConfirmed {
			d, err := time.Parse("2006-01-02", r.DataISO)
			if err != nil || !d.After(time.Now().UTC().Truncate(24*time.Hour)) {
				sl.ReportError(r.DataISO, "reservation.data_iso", "DataISO", "future_booking_date", "")
			}
		}
	}

	if a := out.VisitorAccess; a != nil && a.Status == "authorized" && a.QRCodeToken == "" {
		sl.ReportError(a.QRCodeToken, "visitor_access.qr_code_token", "QRCodeToken", "token_required", "")
	}
}

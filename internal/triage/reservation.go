package triage

import (
	"fmt"
	"strings"
	"time"

	"github.com/condoguard/backend/internal/classify"
	"github.com/condoguard/backend/internal/models"
)

const (
	SpaceChurrasqueira = "CHURRASQUEIRA_GORMET"
	SpaceSalaoFestas   = "SALAO_FESTAS_A"

	// Bookings must be requested at least this far ahead.
	advanceNoticeHours = 48
	// Confirmed bookings are synthesized this many days out for now; a real
	// scheduling backend would resolve the requested date instead.
	bookingOffsetDays = 3
)

var reservationTerms = []string{"reserva", "churrasqueira", "salão"}

// reservationFlow handles space reservation intent. On trigger it overrides
// the baseline classification and response, and returns the decision.
func (s *Service) reservationFlow(lowerMsg, senderUnit string, base *classify.Result, rec *Recorder) *models.Reservation {
	if !containsAny(lowerMsg, reservationTerms) {
		return nil
	}
	rec.Add(models.AgentAnalyst, "Intent Detected: Space Reservation", models.TraceSuccess, "Routing to Reservation Sub-Agent")

	space := SpaceSalaoFestas
	if strings.Contains(lowerMsg, "churrasqueira") {
		space = SpaceChurrasqueira
	}
	moradorID := senderUnit
	if moradorID == "" {
		moradorID = "UNKNOWN_UNIT"
	}

	var reservation *models.Reservation
	if strings.Contains(lowerMsg, "hoje") || strings.Contains(lowerMsg, "amanhã") {
		rec.Add(models.AgentAnalyst, "Constraint Check Failed", models.TraceWarning,
			fmt.Sprintf("Rule: Minimum %dh advance notice required", advanceNoticeHours))
		reservation = &models.Reservation{
			Intent:       models.IntentReservation,
			Espaco:       space,
			MoradorID:    moradorID,
			Status:       models.ReservationDenied,
			MotivoRecusa: "Regra de Antecedência: Pedidos devem ser feitos com 48h de antecedência.",
		}
		base.SuggestedResponse = "🚫 Infelizmente não podemos confirmar. O regulamento exige 48h de antecedência para reservas."
		base.Summary = "RESERVA NEGADA: Antecedência insuficiente"
	} else {
		rec.Add(models.AgentAnalyst, "Constraint Check Passed", models.TraceSuccess, "User valid, Schedule open")
		reservation = &models.Reservation{
			Intent:    models.IntentReservation,
			Espaco:    space,
			DataISO:   time.Now().UTC().AddDate(0, 0, bookingOffsetDays).Format("2006-01-02"),
			MoradorID: moradorID,
			Status:    models.ReservationConfirmed,
		}
		base.SuggestedResponse = fmt.Sprintf("✅ Reserva confirmada para o %s. Um convite QR Code foi enviado para seu e-mail.",
			strings.ReplaceAll(space, "_", " "))
		base.Summary = "RESERVA CONFIRMADA: Espaço agendado com sucesso"
	}

	base.Category = models.CategoryCommunity
	base.Priority = models.PriorityP3
	return reservation
}

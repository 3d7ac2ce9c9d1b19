package triage

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/condoguard/backend/internal/classify"
	"github.com/condoguard/backend/internal/models"
)

var (
	accessTerms  = []string{"entrada", "visita", "qr", "autoriza"}
	serviceTerms = []string{"técnico", "entregador", "pedreiro"}

	// Capitalized name following a cue word. Extraction is best-effort; no
	// match falls back to the generic placeholder.
	visitorNameRe = regexp.MustCompile(`(?:(?i:liberar|entrada|para|senhor|senhora))\s+([A-ZÀ-Ú][a-zà-ú]+(?:\s[A-ZÀ-Ú][a-zà-ú]+)*)`)
)

const accessValidityHours = 24

// accessFlow handles visitor access intent. On trigger it issues an access
// token valid for 24h and overrides the baseline classification.
func (s *Service) accessFlow(ctx context.Context, message, lowerMsg string, base *classify.Result, rec *Recorder) *models.VisitorAccess {
	if !containsAny(lowerMsg, accessTerms) {
		return nil
	}
	rec.Add(models.AgentAnalyst, "Intent Detected: Visitor Access", models.TraceSuccess, "Routing to Agente de Portaria")

	isService := containsAny(lowerMsg, serviceTerms)
	name := extractVisitorName(message)

	kind := "GUEST"
	tipo := models.VisitorTypeGuest
	label := "Visitante"
	if isService {
		kind = "SERVICE"
		tipo = models.VisitorTypeService
		label = "Prestador"
	}
	rec.Add(models.AgentAnalyst, "Entity Extraction", models.TraceSuccess, fmt.Sprintf("Visitor: %s, Type: %s", name, kind))

	token := newAccessToken()
	rec.Add(models.AgentPortaria, "Generating Secure Token", models.TraceProcessing, "")
	s.pause(ctx)
	rec.Add(models.AgentPortaria, "Token Generated", models.TraceSuccess, "Token: "+token)

	access := &models.VisitorAccess{
		Intent:        models.IntentVisitorAccess,
		NomeVisitante: name,
		Tipo:          tipo,
		DataValidade:  time.Now().UTC().Add(accessValidityHours * time.Hour).Format(time.RFC3339),
		QRCodeToken:   token,
		Status:        "authorized",
	}

	base.SuggestedResponse = fmt.Sprintf("🔓 Acesso autorizado para %s. O QR Code foi gerado e é válido por 24h.", name)
	base.Summary = fmt.Sprintf("ACESSO LIBERADO: %s (%s)", name, label)
	base.Category = models.CategorySecurity
	base.Priority = models.PriorityP2
	return access
}

func extractVisitorName(message string) string {
	if m := visitorNameRe.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	return "Visitante"
}

// newAccessToken builds an opaque token from a random component and a time
// component. Effectively unique per issuance.
func newAccessToken() string {
	random := strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	return fmt.Sprintf("QR-%s-%s", random, millis[len(millis)-4:])
}

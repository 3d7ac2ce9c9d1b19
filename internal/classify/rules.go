package classify

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/condoguard/backend/internal/models"
)

var (
	p0Terms = []string{"fogo", "incêndio", "vazamento grave", "cano estourou", "roubo", "ladrão", "socorro", "gás", "fumaça", "explosão"}
	p1Terms = []string{"elevador", "portão", "sem água", "sem luz", "internet"}
	p2Terms = []string{"barulho", "festa", "sujeira", "limpeza", "lâmpada queimada"}
)

// RuleClassifier is a keyword cascade standing in for a model-backed
// classifier. Tiers are evaluated top-down; the first matching tier wins.
type RuleClassifier struct{}

func (RuleClassifier) Classify(_ context.Context, message string) (Result, error) {
	lowerMsg := strings.ToLower(message)

	if containsAny(lowerMsg, p0Terms) {
		category := models.CategorySecurity
		if strings.Contains(lowerMsg, "vazamento") || strings.Contains(lowerMsg, "cano") || strings.Contains(lowerMsg, "gás") {
			category = models.CategoryMaintenance
		}
		return Result{
			Priority:          models.PriorityP0,
			Category:          category,
			Confidence:        0.98,
			ActionRequired:    true,
			Summary:           "CRÍTICO: Relato de emergência (fogo/gás/segurança)",
			SuggestedResponse: "🚨 Recebemos seu alerta de emergência! A equipe de segurança e manutenção foi notificada IMEDIATAMENTE. Por favor, aguarde em local seguro.",
			Rationale:         "emergency keyword tier",
		}, nil
	}

	if containsAny(lowerMsg, p1Terms) {
		return Result{
			Priority:          models.PriorityP1,
			Category:          models.CategoryMaintenance,
			Confidence:        0.95,
			ActionRequired:    true,
			Summary:           "ALTA: Problema estrutural ou de serviço essência",
			SuggestedResponse: "⚠️ Identificamos um problema prioritário. Nossa equipe técnica já foi acionada para verificar. O prazo estimado de diagnóstico é de 2 horas.",
			Rationale:         "essential service outage tier",
		}, nil
	}

	if containsAny(lowerMsg, p2Terms) {
		category := models.CategoryMaintenance
		if strings.Contains(lowerMsg, "barulho") {
			category = models.CategoryCommunity
		}
		return Result{
			Priority:          models.PriorityP2,
			Category:          category,
			Confidence:        0.88,
			ActionRequired:    false,
			Summary:           "MÉDIA: Reclamação de convivência ou manutenção leve",
			SuggestedResponse: "📝 Registramos sua solicitação. Um chamado foi aberto e será analisado pelo zelador no próximo dia útil. Protocolo: #" + protocolRef(),
			Rationale:         "nuisance/light maintenance tier",
		}, nil
	}

	category := models.CategoryAdministration
	if strings.Contains(lowerMsg, "boleto") || strings.Contains(lowerMsg, "pagamento") {
		category = models.CategoryFinancial
	}
	return Result{
		Priority:          models.PriorityP3,
		Category:          category,
		Confidence:        0.85,
		ActionRequired:    false,
		Summary:           "BAIXA: Dúvida administrativa ou financeira",
		SuggestedResponse: "Olá! Recebemos sua dúvida. Nossa administração responderá em até 24h úteis. Caso seja sobre boletos, você pode retirar a 2ª via no app.",
		Rationale:         "default tier",
	}, nil
}

func containsAny(msg string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(msg, t) {
			return true
		}
	}
	return false
}

// protocolRef is the short tracking reference embedded in P2 responses.
func protocolRef() string {
	return uuid.NewString()[:6]
}

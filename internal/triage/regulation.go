package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/condoguard/backend/internal/classify"
	"github.com/condoguard/backend/internal/corpus"
	"github.com/condoguard/backend/internal/models"
)

var inquiryTerms = []string{"pode", "posso", "regra", "lei", "horário"}

// retrievalConfidence is reported for every regulation answer regardless of
// the ranking score; the score only orders candidates.
const retrievalConfidence = 0.95

// regulationFlow handles regulatory inquiries with ranked keyword retrieval
// over the embedded corpus. Only called when no other intent fired. Returns
// nil when no article scores above zero, leaving the baseline untouched.
func (s *Service) regulationFlow(ctx context.Context, message, lowerMsg string, base *classify.Result, rec *Recorder) *models.RAGResponse {
	if !containsAny(lowerMsg, inquiryTerms) {
		return nil
	}
	rec.Add(models.AgentAnalyst, "Intent Detected: Regulatory Inquiry", models.TraceSuccess, "Routing to Jurist Agent (CondoGPT)")
	rec.Add(models.AgentJurista, "Retrieving Documents", models.TraceProcessing, "Searching Knowledge Base...")
	s.pause(ctx)

	match, ok := corpus.Search(lowerMsg)
	if !ok {
		rec.Add(models.AgentJurista, "No Document Found", models.TraceWarning, "Low confidence on retrieval")
		return nil
	}

	article := match.Article
	rec.Add(models.AgentJurista, "Document Found", models.TraceSuccess,
		fmt.Sprintf("Match: %s (Confidence: %.2f)", article.Article, retrievalConfidence))

	rag := &models.RAGResponse{
		Intent:               models.IntentRegulation,
		PerguntaIdentificada: message,
		Resposta:             "De acordo com o nosso regulamento, " + strings.ToLower(article.Content),
		Citacoes: []models.Citation{{
			Artigo: article.Article,
			Texto:  article.Content,
		}},
		Confianca: retrievalConfidence,
	}

	base.SuggestedResponse = fmt.Sprintf("📜 %s: %s", article.Article, article.Content)
	base.Summary = fmt.Sprintf("CONSULTA JURÍDICA: %s - %s", article.Article, strings.ToUpper(article.Topics[0]))
	base.Category = models.CategoryAdministration
	base.Priority = models.PriorityP3
	return rag
}

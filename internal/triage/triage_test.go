package triage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/condoguard/backend/internal/classify"
	"github.com/condoguard/backend/internal/models"
)

func newService() *Service {
	return &Service{
		Classifier: classify.RuleClassifier{},
		Validator:  NewValidator(),
		Logger:     zerolog.Nop(),
	}
}

func analyze(t *testing.T, message string, unit string) models.TriageOutput {
	t.Helper()
	out, err := newService().Analyze(context.Background(), models.TriageRequest{
		Message:    message,
		Source:     models.SourceWhatsApp,
		SenderID:   "sender-1",
		SenderUnit: unit,
	})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	return out
}

func TestAnalyze_Emergency(t *testing.T) {
	out := analyze(t, "SOCORRO TEM FOGO NO AP 302!", "302")

	if out.Classification.Priority != models.PriorityP0 {
		t.Fatalf("expected P0, got %s", out.Classification.Priority)
	}
	if out.Classification.Category != models.CategorySecurity {
		t.Fatalf("expected Security, got %s", out.Classification.Category)
	}
	if out.Classification.ConfidenceScore != 0.98 {
		t.Fatalf("expected confidence 0.98, got %v", out.Classification.ConfidenceScore)
	}
	if !out.ActionRequired {
		t.Fatalf("expected action required")
	}
	if out.Reservation != nil || out.VisitorAccess != nil || out.RAGResponse != nil {
		t.Fatalf("expected no intent sub-output for emergency")
	}
}

func TestAnalyze_ReservationConfirmed(t *testing.T) {
	out := analyze(t, "Gostaria de reservar a churrasqueira para o dia 20", "105")

	r := out.Reservation
	if r == nil {
		t.Fatalf("expected reservation output")
	}
	if r.Espaco != SpaceChurrasqueira {
		t.Fatalf("expected %s, got %s", SpaceChurrasqueira, r.Espaco)
	}
	if r.Status != models.ReservationConfirmed {
		t.Fatalf("expected confirmed, got %s", r.Status)
	}
	if r.MoradorID != "105" {
		t.Fatalf("expected morador 105, got %s", r.MoradorID)
	}
	booked, err := time.Parse("2006-01-02", r.DataISO)
	if err != nil {
		t.Fatalf("expected parsable booking date, got %q: %v", r.DataISO, err)
	}
	if !booked.After(time.Now().UTC()) {
		t.Fatalf("expected future booking date, got %s", r.DataISO)
	}
	if out.Classification.Category != models.CategoryCommunity || out.Classification.Priority != models.PriorityP3 {
		t.Fatalf("expected Community/P3 override, got %s/%s", out.Classification.Category, out.Classification.Priority)
	}
}

func TestAnalyze_ReservationDeniedSameDay(t *testing.T) {
	out := analyze(t, "Quero reservar o salão para hoje a noite", "")

	r := out.Reservation
	if r == nil {
		t.Fatalf("expected reservation output")
	}
	if r.Status != models.ReservationDenied {
		t.Fatalf("expected denied, got %s", r.Status)
	}
	if !strings.Contains(r.MotivoRecusa, "48h") {
		t.Fatalf("expected 48h notice in denial reason, got %q", r.MotivoRecusa)
	}
	if r.MoradorID != "UNKNOWN_UNIT" {
		t.Fatalf("expected UNKNOWN_UNIT fallback, got %s", r.MoradorID)
	}
	if r.Espaco != SpaceSalaoFestas {
		t.Fatalf("expected %s, got %s", SpaceSalaoFestas, r.Espaco)
	}
}

func TestAnalyze_VisitorAccess(t *testing.T) {
	out := analyze(t, "Liberar entrada da minha mãe Maria Silva", "302")

	a := out.VisitorAccess
	if a == nil {
		t.Fatalf("expected visitor access output")
	}
	if a.Tipo != models.VisitorTypeGuest {
		t.Fatalf("expected VISITANTE, got %s", a.Tipo)
	}
	if a.Status != "authorized" {
		t.Fatalf("expected authorized, got %s", a.Status)
	}
	if a.QRCodeToken == "" || !strings.HasPrefix(a.QRCodeToken, "QR-") {
		t.Fatalf("expected QR token, got %q", a.QRCodeToken)
	}
	if a.DataValidade == "" {
		t.Fatalf("expected expiry timestamp")
	}
	if _, err := time.Parse(time.RFC3339, a.DataValidade); err != nil {
		t.Fatalf("expected RFC3339 expiry, got %q: %v", a.DataValidade, err)
	}
	if out.Classification.Category != models.CategorySecurity || out.Classification.Priority != models.PriorityP2 {
		t.Fatalf("expected Security/P2 override, got %s/%s", out.Classification.Category, out.Classification.Priority)
	}
}

func TestAnalyze_VisitorAccessServiceWorker(t *testing.T) {
	out := analyze(t, "Autorizar visita do técnico para Carlos Mendes", "302")

	a := out.VisitorAccess
	if a == nil {
		t.Fatalf("expected visitor access output")
	}
	if a.Tipo != models.VisitorTypeService {
		t.Fatalf("expected PRESTADOR_SERVICO, got %s", a.Tipo)
	}
	if a.NomeVisitante != "Carlos Mendes" {
		t.Fatalf("expected extracted name Carlos Mendes, got %q", a.NomeVisitante)
	}
}

func TestAnalyze_RegulationQuietHours(t *testing.T) {
	out := analyze(t, "Qual o horário de silêncio para obras?", "302")

	rag := out.RAGResponse
	if rag == nil {
		t.Fatalf("expected rag response")
	}
	if len(rag.Citacoes) == 0 {
		t.Fatalf("expected at least one citation")
	}
	if rag.Citacoes[0].Artigo != "Art. 15" {
		t.Fatalf("expected Art. 15, got %s", rag.Citacoes[0].Artigo)
	}
	if !strings.Contains(rag.Citacoes[0].Texto, "22h00") || !strings.Contains(rag.Citacoes[0].Texto, "07h00") {
		t.Fatalf("expected quiet hours in citation text, got %q", rag.Citacoes[0].Texto)
	}
	if rag.Confianca != 0.95 {
		t.Fatalf("expected confianca 0.95, got %v", rag.Confianca)
	}
	if rag.PerguntaIdentificada != "Qual o horário de silêncio para obras?" {
		t.Fatalf("expected verbatim question, got %q", rag.PerguntaIdentificada)
	}
	if out.Classification.Category != models.CategoryAdministration || out.Classification.Priority != models.PriorityP3 {
		t.Fatalf("expected Administration/P3 override, got %s/%s", out.Classification.Category, out.Classification.Priority)
	}
}

func TestAnalyze_RegulationNoMatch(t *testing.T) {
	out := analyze(t, "Posso pintar minha porta de rosa?", "302")

	if out.RAGResponse != nil {
		t.Fatalf("expected no rag response on empty retrieval")
	}
	if out.Classification.Priority != models.PriorityP3 || out.Classification.Category != models.CategoryAdministration {
		t.Fatalf("expected base P3/Administration to stand, got %s/%s",
			out.Classification.Priority, out.Classification.Category)
	}
	if out.Classification.ConfidenceScore != 0.85 {
		t.Fatalf("expected base confidence 0.85, got %v", out.Classification.ConfidenceScore)
	}
}

func TestAnalyze_AtMostOneIntent(t *testing.T) {
	// Reservation and access cues in the same message; reservation is checked
	// first and gates the rest.
	out := analyze(t, "Quero reservar o salão e autorizar a entrada amanhã", "302")

	if out.Reservation == nil {
		t.Fatalf("expected reservation output")
	}
	if out.VisitorAccess != nil || out.RAGResponse != nil {
		t.Fatalf("expected only one intent sub-output")
	}
}

func TestAnalyze_TraceSequenceStable(t *testing.T) {
	msg := "Qual o horário de silêncio para obras?"
	first := analyze(t, msg, "302")
	second := analyze(t, msg, "302")

	if len(first.AgentTraces) != len(second.AgentTraces) {
		t.Fatalf("trace length differs: %d vs %d", len(first.AgentTraces), len(second.AgentTraces))
	}
	for i := range first.AgentTraces {
		a, b := first.AgentTraces[i], second.AgentTraces[i]
		if a.Agent != b.Agent || a.Step != b.Step || a.Status != b.Status {
			t.Fatalf("trace entry %d differs: %s/%s/%s vs %s/%s/%s",
				i, a.Agent, a.Step, a.Status, b.Agent, b.Step, b.Status)
		}
	}
}

func TestAnalyze_TraceNarrativeOrder(t *testing.T) {
	out := analyze(t, "SOCORRO TEM FOGO NO AP 302!", "302")

	steps := make([]string, 0, len(out.AgentTraces))
	for _, tr := range out.AgentTraces {
		steps = append(steps, tr.Step)
	}

	want := []string{
		"Ingesting message from source",
		"Parsing semantics and intent",
		"Determining Priority Protocol",
		"Validating JSON Schema compliance",
		"Quality Gate Passed",
		"Triggering Emergency Workflows",
		"Webhook Dispatched",
	}
	if len(steps) != len(want) {
		t.Fatalf("expected %d trace steps, got %d: %v", len(want), len(steps), steps)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Fatalf("trace step %d: expected %q, got %q", i, want[i], steps[i])
		}
	}
}

func TestAnalyze_RoutineDispatchEntry(t *testing.T) {
	out := analyze(t, "Gostaria de uma informação geral", "302")

	last := out.AgentTraces[len(out.AgentTraces)-1]
	if last.Agent != models.AgentDev || last.Step != "Logging Routine Interaction" {
		t.Fatalf("expected routine log dispatch entry, got %s/%s", last.Agent, last.Step)
	}
}

func TestAnalyze_StepDelayRespectsContext(t *testing.T) {
	svc := newService()
	svc.StepDelay = 5 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Analyze(ctx, models.TriageRequest{
			Message:  "informação geral",
			Source:   models.SourceEmail,
			SenderID: "sender-1",
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("analyze blocked on cancelled context")
	}
}

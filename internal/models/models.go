package models

// Priority is the urgency protocol assigned to a triaged message, P0 being
// the most urgent.
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
)

// Category is the operational area a message belongs to, independent of
// priority.
type Category string

const (
	CategoryMaintenance    Category = "Maintenance"
	CategorySecurity       Category = "Security"
	CategoryAdministration Category = "Administration"
	CategoryFinancial      Category = "Financial"
	CategoryCommunity      Category = "Community"
)

// Source is the channel a message arrived through. Passed through unchanged.
type Source string

const (
	SourceWhatsApp Source = "WhatsApp"
	SourceEmail    Source = "Email"
	SourceSMS      Source = "SMS"
)

type Sender struct {
	ID   string `json:"id" validate:"required"`
	Unit string `json:"unit,omitempty"`
	Name string `json:"name,omitempty"`
}

type Classification struct {
	Priority        Priority `json:"priority" validate:"required,oneof=P0 P1 P2 P3"`
	Category        Category `json:"category" validate:"required,oneof=Maintenance Security Administration Financial Community"`
	ConfidenceScore float64  `json:"confidence_score" validate:"min=0,max=1"`
}

const (
	AgentAnalyst   = "Analyst"
	AgentArchitect = "Architect"
	AgentDev       = "Dev"
	AgentPortaria  = "Agente de Portaria"
	AgentJurista   = "Jurista"
)

const (
	TraceProcessing = "processing"
	TraceSuccess    = "success"
	TraceWarning    = "warning"
	TraceError      = "error"
)

// AgentTrace is one step of the synthetic processing narrative. Entries are
// append-only; their order is the order of generation and is significant.
type AgentTrace struct {
	Agent     string `json:"agent" validate:"required,oneof=Analyst Architect Dev 'Agente de Portaria' Jurista"`
	Step      string `json:"step" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=processing success warning error"`
	Details   string `json:"details,omitempty"`
	Timestamp int64  `json:"timestamp" validate:"required"`
}

const (
	IntentReservation   = "RESERVA_ESPACO"
	IntentVisitorAccess = "LIBERAR_ACESSO"
	IntentRegulation    = "CONSULTA_REGRAS"
)

const (
	ReservationConfirmed = "confirmed"
	ReservationDenied    = "denied"
	ReservationPending   = "pending_confirmation"
)

type Reservation struct {
	Intent       string `json:"intent" validate:"required,eq=RESERVA_ESPACO"`
	Espaco       string `json:"espaco" validate:"required"`
	DataISO      string `json:"data_iso,omitempty"`
	MoradorID    string `json:"morador_id" validate:"required"`
	Status       string `json:"status" validate:"required,oneof=confirmed denied pending_confirmation"`
	MotivoRecusa string `json:"motivo_recusa,omitempty"`
}

const (
	VisitorTypeGuest   = "VISITANTE"
	VisitorTypeService = "PRESTADOR_SERVICO"
)

type VisitorAccess struct {
	Intent        string `json:"intent" validate:"required,eq=LIBERAR_ACESSO"`
	NomeVisitante string `json:"nome_visitante" validate:"required"`
	Tipo          string `json:"tipo" validate:"required,oneof=VISITANTE PRESTADOR_SERVICO"`
	DataValidade  string `json:"data_validade,omitempty"`
	QRCodeToken   string `json:"qr_code_token" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=authorized denied"`
}

type Citation struct {
	Artigo string `json:"artigo" validate:"required"`
	Texto  string `json:"texto" validate:"required"`
}

type RAGResponse struct {
	Intent               string     `json:"intent" validate:"required,eq=CONSULTA_REGRAS"`
	PerguntaIdentificada string     `json:"pergunta_identificada" validate:"required"`
	Resposta             string     `json:"resposta" validate:"required"`
	Citacoes             []Citation `json:"citacoes" validate:"min=1,dive"`
	Confianca            float64    `json:"confianca" validate:"min=0,max=1"`
}

// TriageOutput is the root result of one triage run. At most one of
// Reservation, VisitorAccess and RAGResponse is populated; the cross-field
// rules are enforced by triage.Validator before the result leaves the core.
type TriageOutput struct {
	TriageID          string         `json:"triage_id" validate:"required,uuid4"`
	Timestamp         string         `json:"timestamp" validate:"required"`
	Source            Source         `json:"source" validate:"required,oneof=WhatsApp Email SMS"`
	Sender            Sender         `json:"sender" validate:"required"`
	Classification    Classification `json:"classification" validate:"required"`
	Summary           string         `json:"summary" validate:"required"`
	ActionRequired    bool           `json:"action_required"`
	SuggestedResponse string         `json:"suggested_response,omitempty"`
	OriginalMessage   string         `json:"original_message,omitempty"`
	AgentTraces       []AgentTrace   `json:"agent_traces,omitempty" validate:"dive"`
	Reservation       *Reservation   `json:"reservation,omitempty"`
	VisitorAccess     *VisitorAccess `json:"visitor_access,omitempty"`
	RAGResponse       *RAGResponse   `json:"rag_response,omitempty"`
}

// TriageRequest is the transport-level input shape. Validated at the handler,
// before the core is invoked.
type TriageRequest struct {
	Message    string `json:"message" validate:"required"`
	Source     Source `json:"source" validate:"required,oneof=WhatsApp Email SMS"`
	SenderID   string `json:"senderId" validate:"required"`
	SenderName string `json:"senderName,omitempty"`
	SenderUnit string `json:"senderUnit,omitempty"`
}

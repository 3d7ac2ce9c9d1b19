package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/condoguard/backend/internal/classify"
	"github.com/condoguard/backend/internal/corpus"
	"github.com/condoguard/backend/internal/models"
	"github.com/condoguard/backend/internal/triage"
)

type Handler struct {
	Service    *triage.Service
	Classifier classify.Classifier
	Validator  *validator.Validate
	Logger     zerolog.Logger
	AdminKey   string
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Triage an incoming message
// @Description Classify a condominium message and run intent sub-flows
// @Tags triage
// @Accept json
// @Produce json
// @Param request body models.TriageRequest true "Message with channel and sender metadata"
// @Success 200 {object} models.TriageOutput
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/triage [post]
func (h *Handler) Triage(c *gin.Context) {
	var req models.TriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields or invalid source", err.Error())
		return
	}

	result, err := h.Service.Analyze(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, triage.ErrSchemaValidation) {
			writeError(c, http.StatusInternalServerError, "VALIDATION_FAILED", "Triage result failed schema validation", err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Triage processing failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary List regulation articles
// @Description Read-only view of the embedded regulation corpus
// @Tags regulations
// @Produce json
// @Success 200 {array} corpus.RegulationArticle
// @Router /api/regulations [get]
func (h *Handler) RegulationsList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regulations": corpus.All()})
}

// @Summary Raw classifier output
// @Description Runs only the base classification cascade, without sub-flows
// @Tags debug
// @Produce json
// @Param message query string true "Message text"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/debug/classify [get]
func (h *Handler) DebugClassify(c *gin.Context) {
	message := c.Query("message")
	if message == "" {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "message is required", nil)
		return
	}

	result, err := h.Classifier.Classify(c.Request.Context(), message)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Classification failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"priority":        result.Priority,
		"category":        result.Category,
		"confidence":      result.Confidence,
		"action_required": result.ActionRequired,
		"rationale":       result.Rationale,
	})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

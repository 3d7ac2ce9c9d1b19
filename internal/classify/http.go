package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/condoguard/backend/internal/models"
)

// HTTPClassifier delegates classification to an external model service. It is
// the model-backed counterpart of RuleClassifier and is selected when
// CLASSIFIER_URL is configured.
type HTTPClassifier struct {
	BaseURL string
	Client  *http.Client
}

type requestBody struct {
	Message string `json:"message"`
}

type responseBody struct {
	Priority          string  `json:"priority"`
	Category          string  `json:"category"`
	Confidence        float64 `json:"confidence"`
	ActionRequired    bool    `json:"action_required"`
	Summary           string  `json:"summary"`
	SuggestedResponse string  `json:"suggested_response"`
	Rationale         string  `json:"rationale"`
}

func (h HTTPClassifier) Classify(ctx context.Context, message string) (Result, error) {
	if h.Client == nil {
		h.Client = &http.Client{Timeout: 15 * time.Second}
	}

	b, _ := json.Marshal(requestBody{Message: message})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/classify", bytes.NewBuffer(b))
	if err != nil {
		return Result{}, err
	}

	req.Header.Set("Content-Type", "application/json")
	resp, err := h.Client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, errors.New("classifier service error")
	}

	var r responseBody
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Result{}, err
	}

	return Result{
		Priority:          models.Priority(r.Priority),
		Category:          models.Category(r.Category),
		Confidence:        r.Confidence,
		ActionRequired:    r.ActionRequired,
		Summary:           r.Summary,
		SuggestedResponse: r.SuggestedResponse,
		Rationale:         r.Rationale,
	}, nil
}

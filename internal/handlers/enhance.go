package handlers

import (
	"errors"
	"net/http"

	"promptforge/internal/contextutil"
	"promptforge/internal/enhancer"
	"promptforge/internal/llm"
)

// EnhanceHandler handles HTTP requests for prompt enhancement.
type EnhanceHandler struct {
	service enhancer.Service
}

// NewEnhanceHandler creates a new EnhanceHandler.
func NewEnhanceHandler(service enhancer.Service) *EnhanceHandler {
	return &EnhanceHandler{service: service}
}

// EnhanceRequest represents the HTTP request payload for enhancement.
type EnhanceRequest struct {
	Target string `json:"target" validate:"required"`
	Prompt string `json:"prompt" validate:"required"`
}

// EnhanceResponse represents the HTTP response payload for enhancement.
type EnhanceResponse struct {
	EnhancedPrompt string `json:"enhancedPrompt"`
}

// ServeHTTP handles POST /api/enhance.
func (h *EnhanceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req EnhanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	enhanced, err := h.service.Enhance(ctx, req.Target, req.Prompt)
	if err != nil {
		logger.ErrorContext(ctx, "enhancement failed", "error", err)

		var validationErr *enhancer.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusBadRequest, "Validation error: "+validationErr.Error())
			return
		}

		var apiErr *llm.APIError
		if errors.As(err, &apiErr) {
			writeError(w, http.StatusBadGateway, "Model API error")
			return
		}
		if errors.Is(err, enhancer.ErrExternalService) {
			writeError(w, http.StatusBadGateway, "External service error")
			return
		}

		writeError(w, http.StatusInternalServerError, "Failed to enhance prompt")
		return
	}

	writeJSON(w, http.StatusOK, EnhanceResponse{EnhancedPrompt: enhanced})
}

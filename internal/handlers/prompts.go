package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"promptforge/internal/storage"
)

// PromptsHandler handles HTTP requests for saved prompt operations.
type PromptsHandler struct {
	prompts *storage.SavedPromptRepo
}

// NewPromptsHandler creates a new PromptsHandler.
func NewPromptsHandler(prompts *storage.SavedPromptRepo) *PromptsHandler {
	return &PromptsHandler{prompts: prompts}
}

// List handles GET /api/prompts, most recent first.
func (h *PromptsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.prompts.GetAll(ctx)
	if err != nil {
		handleStorageError(w, ctx, err, "Failed to list prompts")
		return
	}
	if result == nil {
		result = []storage.SavedPrompt{}
	}
	writeJSON(w, http.StatusOK, result)
}

// Save handles POST /api/prompts.
func (h *PromptsHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req storage.SavePromptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	prompt, err := h.prompts.Save(ctx, req)
	if err != nil {
		handleStorageError(w, ctx, err, "Failed to save prompt")
		return
	}
	writeJSON(w, http.StatusCreated, prompt)
}

// Get handles GET /api/prompts/{id}.
func (h *PromptsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	prompt, err := h.prompts.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleStorageError(w, ctx, err, "Failed to get prompt")
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

// Update handles PUT /api/prompts/{id}.
func (h *PromptsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req storage.UpdatePromptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	prompt, err := h.prompts.Update(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		handleStorageError(w, ctx, err, "Failed to update prompt")
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

// Delete handles DELETE /api/prompts/{id}.
func (h *PromptsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.prompts.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		handleStorageError(w, ctx, err, "Failed to delete prompt")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MovePromptRequest names the collection a prompt moves to.
type MovePromptRequest struct {
	CollectionID string `json:"collectionId" validate:"required"`
}

// Move handles POST /api/prompts/{id}/move.
func (h *PromptsHandler) Move(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MovePromptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	prompt, err := h.prompts.Move(ctx, chi.URLParam(r, "id"), req.CollectionID)
	if err != nil {
		handleStorageError(w, ctx, err, "Failed to move prompt")
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

// BulkDeleteRequest lists the prompts to delete. An empty list is accepted
// and does nothing.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDelete handles POST /api/prompts/bulk-delete.
func (h *PromptsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BulkDeleteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.prompts.BulkDelete(ctx, req.IDs); err != nil {
		handleStorageError(w, ctx, err, "Failed to delete prompts")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkMoveRequest lists the prompts to move and their destination. An empty
// list is accepted and does nothing.
type BulkMoveRequest struct {
	IDs          []string `json:"ids"`
	CollectionID string   `json:"collectionId" validate:"required"`
}

// BulkMove handles POST /api/prompts/bulk-move.
func (h *PromptsHandler) BulkMove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BulkMoveRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.prompts.BulkMove(ctx, req.IDs, req.CollectionID); err != nil {
		handleStorageError(w, ctx, err, "Failed to move prompts")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

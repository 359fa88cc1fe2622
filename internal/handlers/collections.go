package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"promptforge/internal/storage"
)

// CollectionsHandler handles HTTP requests for collection operations.
type CollectionsHandler struct {
	collections *storage.CollectionRepo
	prompts     *storage.SavedPromptRepo
}

// NewCollectionsHandler creates a new CollectionsHandler.
func NewCollectionsHandler(collections *storage.CollectionRepo, prompts *storage.SavedPromptRepo) *CollectionsHandler {
	return &CollectionsHandler{collections: collections, prompts: prompts}
}

// List handles GET /api/collections. With ?counts=true each collection is
// annotated with its prompt count.
func (h *CollectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.URL.Query().Get("counts") == "true" {
		result, err := h.collections.GetAllWithCounts(ctx)
		if err != nil {
			handleStorageError(w, ctx, err, "Failed to list collections")
			return
		}
		if result == nil {
			result = []storage.CollectionWithCount{}
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	result, err := h.collections.GetAll(ctx)
	if err != nil {
		handleStorageError(w, ctx, err, "Failed to list collections")
		return
	}
	if result == nil {
		result = []storage.Collection{}
	}
	writeJSON(w, http.StatusOK, result)
}

// Create handles POST /api/collections.
func (h *CollectionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req storage.CreateCollectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	collection, err := h.collections.Create(ctx, req)
	if err != nil {
		handleStorageError(w, ctx, err, "Failed to create collection")
		return
	}
	writeJSON(w, http.StatusCreated, collection)
}

// Get handles GET /api/collections/{id}.
func (h *CollectionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	collection, err := h.collections.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleStorageError(w, ctx, err, "Failed to get collection")
		return
	}
	writeJSON(w, http.StatusOK, collection)
}

// Update handles PUT /api/collections/{id}.
func (h *CollectionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req storage.UpdateCollectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	collection, err := h.collections.Update(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		handleStorageError(w, ctx, err, "Failed to update collection")
		return
	}
	writeJSON(w, http.StatusOK, collection)
}

// Delete handles DELETE /api/collections/{id}. Deleting a collection also
// deletes every prompt saved in it.
func (h *CollectionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.collections.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		handleStorageError(w, ctx, err, "Failed to delete collection")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DefaultCollectionRequest identifies the target platform whose default
// collection is wanted.
type DefaultCollectionRequest struct {
	Target string `json:"target" validate:"required,max=50"`
}

// Default handles POST /api/collections/default: the quick-save path. It
// returns the default collection for the target, creating it on first use.
func (h *CollectionsHandler) Default(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req DefaultCollectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	collection, err := h.collections.GetOrCreateDefault(ctx, req.Target)
	if err != nil {
		handleStorageError(w, ctx, err, "Failed to resolve default collection")
		return
	}
	writeJSON(w, http.StatusOK, collection)
}

// Prompts handles GET /api/collections/{id}/prompts. An unknown collection
// id yields an empty list.
func (h *CollectionsHandler) Prompts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.prompts.GetByCollection(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleStorageError(w, ctx, err, "Failed to list prompts")
		return
	}
	if result == nil {
		result = []storage.SavedPrompt{}
	}
	writeJSON(w, http.StatusOK, result)
}

package storage

import (
	"context"
	"database/sql"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
)

var savedPromptColumns = []string{
	"id", "original_prompt", "enhanced_prompt", "target", "collection_id", "notes", "created_at", "updated_at",
}

var savedPromptIndexes = map[string]string{
	"collection_id": "collection_id",
	"target":        "target",
	"created_at":    "created_at",
}

// SavedPromptRepo provides methods for saved prompt operations, built on the
// generic Store primitive.
type SavedPromptRepo struct {
	store *Store[SavedPrompt]
	now   func() time.Time
}

// NewSavedPromptRepo creates a new SavedPromptRepo.
func NewSavedPromptRepo(db *sql.DB) *SavedPromptRepo {
	return &SavedPromptRepo{
		store: NewStore(db, "saved_prompts", savedPromptColumns, savedPromptIndexes,
			bindSavedPrompt, scanSavedPrompt),
		now: time.Now,
	}
}

func bindSavedPrompt(p SavedPrompt) []any {
	return []any{
		p.ID, p.OriginalPrompt, p.EnhancedPrompt, p.Target, p.CollectionID,
		p.Notes, p.CreatedAt.UnixMilli(), p.UpdatedAt.UnixMilli(),
	}
}

func scanSavedPrompt(row RowScanner) (SavedPrompt, error) {
	var p SavedPrompt
	var createdMs, updatedMs int64
	err := row.Scan(&p.ID, &p.OriginalPrompt, &p.EnhancedPrompt, &p.Target,
		&p.CollectionID, &p.Notes, &createdMs, &updatedMs)
	if err != nil {
		return SavedPrompt{}, err
	}
	p.CreatedAt = time.UnixMilli(createdMs)
	p.UpdatedAt = time.UnixMilli(updatedMs)
	return p, nil
}

// Save assigns an id and timestamps and persists the new prompt. The
// collection id is trusted to reference an existing collection at call time;
// the store does not enforce the reference afterwards.
func (r *SavedPromptRepo) Save(ctx context.Context, req SavePromptRequest) (*SavedPrompt, error) {
	now := time.UnixMilli(r.now().UnixMilli())
	prompt := SavedPrompt{
		ID:             uuid.New().String(),
		OriginalPrompt: req.OriginalPrompt,
		EnhancedPrompt: req.EnhancedPrompt,
		Target:         req.Target,
		CollectionID:   req.CollectionID,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := r.store.Add(ctx, prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

// GetAll returns all saved prompts, most recent first.
func (r *SavedPromptRepo) GetAll(ctx context.Context) ([]SavedPrompt, error) {
	return r.store.List(ctx, "created_at", ListOptions{Desc: true})
}

// GetByCollection returns the prompts in one collection, most recent first.
// An unknown collection id yields an empty result, not an error.
func (r *SavedPromptRepo) GetByCollection(ctx context.Context, collectionID string) ([]SavedPrompt, error) {
	prompts, err := r.store.List(ctx, "collection_id", ListOptions{Equals: collectionID})
	if err != nil {
		return nil, err
	}
	// The collection_id scan yields insertion order; flip to most recent
	// first, with the reverse keeping ties in newest-insert-first order.
	slices.Reverse(prompts)
	sort.SliceStable(prompts, func(i, j int) bool {
		return prompts[i].CreatedAt.After(prompts[j].CreatedAt)
	})
	return prompts, nil
}

// GetByID returns the prompt with the given id, or ErrNotFound.
func (r *SavedPromptRepo) GetByID(ctx context.Context, id string) (*SavedPrompt, error) {
	prompt, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

// Update merges the provided fields into an existing prompt and bumps its
// updated timestamp. Returns ErrNotFound if the id does not exist.
func (r *SavedPromptRepo) Update(ctx context.Context, id string, req UpdatePromptRequest) (*SavedPrompt, error) {
	prompt, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.OriginalPrompt != nil {
		prompt.OriginalPrompt = *req.OriginalPrompt
	}
	if req.EnhancedPrompt != nil {
		prompt.EnhancedPrompt = *req.EnhancedPrompt
	}
	if req.Target != nil {
		prompt.Target = *req.Target
	}
	if req.CollectionID != nil {
		prompt.CollectionID = *req.CollectionID
	}
	if req.Notes != nil {
		prompt.Notes = *req.Notes
	}
	prompt.UpdatedAt = time.UnixMilli(r.now().UnixMilli())

	if err := r.store.Put(ctx, prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

// Delete removes one saved prompt.
func (r *SavedPromptRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

// Move reassigns a prompt to another collection.
func (r *SavedPromptRepo) Move(ctx context.Context, id, newCollectionID string) (*SavedPrompt, error) {
	return r.Update(ctx, id, UpdatePromptRequest{CollectionID: &newCollectionID})
}

// BulkDelete deletes each listed prompt in turn. An empty list is a no-op.
// Each delete is independently atomic; there is no all-or-nothing guarantee
// across the list.
func (r *SavedPromptRepo) BulkDelete(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := r.store.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// BulkMove reassigns each listed prompt to the new collection. An empty
// list is a no-op.
func (r *SavedPromptRepo) BulkMove(ctx context.Context, ids []string, newCollectionID string) error {
	for _, id := range ids {
		if _, err := r.Move(ctx, id, newCollectionID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteByCollection removes every prompt owned by the collection. Used by
// the collection cascade.
func (r *SavedPromptRepo) DeleteByCollection(ctx context.Context, collectionID string) error {
	prompts, err := r.store.List(ctx, "collection_id", ListOptions{Equals: collectionID})
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(prompts))
	for _, p := range prompts {
		ids = append(ids, p.ID)
	}
	return r.BulkDelete(ctx, ids)
}

// CountByCollection returns the number of prompts referencing the
// collection via the collection_id index.
func (r *SavedPromptRepo) CountByCollection(ctx context.Context, collectionID string) (int64, error) {
	return r.store.Count(ctx, "collection_id", collectionID)
}

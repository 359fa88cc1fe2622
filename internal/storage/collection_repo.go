package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var collectionColumns = []string{
	"id", "name", "color", "description", "is_default", "sort_order", "created_at", "updated_at",
}

var collectionIndexes = map[string]string{
	"sort_order": "sort_order",
	"is_default": "is_default",
	"created_at": "created_at",
}

// CollectionRepo provides methods for collection operations. It is built on
// the generic Store primitive and holds the SavedPromptRepo for cascading
// deletes and prompt counts.
type CollectionRepo struct {
	store   *Store[Collection]
	prompts *SavedPromptRepo
	now     func() time.Time
}

// NewCollectionRepo creates a new CollectionRepo.
func NewCollectionRepo(db *sql.DB, prompts *SavedPromptRepo) *CollectionRepo {
	return &CollectionRepo{
		store: NewStore(db, "collections", collectionColumns, collectionIndexes,
			bindCollection, scanCollection),
		prompts: prompts,
		now:     time.Now,
	}
}

func bindCollection(c Collection) []any {
	isDefault := 0
	if c.IsDefault {
		isDefault = 1
	}
	return []any{
		c.ID, c.Name, c.Color, c.Description, isDefault, c.SortOrder,
		c.CreatedAt.UnixMilli(), c.UpdatedAt.UnixMilli(),
	}
}

func scanCollection(row RowScanner) (Collection, error) {
	var c Collection
	var isDefault int64
	var createdMs, updatedMs int64
	err := row.Scan(&c.ID, &c.Name, &c.Color, &c.Description, &isDefault,
		&c.SortOrder, &createdMs, &updatedMs)
	if err != nil {
		return Collection{}, err
	}
	c.IsDefault = isDefault != 0
	c.CreatedAt = time.UnixMilli(createdMs)
	c.UpdatedAt = time.UnixMilli(updatedMs)
	return c, nil
}

// Create assigns an id, timestamps, the default color when none is given,
// and the next sort order, then persists the new collection.
func (r *CollectionRepo) Create(ctx context.Context, req CreateCollectionRequest) (*Collection, error) {
	sortOrder, err := r.nextSortOrder(ctx)
	if err != nil {
		return nil, err
	}

	color := req.Color
	if color == "" {
		color = DefaultCollectionColor
	}

	now := time.UnixMilli(r.now().UnixMilli())
	collection := Collection{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Color:       color,
		Description: req.Description,
		IsDefault:   req.IsDefault,
		SortOrder:   sortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.store.Add(ctx, collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// nextSortOrder returns max existing sort order + 1, or 0 when the table is
// empty. Sort orders are never reused, so iteration by sort order yields
// stable creation order.
func (r *CollectionRepo) nextSortOrder(ctx context.Context) (int64, error) {
	existing, err := r.store.List(ctx, "sort_order", ListOptions{Desc: true})
	if err != nil {
		return 0, fmt.Errorf("failed to determine next sort order: %w", err)
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return existing[0].SortOrder + 1, nil
}

// GetAll returns all collections ordered ascending by sort order.
func (r *CollectionRepo) GetAll(ctx context.Context) ([]Collection, error) {
	return r.store.List(ctx, "sort_order", ListOptions{})
}

// GetAllWithCounts returns all collections in sort order, each annotated
// with the number of saved prompts referencing it. Collections with no
// prompts report a count of 0.
func (r *CollectionRepo) GetAllWithCounts(ctx context.Context) ([]CollectionWithCount, error) {
	collections, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]CollectionWithCount, 0, len(collections))
	for _, c := range collections {
		count, err := r.prompts.CountByCollection(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, CollectionWithCount{Collection: c, PromptCount: count})
	}
	return result, nil
}

// GetByID returns the collection with the given id, or ErrNotFound.
func (r *CollectionRepo) GetByID(ctx context.Context, id string) (*Collection, error) {
	collection, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// Update merges the provided fields into an existing collection and bumps
// its updated timestamp. Returns ErrNotFound if the id does not exist.
func (r *CollectionRepo) Update(ctx context.Context, id string, req UpdateCollectionRequest) (*Collection, error) {
	collection, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		collection.Name = *req.Name
	}
	if req.Color != nil {
		collection.Color = *req.Color
	}
	if req.Description != nil {
		collection.Description = *req.Description
	}
	collection.UpdatedAt = time.UnixMilli(r.now().UnixMilli())

	if err := r.store.Put(ctx, collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// Delete removes the collection and cascades by deleting every saved prompt
// that references it. The cascade is a sequence of independent single-record
// deletes; it is the only referential-integrity mechanism for saved prompts.
func (r *CollectionRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	return r.prompts.DeleteByCollection(ctx, id)
}

// GetOrCreateDefault returns the default collection backing quick-save for
// the given target, creating it on first use. The lookup is a linear scan
// over all collections; collection counts are small enough that an index is
// not worth maintaining.
func (r *CollectionRepo) GetOrCreateDefault(ctx context.Context, targetName string) (*Collection, error) {
	collections, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range collections {
		if c.IsDefault && c.Name == targetName {
			return &c, nil
		}
	}

	return r.Create(ctx, CreateCollectionRequest{
		Name:      targetName,
		IsDefault: true,
	})
}

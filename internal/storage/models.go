package storage

import "time"

// DefaultCollectionColor is applied when a collection is created without an
// explicit color.
const DefaultCollectionColor = "#6366f1"

// Collection represents a user-named grouping of saved prompts.
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Description string    `json:"description,omitempty"`
	IsDefault   bool      `json:"isDefault"`   // auto-created to back quick-save for one target
	SortOrder   int64     `json:"sortOrder"`   // assigned at creation, strictly increasing, never reused
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CollectionWithCount is a Collection annotated with the number of saved
// prompts that reference it.
type CollectionWithCount struct {
	Collection
	PromptCount int64 `json:"promptCount"`
}

// SavedPrompt represents a persisted (original, enhanced) prompt pair owned
// by exactly one collection.
type SavedPrompt struct {
	ID             string    `json:"id"`
	OriginalPrompt string    `json:"originalPrompt"`
	EnhancedPrompt string    `json:"enhancedPrompt"`
	Target         string    `json:"target"` // platform label at time of save
	CollectionID   string    `json:"collectionId"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateCollectionRequest carries the caller-supplied fields for a new
// collection. Name uniqueness is the caller's responsibility, not the
// store's.
type CreateCollectionRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Color       string `json:"color"`
	Description string `json:"description"`
	IsDefault   bool   `json:"isDefault"`
}

// UpdateCollectionRequest carries a partial update; nil fields are left
// unchanged.
type UpdateCollectionRequest struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
}

// SavePromptRequest carries the caller-supplied fields for a new saved
// prompt. CollectionID is trusted to reference an existing collection at
// call time.
type SavePromptRequest struct {
	OriginalPrompt string `json:"originalPrompt" validate:"required"`
	EnhancedPrompt string `json:"enhancedPrompt" validate:"required"`
	Target         string `json:"target" validate:"required,max=50"`
	CollectionID   string `json:"collectionId" validate:"required"`
	Notes          string `json:"notes"`
}

// UpdatePromptRequest carries a partial update; nil fields are left
// unchanged.
type UpdatePromptRequest struct {
	OriginalPrompt *string `json:"originalPrompt"`
	EnhancedPrompt *string `json:"enhancedPrompt"`
	Target         *string `json:"target"`
	CollectionID   *string `json:"collectionId"`
	Notes          *string `json:"notes"`
}

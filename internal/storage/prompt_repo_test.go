package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

// advanceClock gives the repo a clock that moves one millisecond per call,
// so created_at values never tie regardless of how fast the test runs.
func advanceClock(repo *SavedPromptRepo) {
	base := time.Now()
	calls := 0
	repo.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Millisecond)
	}
}

func TestSavedPromptRepo_Save(t *testing.T) {
	_, prompts := testRepos(t)
	ctx := context.Background()

	saved, err := prompts.Save(ctx, SavePromptRequest{
		OriginalPrompt: "write a post",
		EnhancedPrompt: "Write a compelling LinkedIn post about...",
		Target:         "LinkedIn",
		CollectionID:   "col-1",
		Notes:          "first draft",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if saved.ID == "" {
		t.Error("Save() should assign an id")
	}
	if saved.CreatedAt.IsZero() || !saved.CreatedAt.Equal(saved.UpdatedAt) {
		t.Error("Save() should set createdAt == updatedAt")
	}

	got, err := prompts.GetByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if *got != *saved {
		t.Errorf("GetByID() = %+v, want %+v", got, saved)
	}
}

func TestSavedPromptRepo_GetAll_MostRecentFirst(t *testing.T) {
	_, prompts := testRepos(t)
	advanceClock(prompts)
	ctx := context.Background()

	originals := []string{"first", "second", "third"}
	for _, original := range originals {
		if _, err := prompts.Save(ctx, SavePromptRequest{
			OriginalPrompt: original, EnhancedPrompt: "e", Target: "General", CollectionID: "col-1",
		}); err != nil {
			t.Fatalf("Save(%s) error = %v", original, err)
		}
	}

	all, err := prompts.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("GetAll() returned %d prompts, want 3", len(all))
	}

	want := []string{"third", "second", "first"}
	for i, prompt := range all {
		if prompt.OriginalPrompt != want[i] {
			t.Errorf("GetAll()[%d] = %q, want %q", i, prompt.OriginalPrompt, want[i])
		}
	}
}

func TestSavedPromptRepo_GetByCollection(t *testing.T) {
	_, prompts := testRepos(t)
	advanceClock(prompts)
	ctx := context.Background()

	for _, save := range []struct{ original, collection string }{
		{"a1", "col-a"},
		{"b1", "col-b"},
		{"a2", "col-a"},
	} {
		if _, err := prompts.Save(ctx, SavePromptRequest{
			OriginalPrompt: save.original, EnhancedPrompt: "e", Target: "General", CollectionID: save.collection,
		}); err != nil {
			t.Fatalf("Save(%s) error = %v", save.original, err)
		}
	}

	got, err := prompts.GetByCollection(ctx, "col-a")
	if err != nil {
		t.Fatalf("GetByCollection() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetByCollection() returned %d prompts, want 2", len(got))
	}
	if got[0].OriginalPrompt != "a2" || got[1].OriginalPrompt != "a1" {
		t.Errorf("GetByCollection() order = [%q, %q], want [a2, a1]",
			got[0].OriginalPrompt, got[1].OriginalPrompt)
	}

	// Unknown collection ids yield an empty result, not an error.
	empty, err := prompts.GetByCollection(ctx, "no-such-collection")
	if err != nil {
		t.Fatalf("GetByCollection() unknown id error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("GetByCollection() unknown id returned %d prompts, want 0", len(empty))
	}
}

func TestSavedPromptRepo_Update(t *testing.T) {
	_, prompts := testRepos(t)
	ctx := context.Background()

	saved, err := prompts.Save(ctx, SavePromptRequest{
		OriginalPrompt: "o", EnhancedPrompt: "e", Target: "General", CollectionID: "col-1",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	prompts.now = func() time.Time { return saved.CreatedAt.Add(time.Minute) }

	notes := "tweaked"
	updated, err := prompts.Update(ctx, saved.ID, UpdatePromptRequest{Notes: &notes})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Notes != notes {
		t.Errorf("Update() notes = %q, want %q", updated.Notes, notes)
	}
	if updated.OriginalPrompt != "o" || updated.Target != "General" {
		t.Error("Update() should keep unset fields")
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Error("Update() should bump updatedAt past createdAt")
	}

	if _, err := prompts.Update(ctx, "missing", UpdatePromptRequest{Notes: &notes}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() missing error = %v, want ErrNotFound", err)
	}
}

func TestSavedPromptRepo_Move(t *testing.T) {
	_, prompts := testRepos(t)
	ctx := context.Background()

	saved, err := prompts.Save(ctx, SavePromptRequest{
		OriginalPrompt: "o", EnhancedPrompt: "e", Target: "General", CollectionID: "col-a",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	moved, err := prompts.Move(ctx, saved.ID, "col-b")
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if moved.CollectionID != "col-b" {
		t.Errorf("Move() collectionId = %q, want %q", moved.CollectionID, "col-b")
	}

	inB, err := prompts.GetByCollection(ctx, "col-b")
	if err != nil {
		t.Fatalf("GetByCollection() error = %v", err)
	}
	if len(inB) != 1 || inB[0].ID != saved.ID {
		t.Error("Move() should make the prompt visible under the new collection")
	}
}

func TestSavedPromptRepo_BulkDelete(t *testing.T) {
	_, prompts := testRepos(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		saved, err := prompts.Save(ctx, SavePromptRequest{
			OriginalPrompt: "o", EnhancedPrompt: "e", Target: "General", CollectionID: "col-1",
		})
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		ids = append(ids, saved.ID)
	}

	// An empty list is a no-op that succeeds.
	if err := prompts.BulkDelete(ctx, nil); err != nil {
		t.Errorf("BulkDelete(nil) error = %v", err)
	}
	all, err := prompts.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("BulkDelete(nil) should not delete anything, %d prompts left", len(all))
	}

	if err := prompts.BulkDelete(ctx, ids[:2]); err != nil {
		t.Fatalf("BulkDelete() error = %v", err)
	}
	all, err = prompts.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 1 || all[0].ID != ids[2] {
		t.Errorf("BulkDelete() left %d prompts, want only the last one", len(all))
	}
}

func TestSavedPromptRepo_BulkMove(t *testing.T) {
	_, prompts := testRepos(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 2; i++ {
		saved, err := prompts.Save(ctx, SavePromptRequest{
			OriginalPrompt: "o", EnhancedPrompt: "e", Target: "General", CollectionID: "col-a",
		})
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		ids = append(ids, saved.ID)
	}

	// An empty list is a no-op that succeeds.
	if err := prompts.BulkMove(ctx, nil, "col-b"); err != nil {
		t.Errorf("BulkMove(nil) error = %v", err)
	}
	inA, err := prompts.GetByCollection(ctx, "col-a")
	if err != nil {
		t.Fatalf("GetByCollection() error = %v", err)
	}
	if len(inA) != 2 {
		t.Errorf("BulkMove(nil) should not move anything, %d prompts in col-a", len(inA))
	}

	if err := prompts.BulkMove(ctx, ids, "col-b"); err != nil {
		t.Fatalf("BulkMove() error = %v", err)
	}
	inB, err := prompts.GetByCollection(ctx, "col-b")
	if err != nil {
		t.Fatalf("GetByCollection() error = %v", err)
	}
	if len(inB) != 2 {
		t.Errorf("BulkMove() moved %d prompts to col-b, want 2", len(inB))
	}
}

func TestSavedPromptRepo_CountByCollection(t *testing.T) {
	_, prompts := testRepos(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := prompts.Save(ctx, SavePromptRequest{
			OriginalPrompt: "o", EnhancedPrompt: "e", Target: "General", CollectionID: "col-a",
		}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	count, err := prompts.CountByCollection(ctx, "col-a")
	if err != nil {
		t.Fatalf("CountByCollection() error = %v", err)
	}
	if count != 3 {
		t.Errorf("CountByCollection() = %d, want 3", count)
	}

	count, err = prompts.CountByCollection(ctx, "col-empty")
	if err != nil {
		t.Fatalf("CountByCollection() empty error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountByCollection() empty = %d, want 0", count)
	}
}

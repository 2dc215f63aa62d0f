package consumers

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"receptbox/app"
	"receptbox/pkg/events"
)

// countingRepo implements only the method this handler touches; the embedded
// interface panics on anything else.
type countingRepo struct {
	app.Repository
	counts map[string]int
}

func (r *countingRepo) UpdateCommentCount(ctx context.Context, recipeID string, delta int) error {
	if _, ok := r.counts[recipeID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.counts[recipeID] += delta
	return nil
}

func TestHandleEvent_AdjustsCountOnCreateAndDelete(t *testing.T) {
	repo := &countingRepo{counts: map[string]int{"abc123": 0}}
	h := NewCommentEventHandler(repo, zap.NewNop())

	created := events.NewEvent(events.RecipeCommentCreatedEvent, events.EventVersionV1,
		events.RecipeCommentCreatedPayload{ID: "c1", RecipeID: "abc123", Text: "hi", Timestamp: time.Now()},
		events.Headers{})
	if err := h.HandleEvent(context.Background(), created); err != nil {
		t.Fatalf("created event: %v", err)
	}
	if repo.counts["abc123"] != 1 {
		t.Fatalf("count = %d, want 1", repo.counts["abc123"])
	}

	deleted := events.NewEvent(events.RecipeCommentDeletedEvent, events.EventVersionV1,
		events.RecipeCommentDeletedPayload{ID: "c1", RecipeID: "abc123", DeletedAt: time.Now()},
		events.Headers{})
	if err := h.HandleEvent(context.Background(), deleted); err != nil {
		t.Fatalf("deleted event: %v", err)
	}
	if repo.counts["abc123"] != 0 {
		t.Fatalf("count = %d, want 0", repo.counts["abc123"])
	}
}

func TestHandleEvent_UnknownRecipeIsNotRedelivered(t *testing.T) {
	repo := &countingRepo{counts: map[string]int{}}
	h := NewCommentEventHandler(repo, zap.NewNop())

	event := events.NewEvent(events.RecipeCommentCreatedEvent, events.EventVersionV1,
		events.RecipeCommentCreatedPayload{ID: "c1", RecipeID: "gone", Text: "hi", Timestamp: time.Now()},
		events.Headers{})
	if err := h.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("expected swallow, got %v", err)
	}
}

func TestHandleEvent_MalformedPayloadFails(t *testing.T) {
	repo := &countingRepo{counts: map[string]int{}}
	h := NewCommentEventHandler(repo, zap.NewNop())

	event := events.NewEvent(events.RecipeCommentCreatedEvent, events.EventVersionV1,
		map[string]any{"unexpected": true}, events.Headers{})
	if err := h.HandleEvent(context.Background(), event); err == nil {
		t.Fatal("expected error for payload without recipeId")
	}
}

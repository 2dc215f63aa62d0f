package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"receptbox/app"
	"receptbox/pkg/events"
)

// CommentEventHandler keeps the denormalized comment_count on recipe
// documents in step with comment events.
type CommentEventHandler struct {
	repository app.Repository
	logger     *zap.Logger
}

func NewCommentEventHandler(repository app.Repository, logger *zap.Logger) *CommentEventHandler {
	return &CommentEventHandler{
		repository: repository,
		logger:     logger,
	}
}

func (h *CommentEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	zap.L().Info("Comment event received",
		zap.String("event", event.Event),
		zap.String("version", event.Version),
		zap.String("traceId", event.TraceID),
	)

	switch event.Event {
	case events.RecipeCommentCreatedEvent:
		return h.adjustCount(ctx, event, 1)
	case events.RecipeCommentDeletedEvent:
		return h.adjustCount(ctx, event, -1)
	default:
		zap.L().Warn("Unknown comment event type", zap.String("event", event.Event))
		return nil
	}
}

func (h *CommentEventHandler) adjustCount(ctx context.Context, event *events.Event, delta int) error {
	recipeID, err := recipeIDFromPayload(event.Payload)
	if err != nil {
		return err
	}

	if err := h.repository.UpdateCommentCount(ctx, recipeID, delta); err != nil {
		// The recipe may be gone from a test database reset; not worth a
		// redelivery loop.
		if errors.Is(err, mongo.ErrNoDocuments) {
			zap.L().Warn("Comment event for unknown recipe",
				zap.String("recipeId", recipeID),
				zap.String("event", event.Event),
			)
			return nil
		}
		return fmt.Errorf("failed to update comment count: %w", err)
	}

	zap.L().Info("Comment count updated",
		zap.String("recipeId", recipeID),
		zap.Int("delta", delta),
	)
	return nil
}

func recipeIDFromPayload(payload interface{}) (string, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("malformed payload - marshal failed: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(payloadBytes, &fields); err != nil {
		return "", fmt.Errorf("malformed payload - unmarshal failed: %w", err)
	}

	recipeID, _ := fields["recipeId"].(string)
	if recipeID == "" {
		return "", fmt.Errorf("malformed payload - missing recipeId")
	}

	return recipeID, nil
}

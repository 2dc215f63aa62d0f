package app

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"receptbox/pkg/events"
	"receptbox/pkg/httperror"
)

type DeleteCommentHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

type DeleteCommentRequest struct {
	RecipeID  string `params:"id"`
	CommentID string `params:"commentId"`
}

type DeleteCommentResponse struct {
}

func NewDeleteCommentHandler(repository Repository, eventPublisher events.Publisher) *DeleteCommentHandler {
	return &DeleteCommentHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

func (h *DeleteCommentHandler) Handle(ctx context.Context, req *DeleteCommentRequest) (*DeleteCommentResponse, error) {
	err := h.repository.DeleteComment(ctx, req.RecipeID, req.CommentID)
	if err != nil {
		// Deleting an already-gone comment is a no-op for the caller; the
		// detail view must not fail over it.
		if errors.Is(err, mongo.ErrNoDocuments) {
			zap.L().Warn("Comment already deleted",
				zap.String("recipeId", req.RecipeID),
				zap.String("commentId", req.CommentID),
			)
			return nil, httperror.NoContent("comment.destroy.success", "Comment deleted", nil)
		}

		return nil, httperror.InternalServerError("comment.destroy.failed", "Failed to delete comment", nil)
	}

	h.publishEvent(ctx, req)

	return nil, httperror.NoContent("comment.destroy.success", "Comment deleted", nil)
}

func (h *DeleteCommentHandler) publishEvent(ctx context.Context, req *DeleteCommentRequest) {
	if h.eventPublisher == nil {
		return
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
		Service:       "receptbox",
	}

	event := events.NewEvent(
		events.RecipeCommentDeletedEvent,
		events.EventVersionV1,
		events.RecipeCommentDeletedPayload{
			ID:        req.CommentID,
			RecipeID:  req.RecipeID,
			DeletedAt: time.Now().UTC(),
		},
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.RecipeExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish recipe.comment.deleted event",
			zap.String("commentId", req.CommentID),
			zap.Error(err),
		)
	}
}

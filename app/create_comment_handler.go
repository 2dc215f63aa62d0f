package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"receptbox/domain"
	"receptbox/pkg/events"
	"receptbox/pkg/httperror"
)

type CreateCommentHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewCreateCommentHandler(repository Repository, eventPublisher events.Publisher) *CreateCommentHandler {
	return &CreateCommentHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type CreateCommentRequest struct {
	RecipeID string `params:"id"`
	Text     string `json:"text"`
}

type CreateCommentResponse struct {
	Comment domain.Comment `json:"comment"`
}

func (c *CreateCommentHandler) Handle(ctx context.Context, req *CreateCommentRequest) (*CreateCommentResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, httperror.BadRequest(
			"comments.create.validation_failed",
			"Comment text must not be empty",
			nil,
		)
	}

	recipe, err := c.repository.GetRecipe(ctx, req.RecipeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, httperror.NotFound("comments.create.not_found", "Recipe not found", nil)
		}

		return nil, httperror.InternalServerError("comments.create.internal_error", "Failed to get recipe", nil)
	}

	// The timestamp is assigned here, at submission, not by the store.
	comment, err := c.repository.CreateComment(ctx, recipe.ID, text, time.Now().UTC())
	if err != nil {
		return nil, httperror.InternalServerError("comments.create.internal_error", "Failed to create comment", nil)
	}

	c.publishEvent(ctx, comment)

	return &CreateCommentResponse{
		Comment: comment,
	}, nil
}

func (c *CreateCommentHandler) publishEvent(ctx context.Context, comment domain.Comment) {
	if c.eventPublisher == nil {
		return
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
		Service:       "receptbox",
	}

	event := events.NewEvent(
		events.RecipeCommentCreatedEvent,
		events.EventVersionV1,
		events.RecipeCommentCreatedPayload{
			ID:        comment.ID,
			RecipeID:  comment.RecipeID,
			Text:      comment.Text,
			Timestamp: comment.Timestamp,
		},
		headers,
	)

	if err := c.eventPublisher.Publish(ctx, events.RecipeExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish recipe.comment.created event",
			zap.String("commentId", comment.ID),
			zap.Error(err),
		)
	}
}

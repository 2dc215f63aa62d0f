package app

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"receptbox/domain"
	"receptbox/pkg/httperror"
)

type GetCommentsHandler struct {
	repository Repository
}

func NewGetCommentsHandler(repository Repository) *GetCommentsHandler {
	return &GetCommentsHandler{
		repository: repository,
	}
}

type GetCommentsRequest struct {
	RecipeID string `params:"id"`
}

type GetCommentsResponse struct {
	Comments []domain.Comment `json:"comments"`
	Total    int              `json:"total"`
}

func (h *GetCommentsHandler) Handle(ctx context.Context, req *GetCommentsRequest) (*GetCommentsResponse, error) {
	if _, err := h.repository.GetRecipe(ctx, req.RecipeID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, httperror.NotFound("comments.index.not_found", "Recipe not found", nil)
		}

		return nil, httperror.InternalServerError("comments.index.internal_error", "Failed to get recipe", nil)
	}

	comments, err := h.repository.GetCommentsByRecipeID(ctx, req.RecipeID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"comments.index.failed",
			"Comments repository failed to retrieve comments",
			nil,
		)
	}

	return &GetCommentsResponse{
		Comments: comments,
		Total:    len(comments),
	}, nil
}

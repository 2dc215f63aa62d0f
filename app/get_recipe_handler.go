package app

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"receptbox/domain"
	"receptbox/pkg/httperror"
)

type GetRecipeHandler struct {
	repository Repository
}

func NewGetRecipeHandler(repository Repository) *GetRecipeHandler {
	return &GetRecipeHandler{
		repository: repository,
	}
}

type GetRecipeRequest struct {
	RecipeID string `params:"id"`
}

type GetRecipeResponse struct {
	Recipe   domain.Recipe    `json:"recipe"`
	Comments []domain.Comment `json:"comments"`
}

func (h GetRecipeHandler) Handle(ctx context.Context, req *GetRecipeRequest) (*GetRecipeResponse, error) {
	recipe, err := h.repository.GetRecipe(ctx, req.RecipeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, httperror.NotFound(
				"recipe.not_found",
				"Recipe not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"recipe.fetch_failed",
			"Failed to retrieve recipe",
			nil,
		)
	}

	// Comments come back newest first; the repository owns the ordering.
	comments, err := h.repository.GetCommentsByRecipeID(ctx, req.RecipeID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"recipe.comments.fetch_failed",
			"Failed to retrieve comments",
			nil,
		)
	}

	return &GetRecipeResponse{
		Recipe:   recipe,
		Comments: comments,
	}, nil
}

package app

import (
	"context"

	"receptbox/app/catalog"
	"receptbox/domain"
	"receptbox/pkg/httperror"
)

type GetRecipesHandler struct {
	repository Repository
}

func NewGetRecipesHandler(repository Repository) *GetRecipesHandler {
	return &GetRecipesHandler{
		repository: repository,
	}
}

type GetRecipesRequest struct {
	Query string `query:"q"`
	Sort  string `query:"sort"`
}

// RecipeView is a catalog entry decorated with its display tier.
type RecipeView struct {
	domain.Recipe
	RatingColor string `json:"ratingColor"`
}

type GetRecipesResponse struct {
	Recipes []RecipeView `json:"recipes"`
	Total   int          `json:"total"`
}

func (h GetRecipesHandler) Handle(ctx context.Context, req *GetRecipesRequest) (*GetRecipesResponse, error) {
	recipes, err := h.repository.GetRecipes(ctx)
	if err != nil {
		return nil, httperror.InternalServerError(
			"recipes.fetch_failed",
			"Failed to retrieve recipes",
			nil,
		)
	}

	view := catalog.DeriveView(recipes, req.Query, catalog.SortKey(req.Sort))

	out := make([]RecipeView, 0, len(view))
	for _, r := range view {
		out = append(out, RecipeView{
			Recipe:      r,
			RatingColor: catalog.RatingColor(r.Rating),
		})
	}

	return &GetRecipesResponse{
		Recipes: out,
		Total:   len(out),
	}, nil
}

package app

import (
	"context"
	"time"

	"receptbox/domain"
)

type Repository interface {
	Close(ctx context.Context) error
	GetRecipes(ctx context.Context) ([]domain.Recipe, error)
	GetRecipe(ctx context.Context, id string) (domain.Recipe, error)
	CreateRecipe(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error)
	GetCommentsByRecipeID(ctx context.Context, recipeID string) ([]domain.Comment, error)
	CreateComment(ctx context.Context, recipeID, text string, timestamp time.Time) (domain.Comment, error)
	DeleteComment(ctx context.Context, recipeID, commentID string) error
	UpdateCommentCount(ctx context.Context, recipeID string, delta int) error
}

package events

import "time"

// Domain constants
const (
	RecipeDomain   = "recipe"
	RecipeExchange = "receptbox.recipe"
)

// Event names
const (
	RecipeCreatedEvent        = "recipe.created"
	RecipeFileUploadedEvent   = "recipe.file.uploaded"
	RecipeCommentCreatedEvent = "recipe.comment.created"
	RecipeCommentDeletedEvent = "recipe.comment.deleted"
)

// Event versions
const (
	EventVersionV1 = "v1"
)

// RecipeCreatedPayload represents the payload for recipe.created event
type RecipeCreatedPayload struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Ingredient string     `json:"ingredient"`
	URL        string     `json:"url"`
	Rating     int        `json:"rating"`
	CreatedAt  *time.Time `json:"createdAt"`
}

// RecipeFileUploadedPayload represents the payload for recipe.file.uploaded event
type RecipeFileUploadedPayload struct {
	RecipeID   string    `json:"recipeId"`
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type RecipeCommentCreatedPayload struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipeId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type RecipeCommentDeletedPayload struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipeId"`
	DeletedAt time.Time `json:"deletedAt"`
}

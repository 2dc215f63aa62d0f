package domain

import "time"

// Comment belongs to exactly one recipe. The timestamp is assigned by the
// submitting client, not by the store.
type Comment struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipeId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

package domain

import "time"

// Recipe is a catalog entry for one uploaded recipe document (PDF or image).
// Recipes are created once via the upload workflow and never edited or
// deleted; only the comment set (and its denormalized count) changes.
// CreatedAt is nil for records written before the field existed.
type Recipe struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Ingredient   string     `json:"ingredient"`
	URL          string     `json:"url"`
	Rating       int        `json:"rating"`
	CommentCount int        `json:"commentCount"`
	CreatedAt    *time.Time `json:"createdAt"`
}

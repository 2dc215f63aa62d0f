package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"receptbox/domain"
)

type SortKey string

const (
	SortByTitle  SortKey = "title"
	SortByRating SortKey = "rating"
)

// Rating tiers used by the presentation layer.
const (
	TierSuccess = "success"
	TierWarning = "warning"
	TierDanger  = "danger"
)

// DeriveView computes the displayed recipe list from the full fetched set.
// It is pure: the input slice is never mutated and the result is fully
// determined by (recipes, query, sortKey).
//
// Filtering matches the query case-insensitively against title OR ingredient;
// an empty query passes everything. Sorting by title is ascending with
// locale-aware collation, sorting by rating is descending numeric. Both sorts
// are stable, so ties keep the relative order of the filtered input. Any
// other sort key returns the filtered input order unchanged.
func DeriveView(recipes []domain.Recipe, query string, sortKey SortKey) []domain.Recipe {
	q := strings.ToLower(strings.TrimSpace(query))

	view := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if q == "" ||
			strings.Contains(strings.ToLower(r.Title), q) ||
			strings.Contains(strings.ToLower(r.Ingredient), q) {
			view = append(view, r)
		}
	}

	switch sortKey {
	case SortByTitle:
		c := collate.New(language.Dutch)
		slices.SortStableFunc(view, func(a, b domain.Recipe) int {
			return c.CompareString(a.Title, b.Title)
		})
	case SortByRating:
		slices.SortStableFunc(view, func(a, b domain.Recipe) int {
			return b.Rating - a.Rating
		})
	}

	return view
}

// RatingColor maps a rating to its display tier. The boundary is >= 2 for
// warning: a rating of exactly 2 is warning, not danger.
func RatingColor(rating int) string {
	switch {
	case rating >= 3:
		return TierSuccess
	case rating >= 2:
		return TierWarning
	default:
		return TierDanger
	}
}

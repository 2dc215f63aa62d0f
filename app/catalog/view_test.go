package catalog

import (
	"testing"

	"receptbox/domain"
)

func recipes(titles ...string) []domain.Recipe {
	rs := make([]domain.Recipe, 0, len(titles))
	for _, t := range titles {
		rs = append(rs, domain.Recipe{Title: t, Ingredient: "x", Rating: 2})
	}
	return rs
}

func titlesOf(rs []domain.Recipe) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Title)
	}
	return out
}

func TestDeriveView_EmptyQueryReturnsEverything(t *testing.T) {
	in := recipes("Soup", "Bread", "Stew")

	view := DeriveView(in, "", "")
	if len(view) != len(in) {
		t.Fatalf("expected %d recipes, got %d", len(in), len(view))
	}
	for i := range in {
		if view[i].Title != in[i].Title {
			t.Fatalf("input order not preserved at %d: %q", i, view[i].Title)
		}
	}
}

func TestDeriveView_FilterIsCaseInsensitiveOnTitleOrIngredient(t *testing.T) {
	in := []domain.Recipe{
		{Title: "Apple Pie", Ingredient: "Apple"},
		{Title: "Carrot Soup", Ingredient: "Carrot"},
		{Title: "Stew", Ingredient: "Beef"},
	}

	view := DeriveView(in, "CARROT", "")
	if len(view) != 1 || view[0].Title != "Carrot Soup" {
		t.Fatalf("expected only Carrot Soup, got %v", titlesOf(view))
	}

	view = DeriveView(in, "beef", "")
	if len(view) != 1 || view[0].Title != "Stew" {
		t.Fatalf("ingredient match failed, got %v", titlesOf(view))
	}

	view = DeriveView(in, "pizza", "")
	if len(view) != 0 {
		t.Fatalf("expected no matches, got %v", titlesOf(view))
	}
}

func TestDeriveView_SortByTitleAscending(t *testing.T) {
	in := recipes("Banana Bread", "Apple Pie", "carrot soup")

	view := DeriveView(in, "", SortByTitle)
	got := titlesOf(view)
	want := []string{"Apple Pie", "Banana Bread", "carrot soup"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("title order: got %v want %v", got, want)
		}
	}
}

func TestDeriveView_SortByRatingDescendingAndStable(t *testing.T) {
	in := []domain.Recipe{
		{Title: "Apple Pie", Rating: 1},
		{Title: "Banana Bread", Rating: 3},
		{Title: "Carrot Soup", Rating: 3},
		{Title: "Stew", Rating: 2},
	}

	view := DeriveView(in, "", SortByRating)
	got := titlesOf(view)
	want := []string{"Banana Bread", "Carrot Soup", "Stew", "Apple Pie"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rating order: got %v want %v", got, want)
		}
	}
}

func TestDeriveView_DoesNotMutateInput(t *testing.T) {
	in := recipes("C", "B", "A")

	_ = DeriveView(in, "", SortByTitle)
	if in[0].Title != "C" || in[2].Title != "A" {
		t.Fatalf("input slice was mutated: %v", titlesOf(in))
	}
}

func TestDeriveView_Deterministic(t *testing.T) {
	in := []domain.Recipe{
		{Title: "Soup", Ingredient: "Carrot", Rating: 2},
		{Title: "Pie", Ingredient: "Apple", Rating: 3},
		{Title: "Bread", Ingredient: "Banana", Rating: 1},
	}

	first := DeriveView(in, "a", SortByRating)
	second := DeriveView(in, "a", SortByRating)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Title != second[i].Title {
			t.Fatalf("non-deterministic at %d: %q vs %q", i, first[i].Title, second[i].Title)
		}
	}
}

func TestRatingColor(t *testing.T) {
	cases := []struct {
		rating int
		want   string
	}{
		{1, TierDanger},
		{2, TierWarning},
		{3, TierSuccess},
		{0, TierDanger},
	}

	for _, c := range cases {
		if got := RatingColor(c.rating); got != c.want {
			t.Fatalf("RatingColor(%d) = %q, want %q", c.rating, got, c.want)
		}
	}
}

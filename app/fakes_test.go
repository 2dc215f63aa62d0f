package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"receptbox/domain"
)

// fakeRepository is an in-memory Repository, enough to exercise the
// workflows without a live backend.
type fakeRepository struct {
	recipes  []domain.Recipe
	comments []domain.Comment
	nextID   int

	failGetRecipes   bool
	failCreateRecipe bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1}
}

func (f *fakeRepository) id(prefix string) string {
	id := fmt.Sprintf("%s%d", prefix, f.nextID)
	f.nextID++
	return id
}

func (f *fakeRepository) Close(ctx context.Context) error { return nil }

func (f *fakeRepository) GetRecipes(ctx context.Context) ([]domain.Recipe, error) {
	if f.failGetRecipes {
		return nil, fmt.Errorf("record store unreachable")
	}
	return append([]domain.Recipe(nil), f.recipes...), nil
}

func (f *fakeRepository) GetRecipe(ctx context.Context, id string) (domain.Recipe, error) {
	for _, r := range f.recipes {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Recipe{}, mongo.ErrNoDocuments
}

func (f *fakeRepository) CreateRecipe(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error) {
	if f.failCreateRecipe {
		return domain.Recipe{}, fmt.Errorf("metadata write failed")
	}
	recipe.ID = f.id("recipe")
	f.recipes = append(f.recipes, recipe)
	return recipe, nil
}

func (f *fakeRepository) GetCommentsByRecipeID(ctx context.Context, recipeID string) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range f.comments {
		if c.RecipeID == recipeID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (f *fakeRepository) CreateComment(ctx context.Context, recipeID, text string, timestamp time.Time) (domain.Comment, error) {
	c := domain.Comment{
		ID:        f.id("comment"),
		RecipeID:  recipeID,
		Text:      text,
		Timestamp: timestamp,
	}
	f.comments = append(f.comments, c)
	return c, nil
}

func (f *fakeRepository) DeleteComment(ctx context.Context, recipeID, commentID string) error {
	for i, c := range f.comments {
		if c.ID == commentID && c.RecipeID == recipeID {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeRepository) UpdateCommentCount(ctx context.Context, recipeID string, delta int) error {
	for i := range f.recipes {
		if f.recipes[i].ID == recipeID {
			f.recipes[i].CommentCount += delta
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// fakeBlobStore records uploads and serves deterministic URLs.
type fakeBlobStore struct {
	uploads map[string][]byte
	deletes []string

	failUpload bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{uploads: map[string][]byte{}}
}

func (f *fakeBlobStore) Upload(key string, data []byte) error {
	if f.failUpload {
		return fmt.Errorf("blob write failed")
	}
	f.uploads[key] = data
	return nil
}

func (f *fakeBlobStore) Delete(key string) error {
	f.deletes = append(f.deletes, key)
	delete(f.uploads, key)
	return nil
}

func (f *fakeBlobStore) URL(key string) string {
	return "https://store/" + key
}

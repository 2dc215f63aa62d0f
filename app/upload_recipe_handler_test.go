package app

import (
	"context"
	"errors"
	"testing"

	"receptbox/pkg/httperror"
)

func expectCode(t *testing.T, err error, code string) *httperror.Error {
	t.Helper()
	var httpErr *httperror.Error
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected httperror, got %v", err)
	}
	if httpErr.Code != code {
		t.Fatalf("expected code %q, got %q", code, httpErr.Code)
	}
	return httpErr
}

func TestUploadRecipe_RoundTripAppearsInCatalog(t *testing.T) {
	repo := newFakeRepository()
	blob := newFakeBlobStore()
	upload := NewUploadRecipeHandler(repo, blob, nil)

	res, err := upload.Submit(context.Background(), &UploadRecipeRequest{
		Title:      "Soup",
		Ingredient: "Carrot",
		Rating:     2,
	}, "soup.pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if res.URL != "https://store/pdfs/soup.pdf" {
		t.Fatalf("unexpected url %q", res.URL)
	}
	if res.ID == "" {
		t.Fatal("expected a recipe id")
	}
	if _, ok := blob.uploads["pdfs/soup.pdf"]; !ok {
		t.Fatal("file bytes not stored under the filename-derived key")
	}

	list, err := NewGetRecipesHandler(repo).Handle(context.Background(), &GetRecipesRequest{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("expected 1 recipe, got %d", list.Total)
	}
	got := list.Recipes[0]
	if got.ID != res.ID || got.Title != "Soup" || got.Ingredient != "Carrot" || got.Rating != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.URL != "https://store/pdfs/soup.pdf" {
		t.Fatalf("round trip url mismatch: %q", got.URL)
	}
	if got.RatingColor != "warning" {
		t.Fatalf("rating 2 must present as warning, got %q", got.RatingColor)
	}
	if got.CreatedAt == nil {
		t.Fatal("expected a creation timestamp")
	}
}

func TestUploadRecipe_MissingFieldsRejected(t *testing.T) {
	upload := NewUploadRecipeHandler(newFakeRepository(), newFakeBlobStore(), nil)

	_, err := upload.Handle(context.Background(), &UploadRecipeRequest{
		Title:  "Soup",
		Rating: 2,
	})
	expectCode(t, err, "upload.validation_failed")

	_, err = upload.Handle(context.Background(), &UploadRecipeRequest{
		Title:      "Soup",
		Ingredient: "Carrot",
		Rating:     5,
	})
	expectCode(t, err, "upload.validation_failed")
}

func TestUploadRecipe_BlobFailureCreatesNoRecord(t *testing.T) {
	repo := newFakeRepository()
	blob := newFakeBlobStore()
	blob.failUpload = true
	upload := NewUploadRecipeHandler(repo, blob, nil)

	_, err := upload.Submit(context.Background(), &UploadRecipeRequest{
		Title:      "Soup",
		Ingredient: "Carrot",
		Rating:     2,
	}, "soup.pdf", []byte("x"))
	expectCode(t, err, "upload.blob_failed")

	if len(repo.recipes) != 0 {
		t.Fatalf("no record may exist after a failed upload, got %d", len(repo.recipes))
	}
}

func TestUploadRecipe_PersistFailureLeavesBlobInPlace(t *testing.T) {
	repo := newFakeRepository()
	repo.failCreateRecipe = true
	blob := newFakeBlobStore()
	upload := NewUploadRecipeHandler(repo, blob, nil)

	_, err := upload.Submit(context.Background(), &UploadRecipeRequest{
		Title:      "Soup",
		Ingredient: "Carrot",
		Rating:     2,
	}, "soup.pdf", []byte("x"))
	expectCode(t, err, "upload.persist_failed")

	// The orphaned blob is an accepted leak; there is no compensating delete.
	if _, ok := blob.uploads["pdfs/soup.pdf"]; !ok {
		t.Fatal("uploaded blob must not be rolled back on a metadata failure")
	}
	if len(blob.deletes) != 0 {
		t.Fatalf("unexpected blob deletes: %v", blob.deletes)
	}
}

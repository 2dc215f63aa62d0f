package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"receptbox/domain"
	"receptbox/pkg/events"
	"receptbox/pkg/httperror"
	"receptbox/pkg/progress"
)

type UploadRecipeHandler struct {
	repository     Repository
	blobStore      BlobStore
	eventPublisher events.Publisher
}

type UploadRecipeRequest struct {
	Title      string `form:"title" validate:"required"`
	Ingredient string `form:"ingredient" validate:"required"`
	Rating     int    `form:"rating" validate:"required,min=1,max=3"`
}

type UploadRecipeResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func NewUploadRecipeHandler(repository Repository, blobStore BlobStore, eventPublisher events.Publisher) *UploadRecipeHandler {
	return &UploadRecipeHandler{
		repository:     repository,
		blobStore:      blobStore,
		eventPublisher: eventPublisher,
	}
}

func (h *UploadRecipeHandler) Handle(ctx context.Context, req *UploadRecipeRequest) (*UploadRecipeResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"upload.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"upload.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	fiberCtx := ctx.Value("fiber")
	if fiberCtx == nil {
		return nil, httperror.InternalServerError("upload.no_context", "Fiber context not found", nil)
	}

	c, ok := fiberCtx.(*fiber.Ctx)
	if !ok {
		return nil, httperror.InternalServerError("upload.invalid_context", "Invalid Fiber context", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return nil, httperror.BadRequest("upload.missing_file", "Recipe file is required (use 'file' field)", fiber.Map{"error": err.Error()})
	}

	fileReader, err := file.Open()
	if err != nil {
		return nil, httperror.InternalServerError("upload.file_open_error", "Failed to open uploaded file", err.Error())
	}
	defer fileReader.Close()

	// Observational only: percent-complete is logged as the body is consumed
	// and never decreases.
	reader := progress.NewReader(fileReader, file.Size, func(pct int) {
		zap.L().Debug("upload progress",
			zap.String("filename", file.Filename),
			zap.Int("percent", pct),
		)
	})

	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, httperror.InternalServerError("upload.file_read_error", "Failed to read file content", err.Error())
	}
	reader.Complete()

	return h.Submit(ctx, req, file.Filename, fileBytes)
}

// Submit stores the file first and writes the metadata record only
// after the blob write succeeds, so no record ever references a missing blob.
// The converse does not hold: a failed record write leaves the uploaded blob
// in place (logged, not compensated).
func (h *UploadRecipeHandler) Submit(ctx context.Context, req *UploadRecipeRequest, fileName string, fileBytes []byte) (*UploadRecipeResponse, error) {
	key := fmt.Sprintf("pdfs/%s", fileName)

	if err := h.blobStore.Upload(key, fileBytes); err != nil {
		return nil, httperror.InternalServerError("upload.blob_failed", "Failed to upload file to storage", err.Error())
	}

	url := h.blobStore.URL(key)
	now := time.Now().UTC()

	recipe, err := h.repository.CreateRecipe(ctx, domain.Recipe{
		Title:      req.Title,
		Ingredient: req.Ingredient,
		URL:        url,
		Rating:     req.Rating,
		CreatedAt:  &now,
	})
	if err != nil {
		zap.L().Warn("Recipe record write failed after successful upload, orphaned blob left in storage",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, httperror.InternalServerError("upload.persist_failed", "Failed to save recipe metadata", err.Error())
	}

	h.publishEvents(ctx, recipe, key, int64(len(fileBytes)))

	return &UploadRecipeResponse{
		ID:  recipe.ID,
		URL: recipe.URL,
	}, nil
}

func (h *UploadRecipeHandler) publishEvents(ctx context.Context, recipe domain.Recipe, key string, size int64) {
	if h.eventPublisher == nil {
		return
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
		Service:       "receptbox",
	}

	created := events.NewEvent(
		events.RecipeCreatedEvent,
		events.EventVersionV1,
		events.RecipeCreatedPayload{
			ID:         recipe.ID,
			Title:      recipe.Title,
			Ingredient: recipe.Ingredient,
			URL:        recipe.URL,
			Rating:     recipe.Rating,
			CreatedAt:  recipe.CreatedAt,
		},
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.RecipeExchange, created, headers); err != nil {
		zap.L().Error("Failed to publish recipe.created event",
			zap.String("recipeId", recipe.ID),
			zap.Error(err),
		)
	}

	uploaded := events.NewEvent(
		events.RecipeFileUploadedEvent,
		events.EventVersionV1,
		events.RecipeFileUploadedPayload{
			RecipeID:   recipe.ID,
			Key:        key,
			URL:        recipe.URL,
			SizeBytes:  size,
			UploadedAt: time.Now().UTC(),
		},
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.RecipeExchange, uploaded, headers); err != nil {
		zap.L().Error("Failed to publish recipe.file.uploaded event",
			zap.String("recipeId", recipe.ID),
			zap.Error(err),
		)
	}
}

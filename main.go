package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"receptbox/app"
	"receptbox/infra/mongo"
	"receptbox/infra/rabbitmq"
	"receptbox/internal/compat"
	"receptbox/internal/middleware"
	"receptbox/pkg/aws"
	"receptbox/pkg/config"
	"receptbox/pkg/events"
	"receptbox/pkg/httperror"
)

type Request any
type Response any

type HandlerInterface[R Request, Res Response] interface {
	Handle(ctx context.Context, req *R) (*Res, error)
}

func handle[R Request, Res Response](handler HandlerInterface[R, Res]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return writeError(c, httperror.BadRequest(
				"request.invalid_body",
				"Invalid body",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_path_params",
				"Invalid path params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.QueryParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_query_params",
				"Invalid query params",
				fiber.Map{"error": err.Error()},
			))
		}

		ctx := c.UserContext()

		res, err := handler.Handle(ctx, &req)
		if err != nil {
			return writeError(c, err)
		}

		return c.JSON(res)
	}
}

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	appConfig := config.Read()
	zap.L().Info("app starting...")
	zap.L().Info("app config", zap.Any("appConfig", appConfig))

	server := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  256 * 1024,
	})

	repository := mongo.NewMongoRepository(appConfig.MongoURI, appConfig.MongoDatabase)
	blobStore := aws.NewS3Bucket(appConfig)

	var eventPublisher events.Publisher
	if appConfig.RabbitMQURL != "" {
		publisher, err := rabbitmq.NewRabbitMQPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Warn("Event publisher unavailable, continuing without events", zap.Error(err))
		} else {
			eventPublisher = publisher
			defer publisher.Close()
		}
	}

	uploadRecipe := app.NewUploadRecipeHandler(repository, blobStore, eventPublisher)
	getRecipes := app.NewGetRecipesHandler(repository)
	getRecipe := app.NewGetRecipeHandler(repository)
	createComment := app.NewCreateCommentHandler(repository, eventPublisher)
	getComments := app.NewGetCommentsHandler(repository)
	deleteComment := app.NewDeleteCommentHandler(repository, eventPublisher)

	server.Use(middleware.NewRequestContextMiddleware())
	server.Use(func(c *fiber.Ctx) error {
		// Multipart handlers pull the raw fiber context back out to read the
		// uploaded file part.
		c.SetUserContext(context.WithValue(c.UserContext(), "fiber", c))
		return c.Next()
	})

	publicRoutes := server.Group("/api/v1")
	publicRoutes.Get("/recipes", handle[app.GetRecipesRequest, app.GetRecipesResponse](getRecipes))
	publicRoutes.Post("/recipes", handle[app.UploadRecipeRequest, app.UploadRecipeResponse](uploadRecipe))
	publicRoutes.Get("/recipes/:id", handle[app.GetRecipeRequest, app.GetRecipeResponse](getRecipe))
	publicRoutes.Get("/recipes/:id/comments", handle[app.GetCommentsRequest, app.GetCommentsResponse](getComments))
	publicRoutes.Post("/recipes/:id/comments", handle[app.CreateCommentRequest, app.CreateCommentResponse](createComment))
	publicRoutes.Delete("/recipes/:id/comments/:commentId", handle[app.DeleteCommentRequest, app.DeleteCommentResponse](deleteComment))

	// Legacy surface kept for existing clients.
	server.All("/items", compat.NewItemsHandler(repository))
	server.All("/upload", compat.NewUploadHandler(uploadRecipe))

	go func() {
		if err := server.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(server, repository)
}

func gracefulShutdown(server *fiber.App, repository app.Repository) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	if err := server.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := repository.Close(ctx); err != nil {
		zap.L().Error("Error closing record store", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		payload := fiber.Map{
			"code":    httpErr.Code,
			"message": httpErr.Message,
		}

		if httpErr.Details != nil {
			payload["details"] = httpErr.Details
		}

		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).JSON(payload)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber validation error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"code":    "request.invalid",
			"message": fiberErr.Message,
		})
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    "internal_server_error",
		"message": "Internal server error.",
	})
}

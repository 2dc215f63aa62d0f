package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"receptbox/infra/mongo"
	"receptbox/infra/rabbitmq"
	"receptbox/internal/consumers"
	"receptbox/pkg/config"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("Receptbox worker starting...")

	appConfig := config.Read()
	zap.L().Info("Worker config loaded",
		zap.String("serviceName", appConfig.ServiceName),
		zap.String("rabbitMQURL", appConfig.RabbitMQURL),
	)

	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for worker service")
	}

	repository := mongo.NewMongoRepository(appConfig.MongoURI, appConfig.MongoDatabase)

	commentHandler := consumers.NewCommentEventHandler(
		repository,
		zap.L(),
	)

	// Queue name follows {service}.{domain}.{events}.{version}.
	commentConsumerConfig := rabbitmq.ConsumerConfig{
		Exchange:      "receptbox.recipe",
		QueueName:     "receptbox.recipe.comments.v1",
		RoutingKeys:   []string{"recipe.comment.*.v1"},
		ServiceName:   appConfig.ServiceName,
		PrefetchCount: 10,
	}

	commentConsumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, commentConsumerConfig)
	if err != nil {
		zap.L().Fatal("Failed to create comment consumer", zap.Error(err))
	}
	defer commentConsumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		zap.L().Info("Starting comment event consumer...")
		if err := commentConsumer.Consume(ctx, commentHandler.HandleEvent); err != nil {
			if err != context.Canceled {
				zap.L().Error("Comment consumer error", zap.Error(err))
			}
		}
	}()

	zap.L().Info("Worker started successfully. Waiting for events...")

	<-sigChan
	zap.L().Info("Shutdown signal received, stopping worker...")
	cancel()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCancel()
	if err := repository.Close(closeCtx); err != nil {
		zap.L().Error("Error closing record store", zap.Error(err))
	}

	zap.L().Info("Worker stopped gracefully")
}

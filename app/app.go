// File: app/app.go
package app

import (
	"context"
	"go-recruit-api/bus"
	"go-recruit-api/config"
	"go-recruit-api/consumer"
	"go-recruit-api/db"
	"go-recruit-api/handler"
	"go-recruit-api/logger"
	"go-recruit-api/repository"
	"go-recruit-api/router"
	"go-recruit-api/service"
	"go-recruit-api/ws"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	mqConn, err := db.ConnectRabbitMQ()
	if err != nil {
		logger.Log.Fatalf("Error connecting to rabbitmq: %v", err)
	}
	defer mqConn.Close()

	eventBus, err := bus.NewRabbitMQBus(mqConn, config.AppConfig.RabbitMQ.Exchange, config.AppConfig.RabbitMQ.ConsumerWorkers)
	if err != nil {
		logger.Log.Fatalf("Error setting up event bus: %v", err)
	}

	// --- Wiring All Layers Together ---

	userRepo := repository.NewUserRepository(database)
	applicationRepo := repository.NewApplicationRepository(database)
	conversationRepo := repository.NewConversationRepository(database)
	messageRepo := repository.NewMessageRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)

	revocations := service.NewRevocationStore(redisClient)
	tokenService := service.NewTokenService(revocations)

	registry := ws.NewRegistry()
	dispatcher := service.NewDispatcher(registry, notificationRepo)
	authService := service.NewAuthService(userRepo, tokenService, revocations, registry)

	conversationConsumer := consumer.NewConversationConsumer(applicationRepo)
	applicationConsumer := consumer.NewApplicationConsumer(messageRepo, conversationRepo, eventBus)
	notificationConsumer := consumer.NewNotificationConsumer(dispatcher)
	messageConsumer := consumer.NewMessageConsumer(dispatcher)

	subscriptions := []struct {
		queue      string
		routingKey string
		handler    bus.Handler
	}{
		{bus.QueueConversationCreated, bus.TopicConversationCreated, conversationConsumer.HandleConversationCreated},
		{bus.QueueApplicationCreated, bus.TopicApplicationCreated, applicationConsumer.HandleApplicationCreated},
		{bus.QueueApplicationRejected, bus.TopicApplicationRejected, notificationConsumer.HandleApplicationRejected},
		{bus.QueueInterviewScheduled, bus.TopicInterviewScheduled, notificationConsumer.HandleInterviewScheduled},
		{bus.QueueOfferSent, bus.TopicOfferSent, notificationConsumer.HandleOfferSent},
		{bus.QueueChatMessage, bus.TopicChatMessage, messageConsumer.HandleChatMessage},
	}
	for _, sub := range subscriptions {
		if err := eventBus.Subscribe(sub.queue, sub.routingKey, sub.handler); err != nil {
			logger.Log.Fatalf("Error subscribing to %s: %v", sub.queue, err)
		}
	}

	authHandler := handler.NewAuthHandler(authService)
	applicationHandler := handler.NewApplicationHandler(applicationRepo)
	wsHandler := ws.NewHandler(registry, tokenService)

	r := router.NewRouter(authHandler, applicationHandler, wsHandler, tokenService)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	registry.Shutdown()
	if err := eventBus.Close(); err != nil {
		logger.Log.WithError(err).Warn("Event bus did not close cleanly")
	}

	logger.Log.Info("Server exited properly")
}

package main

import (
	"context"
	"net/http"

	"lanka-connect/backend/internal/config"
	"lanka-connect/backend/internal/handler"
	"lanka-connect/backend/internal/models"
	"lanka-connect/backend/internal/repository"
	"lanka-connect/backend/internal/services"
	"lanka-connect/backend/internal/utils"
	"lanka-connect/backend/internal/utils/push"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	utils.InitLogger("lanka-connect-backend", cfg.AppEnv)

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	shutdownManager.Register(func(ctx context.Context) error {
		log.Info().Msg("closing MongoDB connection")
		return mongoClient.Disconnect(ctx)
	})

	rdb, err := utils.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	shutdownManager.Register(func(ctx context.Context) error {
		log.Info().Msg("closing Redis connection")
		return rdb.Close()
	})

	fcmClient, err := push.NewFCMClient(ctx, cfg.FirebaseCredentials)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init FCM client")
	}

	userRepo := repository.NewUserRepository(db, rdb)
	serviceRepo := repository.NewServiceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	if err := serviceRepo.EnsurePreImages(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to prepare services collection")
	}

	normalizer := services.NewStatusNormalizer(serviceRepo)
	notifier := services.NewApprovalNotifier(notificationRepo, utils.NewRedisDeduper(rdb))
	aggregator := services.NewRatingAggregator(userRepo)
	relay := services.NewPushRelay(userRepo, fcmClient)

	watcher := services.NewWatcher(db, normalizer, notifier, aggregator, relay)
	watcher.Start(ctx)

	notificationService := services.NewNotificationService(notificationRepo)
	seedService := services.NewSeedService(userRepo, serviceRepo, bookingRepo, reviewRepo, notificationRepo)

	notificationHandler := handler.NewNotificationHandler(notificationService)
	adminHandler := handler.NewAdminHandler(serviceRepo, seedService)

	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret)

	router := gin.Default()
	api := router.Group("/api", utils.AuthMiddleware(jwtUtil))
	{
		api.GET("/notifications", notificationHandler.GetNotifications)
		api.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)

		admin := api.Group("/admin", utils.RequireRole(models.RoleAdmin))
		{
			admin.PUT("/services/:id/status", adminHandler.UpdateServiceStatus)
			admin.POST("/seed", adminHandler.SeedDemoData)
		}
	}

	server := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.ServerPort).Msg("backend running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Info().Msg("shutting down HTTP server")
		return server.Shutdown(ctx)
	})

	select {}
}

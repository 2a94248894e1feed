package main

import (
	"os"
	"time"

	"immolist/server/config"
	"immolist/server/internal/api"
	"immolist/server/internal/auth"
	"immolist/server/internal/catalog"
	"immolist/server/internal/database"
	"immolist/server/internal/models"
	"immolist/server/internal/normalize"
	"immolist/server/internal/notify"
	"immolist/server/internal/processor"
	"immolist/server/internal/queue"
	"immolist/server/internal/scheduler"
	"immolist/server/internal/source"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Infof("Using database at: %s", cfg.Database.Path)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	// Run database migrations
	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	orm, err := database.OpenORM(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open ORM connection")
	}
	store := database.NewStore(orm)

	// Queue and batch processor for asynchronous listing ingestion
	listingQueue := queue.NewListingQueue(cfg.BatchProcessing.MaxBatchSize, logger)
	listingQueue.Start()
	defer listingQueue.Close()

	batchProcessor := processor.NewBatchProcessor(orm, listingQueue, cfg, logger)
	batchProcessor.Start()
	defer batchProcessor.Stop()

	normalizer := normalize.NewNormalizer(cfg.Catalog.BackendOrigin, logger)
	engine := catalog.NewEngine(cfg.Catalog.PriceCeiling)

	var client *source.Client
	if cfg.Source.BaseURL != "" {
		client = source.NewClient(cfg.Source.BaseURL,
			time.Duration(cfg.Source.TimeoutSeconds)*time.Second, normalizer, logger)
	}
	manager := source.NewManager(client, logger)

	// Applied remote refreshes are persisted through the batch pipeline
	manager.OnRefresh(func(listings []models.Listing) {
		batch := make([]*models.Listing, len(listings))
		for i := range listings {
			batch[i] = &listings[i]
		}
		if err := listingQueue.Push(batch); err != nil {
			logger.WithError(err).Warn("Failed to queue refreshed listings")
		}
	})

	// Serve what the local store has before the first remote refresh lands
	listings, err := store.ListListings()
	if err != nil {
		logger.WithError(err).Error("Failed to load listings from store")
	}
	categories, err := store.ListCategories()
	if err != nil {
		logger.WithError(err).Error("Failed to load categories from store")
	}
	manager.Apply(listings, categories)

	if client != nil {
		refreshInterval := time.Duration(cfg.Source.RefreshMinutes) * time.Minute
		snapshotScheduler := scheduler.NewScheduler(manager, refreshInterval, logger)
		snapshotScheduler.Start()
		defer snapshotScheduler.Stop()
	}

	authSvc := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.AdminUsername,
		cfg.Auth.AdminPassword, time.Duration(cfg.Auth.TokenTTL)*time.Minute)

	notifier := notify.NewService(notify.Settings{
		Enabled:  cfg.Telegram.Enabled,
		BotToken: cfg.Telegram.BotToken,
		ChatID:   cfg.Telegram.ChatID,
	}, logger)

	handler := api.NewHandler(db, store, manager, engine, listingQueue, authSvc,
		notifier, normalizer, cfg, logger)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}

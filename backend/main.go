package main

import (
	"context"
	"log"
	"time"

	"examprep/backend/cache"
	"examprep/backend/config"
	"examprep/backend/models"
	"examprep/backend/routes"
	"examprep/backend/storage"
	"examprep/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := utils.InitLogger(utils.LoggerConfig{
		Format:       cfg.LogFormat,
		EnableColors: cfg.LogColors,
	})

	// Initialize database
	db, err := utils.InitDB(cfg, logger)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploader, err := storage.NewS3Uploader(ctx, storage.S3Config{
		Region:          cfg.AWSRegion,
		Bucket:          cfg.AWSBucketName,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		log.Fatalf("Error initializing object storage: %v", err)
	}

	var catalog cache.Catalog = cache.NopCatalog{}
	if cfg.RedisAddr != "" {
		redisCatalog, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.CatalogTTL)
		if err != nil {
			log.Fatalf("Error connecting to redis: %v", err)
		}
		defer redisCatalog.Close()
		catalog = redisCatalog
	} else {
		logger.Println("REDIS_ADDR not set, exam catalog caching disabled")
	}

	app := routes.NewApp(cfg, logger)
	if err := routes.SetupRoutes(app, db, cfg, routes.Services{
		Uploader: uploader,
		Catalog:  catalog,
		Logger:   logger,
	}); err != nil {
		log.Fatalf("Error setting up routes: %v", err)
	}

	logger.Printf("Server listening on :%s", cfg.ServerPort)
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}

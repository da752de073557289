package main

import (
	"context"
	"log"
	"time"

	"cityreport-be/bootstrap"
	"cityreport-be/config"
	"cityreport-be/controllers"
	"cityreport-be/identity"
	"cityreport-be/kv"
	"cityreport-be/middlewares"
	"cityreport-be/notify"
	"cityreport-be/repository"
	"cityreport-be/routes"
	"cityreport-be/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	ctx := context.Background()

	var store kv.Store
	var redisClient *redis.Client
	switch cfg.KVBackend {
	case "mongo":
		db, err := config.ConnectMongo(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		log.Println("Connected to MongoDB!")
		store = kv.NewMongo(db.Collection("kv"))
	default:
		client, err := config.ConnectRedis(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis!")
		redisClient = client
		store = kv.NewRedis(client)
	}

	var blob storage.BlobStore
	if cfg.MinioEndpoint != "" {
		minioStore, err := storage.NewMinio(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Printf("Blob store unavailable, uploads disabled: %v", err)
		} else {
			blob = minioStore
		}
	} else {
		log.Println("MINIO_ENDPOINT not set, uploads disabled")
	}

	provider := identity.NewService(store, []byte(cfg.JWTSecret), cfg.AdminEmail)

	var events *notify.Publisher
	if cfg.AMQPURL != "" {
		publisher, err := notify.Connect(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			log.Printf("Event publisher unavailable: %v", err)
		} else {
			events = publisher
			defer events.Close()
		}
	}

	repo := repository.New(store)

	if err := bootstrap.Run(ctx, bootstrap.Deps{
		Repo:          repo,
		Identity:      provider,
		Blob:          blob,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}); err != nil {
		log.Fatalf("Bootstrap failed: %v", err)
	}

	reportCtl := controllers.NewReportController(repo, events)
	uploadCtl := controllers.NewUploadController(blob, cfg.SignedURLTTL)
	authCtl := controllers.NewAuthController(provider)
	healthCtl := controllers.NewHealthController(repo, blob, provider)

	r := gin.Default()
	r.Use(cors.Default())

	guard := middlewares.AuthRequired(provider, cfg.AnonKey)
	admin := middlewares.AdminRequired()
	var submitLimiter gin.HandlerFunc
	if redisClient != nil {
		submitLimiter = middlewares.SubmitRateLimiter(redisClient, 20, 24*time.Hour)
	}

	routes.ReportRoutes(r, reportCtl, uploadCtl, healthCtl, guard, admin, submitLimiter)
	routes.AuthRoutes(r, authCtl)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config collects every environment knob the service reads. Secrets
// have no defaults; everything else falls back to local-dev values.
type Config struct {
	Addr string

	// KVBackend selects the persistence substrate: "redis" (default)
	// or "mongo".
	KVBackend string

	RedisAddr     string
	RedisPassword string

	MongoURI      string
	MongoDatabase string

	JWTSecret string
	// AnonKey is the public/anonymous API key; a bearer token equal to
	// it is rejected by the guard.
	AnonKey string

	AdminEmail    string
	AdminPassword string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	SignedURLTTL time.Duration

	AMQPURL   string
	AMQPQueue string
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// Load reads the configuration from the environment. Missing secrets
// are fatal; the service must not start with a guessable JWT secret.
func Load() *Config {
	cfg := &Config{
		Addr:           envOr("ADDR", ":8080"),
		KVBackend:      envOr("KV_BACKEND", "redis"),
		RedisAddr:      envOr("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		MongoURI:       envOr("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:  envOr("MONGODB_DATABASE", "cityreport"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AnonKey:        os.Getenv("ANON_KEY"),
		AdminEmail:     envOr("ADMIN_EMAIL", "admin@cityreport.local"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    envOr("MINIO_BUCKET", "report-images"),
		AMQPURL:        os.Getenv("AMQP_URL"),
		AMQPQueue:      envOr("AMQP_QUEUE", "report_events"),
	}

	cfg.MinioUseSSL, _ = strconv.ParseBool(os.Getenv("MINIO_USE_SSL"))

	ttlHours, err := strconv.Atoi(envOr("SIGNED_URL_TTL_HOURS", "168"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 168
	}
	cfg.SignedURLTTL = time.Duration(ttlHours) * time.Hour

	if cfg.JWTSecret == "" {
		log.Fatal("Please define the JWT_SECRET environment variable")
	}
	if cfg.AdminPassword == "" {
		log.Fatal("Please define the ADMIN_PASSWORD environment variable")
	}

	return cfg
}

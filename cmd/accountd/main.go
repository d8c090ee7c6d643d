package main

// @title           Accountd API
// @version         1.0
// @description     User account service with email/password login, short-lived access tokens, and rotating refresh tokens.

// @contact.name   Custodia Labs OSS
// @contact.url    https://github.com/custodia-labs/accountd/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"log"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/accountd/internal/adapters/driven/auth"
	"github.com/custodia-labs/accountd/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/accountd/internal/adapters/driven/redis"
	"github.com/custodia-labs/accountd/internal/adapters/driving/http"
	"github.com/custodia-labs/accountd/internal/config"
	"github.com/custodia-labs/accountd/internal/core/ports/driven"
	"github.com/custodia-labs/accountd/internal/core/services"
)

var version = "dev"

func main() {
	log.Printf("accountd %s starting", version)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx := context.Background()

	// ===== Initialize PostgreSQL =====
	log.Println("Connecting to PostgreSQL...")
	db, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize schema (idempotent)
	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("PostgreSQL connected and schema initialized")

	// ===== Initialize Redis (optional) =====
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	// ===== Driven adapters (infrastructure) =====
	authAdapter := auth.NewAdapterWithCost(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.BcryptCost)
	userStore := postgres.NewUserStore(db)

	// Rotation lock serializes concurrent refreshes per user when Redis
	// is available; without it the last writer wins
	var rotationLock driven.RotationLock
	var redisPinger http.Pinger
	if redisClient != nil {
		lock := redisadapter.NewRotationLock(redisClient)
		rotationLock = lock
		redisPinger = lock
		log.Println("Using Redis rotation lock")
	}

	// ===== Services (core business logic) =====
	authService := services.NewAuthService(services.AuthServiceConfig{
		UserStore:  userStore,
		Hasher:     authAdapter,
		Issuer:     authAdapter,
		Lock:       rotationLock,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
		Logger:     slog.Default(),
	})
	userService := services.NewUserService(userStore, authAdapter, slog.Default())

	// ===== HTTP server =====
	server := http.NewServer(http.Config{
		Host:       cfg.Host,
		Port:       cfg.Port,
		Version:    version,
		RefreshTTL: cfg.RefreshTokenTTL,
		CORSOrigin: cfg.CORSOrigin,
	}, authService, userService, db, redisPinger)

	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

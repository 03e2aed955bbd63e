package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"glow-contrib.backend/internal/config"
	"glow-contrib.backend/internal/infrastructure/models"
	"glow-contrib.backend/internal/infrastructure/repositories"
	"glow-contrib.backend/internal/infrastructure/storage"
	"glow-contrib.backend/internal/interfaces/http/handlers"
	"glow-contrib.backend/internal/interfaces/http/middleware"
	"glow-contrib.backend/internal/interfaces/ws"
	"glow-contrib.backend/internal/usecases"
	"glow-contrib.backend/pkg/jwt"
	"glow-contrib.backend/pkg/logger"
	"glow-contrib.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		// TranslateError maps driver unique-violation errors to
		// gorm.ErrDuplicatedKey so repositories can surface conflicts.
		gormCfg := &gorm.Config{TranslateError: true}
		if cfg.IsPostgres() {
			return gorm.Open(postgres.New(postgres.Config{
				DSN:                  cfg.URL,
				PreferSimpleProtocol: true,
			}), gormCfg)
		}
		return gorm.Open(sqlite.Open(cfg.URL), gormCfg)
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Contribution{},
		&models.KycDocument{},
		&models.TokenTransfer{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	contribRepo := repositories.NewContributionRepository(db)
	kycDocRepo := repositories.NewKycDocumentRepository(db)
	transferRepo := repositories.NewTokenTransferRepository(db)

	// Infrastructure
	store := storage.NewLocalStore(cfg.Upload.Dir)
	pinner := storage.NewPinataClient(cfg.Pinata.APIKey, cfg.Pinata.APISecret)
	otpStore := redis.NewOTPStore(redis.DefaultOTPTTL)
	reviewLock := redis.NewReviewLock(0)
	hub := ws.NewHub()

	// Usecases
	chainUsecase := usecases.NewChainUsecase(cfg.Blockchain)
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	profileUsecase := usecases.NewProfileUsecase(userRepo, store)
	kycUsecase := usecases.NewKYCUsecase(userRepo, kycDocRepo, otpStore, store, cfg.Upload.MaxSizeBytes)
	contribUsecase := usecases.NewContributionUsecase(
		contribRepo, userRepo, transferRepo, store, pinner, chainUsecase, hub, reviewLock,
	)
	marketUsecase := usecases.NewMarketplaceUsecase()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORS.FrontendOrigin))

	registerAPIV1Routes(r, routeDeps{
		authHandler:         handlers.NewAuthHandler(authUsecase),
		contributionHandler: handlers.NewContributionHandler(contribUsecase),
		profileHandler:      handlers.NewProfileHandler(profileUsecase, kycUsecase),
		kycHandler:          handlers.NewKYCHandler(kycUsecase),
		chainHandler:        handlers.NewChainHandler(chainUsecase),
		marketplaceHandler:  handlers.NewMarketplaceHandler(marketUsecase),
		hub:                 hub,
		authMiddleware:      middleware.AuthMiddleware(jwtService),
		uploadDir:           cfg.Upload.Dir,
	})

	log.Printf("Server starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

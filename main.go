package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront-backend/apperrors"
	"storefront-backend/controllers"
	"storefront-backend/gateway"
	"storefront-backend/logger"
	"storefront-backend/middleware"
	"storefront-backend/routes"
	"storefront-backend/services"
	"storefront-backend/storage"
	"storefront-backend/store"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.Initialize(cfg.Env)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	gw, cleanup, err := buildGateway(ctx, cfg)
	if err != nil {
		zap.L().Fatal("failed to initialize backend", zap.Error(err))
	}
	defer cleanup()

	st := store.New(gw, zap.L())
	if err := st.Load(ctx); err != nil {
		zap.L().Warn("initial load incomplete, running degraded", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zap.L().Warn("failed to parse REDIS_URL, catalog cache disabled", zap.Error(err))
		} else {
			redisClient = redis.NewClient(opts)
			defer redisClient.Close()
		}
	}
	cache := controllers.NewCatalogCache(redisClient)

	var images storage.ImageStore
	if cfg.S3.Bucket != "" {
		s3Store, err := storage.NewS3ImageStore(ctx, cfg.S3)
		if err != nil {
			zap.L().Warn("image storage unavailable", zap.Error(err))
		} else {
			images = s3Store
		}
	}

	// Services over the shared store.
	storefrontCheckout := services.NewStorefrontCheckout(st, zap.L())
	posCheckout := services.NewPOSCheckout(st, zap.L())
	recorder := services.NewPurchaseRecorder(st)
	recovery := services.NewRecoveryService(st, &services.LogCodeSender{Log: zap.L()}, zap.L())
	reports := services.NewReportService(st)
	export := services.NewExportService(st)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(apperrors.ErrorMiddleware())
	r.Use(middleware.RateLimit())

	routes.Register(r, routes.Controllers{
		Catalog:   controllers.NewCatalogController(st, cache, images),
		Cart:      controllers.NewCartController(st, st.Cart(), storefrontCheckout),
		POSCart:   controllers.NewCartController(st, st.POSCart(), posCheckout),
		Auth:      controllers.NewAuthController(st, recovery),
		Users:     controllers.NewUserController(st),
		Purchases: controllers.NewPurchaseController(st, recorder),
		Reports:   controllers.NewReportController(st, reports, export),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("storefront backend starting",
			zap.String("port", cfg.Port),
			zap.String("backend", cfg.Backend),
			zap.Bool("degraded", st.Degraded()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("server forced to shutdown", zap.Error(err))
	}
	zap.L().Info("stopped gracefully")
}

// buildGateway constructs the persistence backend named by the config. The
// returned cleanup closes whatever connection was opened.
func buildGateway(ctx context.Context, cfg *Config) (gateway.Gateway, func(), error) {
	switch cfg.Backend {
	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, err
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		cleanup := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}
		return gateway.NewMongoGateway(client.Database(cfg.MongoDB)), cleanup, nil

	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			return nil, nil, err
		}
		gw := gateway.NewPostgresGateway(db)
		if err := gw.AutoMigrate(); err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return gw, cleanup, nil

	default:
		return gateway.NewMemory(), func() {}, nil
	}
}

package server

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/churnlens/churn-api/apps/api/constants"
	"github.com/churnlens/churn-api/apps/api/handlers"
	"github.com/churnlens/churn-api/libs/go/client/auth"
	awsclient "github.com/churnlens/churn-api/libs/go/client/aws"
	"github.com/churnlens/churn-api/libs/go/interfaces"
	"github.com/churnlens/churn-api/libs/go/logger"
	"github.com/churnlens/churn-api/libs/go/middleware"
	"github.com/churnlens/churn-api/libs/go/model"
	"github.com/churnlens/churn-api/libs/go/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handler Definitions
var (
	predictionHandler *handlers.PredictionHandler
	modelHandler      *handlers.ModelHandler
	usageHandler      *handlers.UsageHandler
	healthHandler     *handlers.HealthHandler

	// Clients
	authClient  *auth.BasicAuthClient
	redisClient *redis.Client
	dbPool      *pgxpool.Pool

	// Shared state
	appConfig   Config
	rateLimiter *middleware.RateLimiter
	usageLogger *logger.UsageLogger
)

// InitializeHandlers loads configuration, credentials and the model. Any
// failure here is fatal: the service never starts without a usable model.
func InitializeHandlers() Config {
	// Load environment variables from .env file for local development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err) // Use basic log before logger init
	}

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger.InitLogger(cfg.Stage)
	logger.Info("Initializing handlers for stage", zap.String("stage", cfg.Stage))

	ctx := context.Background()

	secretsClient, err := awsclient.NewSecretsManagerClient(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize AWS Secrets Manager client", zap.Error(err))
	}
	creds, err := secretsClient.GetBasicAuthCredentials(ctx)
	if err != nil {
		logger.Fatal("Failed to resolve API credentials", zap.Error(err))
	}

	// DATABASE_URL may be set directly or via an ARN
	if os.Getenv("DATABASE_URL_ARN") != "" || cfg.DatabaseURL != "" {
		cfg.DatabaseURL, err = secretsClient.GetSecretString(ctx, "DATABASE_URL_ARN", "DATABASE_URL")
		if err != nil {
			logger.Fatal("Failed to resolve DATABASE_URL", zap.Error(err))
		}
	}

	if err := Setup(ctx, cfg, creds); err != nil {
		logger.Fatal("Failed to initialize server", zap.Error(err))
	}
	return cfg
}

// Setup builds every handler from cfg and creds.
func Setup(ctx context.Context, cfg Config, creds awsclient.BasicAuthCredentials) error {
	appConfig = cfg

	var err error
	authClient, err = auth.NewBasicAuthClient(creds.Username, creds.Password)
	if err != nil {
		return fmt.Errorf("configuring basic auth: %w", err)
	}

	churnModel, err := model.Load(cfg.ModelPath)
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}
	info := churnModel.Info()
	logger.Info("Model loaded",
		zap.String("path", cfg.ModelPath),
		zap.String("model_type", info.ModelType),
		zap.String("version", info.Version),
		zap.Int("features", churnModel.NumFeatures()),
		zap.Float64("threshold", info.Threshold),
	)

	encoder := services.NewEncodingService(churnModel.Categories(services.PaymentMethodFeature))
	if err := encoder.CheckModelCompatibility(churnModel.FeatureNames()); err != nil {
		return err
	}

	usageLogger, err = logger.NewUsageLogger(cfg.UsageLogPath)
	if err != nil {
		return fmt.Errorf("opening usage log: %w", err)
	}

	stats := newUsageStatsStore(ctx, cfg)
	predictionService := services.NewPredictionService(encoder, churnModel, stats)

	handlerFactory := handlers.NewHandlerFactory(handlers.HandlerDependencies{
		PredictionService: predictionService,
		ModelInspector:    churnModel,
		UsageStats:        stats,
		UsageLog:          usageLogger,
	})
	predictionHandler = handlerFactory.NewPredictionHandler()
	modelHandler = handlerFactory.NewModelHandler()
	usageHandler = handlerFactory.NewUsageHandler()
	healthHandler = handlerFactory.NewHealthHandler()

	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	return nil
}

// newUsageStatsStore picks the first reachable backend: Postgres when
// DATABASE_URL is set, then Redis when REDIS_URL is set, then process memory.
func newUsageStatsStore(ctx context.Context, cfg Config) interfaces.UsageStatsStore {
	redisClient = nil
	dbPool = nil

	if cfg.DatabaseURL != "" {
		if store := newPostgresUsageStatsStore(ctx, cfg.DatabaseURL); store != nil {
			return store
		}
	}
	if cfg.RedisURL != "" {
		if store := newRedisUsageStatsStore(ctx, cfg.RedisURL); store != nil {
			return store
		}
	}

	logger.Info("Keeping usage stats in memory")
	return services.NewMemoryUsageStatsStore()
}

func newPostgresUsageStatsStore(ctx context.Context, dsn string) interfaces.UsageStatsStore {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := services.NewPostgresPool(pingCtx, dsn)
	if err != nil {
		logger.Warn("Invalid DATABASE_URL, skipping Postgres usage stats", zap.Error(err))
		return nil
	}
	if err := pool.Ping(pingCtx); err != nil {
		logger.Warn("Postgres unreachable, skipping Postgres usage stats", zap.Error(err))
		pool.Close()
		return nil
	}

	store := services.NewPostgresUsageStatsStore(pool)
	if err := store.EnsureSchema(pingCtx); err != nil {
		logger.Warn("Failed to prepare usage stats table", zap.Error(err))
		pool.Close()
		return nil
	}

	dbPool = pool
	logger.Info("Usage stats stored in Postgres", zap.String("host", pool.Config().ConnConfig.Host))
	return store
}

func newRedisUsageStatsStore(ctx context.Context, redisURL string) interfaces.UsageStatsStore {
	client, err := services.NewRedisClientFromURL(redisURL)
	if err != nil {
		logger.Warn("Invalid REDIS_URL, skipping Redis usage stats", zap.Error(err))
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable, skipping Redis usage stats", zap.Error(err))
		_ = client.Close()
		return nil
	}

	redisClient = client
	logger.Info("Usage stats stored in Redis", zap.String("addr", client.Options().Addr))
	return services.NewRedisUsageStatsStore(client)
}

func InitializeRoutes(router *gin.Engine) {
	router.Use(middleware.HTTPSRedirectMiddleware(appConfig.ForceHTTPS))
	router.Use(configureCORS(appConfig.CORSAllowedOrigins))
	router.Use(middleware.CorrelationIDMiddleware())

	// keyed by IP here, by username again once authenticated
	router.Use(rateLimiter.Middleware())

	router.Use(middleware.EnhancedLoggingMiddleware(appConfig.Development))
	if !appConfig.Development {
		router.Use(middleware.RequestLoggingMiddleware())
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET(constants.HealthPath, healthHandler.Health)
	router.GET("/:stage/health", healthHandler.Health)
	router.GET(constants.ReadyPath, healthHandler.Ready)

	// JSON syntax, then credentials, then the body schema
	authenticated := []gin.HandlerFunc{authClient.EnsureValidBasicAuth(), rateLimiter.Middleware()}
	predict := []gin.HandlerFunc{
		middleware.RequireWellFormedJSON(middleware.PredictionInputValidation),
		authenticated[0],
		authenticated[1],
		middleware.ValidateInput(middleware.PredictionInputValidation),
		predictionHandler.Predict,
	}

	router.POST(constants.PredictPath, predict...)

	v1 := router.Group("/api/v1")
	{
		v1.POST(constants.PredictPath, predict...)

		protected := v1.Group("/", authenticated...)
		{
			protected.GET("/model", modelHandler.GetModelInfo)
			protected.GET("/usage", usageHandler.GetUsage)
		}
	}
}

// Shutdown releases what Setup opened.
func Shutdown() {
	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	if err := usageLogger.Close(); err != nil {
		logger.Warn("Failed to close usage log", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	if dbPool != nil {
		dbPool.Close()
	}
	_ = logger.Sync()
}

func configureCORS(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.CorrelationIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.CorrelationIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	return cors.New(corsConfig)
}

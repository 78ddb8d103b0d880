package main

import (
  "context"
  "fmt"
  "os"
  "time"

  "github.com/sokolane/sokolane-backend/internal/cache"
  "github.com/sokolane/sokolane-backend/internal/config"
  "github.com/sokolane/sokolane-backend/internal/db"
  "github.com/sokolane/sokolane-backend/internal/handlers"
  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/middleware"
  "github.com/sokolane/sokolane-backend/internal/repos"
  "github.com/sokolane/sokolane-backend/internal/server"
  "github.com/sokolane/sokolane-backend/internal/services"
  "github.com/sokolane/sokolane-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  engineConfigPath := utils.GetEnv("ENGINE_CONFIG_PATH", "", log)

  engineCfg, err := config.LoadEngineConfig(engineConfigPath)
  if err != nil {
    log.Warn("Engine config load failed, using defaults", "error", err, "path", engineConfigPath)
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Redis (optional; the engine degrades to uncached reads without it)
  var snapshots *cache.SnapshotCache
  redisClient, err := cache.NewRedisClient(context.Background(), log)
  if err != nil {
    log.Warn("Redis init failed, recommendation caching disabled", "error", err)
  } else {
    snapshots = cache.NewSnapshotCache(redisClient, log, time.Duration(engineCfg.CacheTTLSeconds)*time.Second)
  }

  // Repos
  log.Info("Setting up repos from main...")
  creatorRepo := repos.NewCreatorRepo(thePG, log)
  behaviorEventRepo := repos.NewBehaviorEventRepo(thePG, log)
  creatorPreferencesRepo := repos.NewCreatorPreferencesRepo(thePG, log)
  creatorProductRepo := repos.NewCreatorProductRepo(thePG, log)
  dropshippingProductRepo := repos.NewDropshippingProductRepo(thePG, log)
  marketTrendRepo := repos.NewMarketTrendRepo(thePG, log)
  similarCreatorRepo := repos.NewSimilarCreatorRepo(thePG, log)
  productRecommendationRepo := repos.NewProductRecommendationRepo(thePG, log)

  // Services
  log.Info("Setting up services from main...")
  preferenceService := services.NewPreferenceService(thePG, log, creatorPreferencesRepo, creatorProductRepo)
  behaviorService := services.NewBehaviorService(thePG, log, behaviorEventRepo)
  trendService := services.NewTrendService(thePG, log, marketTrendRepo)
  similarityService := services.NewSimilarityService(thePG, log, engineCfg.Similarity, preferenceService, creatorPreferencesRepo, similarCreatorRepo)
  recommendationService := services.NewRecommendationService(
    thePG,
    log,
    engineCfg,
    preferenceService,
    creatorRepo,
    behaviorEventRepo,
    marketTrendRepo,
    similarCreatorRepo,
    dropshippingProductRepo,
    productRecommendationRepo,
    snapshots,
  )

  // Handlers
  log.Info("Setting up handlers from main...")
  recommendationHandler := handlers.NewRecommendationHandler(log, recommendationService)
  behaviorHandler := handlers.NewBehaviorHandler(log, behaviorService)
  preferencesHandler := handlers.NewPreferencesHandler(log, preferenceService)
  marketTrendHandler := handlers.NewMarketTrendHandler(log, trendService)
  similarityHandler := handlers.NewSimilarityHandler(log, similarityService)

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log, jwtSecretKey)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthMiddleware:        authMiddleware,
    RecommendationHandler: recommendationHandler,
    BehaviorHandler:       behaviorHandler,
    PreferencesHandler:    preferencesHandler,
    MarketTrendHandler:    marketTrendHandler,
    SimilarityHandler:     similarityHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Server listening", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
    os.Exit(1)
  }
}

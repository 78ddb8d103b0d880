package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/sokolane/sokolane-backend/internal/handlers"
  "github.com/sokolane/sokolane-backend/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware        *middleware.AuthMiddleware
  RecommendationHandler *handlers.RecommendationHandler
  BehaviorHandler       *handlers.BehaviorHandler
  PreferencesHandler    *handlers.PreferencesHandler
  MarketTrendHandler    *handlers.MarketTrendHandler
  SimilarityHandler     *handlers.SimilarityHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  api.Use(cfg.AuthMiddleware.RequireCreator())
  {
    api.GET("/recommendations", cfg.RecommendationHandler.GetRecommendations)
    api.POST("/recommendations/refresh", cfg.RecommendationHandler.RefreshRecommendations)
    api.POST("/behavior", cfg.BehaviorHandler.TrackBehavior)
    api.GET("/preferences", cfg.PreferencesHandler.GetPreferences)
    api.PUT("/preferences", cfg.PreferencesHandler.UpdatePreferences)
    api.GET("/market-trends", cfg.MarketTrendHandler.ListMarketTrends)
    api.POST("/similar-creators/recalculate", cfg.SimilarityHandler.RecalculateSimilarCreators)
  }

  return router
}

package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/services"
)

type MarketTrendHandler struct {
  log      *logger.Logger
  trendSvc services.TrendService
}

func NewMarketTrendHandler(log *logger.Logger, trendSvc services.TrendService) *MarketTrendHandler {
  return &MarketTrendHandler{
    log:      log.With("handler", "MarketTrendHandler"),
    trendSvc: trendSvc,
  }
}

// GET /api/market-trends?region=
func (h *MarketTrendHandler) ListMarketTrends(c *gin.Context) {
  trends, err := h.trendSvc.List(c.Request.Context(), nil, c.Query("region"))
  if err != nil {
    h.log.Error("ListMarketTrends failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "load_trends_failed", err)
    return
  }
  RespondOK(c, gin.H{"trends": trends})
}

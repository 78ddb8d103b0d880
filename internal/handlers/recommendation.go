package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/requestdata"
  "github.com/sokolane/sokolane-backend/internal/services"
)

type RecommendationHandler struct {
  log    *logger.Logger
  recSvc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService) *RecommendationHandler {
  return &RecommendationHandler{
    log:    log.With("handler", "RecommendationHandler"),
    recSvc: recSvc,
  }
}

// GET /api/recommendations?type=&limit=
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.CreatorID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }

  limit := parseLimit(c.Query("limit"))
  typ := c.Query("type")

  items, err := h.recSvc.GetRecommendations(c.Request.Context(), nil, rd.CreatorID, limit, typ)
  if err != nil {
    h.log.Error("GetRecommendations failed", "error", err, "creator_id", rd.CreatorID)
    RespondError(c, http.StatusInternalServerError, "recommendations_failed", err)
    return
  }
  RespondOK(c, gin.H{"recommendations": items})
}

// POST /api/recommendations/refresh
// Recomputes the snapshot ignoring any cached result.
func (h *RecommendationHandler) RefreshRecommendations(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.CreatorID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }

  limit := parseLimit(c.Query("limit"))
  typ := c.Query("type")

  items, err := h.recSvc.RefreshRecommendations(c.Request.Context(), nil, rd.CreatorID, limit, typ)
  if err != nil {
    h.log.Error("RefreshRecommendations failed", "error", err, "creator_id", rd.CreatorID)
    RespondError(c, http.StatusInternalServerError, "recommendations_failed", err)
    return
  }
  RespondOK(c, gin.H{"recommendations": items})
}

// parseLimit treats missing or malformed limits as "use the default".
func parseLimit(raw string) int {
  if raw == "" {
    return 0
  }
  limit, err := strconv.Atoi(raw)
  if err != nil || limit < 0 {
    return 0
  }
  return limit
}

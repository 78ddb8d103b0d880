package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/requestdata"
  "github.com/sokolane/sokolane-backend/internal/services"
)

type SimilarityHandler struct {
  log           *logger.Logger
  similaritySvc services.SimilarityService
}

func NewSimilarityHandler(log *logger.Logger, similaritySvc services.SimilarityService) *SimilarityHandler {
  return &SimilarityHandler{
    log:           log.With("handler", "SimilarityHandler"),
    similaritySvc: similaritySvc,
  }
}

// POST /api/similar-creators/recalculate
// Explicit trigger; similarity is never recomputed as a read side effect.
func (h *SimilarityHandler) RecalculateSimilarCreators(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.CreatorID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }

  edges, err := h.similaritySvc.CalculateSimilarCreators(c.Request.Context(), nil, rd.CreatorID)
  if err != nil {
    h.log.Error("RecalculateSimilarCreators failed", "error", err, "creator_id", rd.CreatorID)
    RespondError(c, http.StatusInternalServerError, "similarity_failed", err)
    return
  }
  RespondOK(c, gin.H{"similar_creators": edges})
}

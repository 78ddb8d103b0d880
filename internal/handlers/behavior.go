package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/requestdata"
  "github.com/sokolane/sokolane-backend/internal/services"
)

type BehaviorHandler struct {
  log         *logger.Logger
  behaviorSvc services.BehaviorService
}

func NewBehaviorHandler(log *logger.Logger, behaviorSvc services.BehaviorService) *BehaviorHandler {
  return &BehaviorHandler{
    log:         log.With("handler", "BehaviorHandler"),
    behaviorSvc: behaviorSvc,
  }
}

type trackBehaviorRequest struct {
  Action     string                 `json:"action" binding:"required"`
  EntityType string                 `json:"entity_type" binding:"required"`
  EntityID   uuid.UUID              `json:"entity_id"`
  Metadata   map[string]interface{} `json:"metadata"`
  SessionID  *string                `json:"session_id"`
}

// POST /api/behavior
// Tracking is best-effort: the handler answers success for any well-formed
// request even if the write behind it fails.
func (h *BehaviorHandler) TrackBehavior(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.CreatorID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }

  var req trackBehaviorRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }

  h.behaviorSvc.Track(c.Request.Context(), nil, services.TrackBehaviorInput{
    CreatorID:  rd.CreatorID,
    Action:     req.Action,
    EntityType: req.EntityType,
    EntityID:   req.EntityID,
    Metadata:   req.Metadata,
    SessionID:  req.SessionID,
    IPAddress:  c.ClientIP(),
    UserAgent:  c.Request.UserAgent(),
  })

  RespondOK(c, gin.H{"success": true})
}

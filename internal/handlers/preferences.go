package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/requestdata"
  "github.com/sokolane/sokolane-backend/internal/services"
)

type PreferencesHandler struct {
  log     *logger.Logger
  prefSvc services.PreferenceService
}

func NewPreferencesHandler(log *logger.Logger, prefSvc services.PreferenceService) *PreferencesHandler {
  return &PreferencesHandler{
    log:     log.With("handler", "PreferencesHandler"),
    prefSvc: prefSvc,
  }
}

// GET /api/preferences
// Returns the creator's profile, inferring one from their catalog if absent.
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.CreatorID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }

  prefs, err := h.prefSvc.GetOrInfer(c.Request.Context(), nil, rd.CreatorID)
  if err != nil {
    h.log.Error("GetPreferences failed", "error", err, "creator_id", rd.CreatorID)
    RespondError(c, http.StatusInternalServerError, "load_preferences_failed", err)
    return
  }
  RespondOK(c, gin.H{"preferences": prefs})
}

// PUT /api/preferences
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.CreatorID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }

  var input services.UpdatePreferencesInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }

  prefs, err := h.prefSvc.Update(c.Request.Context(), nil, rd.CreatorID, input)
  if err != nil {
    h.log.Error("UpdatePreferences failed", "error", err, "creator_id", rd.CreatorID)
    RespondError(c, http.StatusInternalServerError, "update_preferences_failed", err)
    return
  }
  RespondOK(c, gin.H{"preferences": prefs})
}

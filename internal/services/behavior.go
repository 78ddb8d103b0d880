package services

import (
  "context"
  "encoding/json"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/repos"
  "github.com/sokolane/sokolane-backend/internal/types"
)

// TrackBehaviorInput captures one creator interaction with a catalog entity.
// Documented metadata keys: "category" (string) on view_product events,
// "query" (string) on search events, "source" (string) on add_to_store.
type TrackBehaviorInput struct {
  CreatorID  uuid.UUID
  Action     string
  EntityType string
  EntityID   uuid.UUID
  Metadata   map[string]interface{}
  SessionID  *string
  IPAddress  string
  UserAgent  string
}

type BehaviorService interface {
  // Track appends a behavior event. It is best-effort telemetry: failures are
  // logged and swallowed so tracking can never break the flow it is attached to.
  Track(ctx context.Context, tx *gorm.DB, input TrackBehaviorInput)
}

type behaviorService struct {
  db           *gorm.DB
  log          *logger.Logger
  behaviorRepo repos.BehaviorEventRepo
}

func NewBehaviorService(db *gorm.DB, baseLog *logger.Logger, behaviorRepo repos.BehaviorEventRepo) BehaviorService {
  serviceLog := baseLog.With("service", "BehaviorService")
  return &behaviorService{
    db:           db,
    log:          serviceLog,
    behaviorRepo: behaviorRepo,
  }
}

func (s *behaviorService) Track(ctx context.Context, tx *gorm.DB, input TrackBehaviorInput) {
  if input.CreatorID == uuid.Nil || input.Action == "" {
    s.log.Debug("Behavior event dropped, missing creator or action", "action", input.Action)
    return
  }

  var meta datatypes.JSON
  if len(input.Metadata) > 0 {
    raw, err := json.Marshal(input.Metadata)
    if err != nil {
      s.log.Debug("Behavior metadata not serializable, dropping metadata", "error", err)
    } else {
      meta = raw
    }
  }

  event := &types.BehaviorEvent{
    ID:         uuid.New(),
    CreatorID:  input.CreatorID,
    Action:     input.Action,
    EntityType: input.EntityType,
    EntityID:   input.EntityID,
    Metadata:   meta,
    SessionID:  input.SessionID,
    IPAddress:  input.IPAddress,
    UserAgent:  input.UserAgent,
    CreatedAt:  time.Now(),
  }

  if _, err := s.behaviorRepo.Create(ctx, tx, []*types.BehaviorEvent{event}); err != nil {
    s.log.Warn("Behavior tracking write failed", "error", err, "creator_id", input.CreatorID, "action", input.Action)
  }
}

// behaviorMetadataString pulls a string value out of an event's metadata bag.
func behaviorMetadataString(e *types.BehaviorEvent, key string) (string, bool) {
  if len(e.Metadata) == 0 {
    return "", false
  }
  var bag map[string]interface{}
  if err := json.Unmarshal(e.Metadata, &bag); err != nil {
    return "", false
  }
  v, ok := bag[key].(string)
  return v, ok
}

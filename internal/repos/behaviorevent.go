package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/types"
)

// EntityCount is a grouped count of behavior events per entity id.
type EntityCount struct {
  EntityID uuid.UUID `gorm:"column:entity_id"`
  Count    int64     `gorm:"column:count"`
}

type BehaviorEventRepo interface {
  Create(ctx context.Context, tx *gorm.DB, events []*types.BehaviorEvent) ([]*types.BehaviorEvent, error)
  GetRecentByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, limit int) ([]*types.BehaviorEvent, error)
  CountByEntityForCreators(ctx context.Context, tx *gorm.DB, creatorIDs []uuid.UUID, action, entityType string) ([]*EntityCount, error)
}

type behaviorEventRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewBehaviorEventRepo(db *gorm.DB, baseLog *logger.Logger) BehaviorEventRepo {
  repoLog := baseLog.With("repo", "BehaviorEventRepo")
  return &behaviorEventRepo{db: db, log: repoLog}
}

func (r *behaviorEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.BehaviorEvent) ([]*types.BehaviorEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(events) == 0 {
    return []*types.BehaviorEvent{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
    return nil, err
  }
  return events, nil
}

func (r *behaviorEventRepo) GetRecentByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, limit int) ([]*types.BehaviorEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.BehaviorEvent
  if creatorID == uuid.Nil {
    return results, nil
  }

  q := transaction.WithContext(ctx).
    Where("creator_id = ?", creatorID).
    Order("created_at DESC")
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *behaviorEventRepo) CountByEntityForCreators(ctx context.Context, tx *gorm.DB, creatorIDs []uuid.UUID, action, entityType string) ([]*EntityCount, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*EntityCount
  if len(creatorIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.BehaviorEvent{}).
    Select("entity_id, COUNT(*) AS count").
    Where("creator_id IN ? AND action = ? AND entity_type = ?", creatorIDs, action, entityType).
    Group("entity_id").
    Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

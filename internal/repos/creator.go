package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/types"
)

type CreatorRepo interface {
  Exists(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) (bool, error)
}

type creatorRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCreatorRepo(db *gorm.DB, baseLog *logger.Logger) CreatorRepo {
  repoLog := baseLog.With("repo", "CreatorRepo")
  return &creatorRepo{db: db, log: repoLog}
}

func (r *creatorRepo) Exists(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if creatorID == uuid.Nil {
    return false, nil
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Creator{}).
    Where("id = ?", creatorID).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

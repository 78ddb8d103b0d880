package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/types"
)

type CreatorProductRepo interface {
  GetByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.CreatorProduct, error)
}

type creatorProductRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCreatorProductRepo(db *gorm.DB, baseLog *logger.Logger) CreatorProductRepo {
  repoLog := baseLog.With("repo", "CreatorProductRepo")
  return &creatorProductRepo{db: db, log: repoLog}
}

func (r *creatorProductRepo) GetByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.CreatorProduct, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CreatorProduct
  if creatorID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("creator_id = ?", creatorID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

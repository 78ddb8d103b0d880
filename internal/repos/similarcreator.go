package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/types"
)

type SimilarCreatorRepo interface {
  GetTopByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, limit int) ([]*types.SimilarCreator, error)
  ReplaceForCreator(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, edges []*types.SimilarCreator) error
}

type similarCreatorRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSimilarCreatorRepo(db *gorm.DB, baseLog *logger.Logger) SimilarCreatorRepo {
  repoLog := baseLog.With("repo", "SimilarCreatorRepo")
  return &similarCreatorRepo{db: db, log: repoLog}
}

func (r *similarCreatorRepo) GetTopByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, limit int) ([]*types.SimilarCreator, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.SimilarCreator
  if creatorID == uuid.Nil {
    return results, nil
  }

  q := transaction.WithContext(ctx).
    Where("creator_id = ?", creatorID).
    Order("similarity_score DESC")
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// ReplaceForCreator deletes the creator's outgoing edges and inserts the new
// set inside one transaction, so a concurrent reader never observes a partial
// edge set.
func (r *similarCreatorRepo) ReplaceForCreator(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, edges []*types.SimilarCreator) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).Transaction(func(innerTx *gorm.DB) error {
    if err := innerTx.
      Where("creator_id = ?", creatorID).
      Delete(&types.SimilarCreator{}).Error; err != nil {
      return err
    }
    if len(edges) == 0 {
      return nil
    }
    return innerTx.Create(&edges).Error
  })
}

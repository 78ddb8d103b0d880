package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/types"
)

type ProductRecommendationRepo interface {
  GetActiveByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.ProductRecommendation, error)
  CountByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) (int64, error)
  ReplaceForCreator(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, recs []*types.ProductRecommendation) error
}

type productRecommendationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProductRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) ProductRecommendationRepo {
  repoLog := baseLog.With("repo", "ProductRecommendationRepo")
  return &productRecommendationRepo{db: db, log: repoLog}
}

func (r *productRecommendationRepo) GetActiveByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.ProductRecommendation, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ProductRecommendation
  if creatorID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("creator_id = ? AND is_active = ?", creatorID, true).
    Order("score DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *productRecommendationRepo) CountByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.ProductRecommendation{}).
    Where("creator_id = ?", creatorID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

// ReplaceForCreator swaps the creator's snapshot in one transaction: the old
// rows are deleted and the fresh ranked set inserted, so readers never see an
// empty or half-written snapshot between the two steps.
func (r *productRecommendationRepo) ReplaceForCreator(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, recs []*types.ProductRecommendation) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).Transaction(func(innerTx *gorm.DB) error {
    if err := innerTx.
      Where("creator_id = ?", creatorID).
      Delete(&types.ProductRecommendation{}).Error; err != nil {
      return err
    }
    if len(recs) == 0 {
      return nil
    }
    return innerTx.Create(&recs).Error
  })
}

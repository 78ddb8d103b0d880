package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/types"
)

type DropshippingProductRepo interface {
  GetEligibleByCategories(ctx context.Context, tx *gorm.DB, categories []string, limit int) ([]*types.DropshippingProduct, error)
  GetEligibleByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.DropshippingProduct, error)
}

type dropshippingProductRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDropshippingProductRepo(db *gorm.DB, baseLog *logger.Logger) DropshippingProductRepo {
  repoLog := baseLog.With("repo", "DropshippingProductRepo")
  return &dropshippingProductRepo{db: db, log: repoLog}
}

// eligible scopes any dropshipping product query to active products from
// approved partners.
func (r *dropshippingProductRepo) eligible(ctx context.Context, transaction *gorm.DB) *gorm.DB {
  return transaction.WithContext(ctx).
    Joins("JOIN dropshipping_partner ON dropshipping_partner.id = dropshipping_product.partner_id").
    Where("dropshipping_product.is_active = ?", true).
    Where("dropshipping_partner.status = ?", types.PartnerStatusApproved).
    Preload("Partner")
}

func (r *dropshippingProductRepo) GetEligibleByCategories(ctx context.Context, tx *gorm.DB, categories []string, limit int) ([]*types.DropshippingProduct, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.DropshippingProduct
  if len(categories) == 0 {
    return results, nil
  }

  q := r.eligible(ctx, transaction).
    Where("dropshipping_product.category IN ?", categories)
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *dropshippingProductRepo) GetEligibleByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.DropshippingProduct, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.DropshippingProduct
  if len(ids) == 0 {
    return results, nil
  }

  if err := r.eligible(ctx, transaction).
    Where("dropshipping_product.id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

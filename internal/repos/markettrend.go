package repos

import (
  "context"

  "gorm.io/gorm"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/types"
)

type MarketTrendRepo interface {
  GetTopForPeriod(ctx context.Context, tx *gorm.DB, period string, minScore float64, limit int) ([]*types.MarketTrend, error)
  GetAllOrdered(ctx context.Context, tx *gorm.DB) ([]*types.MarketTrend, error)
  List(ctx context.Context, tx *gorm.DB, period, region string) ([]*types.MarketTrend, error)
}

type marketTrendRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMarketTrendRepo(db *gorm.DB, baseLog *logger.Logger) MarketTrendRepo {
  repoLog := baseLog.With("repo", "MarketTrendRepo")
  return &marketTrendRepo{db: db, log: repoLog}
}

func (r *marketTrendRepo) GetTopForPeriod(ctx context.Context, tx *gorm.DB, period string, minScore float64, limit int) ([]*types.MarketTrend, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.MarketTrend
  q := transaction.WithContext(ctx).
    Where("period = ? AND trend_score >= ?", period, minScore).
    Order("trend_score DESC")
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetAllOrdered returns every trend row ordered by trend_score descending.
// Seasonality month membership lives inside a JSON column, so peak-month
// filtering happens in the service layer where it stays portable across
// postgres and the sqlite test driver.
func (r *marketTrendRepo) GetAllOrdered(ctx context.Context, tx *gorm.DB) ([]*types.MarketTrend, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.MarketTrend
  if err := transaction.WithContext(ctx).
    Order("trend_score DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *marketTrendRepo) List(ctx context.Context, tx *gorm.DB, period, region string) ([]*types.MarketTrend, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.MarketTrend
  q := transaction.WithContext(ctx).Order("trend_score DESC")
  if period != "" {
    q = q.Where("period = ?", period)
  }
  if region != "" {
    q = q.Where("region = ?", region)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

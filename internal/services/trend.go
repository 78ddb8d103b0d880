package services

import (
  "context"
  "fmt"
  "time"

  "gorm.io/gorm"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/repos"
  "github.com/sokolane/sokolane-backend/internal/types"
)

type TrendService interface {
  List(ctx context.Context, tx *gorm.DB, region string) ([]*types.MarketTrend, error)
}

type trendService struct {
  db        *gorm.DB
  log       *logger.Logger
  trendRepo repos.MarketTrendRepo
  now       func() time.Time
}

func NewTrendService(db *gorm.DB, baseLog *logger.Logger, trendRepo repos.MarketTrendRepo) TrendService {
  serviceLog := baseLog.With("service", "TrendService")
  return &trendService{
    db:        db,
    log:       serviceLog,
    trendRepo: trendRepo,
    now:       time.Now,
  }
}

// List returns the current period's trends, optionally scoped to a region.
func (s *trendService) List(ctx context.Context, tx *gorm.DB, region string) ([]*types.MarketTrend, error) {
  period := s.now().Format("2006-01")
  trends, err := s.trendRepo.List(ctx, tx, period, region)
  if err != nil {
    s.log.Error("List market trends failed", "error", err, "period", period, "region", region)
    return nil, fmt.Errorf("list market trends: %w", err)
  }
  return trends, nil
}

package repos

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/types"
)

type CreatorPreferencesRepo interface {
  GetByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) (*types.CreatorPreferences, error)
  GetAllExcept(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.CreatorPreferences, error)
  Create(ctx context.Context, tx *gorm.DB, prefs *types.CreatorPreferences) (*types.CreatorPreferences, error)
  Save(ctx context.Context, tx *gorm.DB, prefs *types.CreatorPreferences) error
}

type creatorPreferencesRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCreatorPreferencesRepo(db *gorm.DB, baseLog *logger.Logger) CreatorPreferencesRepo {
  repoLog := baseLog.With("repo", "CreatorPreferencesRepo")
  return &creatorPreferencesRepo{db: db, log: repoLog}
}

// GetByCreatorID returns (nil, nil) when no row exists so callers can trigger
// lazy inference without sentinel-error plumbing.
func (r *creatorPreferencesRepo) GetByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) (*types.CreatorPreferences, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if creatorID == uuid.Nil {
    return nil, nil
  }

  var prefs types.CreatorPreferences
  err := transaction.WithContext(ctx).
    Where("creator_id = ?", creatorID).
    First(&prefs).Error
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &prefs, nil
}

func (r *creatorPreferencesRepo) GetAllExcept(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.CreatorPreferences, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CreatorPreferences
  if err := transaction.WithContext(ctx).
    Where("creator_id <> ?", creatorID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *creatorPreferencesRepo) Create(ctx context.Context, tx *gorm.DB, prefs *types.CreatorPreferences) (*types.CreatorPreferences, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if prefs == nil {
    return nil, nil
  }

  if err := transaction.WithContext(ctx).Create(prefs).Error; err != nil {
    return nil, err
  }
  return prefs, nil
}

func (r *creatorPreferencesRepo) Save(ctx context.Context, tx *gorm.DB, prefs *types.CreatorPreferences) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if prefs == nil {
    return nil
  }

  return transaction.WithContext(ctx).Save(prefs).Error
}

package services

import (
  "context"
  "fmt"
  "sort"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/repos"
  "github.com/sokolane/sokolane-backend/internal/types"
)

// Defaults applied when a creator has no catalog to infer from.
const (
  fallbackBudgetMin     = 500
  fallbackBudgetMax     = 10000
  fallbackBudgetAverage = 2500

  defaultTargetAudience = "general"
  defaultLocation       = "kenya"
  defaultBrandStyle     = "affordable"

  inferredCategoryCount = 3
)

// UpdatePreferencesInput is a partial update; nil fields are left untouched.
type UpdatePreferencesInput struct {
  PreferredCategories *[]string `json:"preferred_categories,omitempty"`
  BudgetMin           *int64    `json:"budget_min,omitempty"`
  BudgetMax           *int64    `json:"budget_max,omitempty"`
  BudgetAverage       *int64    `json:"budget_average,omitempty"`
  TargetAudience      *string   `json:"target_audience,omitempty"`
  Location            *string   `json:"location,omitempty"`
  Interests           *[]string `json:"interests,omitempty"`
  BrandStyle          *string   `json:"brand_style,omitempty"`
}

type PreferenceService interface {
  GetOrInfer(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) (*types.CreatorPreferences, error)
  Update(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, input UpdatePreferencesInput) (*types.CreatorPreferences, error)
}

type preferenceService struct {
  db          *gorm.DB
  log         *logger.Logger
  prefsRepo   repos.CreatorPreferencesRepo
  productRepo repos.CreatorProductRepo
}

func NewPreferenceService(
  db *gorm.DB,
  baseLog *logger.Logger,
  prefsRepo repos.CreatorPreferencesRepo,
  productRepo repos.CreatorProductRepo,
) PreferenceService {
  serviceLog := baseLog.With("service", "PreferenceService")
  return &preferenceService{
    db:          db,
    log:         serviceLog,
    prefsRepo:   prefsRepo,
    productRepo: productRepo,
  }
}

// GetOrInfer loads the creator's shopping profile, inferring and persisting
// one from their own catalog on first access.
func (s *preferenceService) GetOrInfer(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) (*types.CreatorPreferences, error) {
  if creatorID == uuid.Nil {
    return nil, fmt.Errorf("creator id is required")
  }

  prefs, err := s.prefsRepo.GetByCreatorID(ctx, tx, creatorID)
  if err != nil {
    return nil, fmt.Errorf("load preferences: %w", err)
  }
  if prefs != nil {
    return prefs, nil
  }

  inferred, err := s.inferFromCatalog(ctx, tx, creatorID)
  if err != nil {
    return nil, err
  }
  if _, err := s.prefsRepo.Create(ctx, tx, inferred); err != nil {
    // The in-memory profile is still usable; a failed write (unknown creator
    // hitting the FK, transient DB error) must not fail the read that
    // triggered inference.
    s.log.Warn("Persist inferred preferences failed", "error", err, "creator_id", creatorID)
    return inferred, nil
  }
  s.log.Info("Inferred preferences for creator", "creator_id", creatorID, "categories", []string(inferred.PreferredCategories))
  return inferred, nil
}

func (s *preferenceService) inferFromCatalog(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) (*types.CreatorPreferences, error) {
  products, err := s.productRepo.GetByCreatorID(ctx, tx, creatorID)
  if err != nil {
    return nil, fmt.Errorf("load creator catalog: %w", err)
  }

  categories := topCategories(products, inferredCategoryCount)
  budgetMin, budgetMax, budgetAvg := budgetFromCatalog(products)

  now := time.Now()
  return &types.CreatorPreferences{
    ID:                  uuid.New(),
    CreatorID:           creatorID,
    PreferredCategories: datatypes.NewJSONSlice(categories),
    BudgetMin:           budgetMin,
    BudgetMax:           budgetMax,
    BudgetAverage:       budgetAvg,
    TargetAudience:      defaultTargetAudience,
    Location:            defaultLocation,
    Interests:           datatypes.NewJSONSlice(categories),
    BrandStyle:          defaultBrandStyle,
    CreatedAt:           now,
    UpdatedAt:           now,
  }, nil
}

// topCategories ranks catalog categories by frequency, breaking ties
// alphabetically so inference stays deterministic.
func topCategories(products []*types.CreatorProduct, n int) []string {
  freq := map[string]int{}
  for _, p := range products {
    if p.Category != "" {
      freq[p.Category]++
    }
  }

  ranked := make([]string, 0, len(freq))
  for c := range freq {
    ranked = append(ranked, c)
  }
  sort.Slice(ranked, func(i, j int) bool {
    if freq[ranked[i]] != freq[ranked[j]] {
      return freq[ranked[i]] > freq[ranked[j]]
    }
    return ranked[i] < ranked[j]
  })

  if len(ranked) > n {
    ranked = ranked[:n]
  }
  return ranked
}

func budgetFromCatalog(products []*types.CreatorProduct) (int64, int64, int64) {
  var (
    min, max, sum int64
    priced        int64
  )
  for _, p := range products {
    if p.Price <= 0 {
      continue
    }
    if priced == 0 || p.Price < min {
      min = p.Price
    }
    if p.Price > max {
      max = p.Price
    }
    sum += p.Price
    priced++
  }
  if priced == 0 {
    return fallbackBudgetMin, fallbackBudgetMax, fallbackBudgetAverage
  }
  return min, max, sum / priced
}

func (s *preferenceService) Update(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, input UpdatePreferencesInput) (*types.CreatorPreferences, error) {
  prefs, err := s.GetOrInfer(ctx, tx, creatorID)
  if err != nil {
    return nil, err
  }

  if input.PreferredCategories != nil {
    prefs.PreferredCategories = datatypes.NewJSONSlice(*input.PreferredCategories)
  }
  if input.BudgetMin != nil {
    prefs.BudgetMin = *input.BudgetMin
  }
  if input.BudgetMax != nil {
    prefs.BudgetMax = *input.BudgetMax
  }
  if input.BudgetAverage != nil {
    prefs.BudgetAverage = *input.BudgetAverage
  }
  if input.TargetAudience != nil {
    prefs.TargetAudience = *input.TargetAudience
  }
  if input.Location != nil {
    prefs.Location = *input.Location
  }
  if input.Interests != nil {
    prefs.Interests = datatypes.NewJSONSlice(*input.Interests)
  }
  if input.BrandStyle != nil {
    prefs.BrandStyle = *input.BrandStyle
  }
  prefs.UpdatedAt = time.Now()

  if err := s.prefsRepo.Save(ctx, tx, prefs); err != nil {
    s.log.Error("Update preferences failed", "error", err, "creator_id", creatorID)
    return nil, fmt.Errorf("save preferences: %w", err)
  }
  return prefs, nil
}

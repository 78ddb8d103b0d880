package services

import (
  "context"
  "fmt"
  "sort"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/sokolane/sokolane-backend/internal/config"
  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/repos"
  "github.com/sokolane/sokolane-backend/internal/types"
)

type SimilarityService interface {
  // CalculateSimilarCreators recomputes the creator's outgoing similarity
  // edges against every other creator and replaces them wholesale. It is
  // O(creators) per call and only runs when explicitly triggered.
  CalculateSimilarCreators(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.SimilarCreator, error)
}

type similarityService struct {
  db          *gorm.DB
  log         *logger.Logger
  cfg         config.SimilarityConfig
  prefService PreferenceService
  prefsRepo   repos.CreatorPreferencesRepo
  similarRepo repos.SimilarCreatorRepo
  now         func() time.Time
}

func NewSimilarityService(
  db *gorm.DB,
  baseLog *logger.Logger,
  cfg config.SimilarityConfig,
  prefService PreferenceService,
  prefsRepo repos.CreatorPreferencesRepo,
  similarRepo repos.SimilarCreatorRepo,
) SimilarityService {
  serviceLog := baseLog.With("service", "SimilarityService")
  return &similarityService{
    db:          db,
    log:         serviceLog,
    cfg:         cfg,
    prefService: prefService,
    prefsRepo:   prefsRepo,
    similarRepo: similarRepo,
    now:         time.Now,
  }
}

func (s *similarityService) CalculateSimilarCreators(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.SimilarCreator, error) {
  if creatorID == uuid.Nil {
    return nil, fmt.Errorf("creator id is required")
  }

  mine, err := s.prefService.GetOrInfer(ctx, tx, creatorID)
  if err != nil {
    return nil, fmt.Errorf("resolve own preferences: %w", err)
  }

  others, err := s.prefsRepo.GetAllExcept(ctx, tx, creatorID)
  if err != nil {
    return nil, fmt.Errorf("load peer preferences: %w", err)
  }

  calculatedAt := s.now()
  edges := make([]*types.SimilarCreator, 0)
  for _, theirs := range others {
    score, factors := s.pairScore(mine, theirs)
    if score <= s.cfg.MinPersistScore {
      continue
    }
    edges = append(edges, &types.SimilarCreator{
      ID:                uuid.New(),
      CreatorID:         creatorID,
      SimilarCreatorID:  theirs.CreatorID,
      SimilarityScore:   score,
      SimilarityFactors: datatypes.NewJSONSlice(factors),
      CalculatedAt:      calculatedAt,
    })
  }

  sort.SliceStable(edges, func(i, j int) bool {
    return edges[i].SimilarityScore > edges[j].SimilarityScore
  })

  if err := s.similarRepo.ReplaceForCreator(ctx, tx, creatorID, edges); err != nil {
    s.log.Error("Replace similarity edges failed", "error", err, "creator_id", creatorID)
    return nil, fmt.Errorf("replace similarity edges: %w", err)
  }

  s.log.Info("Recalculated similar creators", "creator_id", creatorID, "edges", len(edges))
  return edges, nil
}

// pairScore scores one directed pair: shared preferred categories weigh
// heaviest, then matching audience, location and brand style. The total is
// clamped to [0, 100].
func (s *similarityService) pairScore(mine, theirs *types.CreatorPreferences) (float64, []string) {
  var (
    score   float64
    factors []string
  )

  shared := sharedCategories(mine.PreferredCategories, theirs.PreferredCategories)
  if len(shared) > 0 {
    score += float64(len(shared)) * s.cfg.CategoryPoints
    factors = append(factors, fmt.Sprintf("%d shared categories", len(shared)))
  }
  if mine.Location != "" && mine.Location == theirs.Location {
    score += s.cfg.LocationPoints
    factors = append(factors, "same location")
  }
  if mine.TargetAudience != "" && mine.TargetAudience == theirs.TargetAudience {
    score += s.cfg.AudiencePoints
    factors = append(factors, "same target audience")
  }
  if mine.BrandStyle != "" && mine.BrandStyle == theirs.BrandStyle {
    score += s.cfg.StylePoints
    factors = append(factors, "same brand style")
  }

  if score > 100 {
    score = 100
  }
  if score < 0 {
    score = 0
  }
  return score, factors
}

func sharedCategories(a, b []string) []string {
  inA := make(map[string]struct{}, len(a))
  for _, c := range a {
    inA[c] = struct{}{}
  }
  var shared []string
  seen := map[string]struct{}{}
  for _, c := range b {
    if _, ok := inA[c]; !ok {
      continue
    }
    if _, dup := seen[c]; dup {
      continue
    }
    seen[c] = struct{}{}
    shared = append(shared, c)
  }
  return shared
}

package services

import (
  "context"
  "encoding/json"
  "fmt"
  "sort"
  "strconv"
  "time"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/sokolane/sokolane-backend/internal/cache"
  "github.com/sokolane/sokolane-backend/internal/config"
  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/repos"
  "github.com/sokolane/sokolane-backend/internal/types"
)

const (
  RecommendationTypeAll      = "all"
  defaultRecommendationLimit = 20
)

// PartnerSummary is the partner slice of a recommended item payload.
type PartnerSummary struct {
  ID   uuid.UUID `json:"id"`
  Name string    `json:"name"`
}

// RecommendedItem is the wire shape of one ranked recommendation.
type RecommendedItem struct {
  ID          uuid.UUID              `json:"id"`
  Type        string                 `json:"type"`
  ProductType string                 `json:"product_type"`
  Name        string                 `json:"name"`
  Description string                 `json:"description"`
  Price       int64                  `json:"price"`
  Images      datatypes.JSON         `json:"images,omitempty"`
  Category    string                 `json:"category"`
  Score       float64                `json:"score"`
  Reason      string                 `json:"reason"`
  Metadata    map[string]interface{} `json:"metadata,omitempty"`
  Partner     *PartnerSummary        `json:"partner,omitempty"`
}

// scoredCandidate is a strategy proposal before merge/dedup/rank.
type scoredCandidate struct {
  recommendationType string
  product            *types.DropshippingProduct
  score              float64
  reason             string
  metadata           map[string]interface{}
}

type RecommendationService interface {
  GetRecommendations(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, limit int, typ string) ([]*RecommendedItem, error)
  RefreshRecommendations(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, limit int, typ string) ([]*RecommendedItem, error)
}

type recommendationService struct {
  db            *gorm.DB
  log           *logger.Logger
  cfg           config.EngineConfig
  prefService   PreferenceService
  creatorRepo   repos.CreatorRepo
  behaviorRepo  repos.BehaviorEventRepo
  trendRepo     repos.MarketTrendRepo
  similarRepo   repos.SimilarCreatorRepo
  dropRepo      repos.DropshippingProductRepo
  recRepo       repos.ProductRecommendationRepo
  snapshots     *cache.SnapshotCache
  now           func() time.Time
}

func NewRecommendationService(
  db *gorm.DB,
  baseLog *logger.Logger,
  cfg config.EngineConfig,
  prefService PreferenceService,
  creatorRepo repos.CreatorRepo,
  behaviorRepo repos.BehaviorEventRepo,
  trendRepo repos.MarketTrendRepo,
  similarRepo repos.SimilarCreatorRepo,
  dropRepo repos.DropshippingProductRepo,
  recRepo repos.ProductRecommendationRepo,
  snapshots *cache.SnapshotCache,
) RecommendationService {
  serviceLog := baseLog.With("service", "RecommendationService")
  return &recommendationService{
    db:           db,
    log:          serviceLog,
    cfg:          cfg,
    prefService:  prefService,
    creatorRepo:  creatorRepo,
    behaviorRepo: behaviorRepo,
    trendRepo:    trendRepo,
    similarRepo:  similarRepo,
    dropRepo:     dropRepo,
    recRepo:      recRepo,
    snapshots:    snapshots,
    now:          time.Now,
  }
}

var strategyOrder = []string{
  types.RecommendationTypeTrending,
  types.RecommendationTypePersonalized,
  types.RecommendationTypeSimilarCreators,
  types.RecommendationTypeSeasonal,
}

func validRecommendationType(typ string) bool {
  if typ == RecommendationTypeAll {
    return true
  }
  for _, s := range strategyOrder {
    if s == typ {
      return true
    }
  }
  return false
}

// GetRecommendations returns the ranked recommendation list for a creator,
// serving from the snapshot cache when possible.
func (s *recommendationService) GetRecommendations(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, limit int, typ string) ([]*RecommendedItem, error) {
  limit, typ = normalizeRequest(limit, typ)
  if !validRecommendationType(typ) {
    // Malformed filters degrade to an empty result, not an error.
    s.log.Debug("Unknown recommendation type requested", "type", typ, "creator_id", creatorID)
    return []*RecommendedItem{}, nil
  }

  var cached []*RecommendedItem
  if s.snapshots.Get(ctx, creatorID, typ, limit, &cached) {
    s.log.Debug("Recommendation cache hit", "creator_id", creatorID, "type", typ)
    return cached, nil
  }

  return s.compute(ctx, tx, creatorID, limit, typ)
}

// RefreshRecommendations recomputes unconditionally, bypassing the cache.
func (s *recommendationService) RefreshRecommendations(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, limit int, typ string) ([]*RecommendedItem, error) {
  limit, typ = normalizeRequest(limit, typ)
  if !validRecommendationType(typ) {
    return []*RecommendedItem{}, nil
  }
  return s.compute(ctx, tx, creatorID, limit, typ)
}

func normalizeRequest(limit int, typ string) (int, string) {
  if limit <= 0 {
    limit = defaultRecommendationLimit
  }
  if typ == "" {
    typ = RecommendationTypeAll
  }
  return limit, typ
}

func (s *recommendationService) compute(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, limit int, typ string) ([]*RecommendedItem, error) {
  if creatorID == uuid.Nil {
    return []*RecommendedItem{}, nil
  }

  exists, err := s.creatorRepo.Exists(ctx, tx, creatorID)
  if err != nil {
    return nil, fmt.Errorf("verify creator: %w", err)
  }
  if !exists {
    // An unknown creator is an input error, not a server fault.
    s.log.Debug("Recommendations requested for unknown creator", "creator_id", creatorID)
    return []*RecommendedItem{}, nil
  }

  prefs, err := s.prefService.GetOrInfer(ctx, tx, creatorID)
  if err != nil {
    return nil, fmt.Errorf("resolve preferences: %w", err)
  }

  requested := strategyOrder
  perStrategy := limit
  if typ == RecommendationTypeAll {
    // ceil(limit / strategies): each strategy proposes its share; shortfalls
    // from empty strategies are not backfilled from the others.
    perStrategy = (limit + len(strategyOrder) - 1) / len(strategyOrder)
  } else {
    requested = []string{typ}
  }

  // The strategies share no state within one call, so they run concurrently.
  // A failing strategy logs and contributes nothing; it never aborts siblings.
  // A gorm transaction is bound to one connection and is not safe for
  // concurrent use, so a caller-supplied tx forces the sequential path.
  results := make([][]*scoredCandidate, len(requested))
  if tx != nil {
    for i, strategy := range requested {
      candidates, err := s.runStrategy(ctx, tx, strategy, creatorID, prefs, perStrategy)
      if err != nil {
        s.log.Warn("Recommendation strategy failed", "strategy", strategy, "error", err, "creator_id", creatorID)
        continue
      }
      results[i] = candidates
    }
  } else {
    g, gctx := errgroup.WithContext(ctx)
    for i, strategy := range requested {
      g.Go(func() error {
        candidates, err := s.runStrategy(gctx, nil, strategy, creatorID, prefs, perStrategy)
        if err != nil {
          s.log.Warn("Recommendation strategy failed", "strategy", strategy, "error", err, "creator_id", creatorID)
          return nil
        }
        results[i] = candidates
        return nil
      })
    }
    if err := g.Wait(); err != nil {
      return nil, err
    }
  }

  var merged []*scoredCandidate
  for _, candidates := range results {
    merged = append(merged, candidates...)
  }

  final := rankCandidates(merged, limit)

  items := make([]*RecommendedItem, 0, len(final))
  for _, c := range final {
    items = append(items, candidateToItem(c))
  }

  if err := s.persistSnapshot(ctx, tx, creatorID, final); err != nil {
    // The read path's value is the ranked list; a failed snapshot write is
    // logged and the computed result still returned.
    s.log.Error("Persist recommendation snapshot failed", "error", err, "creator_id", creatorID)
  }

  s.snapshots.InvalidateCreator(ctx, creatorID)
  s.snapshots.Set(ctx, creatorID, typ, limit, items)

  return items, nil
}

func (s *recommendationService) runStrategy(ctx context.Context, tx *gorm.DB, strategy string, creatorID uuid.UUID, prefs *types.CreatorPreferences, limit int) ([]*scoredCandidate, error) {
  switch strategy {
  case types.RecommendationTypeTrending:
    return s.trendingCandidates(ctx, tx, limit)
  case types.RecommendationTypePersonalized:
    return s.personalizedCandidates(ctx, tx, creatorID, prefs, limit)
  case types.RecommendationTypeSimilarCreators:
    return s.similarCreatorCandidates(ctx, tx, creatorID, limit)
  case types.RecommendationTypeSeasonal:
    return s.seasonalCandidates(ctx, tx, limit)
  default:
    return nil, fmt.Errorf("unknown strategy %q", strategy)
  }
}

// rankCandidates dedupes on (productType, productID) keeping the first
// occurrence in strategy order, then sorts by score descending and truncates.
// Duplicate proposals from later strategies are dropped outright; their
// alternate scores and reasons are not merged.
func rankCandidates(candidates []*scoredCandidate, limit int) []*scoredCandidate {
  seen := make(map[string]struct{}, len(candidates))
  deduped := make([]*scoredCandidate, 0, len(candidates))
  for _, c := range candidates {
    if c == nil || c.product == nil {
      continue
    }
    key := types.RecProductTypeDropshipping + ":" + c.product.ID.String()
    if _, ok := seen[key]; ok {
      continue
    }
    seen[key] = struct{}{}
    deduped = append(deduped, c)
  }

  sort.SliceStable(deduped, func(i, j int) bool {
    return deduped[i].score > deduped[j].score
  })

  if len(deduped) > limit {
    deduped = deduped[:limit]
  }
  return deduped
}

func candidateToItem(c *scoredCandidate) *RecommendedItem {
  item := &RecommendedItem{
    ID:          c.product.ID,
    Type:        c.recommendationType,
    ProductType: types.RecProductTypeDropshipping,
    Name:        c.product.Name,
    Description: c.product.Description,
    Price:       c.product.Price,
    Images:      c.product.Images,
    Category:    c.product.Category,
    Score:       c.score,
    Reason:      c.reason,
    Metadata:    c.metadata,
  }
  if c.product.Partner != nil {
    item.Partner = &PartnerSummary{
      ID:   c.product.Partner.ID,
      Name: c.product.Partner.Name,
    }
  }
  return item
}

func (s *recommendationService) persistSnapshot(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, final []*scoredCandidate) error {
  rows := make([]*types.ProductRecommendation, 0, len(final))
  now := s.now()
  for _, c := range final {
    productID := c.product.ID
    var meta datatypes.JSON
    if len(c.metadata) > 0 {
      if raw, err := json.Marshal(c.metadata); err == nil {
        meta = raw
      }
    }
    rows = append(rows, &types.ProductRecommendation{
      ID:                    uuid.New(),
      CreatorID:             creatorID,
      RecommendationType:    c.recommendationType,
      ProductType:           types.RecProductTypeDropshipping,
      DropshippingProductID: &productID,
      Score:                 strconv.FormatFloat(c.score, 'f', 2, 64),
      Reason:                c.reason,
      Metadata:              meta,
      IsActive:              true,
      CreatedAt:             now,
    })
  }
  return s.recRepo.ReplaceForCreator(ctx, tx, creatorID, rows)
}

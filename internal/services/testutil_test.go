package services

import (
  "fmt"
  "testing"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/sokolane/sokolane-backend/internal/config"
  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/repos"
  "github.com/sokolane/sokolane-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
  return openTestDB(t, false)
}

// newFKTestDB migrates with foreign key constraints created and enforced, the
// way the production postgres schema behaves.
func newFKTestDB(t *testing.T) *gorm.DB {
  return openTestDB(t, true)
}

func openTestDB(t *testing.T, enforceFKs bool) *gorm.DB {
  t.Helper()
  // Unique name per test: a shared-cache in-memory database keeps gorm's
  // pooled connections on the same store without leaking across tests.
  dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
  if enforceFKs {
    dsn += "&_foreign_keys=1"
  }
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
    DisableForeignKeyConstraintWhenMigrating: !enforceFKs,
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  err = db.AutoMigrate(
    &types.Creator{},
    &types.CreatorProduct{},
    &types.DropshippingPartner{},
    &types.DropshippingProduct{},
    &types.BehaviorEvent{},
    &types.CreatorPreferences{},
    &types.MarketTrend{},
    &types.SimilarCreator{},
    &types.ProductRecommendation{},
  )
  if err != nil {
    t.Fatalf("migrate: %v", err)
  }
  t.Cleanup(func() {
    sqlDB, _ := db.DB()
    if sqlDB != nil {
      _ = sqlDB.Close()
    }
  })
  return db
}

type testEnv struct {
  db          *gorm.DB
  cfg         config.EngineConfig
  engine      *recommendationService
  prefService PreferenceService
  behaviorSvc BehaviorService
  similarSvc  SimilarityService
  recRepo     repos.ProductRecommendationRepo
  prefsRepo   repos.CreatorPreferencesRepo
  similarRepo repos.SimilarCreatorRepo
}

// newTestEnv wires the full service stack over an in-memory database, with
// the engine clock pinned to a fixed instant so period and month dependent
// strategies stay deterministic.
func newTestEnv(t *testing.T, now time.Time) *testEnv {
  return newTestEnvOn(t, newTestDB(t), now)
}

func newTestEnvOn(t *testing.T, db *gorm.DB, now time.Time) *testEnv {
  t.Helper()
  log := logger.NewNop()
  cfg := config.DefaultEngineConfig()

  creatorRepo := repos.NewCreatorRepo(db, log)
  behaviorRepo := repos.NewBehaviorEventRepo(db, log)
  prefsRepo := repos.NewCreatorPreferencesRepo(db, log)
  productRepo := repos.NewCreatorProductRepo(db, log)
  dropRepo := repos.NewDropshippingProductRepo(db, log)
  trendRepo := repos.NewMarketTrendRepo(db, log)
  similarRepo := repos.NewSimilarCreatorRepo(db, log)
  recRepo := repos.NewProductRecommendationRepo(db, log)

  prefService := NewPreferenceService(db, log, prefsRepo, productRepo)
  behaviorSvc := NewBehaviorService(db, log, behaviorRepo)
  similarSvc := NewSimilarityService(db, log, cfg.Similarity, prefService, prefsRepo, similarRepo)

  engine := NewRecommendationService(
    db, log, cfg,
    prefService, creatorRepo, behaviorRepo, trendRepo, similarRepo, dropRepo, recRepo,
    nil,
  ).(*recommendationService)
  engine.now = func() time.Time { return now }

  return &testEnv{
    db:          db,
    cfg:         cfg,
    engine:      engine,
    prefService: prefService,
    behaviorSvc: behaviorSvc,
    similarSvc:  similarSvc,
    recRepo:     recRepo,
    prefsRepo:   prefsRepo,
    similarRepo: similarRepo,
  }
}

func seedCreator(t *testing.T, db *gorm.DB, storeName string) *types.Creator {
  t.Helper()
  c := &types.Creator{
    ID:        uuid.New(),
    StoreName: storeName,
    Email:     storeName + "@example.com",
    Location:  "kenya",
    IsActive:  true,
  }
  if err := db.Create(c).Error; err != nil {
    t.Fatalf("seed creator: %v", err)
  }
  return c
}

func seedPartner(t *testing.T, db *gorm.DB, status string) *types.DropshippingPartner {
  t.Helper()
  p := &types.DropshippingPartner{
    ID:     uuid.New(),
    Name:   "partner-" + uuid.NewString()[:8],
    Status: status,
  }
  if err := db.Create(p).Error; err != nil {
    t.Fatalf("seed partner: %v", err)
  }
  return p
}

func seedDropProduct(t *testing.T, db *gorm.DB, partnerID uuid.UUID, name, category string, price int64, active bool) *types.DropshippingProduct {
  t.Helper()
  p := &types.DropshippingProduct{
    ID:        uuid.New(),
    PartnerID: partnerID,
    Name:      name,
    Category:  category,
    Price:     price,
    IsActive:  active,
  }
  if err := db.Create(p).Error; err != nil {
    t.Fatalf("seed dropshipping product: %v", err)
  }
  return p
}

func seedCreatorProduct(t *testing.T, db *gorm.DB, creatorID uuid.UUID, name, category string, price int64) *types.CreatorProduct {
  t.Helper()
  p := &types.CreatorProduct{
    ID:        uuid.New(),
    CreatorID: creatorID,
    Name:      name,
    Category:  category,
    Price:     price,
    IsActive:  true,
  }
  if err := db.Create(p).Error; err != nil {
    t.Fatalf("seed creator product: %v", err)
  }
  return p
}

func seedTrend(t *testing.T, db *gorm.DB, category, period string, score float64, peakMonths []int) *types.MarketTrend {
  t.Helper()
  tr := &types.MarketTrend{
    ID:         uuid.New(),
    Category:   category,
    Region:     "kenya",
    Period:     period,
    TrendScore: score,
    Seasonality: datatypes.NewJSONType(types.Seasonality{
      PeakMonths: peakMonths,
    }),
  }
  if err := db.Create(tr).Error; err != nil {
    t.Fatalf("seed market trend: %v", err)
  }
  return tr
}

func seedPreferences(t *testing.T, db *gorm.DB, creatorID uuid.UUID, categories []string, budgetMin, budgetMax, budgetAvg int64, audience, location, style string) *types.CreatorPreferences {
  t.Helper()
  prefs := &types.CreatorPreferences{
    ID:                  uuid.New(),
    CreatorID:           creatorID,
    PreferredCategories: datatypes.NewJSONSlice(categories),
    BudgetMin:           budgetMin,
    BudgetMax:           budgetMax,
    BudgetAverage:       budgetAvg,
    TargetAudience:      audience,
    Location:            location,
    Interests:           datatypes.NewJSONSlice(categories),
    BrandStyle:          style,
  }
  if err := db.Create(prefs).Error; err != nil {
    t.Fatalf("seed preferences: %v", err)
  }
  return prefs
}

func seedBehaviorEvent(t *testing.T, db *gorm.DB, creatorID uuid.UUID, action, entityType string, entityID uuid.UUID, metadata datatypes.JSON) *types.BehaviorEvent {
  t.Helper()
  e := &types.BehaviorEvent{
    ID:         uuid.New(),
    CreatorID:  creatorID,
    Action:     action,
    EntityType: entityType,
    EntityID:   entityID,
    Metadata:   metadata,
    CreatedAt:  time.Now(),
  }
  if err := db.Create(e).Error; err != nil {
    t.Fatalf("seed behavior event: %v", err)
  }
  return e
}

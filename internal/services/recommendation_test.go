package services

import (
  "context"
  "strconv"
  "strings"
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/sokolane/sokolane-backend/internal/types"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestGetRecommendationsOrderedAndBounded(t *testing.T) {
  env := newTestEnv(t, fixedNow)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "ordered")
  seedPreferences(t, env.db, creator.ID, []string{"Electronics"}, 1000, 5000, 2500, "general", "kenya", "affordable")

  partner := seedPartner(t, env.db, types.PartnerStatusApproved)
  period := fixedNow.Format("2006-01")
  seedTrend(t, env.db, "Electronics", period, 85, nil)
  seedTrend(t, env.db, "Fashion", period, 75, nil)
  for i := 0; i < 4; i++ {
    seedDropProduct(t, env.db, partner.ID, "phone-"+string(rune('a'+i)), "Electronics", 3000, true)
    seedDropProduct(t, env.db, partner.ID, "shirt-"+string(rune('a'+i)), "Fashion", 800, true)
  }

  limit := 5
  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, limit, RecommendationTypeAll)
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) == 0 {
    t.Fatal("expected recommendations, got none")
  }
  if len(items) > limit {
    t.Fatalf("got %d items, want at most %d", len(items), limit)
  }
  for i := 1; i < len(items); i++ {
    if items[i].Score > items[i-1].Score {
      t.Fatalf("items not sorted by score descending: item %d score %.2f > item %d score %.2f",
        i, items[i].Score, i-1, items[i-1].Score)
    }
  }
}

func TestDeduplicationAcrossStrategies(t *testing.T) {
  env := newTestEnv(t, fixedNow)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "dedupe")
  // Electronics is both trending this period and in the creator's preferred
  // list, so trending and personalized propose the same product.
  seedPreferences(t, env.db, creator.ID, []string{"Electronics"}, 1000, 5000, 2500, "general", "kenya", "affordable")

  partner := seedPartner(t, env.db, types.PartnerStatusApproved)
  period := fixedNow.Format("2006-01")
  seedTrend(t, env.db, "Electronics", period, 90, nil)
  product := seedDropProduct(t, env.db, partner.ID, "solar lamp", "Electronics", 3000, true)

  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 20, RecommendationTypeAll)
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }

  occurrences := 0
  for _, item := range items {
    if item.ID == product.ID {
      occurrences++
    }
  }
  if occurrences != 1 {
    t.Fatalf("product appears %d times in merged result, want exactly 1", occurrences)
  }
  // First occurrence wins: trending runs before personalized in merge order.
  for _, item := range items {
    if item.ID == product.ID && item.Type != types.RecommendationTypeTrending {
      t.Fatalf("deduped item kept type %q, want %q", item.Type, types.RecommendationTypeTrending)
    }
  }
}

func TestTrendingScoreEqualsTrendScore(t *testing.T) {
  env := newTestEnv(t, fixedNow)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "trending")
  seedPreferences(t, env.db, creator.ID, nil, 0, 0, 0, "general", "kenya", "affordable")

  partner := seedPartner(t, env.db, types.PartnerStatusApproved)
  period := fixedNow.Format("2006-01")
  seedTrend(t, env.db, "Home Decor", period, 83, nil)
  seedDropProduct(t, env.db, partner.ID, "woven basket", "Home Decor", 1500, true)

  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 10, types.RecommendationTypeTrending)
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) != 1 {
    t.Fatalf("got %d items, want 1", len(items))
  }
  if items[0].Score != 83 {
    t.Fatalf("trending score = %.2f, want the source trend score 83", items[0].Score)
  }
  if !strings.Contains(items[0].Reason, "Home Decor") {
    t.Fatalf("trending reason %q does not name the category", items[0].Reason)
  }
}

func TestTrendingIgnoresWeakAndStaleTrends(t *testing.T) {
  env := newTestEnv(t, fixedNow)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "stale")
  seedPreferences(t, env.db, creator.ID, nil, 0, 0, 0, "general", "kenya", "affordable")

  partner := seedPartner(t, env.db, types.PartnerStatusApproved)
  seedTrend(t, env.db, "Fashion", fixedNow.Format("2006-01"), 60, nil)   // below threshold
  seedTrend(t, env.db, "Electronics", "2020-01", 95, nil)               // wrong period
  seedDropProduct(t, env.db, partner.ID, "shirt", "Fashion", 900, true)
  seedDropProduct(t, env.db, partner.ID, "phone", "Electronics", 9000, true)

  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 10, types.RecommendationTypeTrending)
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) != 0 {
    t.Fatalf("got %d trending items, want 0", len(items))
  }
}

func TestPersonalizedScenarioExactScore(t *testing.T) {
  // Creator with preferredCategories=["Electronics"], budget {1000,5000,2500},
  // one eligible Electronics product at 3000, no behavior history:
  // 70 base + 15 category + 10 budget + 0 views = 95.
  env := newTestEnv(t, fixedNow)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "scenario")
  seedPreferences(t, env.db, creator.ID, []string{"Electronics"}, 1000, 5000, 2500, "general", "kenya", "affordable")

  partner := seedPartner(t, env.db, types.PartnerStatusApproved)
  seedDropProduct(t, env.db, partner.ID, "bluetooth speaker", "Electronics", 3000, true)

  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 10, types.RecommendationTypePersonalized)
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) != 1 {
    t.Fatalf("got %d items, want 1", len(items))
  }
  if items[0].Score != 95 {
    t.Fatalf("personalized score = %.2f, want 95", items[0].Score)
  }
}

func TestPersonalizedScoreBounds(t *testing.T) {
  env := newTestEnv(t, fixedNow)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "bounds")
  seedPreferences(t, env.db, creator.ID, []string{"Electronics", "Fashion"}, 500, 4000, 2000, "general", "kenya", "affordable")

  partner := seedPartner(t, env.db, types.PartnerStatusApproved)
  seedDropProduct(t, env.db, partner.ID, "phone", "Electronics", 3500, true)
  seedDropProduct(t, env.db, partner.ID, "gown", "Fashion", 9000, true)
  seedDropProduct(t, env.db, partner.ID, "mat", "Home Decor", 700, true)

  // Heavy view history in Electronics pushes toward the cap.
  for i := 0; i < 10; i++ {
    seedBehaviorEvent(t, env.db, creator.ID, types.BehaviorActionViewProduct,
      types.BehaviorEntityDropshippingProduct, creator.ID, []byte(`{"category":"Electronics"}`))
  }

  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 10, types.RecommendationTypePersonalized)
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) == 0 {
    t.Fatal("expected personalized items")
  }
  for _, item := range items {
    if item.Score < 70 || item.Score > 95 {
      t.Fatalf("personalized score %.2f for %q out of [70, 95]", item.Score, item.Name)
    }
  }
}

func TestPersonalizedEmptyWithoutSignals(t *testing.T) {
  env := newTestEnv(t, fixedNow)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "nosignals")
  seedPreferences(t, env.db, creator.ID, nil, 0, 0, 0, "general", "kenya", "affordable")

  partner := seedPartner(t, env.db, types.PartnerStatusApproved)
  seedDropProduct(t, env.db, partner.ID, "phone", "Electronics", 3500, true)

  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 10, types.RecommendationTypePersonalized)
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) != 0 {
    t.Fatalf("got %d items with no category signals, want 0", len(items))
  }
}

func TestSeasonalDecemberScenario(t *testing.T) {
  // December trend for Fashion with trendScore 70 peaking in month 12:
  // score = min(70+20, 95) = 90 and the reason names the Holiday Season.
  december := time.Date(2025, time.December, 10, 9, 0, 0, 0, time.UTC)
  env := newTestEnv(t, december)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "december")
  seedPreferences(t, env.db, creator.ID, nil, 0, 0, 0, "general", "kenya", "affordable")

  partner := seedPartner(t, env.db, types.PartnerStatusApproved)
  seedTrend(t, env.db, "Fashion", december.Format("2006-01"), 70, []int{11, 12})
  seedDropProduct(t, env.db, partner.ID, "holiday dress", "Fashion", 2500, true)

  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 10, types.RecommendationTypeSeasonal)
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) != 1 {
    t.Fatalf("got %d items, want 1", len(items))
  }
  if items[0].Score != 90 {
    t.Fatalf("seasonal score = %.2f, want 90", items[0].Score)
  }
  if !strings.Contains(items[0].Reason, "Holiday Season") {
    t.Fatalf("seasonal reason %q does not mention Holiday Season", items[0].Reason)
  }
}

func TestSeasonalEmptyOutsidePeakMonths(t *testing.T) {
  env := newTestEnv(t, fixedNow) // June
  ctx := context.Background()

  creator := seedCreator(t, env.db, "offseason")
  seedPreferences(t, env.db, creator.ID, nil, 0, 0, 0, "general", "kenya", "affordable")

  partner := seedPartner(t, env.db, types.PartnerStatusApproved)
  seedTrend(t, env.db, "Fashion", fixedNow.Format("2006-01"), 80, []int{11, 12})
  seedDropProduct(t, env.db, partner.ID, "dress", "Fashion", 2500, true)

  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 10, types.RecommendationTypeSeasonal)
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) != 0 {
    t.Fatalf("got %d seasonal items outside peak months, want 0", len(items))
  }
}

func TestSimilarCreatorsScoreBounds(t *testing.T) {
  env := newTestEnv(t, fixedNow)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "me")
  seedPreferences(t, env.db, creator.ID, []string{"Electronics"}, 1000, 5000, 2500, "general", "kenya", "affordable")

  partner := seedPartner(t, env.db, types.PartnerStatusApproved)
  adopted := seedDropProduct(t, env.db, partner.ID, "power bank", "Electronics", 2000, true)

  neighbors := make([]*types.Creator, 3)
  for i := range neighbors {
    neighbors[i] = seedCreator(t, env.db, "neighbor-"+string(rune('a'+i)))
    edge := &types.SimilarCreator{
      ID:               uuid.New(),
      CreatorID:        creator.ID,
      SimilarCreatorID: neighbors[i].ID,
      SimilarityScore:  80,
      CalculatedAt:     fixedNow,
    }
    if err := env.db.Create(edge).Error; err != nil {
      t.Fatalf("seed edge: %v", err)
    }
    seedBehaviorEvent(t, env.db, neighbors[i].ID, types.BehaviorActionAddToStore,
      types.BehaviorEntityDropshippingProduct, adopted.ID, nil)
  }

  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 10, types.RecommendationTypeSimilarCreators)
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) != 1 {
    t.Fatalf("got %d items, want 1", len(items))
  }
  // 60 base + 3 adopters * 5 = 75.
  if items[0].Score != 75 {
    t.Fatalf("similar-creators score = %.2f, want 75", items[0].Score)
  }
  if items[0].Score < 60 || items[0].Score > 90 {
    t.Fatalf("similar-creators score %.2f out of [60, 90]", items[0].Score)
  }
}

func TestSimilarCreatorsEmptyWithoutEdges(t *testing.T) {
  env := newTestEnv(t, fixedNow)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "loner")
  seedPreferences(t, env.db, creator.ID, []string{"Electronics"}, 1000, 5000, 2500, "general", "kenya", "affordable")

  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 10, types.RecommendationTypeSimilarCreators)
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) != 0 {
    t.Fatalf("got %d items without similarity edges, want 0", len(items))
  }
}

func TestSnapshotIdempotence(t *testing.T) {
  env := newTestEnv(t, fixedNow)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "idempotent")
  seedPreferences(t, env.db, creator.ID, []string{"Electronics"}, 1000, 5000, 2500, "general", "kenya", "affordable")

  partner := seedPartner(t, env.db, types.PartnerStatusApproved)
  period := fixedNow.Format("2006-01")
  seedTrend(t, env.db, "Electronics", period, 85, nil)
  seedDropProduct(t, env.db, partner.ID, "phone", "Electronics", 3000, true)
  seedDropProduct(t, env.db, partner.ID, "charger", "Electronics", 1200, true)

  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 10, RecommendationTypeAll)
  if err != nil {
    t.Fatalf("first run: %v", err)
  }
  first, err := env.recRepo.CountByCreatorID(ctx, nil, creator.ID)
  if err != nil {
    t.Fatalf("count after first run: %v", err)
  }
  if first == 0 {
    t.Fatal("no snapshot rows persisted")
  }

  // The persisted snapshot mirrors the returned list row for row.
  rows, err := env.recRepo.GetActiveByCreatorID(ctx, nil, creator.ID)
  if err != nil {
    t.Fatalf("GetActiveByCreatorID: %v", err)
  }
  if len(rows) != len(items) {
    t.Fatalf("snapshot has %d active rows, returned list has %d items", len(rows), len(items))
  }
  for i, row := range rows {
    if row.DropshippingProductID == nil {
      t.Fatalf("snapshot row %d has no product reference", i)
    }
    if !row.IsActive {
      t.Fatalf("snapshot row %d persisted inactive", i)
    }
    if want := strconv.FormatFloat(items[i].Score, 'f', 2, 64); row.Score != want {
      t.Fatalf("snapshot row %d score = %q, want %q", i, row.Score, want)
    }
  }

  if _, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 10, RecommendationTypeAll); err != nil {
    t.Fatalf("second run: %v", err)
  }
  second, err := env.recRepo.CountByCreatorID(ctx, nil, creator.ID)
  if err != nil {
    t.Fatalf("count after second run: %v", err)
  }
  if second != first {
    t.Fatalf("snapshot row count changed across identical reruns: %d then %d (rows appended, not replaced)", first, second)
  }
}

func TestUnknownCreatorYieldsEmptyResult(t *testing.T) {
  // Foreign keys enforced, as in the production schema: an id with no
  // creator row is an input error and must degrade to an empty list, not
  // bubble up as a failed preference insert.
  env := newTestEnvOn(t, newFKTestDB(t), fixedNow)
  ctx := context.Background()

  unknown := uuid.New()
  items, err := env.engine.GetRecommendations(ctx, nil, unknown, 10, RecommendationTypeAll)
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) != 0 {
    t.Fatalf("got %d items for an unknown creator, want 0", len(items))
  }

  prefs, err := env.prefsRepo.GetByCreatorID(ctx, nil, unknown)
  if err != nil {
    t.Fatalf("GetByCreatorID: %v", err)
  }
  if prefs != nil {
    t.Fatal("preference row persisted for an unknown creator")
  }
  count, err := env.recRepo.CountByCreatorID(ctx, nil, unknown)
  if err != nil {
    t.Fatalf("CountByCreatorID: %v", err)
  }
  if count != 0 {
    t.Fatalf("snapshot rows persisted for an unknown creator: %d", count)
  }
}

func TestGetRecommendationsInsideTransaction(t *testing.T) {
  // A caller-supplied transaction runs the strategies sequentially on that
  // one connection; its writes roll back with the transaction.
  env := newTestEnv(t, fixedNow)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "transactional")
  seedPreferences(t, env.db, creator.ID, []string{"Electronics"}, 1000, 5000, 2500, "general", "kenya", "affordable")
  partner := seedPartner(t, env.db, types.PartnerStatusApproved)
  seedTrend(t, env.db, "Electronics", fixedNow.Format("2006-01"), 85, nil)
  seedDropProduct(t, env.db, partner.ID, "phone", "Electronics", 3000, true)

  tx := env.db.Begin()
  if tx.Error != nil {
    t.Fatalf("begin: %v", tx.Error)
  }

  items, err := env.engine.GetRecommendations(ctx, tx, creator.ID, 10, RecommendationTypeAll)
  if err != nil {
    tx.Rollback()
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) == 0 {
    tx.Rollback()
    t.Fatal("expected recommendations inside the transaction")
  }

  inside, err := env.recRepo.CountByCreatorID(ctx, tx, creator.ID)
  if err != nil {
    tx.Rollback()
    t.Fatalf("count inside tx: %v", err)
  }
  if inside == 0 {
    tx.Rollback()
    t.Fatal("snapshot not visible inside the transaction that wrote it")
  }
  tx.Rollback()

  after, err := env.recRepo.CountByCreatorID(ctx, nil, creator.ID)
  if err != nil {
    t.Fatalf("count after rollback: %v", err)
  }
  if after != 0 {
    t.Fatalf("snapshot rows survived the rollback: %d", after)
  }
}

func TestUnknownTypeYieldsEmptyResult(t *testing.T) {
  env := newTestEnv(t, fixedNow)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "badtype")
  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 10, "astrology")
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) != 0 {
    t.Fatalf("got %d items for unknown type, want 0", len(items))
  }
}

func TestIneligibleProductsExcluded(t *testing.T) {
  env := newTestEnv(t, fixedNow)
  ctx := context.Background()

  creator := seedCreator(t, env.db, "eligibility")
  seedPreferences(t, env.db, creator.ID, []string{"Electronics"}, 1000, 5000, 2500, "general", "kenya", "affordable")

  approved := seedPartner(t, env.db, types.PartnerStatusApproved)
  pending := seedPartner(t, env.db, types.PartnerStatusPending)
  seedDropProduct(t, env.db, approved.ID, "inactive phone", "Electronics", 3000, false)
  seedDropProduct(t, env.db, pending.ID, "unapproved phone", "Electronics", 3000, true)

  items, err := env.engine.GetRecommendations(ctx, nil, creator.ID, 10, types.RecommendationTypePersonalized)
  if err != nil {
    t.Fatalf("GetRecommendations: %v", err)
  }
  if len(items) != 0 {
    t.Fatalf("got %d items from inactive or unapproved catalog entries, want 0", len(items))
  }
}

func TestSeasonLabelBuckets(t *testing.T) {
  cases := []struct {
    month int
    want  string
  }{
    {12, "Holiday Season"},
    {1, "Holiday Season"},
    {2, "Holiday Season"},
    {3, "Spring"},
    {5, "Spring"},
    {6, "Mid-Year"},
    {8, "Mid-Year"},
    {9, "Back-to-School"},
    {11, "Back-to-School"},
  }
  for _, tc := range cases {
    if got := seasonLabel(tc.month); got != tc.want {
      t.Fatalf("seasonLabel(%d)=%q, want %q", tc.month, got, tc.want)
    }
  }
}

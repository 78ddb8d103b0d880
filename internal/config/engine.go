package config

import (
  "fmt"
  "os"

  "gopkg.in/yaml.v3"
)

// EngineConfig carries every scoring knob of the recommendation engine as an
// explicit struct. It is wired through constructors, never read from a global.
type EngineConfig struct {
  Trending        TrendingConfig     `yaml:"trending"`
  Personalized    PersonalizedConfig `yaml:"personalized"`
  Similar         SimilarConfig      `yaml:"similar"`
  Seasonal        SeasonalConfig     `yaml:"seasonal"`
  Similarity      SimilarityConfig   `yaml:"similarity"`
  CacheTTLSeconds int                `yaml:"cache_ttl_seconds"`
}

type TrendingConfig struct {
  MinTrendScore float64 `yaml:"min_trend_score"`
  TopCategories int     `yaml:"top_categories"`
}

type PersonalizedConfig struct {
  BaseScore      float64 `yaml:"base_score"`
  CategoryBonus  float64 `yaml:"category_bonus"`
  BudgetBonus    float64 `yaml:"budget_bonus"`
  PointsPerView  float64 `yaml:"points_per_view"`
  MaxViewMatches int     `yaml:"max_view_matches"`
  MaxScore       float64 `yaml:"max_score"`
  HistoryWindow  int     `yaml:"history_window"`
}

type SimilarConfig struct {
  BaseScore        float64 `yaml:"base_score"`
  PointsPerAdopter float64 `yaml:"points_per_adopter"`
  MaxScore         float64 `yaml:"max_score"`
  MaxSimilar       int     `yaml:"max_similar"`
}

type SeasonalConfig struct {
  PeakBonus     float64 `yaml:"peak_bonus"`
  MaxScore      float64 `yaml:"max_score"`
  TopCategories int     `yaml:"top_categories"`
}

type SimilarityConfig struct {
  CategoryPoints  float64 `yaml:"category_points"`
  LocationPoints  float64 `yaml:"location_points"`
  AudiencePoints  float64 `yaml:"audience_points"`
  StylePoints     float64 `yaml:"style_points"`
  MinPersistScore float64 `yaml:"min_persist_score"`
}

// DefaultEngineConfig returns the production scoring constants.
func DefaultEngineConfig() EngineConfig {
  return EngineConfig{
    Trending: TrendingConfig{
      MinTrendScore: 70,
      TopCategories: 5,
    },
    Personalized: PersonalizedConfig{
      BaseScore:      70,
      CategoryBonus:  15,
      BudgetBonus:    10,
      PointsPerView:  2,
      MaxViewMatches: 5,
      MaxScore:       95,
      HistoryWindow:  100,
    },
    Similar: SimilarConfig{
      BaseScore:        60,
      PointsPerAdopter: 5,
      MaxScore:         90,
      MaxSimilar:       5,
    },
    Seasonal: SeasonalConfig{
      PeakBonus:     20,
      MaxScore:      95,
      TopCategories: 5,
    },
    Similarity: SimilarityConfig{
      CategoryPoints:  15,
      LocationPoints:  10,
      AudiencePoints:  15,
      StylePoints:     10,
      MinPersistScore: 60,
    },
    CacheTTLSeconds: 300,
  }
}

// LoadEngineConfig reads a YAML override file on top of the defaults. An empty
// path returns the defaults unchanged.
func LoadEngineConfig(path string) (EngineConfig, error) {
  cfg := DefaultEngineConfig()
  if path == "" {
    return cfg, nil
  }
  raw, err := os.ReadFile(path)
  if err != nil {
    return cfg, fmt.Errorf("read engine config: %w", err)
  }
  if err := yaml.Unmarshal(raw, &cfg); err != nil {
    return cfg, fmt.Errorf("parse engine config: %w", err)
  }
  return cfg, nil
}

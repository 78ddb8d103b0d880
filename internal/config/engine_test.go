package config

import (
  "os"
  "path/filepath"
  "testing"
)

func TestLoadEngineConfigEmptyPathReturnsDefaults(t *testing.T) {
  cfg, err := LoadEngineConfig("")
  if err != nil {
    t.Fatalf("LoadEngineConfig: %v", err)
  }
  if cfg.Trending.MinTrendScore != 70 || cfg.Personalized.MaxScore != 95 {
    t.Fatalf("defaults not applied: min trend score %.0f, personalized cap %.0f",
      cfg.Trending.MinTrendScore, cfg.Personalized.MaxScore)
  }
  if cfg.CacheTTLSeconds != 300 {
    t.Fatalf("cache TTL = %d, want 300", cfg.CacheTTLSeconds)
  }
}

func TestLoadEngineConfigOverridesOnTopOfDefaults(t *testing.T) {
  path := filepath.Join(t.TempDir(), "engine.yaml")
  override := []byte("trending:\n  min_trend_score: 80\ncache_ttl_seconds: 60\n")
  if err := os.WriteFile(path, override, 0o644); err != nil {
    t.Fatalf("write override: %v", err)
  }

  cfg, err := LoadEngineConfig(path)
  if err != nil {
    t.Fatalf("LoadEngineConfig: %v", err)
  }
  if cfg.Trending.MinTrendScore != 80 {
    t.Fatalf("min trend score = %.0f, want overridden 80", cfg.Trending.MinTrendScore)
  }
  if cfg.CacheTTLSeconds != 60 {
    t.Fatalf("cache TTL = %d, want overridden 60", cfg.CacheTTLSeconds)
  }
  // Untouched sections keep their defaults.
  if cfg.Similarity.MinPersistScore != 60 {
    t.Fatalf("similarity cutoff = %.0f, want default 60", cfg.Similarity.MinPersistScore)
  }
}

func TestLoadEngineConfigMissingFile(t *testing.T) {
  if _, err := LoadEngineConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
    t.Fatal("expected an error for a missing config file")
  }
}

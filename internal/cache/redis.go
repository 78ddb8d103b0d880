package cache

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "github.com/redis/go-redis/v9"

  "github.com/sokolane/sokolane-backend/internal/logger"
  "github.com/sokolane/sokolane-backend/internal/utils"
)

// NewRedisClient builds a client from REDIS_* env vars. A ping failure is
// returned to the caller; the engine treats a missing cache as a soft
// degradation, not a startup failure.
func NewRedisClient(ctx context.Context, log *logger.Logger) (*redis.Client, error) {
  addr := utils.GetEnv("REDIS_ADDR", "localhost:6379", log)
  password := utils.GetEnv("REDIS_PASSWORD", "", log)
  dbNum := utils.GetEnvAsInt("REDIS_DB", 0, log)

  client := redis.NewClient(&redis.Options{
    Addr:     addr,
    Password: password,
    DB:       dbNum,
  })
  if err := client.Ping(ctx).Err(); err != nil {
    return nil, fmt.Errorf("ping redis: %w", err)
  }
  return client, nil
}

// SnapshotCache is a read-through cache for computed recommendation lists,
// keyed by (creator, type, limit). Invalidation bumps a per-creator generation
// counter instead of scanning keys, so stale entries just age out via TTL.
type SnapshotCache struct {
  client *redis.Client
  log    *logger.Logger
  ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, baseLog *logger.Logger, ttl time.Duration) *SnapshotCache {
  return &SnapshotCache{
    client: client,
    log:    baseLog.With("cache", "SnapshotCache"),
    ttl:    ttl,
  }
}

func (c *SnapshotCache) generation(ctx context.Context, creatorID uuid.UUID) (int64, error) {
  gen, err := c.client.Get(ctx, fmt.Sprintf("rec:gen:%s", creatorID)).Int64()
  if err == redis.Nil {
    return 0, nil
  }
  return gen, err
}

func (c *SnapshotCache) entryKey(creatorID uuid.UUID, gen int64, typ string, limit int) string {
  return fmt.Sprintf("rec:%s:%d:%s:%d", creatorID, gen, typ, limit)
}

// Get returns the cached list, unmarshalled into dest, or false on any miss
// or cache error.
func (c *SnapshotCache) Get(ctx context.Context, creatorID uuid.UUID, typ string, limit int, dest interface{}) bool {
  if c == nil || c.client == nil {
    return false
  }
  gen, err := c.generation(ctx, creatorID)
  if err != nil {
    c.log.Debug("Cache generation lookup failed", "error", err, "creator_id", creatorID)
    return false
  }
  raw, err := c.client.Get(ctx, c.entryKey(creatorID, gen, typ, limit)).Bytes()
  if err != nil {
    if err != redis.Nil {
      c.log.Debug("Cache read failed", "error", err, "creator_id", creatorID)
    }
    return false
  }
  if err := json.Unmarshal(raw, dest); err != nil {
    c.log.Debug("Cache entry unmarshal failed", "error", err, "creator_id", creatorID)
    return false
  }
  return true
}

// Set stores the computed list under the creator's current generation.
func (c *SnapshotCache) Set(ctx context.Context, creatorID uuid.UUID, typ string, limit int, value interface{}) {
  if c == nil || c.client == nil {
    return
  }
  gen, err := c.generation(ctx, creatorID)
  if err != nil {
    c.log.Debug("Cache generation lookup failed", "error", err, "creator_id", creatorID)
    return
  }
  raw, err := json.Marshal(value)
  if err != nil {
    c.log.Debug("Cache entry marshal failed", "error", err, "creator_id", creatorID)
    return
  }
  if err := c.client.Set(ctx, c.entryKey(creatorID, gen, typ, limit), raw, c.ttl).Err(); err != nil {
    c.log.Debug("Cache write failed", "error", err, "creator_id", creatorID)
  }
}

// InvalidateCreator makes all cached entries for the creator unreachable.
func (c *SnapshotCache) InvalidateCreator(ctx context.Context, creatorID uuid.UUID) {
  if c == nil || c.client == nil {
    return
  }
  if err := c.client.Incr(ctx, fmt.Sprintf("rec:gen:%s", creatorID)).Err(); err != nil {
    c.log.Debug("Cache invalidation failed", "error", err, "creator_id", creatorID)
  }
}

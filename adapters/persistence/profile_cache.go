package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-service/internal/domain/profile"
	"github.com/khoahotran/profile-service/pkg/logger"
	"github.com/khoahotran/profile-service/pkg/schema"
)

// ProfileCacheKey is the Redis key holding the cached profile id.
func ProfileCacheKey(id string) string {
	return "profile:" + id
}

// cachedProfileRepo serves FindByID from Redis and evicts on every write to
// the same profile. Cache failures degrade to the wrapped repository.
type cachedProfileRepo struct {
	profile.Repository
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedProfileRepo(next profile.Repository, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) profile.Repository {
	return &cachedProfileRepo{Repository: next, rdb: rdb, ttl: ttl, logger: log}
}

func (r *cachedProfileRepo) FindByID(ctx context.Context, id string) (*profile.Profile, error) {
	key := ProfileCacheKey(id)

	raw, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p profile.Profile
		if err := json.Unmarshal(raw, &p); err == nil {
			return &p, nil
		}
		r.logger.Warn("Dropping unreadable cached profile", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("Profile cache read failed", zap.String("key", key), zap.Error(err))
	}

	p, err := r.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(p); err == nil {
		if err := r.rdb.Set(ctx, key, raw, r.ttl).Err(); err != nil {
			r.logger.Warn("Profile cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return p, nil
}

func (r *cachedProfileRepo) UpdateByID(ctx context.Context, id string, fields schema.Document) (*profile.Profile, error) {
	p, err := r.Repository.UpdateByID(ctx, id, fields)
	r.evict(ctx, id)
	return p, err
}

func (r *cachedProfileRepo) AppendProject(ctx context.Context, id string, entry profile.Project) error {
	err := r.Repository.AppendProject(ctx, id, entry)
	r.evict(ctx, id)
	return err
}

func (r *cachedProfileRepo) evict(ctx context.Context, id string) {
	if err := NewRedisProfileCache(r.rdb).Evict(ctx, id); err != nil {
		r.logger.Warn("Profile cache eviction failed", zap.String("profile_id", id), zap.Error(err))
	}
}

// RedisProfileCache evicts cached profiles on behalf of processes that do not
// read through the cache, such as the event worker.
type RedisProfileCache struct {
	rdb redis.Cmdable
}

func NewRedisProfileCache(rdb redis.Cmdable) *RedisProfileCache {
	return &RedisProfileCache{rdb: rdb}
}

func (c *RedisProfileCache) Evict(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, ProfileCacheKey(id)).Err()
}

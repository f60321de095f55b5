package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/souk-intel/service-bestsellers/internal/models"
)

// SummaryCacheService caches aggregated category summaries per dataset
// version and region. The cache is strictly an accelerator: a nil Redis
// client or any Redis failure degrades to recomputation.
type SummaryCacheService struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSummaryCacheService creates a new SummaryCacheService
func NewSummaryCacheService(redisClient *redis.Client, ttl time.Duration, logger *zap.Logger) *SummaryCacheService {
	if ttl == 0 {
		ttl = 10 * time.Minute // Default TTL
	}
	return &SummaryCacheService{
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

// cacheKey generates a cache key for one (dataset version, region) pair
func (s *SummaryCacheService) cacheKey(version, regionValue string) string {
	return fmt.Sprintf("bestsellers:summaries:%s:%s", version, regionValue)
}

// Get retrieves cached summaries, returning nil on a miss
func (s *SummaryCacheService) Get(ctx context.Context, version, regionValue string) ([]models.CategorySummary, error) {
	if s.redis == nil {
		return nil, nil // No cache available
	}

	key := s.cacheKey(version, regionValue)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		s.logger.Warn("failed to get summaries from cache", zap.Error(err), zap.String("key", key))
		return nil, nil
	}

	var summaries []models.CategorySummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		s.logger.Warn("failed to unmarshal cached summaries", zap.Error(err))
		return nil, nil
	}

	s.logger.Debug("cache hit for summaries", zap.String("key", key))
	return summaries, nil
}

// Set stores summaries in cache
func (s *SummaryCacheService) Set(ctx context.Context, version, regionValue string, summaries []models.CategorySummary) error {
	if s.redis == nil {
		return nil // No cache available
	}

	key := s.cacheKey(version, regionValue)
	data, err := json.Marshal(summaries)
	if err != nil {
		s.logger.Warn("failed to marshal summaries for cache", zap.Error(err))
		return err
	}

	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to set summaries in cache", zap.Error(err), zap.String("key", key))
		return err
	}

	s.logger.Debug("cached summaries", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

// Invalidate removes all cached summaries, used after a dataset reload
func (s *SummaryCacheService) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}

	keys, err := s.redis.Keys(ctx, "bestsellers:summaries:*").Result()
	if err != nil {
		s.logger.Warn("failed to find cache keys to invalidate", zap.Error(err))
		return err
	}

	if len(keys) > 0 {
		if err := s.redis.Del(ctx, keys...).Err(); err != nil {
			s.logger.Warn("failed to invalidate summary cache", zap.Error(err))
			return err
		}
		s.logger.Debug("invalidated summary cache", zap.Int("keys_removed", len(keys)))
	}

	return nil
}

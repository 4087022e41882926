package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
)

// CandidateListCacheKey holds the dashboard's full candidate list.
const CandidateListCacheKey = "candidates:list"

// versionTTL keeps invalidation markers well past any in-flight load.
const versionTTL = 24 * time.Hour

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheService orchestrates cache operations and related metrics.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 2 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get attempts to retrieve a cached entry. It returns true when the cache was hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	duration := time.Since(start)
	if err != nil {
		s.metrics.RecordCacheOperation(false, duration)
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return false, nil
		}
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	s.metrics.RecordCacheOperation(true, duration)
	return true, nil
}

// Set stores the value in cache.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Version returns the invalidation marker of key. Capture it before loading the
// value from the store and pass it to SetIfCurrent.
func (s *CacheService) Version(ctx context.Context, key string) string {
	if !s.Enabled() {
		return ""
	}
	var version string
	if err := s.repo.Get(ctx, versionKey(key), &version); err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("cache version read failed", zap.String("key", key), zap.Error(err))
		}
		return ""
	}
	return version
}

// SetIfCurrent stores value under key unless key was invalidated after version was
// read. A load that raced an invalidation removes its own write again, so the
// cache never outlives a newer store state. It reports whether the value was kept.
func (s *CacheService) SetIfCurrent(ctx context.Context, key, version string, value interface{}, ttl time.Duration) bool {
	if !s.Enabled() {
		return false
	}
	if err := s.Set(ctx, key, value, ttl); err != nil {
		return false
	}
	if s.Version(ctx, key) == version {
		return true
	}
	s.logger.Debug("discarding cache fill that raced an invalidation", zap.String("key", key))
	if err := s.repo.Delete(ctx, key); err != nil {
		s.logger.Warn("cache discard failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

// Invalidate bumps the version of each key and removes the cached values.
func (s *CacheService) Invalidate(ctx context.Context, keys ...string) error {
	if !s.Enabled() {
		return nil
	}
	for _, key := range keys {
		if err := s.repo.Set(ctx, versionKey(key), uuid.NewString(), versionTTL); err != nil {
			s.logger.Warn("cache version bump failed", zap.String("key", key), zap.Error(err))
		}
	}
	if err := s.repo.Delete(ctx, keys...); err != nil {
		s.logger.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
		return err
	}
	return nil
}

func versionKey(key string) string {
	return key + ":version"
}

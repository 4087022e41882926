package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/batch-intake-api/internal/models"
)

func TestCacheServiceSetIfCurrent(t *testing.T) {
	cache := NewCacheService(newFakeCacheRepo(), nil, time.Minute, nil, true)
	ctx := context.Background()

	version := cache.Version(ctx, "k")
	assert.True(t, cache.SetIfCurrent(ctx, "k", version, []models.Candidate{}, 0))

	version = cache.Version(ctx, "k")
	require.NoError(t, cache.Invalidate(ctx, "k"))
	assert.False(t, cache.SetIfCurrent(ctx, "k", version, []models.Candidate{}, 0))

	var out []models.Candidate
	hit, err := cache.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	disabled := NewCacheService(nil, nil, 0, nil, true)
	assert.Equal(t, "", disabled.Version(ctx, "k"))
	assert.False(t, disabled.SetIfCurrent(ctx, "k", "", nil, 0))
}

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "intake:")

	var dest []string
	err := repo.Get(context.Background(), "candidates", &dest)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))

	assert.NoError(t, repo.Set(context.Background(), "candidates", []string{"a"}, time.Minute))
	assert.NoError(t, repo.Delete(context.Background(), "candidates"))
	assert.NoError(t, repo.Ping(context.Background()))
	assert.NoError(t, repo.Close())
	assert.Equal(t, "intake:candidates", repo.key("candidates"))
}

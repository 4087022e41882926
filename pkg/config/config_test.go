package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, StoreDriverREST, cfg.Store.Driver)
	assert.Equal(t, "candidates", cfg.Store.Table)
	assert.Empty(t, cfg.Store.URL)
	assert.Equal(t, 10*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 4, cfg.Intake.BatchCount)
	assert.Equal(t, 2*time.Minute, cfg.Dashboard.CacheTTL)
	assert.False(t, cfg.JWT.Enabled)
	assert.Nil(t, cfg.Events.Brokers)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("STORE_URL", "https://store.example.com/")
	v.Set("STORE_DRIVER", "POSTGRES")
	v.Set("INTAKE_BATCH_COUNT", -3)
	v.Set("DASHBOARD_CACHE_TTL", "not-a-duration")
	v.Set("KAFKA_BROKERS", "a:9092, b:9092 ,")

	cfg := fromViper(v)

	assert.Equal(t, "https://store.example.com", cfg.Store.URL)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 0, cfg.Intake.BatchCount)
	assert.Equal(t, 2*time.Minute, cfg.Dashboard.CacheTTL)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Events.Brokers)
}

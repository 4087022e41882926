package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store drivers supported by the candidate repository.
const (
	StoreDriverREST     = "rest"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Intake    IntakeConfig
	Dashboard DashboardConfig
	Events    EventsConfig
}

// StoreConfig selects and configures the external record store.
type StoreConfig struct {
	Driver  string
	URL     string
	Key     string
	Table   string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig verifies admin tokens minted by the external identity provider.
type JWTConfig struct {
	Enabled  bool
	Secret   string
	Issuer   string
	Audience string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// IntakeConfig tunes the public application form.
type IntakeConfig struct {
	BatchCount      int
	RateLimitPerMin int
	RateLimitBurst  int
}

// DashboardConfig governs the review dashboard cache.
type DashboardConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// EventsConfig configures the submission event publisher.
type EventsConfig struct {
	Enabled      bool
	Brokers      []string
	Topic        string
	Username     string
	Password     string
	WriteTimeout time.Duration
	Workers      int
	MaxRetries   int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Store = StoreConfig{
		Driver:  strings.ToLower(v.GetString("STORE_DRIVER")),
		URL:     strings.TrimRight(v.GetString("STORE_URL"), "/"),
		Key:     v.GetString("STORE_KEY"),
		Table:   v.GetString("STORE_TABLE"),
		Timeout: parseDuration(v.GetString("STORE_TIMEOUT"), 10*time.Second),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("ENABLE_REDIS"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Enabled:  v.GetBool("ADMIN_AUTH_ENABLED"),
		Secret:   v.GetString("JWT_SECRET"),
		Issuer:   v.GetString("JWT_ISSUER"),
		Audience: v.GetString("JWT_AUDIENCE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	batchCount := v.GetInt("INTAKE_BATCH_COUNT")
	if batchCount < 0 {
		batchCount = 0
	}
	cfg.Intake = IntakeConfig{
		BatchCount:      batchCount,
		RateLimitPerMin: v.GetInt("INTAKE_RATE_LIMIT_PER_MIN"),
		RateLimitBurst:  v.GetInt("INTAKE_RATE_LIMIT_BURST"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheEnabled: v.GetBool("ENABLE_DASHBOARD_CACHE"),
		CacheTTL:     parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 2*time.Minute),
	}

	cfg.Events = EventsConfig{
		Enabled:      v.GetBool("ENABLE_EVENTS"),
		Brokers:      splitAndTrim(v.GetString("KAFKA_BROKERS")),
		Topic:        v.GetString("KAFKA_TOPIC"),
		Username:     v.GetString("KAFKA_USERNAME"),
		Password:     v.GetString("KAFKA_PASSWORD"),
		WriteTimeout: parseDuration(v.GetString("KAFKA_WRITE_TIMEOUT"), 10*time.Second),
		Workers:      v.GetInt("EVENTS_WORKERS"),
		MaxRetries:   v.GetInt("EVENTS_MAX_RETRIES"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("STORE_DRIVER", StoreDriverREST)
	v.SetDefault("STORE_URL", "")
	v.SetDefault("STORE_KEY", "")
	v.SetDefault("STORE_TABLE", "candidates")
	v.SetDefault("STORE_TIMEOUT", "10s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "batch_intake")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("ENABLE_REDIS", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ADMIN_AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("JWT_AUDIENCE", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("INTAKE_BATCH_COUNT", 4)
	v.SetDefault("INTAKE_RATE_LIMIT_PER_MIN", 30)
	v.SetDefault("INTAKE_RATE_LIMIT_BURST", 5)

	v.SetDefault("ENABLE_DASHBOARD_CACHE", false)
	v.SetDefault("DASHBOARD_CACHE_TTL", "2m")

	v.SetDefault("ENABLE_EVENTS", false)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "application.submitted")
	v.SetDefault("KAFKA_USERNAME", "")
	v.SetDefault("KAFKA_PASSWORD", "")
	v.SetDefault("KAFKA_WRITE_TIMEOUT", "10s")
	v.SetDefault("EVENTS_WORKERS", 1)
	v.SetDefault("EVENTS_MAX_RETRIES", 3)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

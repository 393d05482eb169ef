package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is intentionally empty; every field carries its full
// DRESHOP_-prefixed variable name in its tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Names of the env vars referenced outside struct tags (tests, error text).
const (
	EnvAppEnv        = "DRESHOP_APP_ENV"
	EnvPort          = "DRESHOP_APP_PORT"
	EnvDBDSN         = "DRESHOP_DB_DSN"
	EnvRedisURL      = "DRESHOP_REDIS_URL"
	EnvSessionSecret = "DRESHOP_SESSION_SECRET"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Catalog      CatalogConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DRESHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"DRESHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DRESHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DRESHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN        string `envconfig:"DRESHOP_DB_DSN"`
	SQLitePath string `envconfig:"DRESHOP_DB_SQLITE_PATH" default:"dreshop.db"`

	MaxOpenConns    int           `envconfig:"DRESHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DRESHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DRESHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DRESHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate(useSQLite bool) error {
	if useSQLite {
		if strings.TrimSpace(db.SQLitePath) == "" {
			return fmt.Errorf("sqlite path is required when sqlite is enabled")
		}
		return nil
	}
	if strings.TrimSpace(db.DSN) == "" {
		return fmt.Errorf("%s is required", EnvDBDSN)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"DRESHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DRESHOP_REDIS_ADDR"`
	Password     string        `envconfig:"DRESHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"DRESHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DRESHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DRESHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DRESHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DRESHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DRESHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig controls guest session tokens and snapshot retention.
type SessionConfig struct {
	Secret      string `envconfig:"DRESHOP_SESSION_SECRET" required:"true"`
	Issuer      string `envconfig:"DRESHOP_SESSION_ISSUER" default:"dreshop"`
	TTLDays     int    `envconfig:"DRESHOP_SESSION_TTL_DAYS" default:"30"`
	SnapshotTTL int    `envconfig:"DRESHOP_SESSION_SNAPSHOT_TTL_DAYS" default:"90"`
}

// TokenTTL returns how long an issued guest token stays valid.
func (s SessionConfig) TokenTTL() time.Duration {
	if s.TTLDays <= 0 {
		return 0
	}
	return time.Duration(s.TTLDays) * 24 * time.Hour
}

// SnapshotRetention returns how long idle state snapshots are kept.
func (s SessionConfig) SnapshotRetention() time.Duration {
	if s.SnapshotTTL <= 0 {
		return 0
	}
	return time.Duration(s.SnapshotTTL) * 24 * time.Hour
}

type CatalogConfig struct {
	// DefaultPriceCapCents bounds the price filter when no max is supplied.
	DefaultPriceCapCents int `envconfig:"DRESHOP_CATALOG_PRICE_CAP_CENTS" default:"150000"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DRESHOP_CORS_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DRESHOP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DRESHOP_AUTO_MIGRATE" default:"false"`
	SeedOnBoot  bool `envconfig:"DRESHOP_SEED_ON_BOOT" default:"false"`
}

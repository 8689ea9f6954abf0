package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:""`

	HTTPPort         string        `envconfig:"HTTP_PORT" default:"3000"`
	HTTPReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPWriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`
	HTTPIdleTimeout  time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`

	DatabaseURL  string `envconfig:"DATABASE_URL" required:"true"`
	DBMaxRetries int    `envconfig:"DB_MAX_RETRIES" default:"5"`

	SessionSecret       string        `envconfig:"SESSION_SECRET" default:"dev-only-session-secret-change-me!"`
	SessionTTL          time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	SessionCookieSecure bool          `envconfig:"SESSION_COOKIE_SECURE" default:"false"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	KafkaBrokers       []string      `envconfig:"KAFKA_BROKERS"`
	KafkaConsumerGroup string        `envconfig:"KAFKA_CONSUMER_GROUP" default:"hr-hub"`
	OutboxPollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"3s"`

	CronSecret string `envconfig:"CRON_SECRET"`

	StorageEndpoint  string        `envconfig:"STORAGE_ENDPOINT"`
	StorageAccessKey string        `envconfig:"STORAGE_ACCESS_KEY"`
	StorageSecretKey string        `envconfig:"STORAGE_SECRET_KEY"`
	StorageBucket    string        `envconfig:"STORAGE_BUCKET" default:"hr-hub"`
	StorageUseSSL    bool          `envconfig:"STORAGE_USE_SSL" default:"true"`
	PresignTTL       time.Duration `envconfig:"PRESIGN_TTL" default:"15m"`

	AuditBufferSize    int           `envconfig:"AUDIT_BUFFER_SIZE" default:"4096"`
	AuditBatchSize     int           `envconfig:"AUDIT_BATCH_SIZE" default:"100"`
	AuditFlushInterval time.Duration `envconfig:"AUDIT_FLUSH_INTERVAL" default:"500ms"`

	PermissionsFile string `envconfig:"PERMISSIONS_FILE"`
}

// Load reads .env when present, then the environment, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c != nil && strings.EqualFold(c.AppEnv, "production")
}

// Validate enforces the keys production cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.IsProduction() {
		if len(c.SessionSecret) < 32 || strings.HasPrefix(c.SessionSecret, "dev-only") {
			errs = append(errs, errors.New("SESSION_SECRET must be set to at least 32 bytes in production"))
		}
		if c.CronSecret == "" {
			errs = append(errs, errors.New("CRON_SECRET is required in production"))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c *Config) StorageEnabled() bool {
	return c.StorageEndpoint != "" && c.StorageAccessKey != "" && c.StorageSecretKey != ""
}

// Package config loads process configuration from the environment, with an
// optional .env file for local runs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
	StoreDriverMemory   = "memory"
)

type Config struct {
	AppEnv         string `env:"APP_ENV" envDefault:"development"`
	Port           string `env:"PORT" envDefault:"3000"`
	StoreDriver    string `env:"STORE_DRIVER" envDefault:"postgres"`
	ConnectRetries int    `env:"CONNECT_RETRIES" envDefault:"5"`

	DB       DBConfig       `envPrefix:"DB_"`
	Mongo    MongoConfig    `envPrefix:"MONGO_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	JWT      JWTConfig      `envPrefix:"JWT_"`
	RBAC     RBACConfig     `envPrefix:"RBAC_"`
	Password PasswordConfig `envPrefix:"PASSWORD_"`
	Outbox   OutboxConfig   `envPrefix:"OUTBOX_"`
}

type DBConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME" envDefault:"estateflow"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type MongoConfig struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"estateflow"`
}

// RedisConfig with an empty Addr disables the record cache and idempotency
// keys.
type RedisConfig struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

// KafkaConfig with no brokers disables event publishing.
type KafkaConfig struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	GroupID string   `env:"GROUP_ID" envDefault:"estateflow-audit"`
}

type JWTConfig struct {
	Secret     string        `env:"SECRET,required"`
	Issuer     string        `env:"ISSUER" envDefault:"estateflow"`
	AccessTTL  time.Duration `env:"ACCESS_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"REFRESH_TTL" envDefault:"168h"`
}

// RBACConfig paths override the built-in role policy when both are set.
type RBACConfig struct {
	ModelPath  string `env:"MODEL_PATH"`
	PolicyPath string `env:"POLICY_PATH"`
}

type PasswordConfig struct {
	BcryptCost        int `env:"BCRYPT_COST" envDefault:"12"`
	MaxConcurrentHash int `env:"MAX_CONCURRENT_HASH" envDefault:"4"`
}

type OutboxConfig struct {
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"3s"`
	BatchSize    int           `env:"BATCH_SIZE" envDefault:"50"`
	Lease        time.Duration `env:"LEASE" envDefault:"30s"`
	MaxAttempts  int           `env:"MAX_ATTEMPTS" envDefault:"10"`
	Retention    time.Duration `env:"RETENTION" envDefault:"168h"`
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads .env files if present, then parses the environment.
// Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMongo, StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if len(c.JWT.Secret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if (c.RBAC.ModelPath == "") != (c.RBAC.PolicyPath == "") {
		return errors.New("RBAC_MODEL_PATH and RBAC_POLICY_PATH must be set together")
	}
	return nil
}

package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Cache      CacheConfig
	Processing ProcessingConfig
	CDN        CDNConfig
	Log        LogConfig
	RateLimit  RateLimitConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" required:"true"`
	Password        string        `envconfig:"DB_PASSWORD" required:"true"`
	Name            string        `envconfig:"DB_NAME" required:"true"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// StorageConfig selects and configures the storage backend. Only the
// section matching Type is validated at startup; the others may stay
// at their defaults.
type StorageConfig struct {
	Type          string `envconfig:"STORAGE_TYPE" default:"local"`
	MaxUploadSize int64  `envconfig:"STORAGE_MAX_UPLOAD_SIZE" default:"10485760"`
	Local         LocalStorageConfig
	S3            S3Config
	MinIOCLI      MinIOCLIConfig
}

type LocalStorageConfig struct {
	Root    string `envconfig:"STORAGE_LOCAL_ROOT" default:"./storage"`
	BaseURL string `envconfig:"STORAGE_LOCAL_BASE_URL" default:"/api/v1/cdn/file"`
}

type S3Config struct {
	Endpoint        string        `envconfig:"S3_ENDPOINT"`
	Region          string        `envconfig:"S3_REGION" default:"us-east-1"`
	Bucket          string        `envconfig:"S3_BUCKET" default:"product-images"`
	AccessKeyID     string        `envconfig:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string        `envconfig:"S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool          `envconfig:"S3_USE_PATH_STYLE" default:"false"`
	PublicURL       string        `envconfig:"S3_PUBLIC_URL"`
	PresignExpiry   time.Duration `envconfig:"S3_PRESIGN_EXPIRY" default:"1h"`
}

// MinIOCLIConfig drives the mc-based backend. When Container is set,
// every mc invocation runs through `docker exec` against that container.
type MinIOCLIConfig struct {
	Binary      string        `envconfig:"MINIO_CLI_BINARY" default:"mc"`
	Alias       string        `envconfig:"MINIO_CLI_ALIAS" default:"myminio"`
	Bucket      string        `envconfig:"MINIO_CLI_BUCKET" default:"product-images"`
	Container   string        `envconfig:"MINIO_CLI_CONTAINER"`
	ShareExpiry time.Duration `envconfig:"MINIO_CLI_SHARE_EXPIRY" default:"1h"`
}

type CacheConfig struct {
	Dir             string        `envconfig:"CACHE_DIR" default:"./cache/cdn"`
	TTL             time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	CleanupInterval time.Duration `envconfig:"CACHE_CLEANUP_INTERVAL" default:"10m"`
}

type ProcessingConfig struct {
	Workers     int           `envconfig:"PROCESSING_WORKERS" default:"4"`
	PollTimeout time.Duration `envconfig:"PROCESSING_POLL_TIMEOUT" default:"1s"`
	StopTimeout time.Duration `envconfig:"PROCESSING_STOP_TIMEOUT" default:"30s"`
}

// CDNConfig holds the externally visible base URL prepended to CDN file
// paths. Empty means relative URLs.
type CDNConfig struct {
	BaseURL string `envconfig:"CDN_BASE_URL" default:""`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RateLimitConfig struct {
	Enabled         bool          `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	RequestsPerMin  int           `envconfig:"RATE_LIMIT_REQUESTS_PER_MIN" default:"100"`
	BurstSize       int           `envconfig:"RATE_LIMIT_BURST_SIZE" default:"10"`
	CleanupInterval time.Duration `envconfig:"RATE_LIMIT_CLEANUP_INTERVAL" default:"1m"`
}

// Load reads a .env file when present, then populates Config from the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

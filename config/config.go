package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	ImageStorageLocal = "local"
	ImageStorageS3    = "s3"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	App       AppConfig
	CORS      CORSConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Images    ImageConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"5000"`
	PublicBaseURL   string        `env:"PUBLIC_BASE_URL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type StoreConfig struct {
	Driver    string        `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI  string        `env:"MONGO_URI"`
	MongoDB   string        `env:"MONGO_DB" envDefault:"kilagbe"`
	DSN       string        `env:"DB_DSN"`
	ConnectTO time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`
}

type AppConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"kilagbe-api"`
	FreeAdLimit int    `env:"FREE_AD_LIMIT" envDefault:"2"`
}

type CORSConfig struct {
	Origins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"https://ki-lagbe-com.vercel.app,http://localhost:5173,http://localhost:3000"`
}

type AuthConfig struct {
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
}

// Enabled reports whether ID tokens can be verified.
func (a AuthConfig) Enabled() bool {
	return a.FirebaseCredentialsPath != ""
}

type RateLimitConfig struct {
	Enabled  bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Max      int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`
	RedisURL string        `env:"REDIS_URL"`
}

type ImageConfig struct {
	Storage     string `env:"IMAGE_STORAGE" envDefault:"local"`
	UploadDir   string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	MaxFiles    int    `env:"UPLOAD_MAX_FILES" envDefault:"5"`
	MaxFileSize int64  `env:"UPLOAD_MAX_FILE_BYTES" envDefault:"5242880"`

	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`
}

type LogConfig struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT"`
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	MaxAgeDays int    `env:"LOG_MAX_AGE" envDefault:"7"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse reads the environment without loading .env or validating.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Images.Storage = strings.ToLower(strings.TrimSpace(cfg.Images.Storage))
	cfg.Server.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.Server.PublicBaseURL), "/")
	cfg.CORS.Origins = cleanList(cfg.CORS.Origins)

	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
		if cfg.IsProduction() {
			cfg.Log.Format = "json"
		}
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Server.PublicBaseURL == "" {
		return fmt.Errorf("PUBLIC_BASE_URL is required")
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for store driver %q", c.Store.Driver)
		}
	case DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("DB_DSN is required for store driver %q", c.Store.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.App.FreeAdLimit < 0 {
		return fmt.Errorf("FREE_AD_LIMIT must not be negative")
	}

	switch c.Images.Storage {
	case ImageStorageLocal:
		if c.Images.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for local image storage")
		}
	case ImageStorageS3:
		if c.Images.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for s3 image storage")
		}
	default:
		return fmt.Errorf("unknown IMAGE_STORAGE %q", c.Images.Storage)
	}

	if c.RateLimit.Enabled && (c.RateLimit.Max <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	for _, o := range c.CORS.Origins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("CORS_ORIGINS entry %q must start with http:// or https://", o)
		}
	}

	if c.IsProduction() && !c.Auth.Enabled() {
		return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when APP_ENV=production")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimRight(strings.TrimSpace(v), "/")
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

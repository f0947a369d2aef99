package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings sourced from environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	PDF      PDFConfig      `mapstructure:"pdf"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Suggest  SuggestConfig  `mapstructure:"suggest"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port       int `mapstructure:"port"`
	MaxResumes int `mapstructure:"max_resumes"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig contains Redis connection options.
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
}

// PDFConfig controls the export engine. An empty FontDir selects the
// built-in core faces; otherwise the directory must hold the three weights
// (regular.ttf, bold.ttf, italic.ttf).
type PDFConfig struct {
	FontDir string `mapstructure:"font_dir"`
}

// AuthConfig points at the RSA key pair and token lifetimes.
type AuthConfig struct {
	PrivateKeyPath string        `mapstructure:"private_key_path"`
	PublicKeyPath  string        `mapstructure:"public_key_path"`
	AccessTTL      time.Duration `mapstructure:"access_ttl"`
	RefreshTTL     time.Duration `mapstructure:"refresh_ttl"`
}

// SuggestConfig configures the generative-text collaborator. An empty API
// key disables the feature; the endpoint then answers 503.
type SuggestConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Addr returns the host:port address of the Redis server.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load reads configuration solely from environment variables (with defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.max_resumes", 20)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "cvpress")
	v.SetDefault("database.user", "cvpress")
	v.SetDefault("database.password", "cvpress")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "exports")
	v.SetDefault("pdf.font_dir", "")
	v.SetDefault("auth.access_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_ttl", 720*time.Hour)
	v.SetDefault("suggest.base_url", "")
	v.SetDefault("suggest.model", "")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                "API_PORT",
		"api.max_resumes":         "API_MAX_RESUMES",
		"database.host":           "DATABASE_HOST",
		"database.port":           "DATABASE_PORT",
		"database.name":           "POSTGRES_DB",
		"database.user":           "POSTGRES_USER",
		"database.password":       "POSTGRES_PASSWORD",
		"database.sslmode":        "DATABASE_SSLMODE",
		"redis.host":              "REDIS_HOST",
		"redis.port":              "REDIS_PORT",
		"minio.endpoint":          "MINIO_ENDPOINT",
		"minio.access_key_id":     "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key": "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":           "MINIO_USE_SSL",
		"minio.bucket":            "MINIO_BUCKET",
		"pdf.font_dir":            "PDF_FONT_DIR",
		"auth.private_key_path":   "AUTH_PRIVATE_KEY_PATH",
		"auth.public_key_path":    "AUTH_PUBLIC_KEY_PATH",
		"auth.access_ttl":         "AUTH_ACCESS_TTL",
		"auth.refresh_ttl":        "AUTH_REFRESH_TTL",
		"suggest.api_key":         "SUGGEST_API_KEY",
		"suggest.base_url":        "SUGGEST_BASE_URL",
		"suggest.model":           "SUGGEST_MODEL",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.Auth.AccessTTL <= 0 || cfg.Auth.RefreshTTL <= 0 {
		return errors.New("auth token lifetimes must be positive")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret = "dev-only-jwt-secret"
	defaultCSRFKey   = "dev-only-csrf-key-32-bytes-long!"
)

type Config struct {
	AppName        string
	Environment    string
	ServerPort     string
	LogLevel       string
	DB             DatabaseConfig
	RabbitURL      string
	Redis          RedisConfig
	PageCacheTTL   time.Duration
	JWTSecret      string
	CSRFKey        string
	Storage        StorageConfig
	OTel           OTelConfig
	AnalyticsLimit time.Duration
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
	MaxOpen    int
	MaxIdle    int
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	BaseURL string
	Bucket  string
}

type OTelConfig struct {
	Enabled       bool
	CollectorAddr string
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode,
	)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads an optional .env file into the environment and then builds the
// configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := bindConfig(v)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "menulink")
	v.SetDefault("APP_ENVIRONMENT", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "menulink")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_SQLITE_PATH", "menulink.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("RABBITMQ_URL", "")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("PAGE_CACHE_TTL", "5m")

	v.SetDefault("AUTH_JWT_SECRET", defaultJWTSecret)
	v.SetDefault("CSRF_KEY", defaultCSRFKey)

	v.SetDefault("STORAGE_BASE_URL", "http://localhost:54321")
	v.SetDefault("STORAGE_BUCKET", "restaurant-assets")

	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_COLLECTOR_ADDR", "localhost:4317")

	v.SetDefault("ANALYTICS_TIMEOUT", "10s")
}

func bindConfig(v *viper.Viper) *Config {
	return &Config{
		AppName:     v.GetString("APP_NAME"),
		Environment: v.GetString("APP_ENVIRONMENT"),
		ServerPort:  v.GetString("SERVER_PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		DB: DatabaseConfig{
			Driver:     v.GetString("DB_DRIVER"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetInt("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			SQLitePath: v.GetString("DB_SQLITE_PATH"),
			MaxOpen:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdle:    v.GetInt("DB_MAX_IDLE_CONNS"),
		},
		RabbitURL: v.GetString("RABBITMQ_URL"),
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		PageCacheTTL: v.GetDuration("PAGE_CACHE_TTL"),
		JWTSecret:    v.GetString("AUTH_JWT_SECRET"),
		CSRFKey:      v.GetString("CSRF_KEY"),
		Storage: StorageConfig{
			BaseURL: v.GetString("STORAGE_BASE_URL"),
			Bucket:  v.GetString("STORAGE_BUCKET"),
		},
		OTel: OTelConfig{
			Enabled:       v.GetBool("OTEL_ENABLED"),
			CollectorAddr: v.GetString("OTEL_COLLECTOR_ADDR"),
		},
		AnalyticsLimit: v.GetDuration("ANALYTICS_TIMEOUT"),
	}
}

func (c *Config) Validate() error {
	var errs []error
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DB.Driver))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required"))
	}
	if len(c.CSRFKey) != 32 {
		errs = append(errs, errors.New("CSRF_KEY must be 32 bytes"))
	}
	if c.IsProduction() {
		if c.JWTSecret == defaultJWTSecret {
			errs = append(errs, errors.New("AUTH_JWT_SECRET must be set in production"))
		}
		if c.CSRFKey == defaultCSRFKey {
			errs = append(errs, errors.New("CSRF_KEY must be set in production"))
		}
	}
	if c.PageCacheTTL <= 0 {
		errs = append(errs, errors.New("PAGE_CACHE_TTL must be positive"))
	}
	if c.AnalyticsLimit <= 0 {
		errs = append(errs, errors.New("ANALYTICS_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

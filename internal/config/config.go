// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "change-me-recshelf-development-secret"

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port                   string `mapstructure:"PORT"`
	Env                    string `mapstructure:"APP_ENV"`
	JWTSecret              string `mapstructure:"JWT_SECRET"`
	AccessTokenExpireHours int    `mapstructure:"ACCESS_TOKEN_EXPIRE_HOURS"`

	DBDriver       string `mapstructure:"DB_DRIVER"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSLMODE"`
	DBSQLitePath   string `mapstructure:"DB_SQLITE_PATH"`
	DBSchemaMode   string `mapstructure:"DB_SCHEMA_MODE"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNS"`

	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	TracingEnabled  bool   `mapstructure:"TRACING_ENABLED"`
	TracingExporter string `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string `mapstructure:"OTLP_ENDPOINT"`

	SeedFictionTypes bool `mapstructure:"SEED_FICTION_TYPES"`
}

// LoadConfig loads application configuration from .env, config files and environment variables.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		slog.Info("Loaded profile-specific configuration", slog.String("file", "config."+env+".yml"))
	}

	viper.SetDefault("PORT", "8000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("ACCESS_TOKEN_EXPIRE_HOURS", 24)
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "recshelf")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "recshelf")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_SQLITE_PATH", "recshelf.db")
	viper.SetDefault("DB_SCHEMA_MODE", "hybrid")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("SEED_FICTION_TYPES", true)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) normalize() {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.DBSchemaMode = strings.ToLower(strings.TrimSpace(c.DBSchemaMode))
	c.TracingExporter = strings.ToLower(strings.TrimSpace(c.TracingExporter))
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
}

// IsProduction reports whether the strict production checks apply.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.AccessTokenExpireHours <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_HOURS must be positive")
	}

	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}

	switch c.DBSchemaMode {
	case "", "hybrid", "sql", "auto":
	default:
		return fmt.Errorf("DB_SCHEMA_MODE must be hybrid, sql or auto, got %q", c.DBSchemaMode)
	}

	if c.TracingEnabled && c.TracingExporter != "stdout" && c.TracingExporter != "otlp" {
		return fmt.Errorf("TRACING_EXPORTER must be stdout or otlp, got %q", c.TracingExporter)
	}

	if c.IsProduction() {
		if c.JWTSecret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if c.DBDriver == "sqlite" {
			return errors.New("DB_DRIVER=sqlite is not supported in production")
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			return errors.New("DB_SSLMODE must enable TLS in production")
		}
		if c.AllowedOrigins == "*" {
			slog.Warn("ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	} else if len(c.JWTSecret) < 32 {
		slog.Warn("JWT_SECRET is shorter than 32 characters. Consider using a stronger secret for production.")
	}

	return nil
}

// PostgresDSN renders the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
}

type AppConfig struct {
	Env        string
	APIVersion string
}

type ServerConfig struct {
	Port               int
	ShutdownTimeout    time.Duration
	BodyLimitBytes     int64
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type RateLimitConfig struct {
	Window time.Duration
	Max    int
}

// RedisConfig leaves Addr empty when no Redis is available; rate limiting is
// then disabled.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// Load reads configuration from the environment after applying an optional
// .env file from the working directory. Variables already set win over the
// file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("API_VERSION", "v1")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("BODY_LIMIT_BYTES", 10<<20)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "orders")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "order_management")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	driver := strings.ToLower(v.GetString("DB_DRIVER"))
	switch driver {
	case DriverMySQL:
		v.SetDefault("DB_PORT", 3306)
	case DriverPostgres:
		v.SetDefault("DB_PORT", 5432)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	connMaxLifetime, err := parseDuration(v, "DB_CONN_MAX_LIFETIME")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration(v, "SERVER_SHUTDOWN_TIMEOUT")
	if err != nil {
		return nil, err
	}
	window, err := parseDuration(v, "RATE_LIMIT_WINDOW")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:        v.GetString("APP_ENV"),
			APIVersion: v.GetString("API_VERSION"),
		},
		Server: ServerConfig{
			Port:               v.GetInt("SERVER_PORT"),
			ShutdownTimeout:    shutdownTimeout,
			BodyLimitBytes:     v.GetInt64("BODY_LIMIT_BYTES"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Driver:          driver,
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		RateLimit: RateLimitConfig{
			Window: window,
			Max:    v.GetInt("RATE_LIMIT_MAX"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package config reads service settings from the environment, optionally seeded from a
// .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Log      LogConfig
	Calendar CalendarConfig
}

type ServerConfig struct {
	Port         string
	RateLimit    int
	StoreTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN builds a pgx connection URL.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled is false when no host is configured; the service then runs without a cache and
// without rate limiting.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
}

type LogConfig struct {
	Level  string
	Format string
}

// CalendarConfig names the one local calendar used to decide what "today" is.
type CalendarConfig struct {
	Timezone string
	Location *time.Location
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("RATE_LIMIT", 100)
	v.SetDefault("STORE_TIMEOUT", "5s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "weeks_user")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "weeks_db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 25)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")

	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "warehouse.weeks")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "warehouse-weeks")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CALENDAR_TIMEZONE", "UTC")
}

// Load reads envFiles (missing files are ignored) and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	loc, err := time.LoadLocation(v.GetString("CALENDAR_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid CALENDAR_TIMEZONE %q: %w", v.GetString("CALENDAR_TIMEZONE"), err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			RateLimit:    v.GetInt("RATE_LIMIT"),
			StoreTimeout: v.GetDuration("STORE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			JWTIssuer: v.GetString("JWT_ISSUER"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Calendar: CalendarConfig{
			Timezone: v.GetString("CALENDAR_TIMEZONE"),
			Location: loc,
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Server.StoreTimeout <= 0 {
		return nil, fmt.Errorf("STORE_TIMEOUT must be positive")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

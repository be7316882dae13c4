package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	Meeting  MeetingConfig
	Reminder ReminderConfig
	Upload   UploadConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32

	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// SMTPConfig is fully optional: without a host the notification sink degrades
// to a logged no-op.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// MeetingConfig holds the primary video provider credential. An empty API key
// means every room comes from the no-network fallback provider.
type MeetingConfig struct {
	DailyAPIKey string
	HTTPTimeout time.Duration
}

type ReminderConfig struct {
	SweepInterval time.Duration
}

type UploadConfig struct {
	Dir string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "placement-hub"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "8080"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST", "localhost"),
		DBPort:         opt("DB_PORT", "5432"),
		DBName:         req("DB_NAME"),
		DBUser:         req("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBSSLMode:      opt("DB_SSL_MODE", "disable"),
		ConnectTimeout: optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:   int32(optInt("DB_POOL_MIN_CONNS", 0)),
		MigrationsDir:  opt("DB_MIGRATIONS_DIR", "migrations"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	cfg.JWT = JWTConfig{
		Secret:    req("JWT_SECRET"),
		ExpiresIn: optDuration("JWT_EXPIRES_IN", 30*24*time.Hour),
	}

	cfg.SMTP = SMTPConfig{
		Host:     opt("SMTP_HOST", ""),
		Port:     opt("SMTP_PORT", "587"),
		User:     opt("SMTP_USER", ""),
		Password: os.Getenv("SMTP_PASS"),
		From:     opt("SMTP_FROM", opt("SMTP_USER", "")),
	}

	cfg.Meeting = MeetingConfig{
		DailyAPIKey: opt("DAILY_API_KEY", ""),
		HTTPTimeout: optDuration("MEETING_HTTP_TIMEOUT", 10*time.Second),
	}

	cfg.Reminder = ReminderConfig{
		SweepInterval: optDuration("REMINDER_SWEEP_INTERVAL", time.Hour),
	}

	cfg.Upload = UploadConfig{
		Dir: opt("UPLOAD_DIR", "uploads"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func optDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	LockerLocal = "local"
	LockerRedis = "redis"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Engine    EngineConfig    `toml:"engine"`
	Notifier  NotifierConfig  `toml:"notifier"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Driver           string `toml:"driver"` // postgres | memory
	Host             string `toml:"host"`
	Port             int    `toml:"port"`
	User             string `toml:"user"`
	Password         string `toml:"password"`
	DBName           string `toml:"dbname"`
	SSLMode          string `toml:"sslmode"`
	MaxOpenConns     int    `toml:"max_open_conns"`
	MaxIdleConns     int    `toml:"max_idle_conns"`
	ConnMaxLifetime  int    `toml:"conn_max_lifetime"` // секунды
	SerializeRetries int    `toml:"serialize_retries"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	// Locker выбирает блокировку подтверждений: local (в процессе) или redis (несколько экземпляров)
	Locker   string `toml:"locker"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	LockTTL  int    `toml:"lock_ttl"` // секунды
	Prefix   string `toml:"prefix"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто = stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type EngineConfig struct {
	Timezone              string `toml:"timezone"`
	MinNoticeMinutes      int    `toml:"min_notice_minutes"`
	AdvanceBookingDays    int    `toml:"advance_booking_days"` // 0 = без ограничения
	RecommendEveryMinutes int    `toml:"recommend_every_minutes"`
}

// Location часовой пояс движка
func (e EngineConfig) Location() (*time.Location, error) {
	return time.LoadLocation(e.Timezone)
}

type NotifierConfig struct {
	URL     string `toml:"url"`     // пусто = уведомления выключены
	Timeout int    `toml:"timeout"` // секунды
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// Load читает конфигурацию из TOML файла.
// Перед чтением подгружается .env, плейсхолдеры ${VAR} раскрываются из окружения,
// DB_PASSWORD и REDIS_PASSWORD переопределяют значения из файла.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if _, err := toml.Decode(os.ExpandEnv(string(raw)), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:           DriverPostgres,
			Host:             "localhost",
			Port:             5432,
			User:             "postgres",
			DBName:           "estate_booking",
			SSLMode:          "disable",
			MaxOpenConns:     25,
			MaxIdleConns:     5,
			ConnMaxLifetime:  300,
			SerializeRetries: 3,
		},
		Redis: RedisConfig{
			Locker:  LockerLocal,
			Addr:    "localhost:6379",
			LockTTL: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "estate-booking-service",
		},
		Engine: EngineConfig{
			Timezone:              "UTC",
			RecommendEveryMinutes: 60,
		},
		Notifier: NotifierConfig{
			Timeout: 5,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     10,
			Burst:   20,
		},
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverMemory, c.Database.Driver))
	}
	switch c.Redis.Locker {
	case LockerLocal, LockerRedis:
	default:
		errs = append(errs, fmt.Errorf("redis.locker must be %q or %q, got %q", LockerLocal, LockerRedis, c.Redis.Locker))
	}
	if _, err := c.Engine.Location(); err != nil {
		errs = append(errs, fmt.Errorf("engine.timezone: %w", err))
	}
	if c.Engine.MinNoticeMinutes < 0 {
		errs = append(errs, errors.New("engine.min_notice_minutes must not be negative"))
	}
	if c.Engine.AdvanceBookingDays < 0 {
		errs = append(errs, errors.New("engine.advance_booking_days must not be negative"))
	}
	if c.RateLimit.Enabled && c.RateLimit.RPS <= 0 {
		errs = append(errs, errors.New("rate_limit.rps must be positive"))
	}

	return errors.Join(errs...)
}

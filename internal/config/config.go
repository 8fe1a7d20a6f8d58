package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Поддерживаемые драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Mongo     MongoConfig     `toml:"mongo"`
	Redis     RedisConfig     `toml:"redis"`
	Email     EmailConfig     `toml:"email"`
	Identity  IdentityConfig  `toml:"identity"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	CORS      CORSConfig      `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig метрики собираются всегда, Enabled управляет только эндпоинтом
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StorageConfig struct {
	Driver        string `toml:"driver"`
	CallTimeoutMs int    `toml:"call_timeout_ms"`
}

// CallTimeout таймаут одного обращения к хранилищу
func (s StorageConfig) CallTimeout() time.Duration {
	return time.Duration(s.CallTimeoutMs) * time.Millisecond
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// RedisConfig кэш политики; пустой Addr отключает кэш
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

func (r RedisConfig) Enabled() bool { return r.Addr != "" }

func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// EmailConfig транзакционная почта; при Enabled=false письма только логируются
type EmailConfig struct {
	Enabled     bool              `toml:"enabled"`
	Endpoint    string            `toml:"endpoint"`
	ServiceID   string            `toml:"service_id"`
	PublicKey   string            `toml:"public_key"`
	AccessToken string            `toml:"access_token"`
	TimeoutMs   int               `toml:"timeout_ms"`
	Templates   map[string]string `toml:"templates"`
}

func (e EmailConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutMs) * time.Millisecond
}

type IdentityConfig struct {
	Secret        string `toml:"secret"`
	Issuer        string `toml:"issuer"`
	Audience      string `toml:"audience"`
	LeewaySeconds int    `toml:"leeway_seconds"`
}

type RateLimitConfig struct {
	Enabled   bool    `toml:"enabled"`
	PerMinute float64 `toml:"per_minute"`
	Burst     int     `toml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics", ServiceName: "bookit"},
		Storage: StorageConfig{Driver: DriverPostgres, CallTimeoutMs: 3000},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "bookit",
			DBName:          "bookit",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Mongo:     MongoConfig{URI: "mongodb://localhost:27017", Database: "bookit"},
		Redis:     RedisConfig{TTLSeconds: 30},
		Email:     EmailConfig{TimeoutMs: 5000},
		RateLimit: RateLimitConfig{Enabled: true, PerMinute: 5, Burst: 1},
		CORS:      CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// Load читает TOML-файл, затем .env и переменные окружения BOOKIT_*.
// Отсутствующий .env не считается ошибкой.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"BOOKIT_STORAGE_DRIVER":     &c.Storage.Driver,
		"BOOKIT_DATABASE_HOST":      &c.Database.Host,
		"BOOKIT_DATABASE_USER":      &c.Database.User,
		"BOOKIT_DATABASE_PASSWORD":  &c.Database.Password,
		"BOOKIT_DATABASE_NAME":      &c.Database.DBName,
		"BOOKIT_MONGO_URI":          &c.Mongo.URI,
		"BOOKIT_REDIS_ADDR":         &c.Redis.Addr,
		"BOOKIT_REDIS_PASSWORD":     &c.Redis.Password,
		"BOOKIT_EMAIL_PUBLIC_KEY":   &c.Email.PublicKey,
		"BOOKIT_EMAIL_ACCESS_TOKEN": &c.Email.AccessToken,
		"BOOKIT_IDENTITY_SECRET":    &c.Identity.Secret,
		"BOOKIT_LOG_LEVEL":          &c.Logs.Level,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"BOOKIT_HTTP_PORT":     &c.Server.HTTPPort,
		"BOOKIT_DATABASE_PORT": &c.Database.Port,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
		}
		*dst = n
	}
	return nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Storage.CallTimeoutMs < 0 {
		return fmt.Errorf("%w: call_timeout_ms must not be negative", ErrInvalidConfig)
	}
	if c.Email.Enabled && (c.Email.ServiceID == "" || len(c.Email.Templates) == 0) {
		return fmt.Errorf("%w: email.service_id and email.templates are required when email is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.PerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.per_minute and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	return nil
}

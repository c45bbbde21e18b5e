package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Auth       AuthConfig       `toml:"auth"`
	Directory  DirectoryConfig  `toml:"directory"`
	Redis      RedisConfig      `toml:"redis"`
	NATS       NATSConfig       `toml:"nats"`
	Catalog    CatalogConfig    `toml:"catalog"`
	Scheduling SchedulingConfig `toml:"scheduling"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"` // postgres | memory
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

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	TokenTTL  int    `toml:"token_ttl"` // минуты
}

type DirectoryConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	CacheTTL int    `toml:"cache_ttl"` // секунды
}

type NATSConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
}

type CatalogConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

type SchedulingConfig struct {
	TimeZone    string `toml:"timezone"`
	OpenTime    string `toml:"open_time"`  // HH:MM
	CloseTime   string `toml:"close_time"` // HH:MM
	SlotMinutes int    `toml:"slot_minutes"`
	HorizonDays int    `toml:"horizon_days"` // 0 - без ограничения
}

// Location возвращает часовой пояс магазинов
func (s SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.TimeZone)
}

// Slots возвращает параметры сетки свободных слотов
func (s SchedulingConfig) Slots() (domain.SlotsConfig, error) {
	hours, err := domain.ParseWorkingHours(s.OpenTime, s.CloseTime)
	if err != nil {
		return domain.SlotsConfig{}, err
	}
	return domain.SlotsConfig{
		Hours:       hours,
		SlotMinutes: s.SlotMinutes,
		HorizonDays: s.HorizonDays,
	}, nil
}

// Load загружает конфигурацию из TOML файла.
// Переменные окружения (и .env, если есть) имеют приоритет над файлом
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "room_booking_service",
		},
		Auth:      AuthConfig{TokenTTL: 720},
		Directory: DirectoryConfig{Timeout: 5},
		Redis:     RedisConfig{Addr: "localhost:6379", CacheTTL: 300},
		NATS:      NATSConfig{URL: "nats://localhost:4222"},
		Catalog:   CatalogConfig{Path: "catalog.yaml"},
		Scheduling: SchedulingConfig{
			TimeZone:    domain.DefaultTimeZone,
			OpenTime:    "08:00",
			CloseTime:   "20:00",
			SlotMinutes: domain.DefaultSlotMinutes,
			HorizonDays: domain.DefaultHorizonDays,
		},
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_PORT %q: %w", v, err)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		c.NATS.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logs.Level = v
	}
	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive, got %d", c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return errors.New("database.host is required")
		}
		if c.Database.DBName == "" {
			return errors.New("database.dbname is required")
		}
		if c.Database.Port <= 0 {
			return fmt.Errorf("database.port must be positive, got %d", c.Database.Port)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverMemory, c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required (or JWT_SECRET env)")
	}
	if c.Catalog.Path == "" {
		return errors.New("catalog.path is required")
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("scheduling.timezone %q: %w", c.Scheduling.TimeZone, err)
	}
	if _, err := c.Scheduling.Slots(); err != nil {
		return fmt.Errorf("scheduling working hours: %w", err)
	}
	if c.Scheduling.SlotMinutes <= 0 {
		return fmt.Errorf("scheduling.slot_minutes must be positive, got %d", c.Scheduling.SlotMinutes)
	}
	if c.Scheduling.HorizonDays < 0 {
		return fmt.Errorf("scheduling.horizon_days must not be negative, got %d", c.Scheduling.HorizonDays)
	}

	return nil
}

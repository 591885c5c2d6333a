package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/MedicalBookingService/internal/domain"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	// EnvConfigPath переопределяет путь к файлу конфигурации
	EnvConfigPath = "CONFIG_PATH"
	// EnvDBPassword переопределяет пароль БД
	EnvDBPassword = "DB_PASSWORD"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Booking         BookingConfig         `toml:"booking"`
	IdentityService IdentityServiceConfig `toml:"identity_service"`
	Notifications   NotificationsConfig   `toml:"notifications"`

	location *time.Location
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
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

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type BookingConfig struct {
	Timezone           string `toml:"timezone"` // IANA, например "Europe/Moscow"
	MaxRangeDays       int    `toml:"max_range_days"`
	DefaultSlotMinutes int    `toml:"default_slot_minutes"`
}

type IdentityServiceConfig struct {
	URL     string        `toml:"url"`
	Timeout int           `toml:"timeout"` // секунды
	Breaker BreakerConfig `toml:"breaker"`
}

type BreakerConfig struct {
	MaxRequests      uint32 `toml:"max_requests"`
	Interval         int    `toml:"interval"` // секунды
	Timeout          int    `toml:"timeout"`  // секунды
	FailureThreshold uint32 `toml:"failure_threshold"`
}

type NotificationsConfig struct {
	Enabled        bool   `toml:"enabled"`
	AMQPURL        string `toml:"amqp_url"`
	Exchange       string `toml:"exchange"`
	PublishTimeout int    `toml:"publish_timeout"` // секунды
}

// Load читает конфигурацию из TOML файла
// Путь можно переопределить переменной CONFIG_PATH, пароль БД - DB_PASSWORD
func Load(path string) (*Config, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		path = envPath
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if password := os.Getenv(EnvDBPassword); password != "" {
		cfg.Database.Password = password
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "medical_booking_service"
	}

	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "UTC"
	}
	if c.Booking.MaxRangeDays == 0 {
		c.Booking.MaxRangeDays = domain.DefaultMaxRangeDays
	}
	if c.Booking.DefaultSlotMinutes == 0 {
		c.Booking.DefaultSlotMinutes = domain.DefaultSlotDurationMinutes
	}

	if c.IdentityService.Timeout == 0 {
		c.IdentityService.Timeout = 5
	}
	if c.IdentityService.Breaker.MaxRequests == 0 {
		c.IdentityService.Breaker.MaxRequests = 1
	}
	if c.IdentityService.Breaker.Interval == 0 {
		c.IdentityService.Breaker.Interval = 60
	}
	if c.IdentityService.Breaker.Timeout == 0 {
		c.IdentityService.Breaker.Timeout = 30
	}
	if c.IdentityService.Breaker.FailureThreshold == 0 {
		c.IdentityService.Breaker.FailureThreshold = 5
	}

	if c.Notifications.Exchange == "" {
		c.Notifications.Exchange = "medical.appointments"
	}
	if c.Notifications.PublishTimeout == 0 {
		c.Notifications.PublishTimeout = 5
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("%w: database host, dbname and user are required for postgres", ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.IdentityService.URL == "" {
		return fmt.Errorf("%w: identity_service.url is required", ErrInvalidConfig)
	}

	if c.Notifications.Enabled && c.Notifications.AMQPURL == "" {
		return fmt.Errorf("%w: notifications.amqp_url is required when notifications are enabled", ErrInvalidConfig)
	}

	if c.Booking.DefaultSlotMinutes < domain.MinSlotDurationMinutes || c.Booking.DefaultSlotMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: booking.default_slot_minutes must be in [%d, %d]",
			ErrInvalidConfig, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if c.Booking.MaxRangeDays < 1 {
		return fmt.Errorf("%w: booking.max_range_days must be positive", ErrInvalidConfig)
	}

	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	c.location = loc

	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс клиники
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

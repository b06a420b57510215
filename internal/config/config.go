package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// EnvPrefix префикс переменных окружения, переопределяющих файл конфигурации
const EnvPrefix = "FIELDBOOKING"

var (
	// ErrLoadConfig возвращается, если не удалось прочитать файл конфигурации
	ErrLoadConfig = errors.New("config: failed to load config")

	// ErrInvalidConfig возвращается, если конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Logs        LogsConfig         `toml:"logs"`
	Metrics     MetricsConfig      `toml:"metrics"`
	Database    DatabaseConfig     `toml:"database"`
	Server      ServerConfig       `toml:"server"`
	UserService IntegrationConfig  `toml:"user_service" split_words:"true"`
	Booking     BookingConfig      `toml:"booking"`
	Pricing     map[string]float64 `toml:"pricing"`
	Outbox      OutboxConfig       `toml:"outbox"`
	Broker      BrokerConfig       `toml:"broker"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name" split_words:"true"`
	Path        string `toml:"path"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`     // секунды
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`    // секунды
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"` // секунды
}

type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type BookingConfig struct {
	AdvanceBookingDays     int    `toml:"advance_booking_days" split_words:"true"`
	Timezone               string `toml:"timezone"`
	CancelMinNoticeMinutes int    `toml:"cancel_min_notice_minutes" split_words:"true"` // 0 = без ограничений
}

type OutboxConfig struct {
	Enabled      bool `toml:"enabled"`
	PollInterval int  `toml:"poll_interval" split_words:"true"` // секунды
	BatchSize    int  `toml:"batch_size" split_words:"true"`
	MaxAttempts  int  `toml:"max_attempts" split_words:"true"`
}

type BrokerConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
	Queue    string `toml:"queue"`
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrLoadConfig, path, err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrLoadConfig, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "field-booking-service"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
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
	if c.UserService.Timeout == 0 {
		c.UserService.Timeout = 3
	}
	if c.Booking.AdvanceBookingDays == 0 {
		c.Booking.AdvanceBookingDays = domain.DefaultAdvanceBookingDays
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "Local"
	}
	if c.Outbox.PollInterval == 0 {
		c.Outbox.PollInterval = 5
	}
	if c.Outbox.BatchSize == 0 {
		c.Outbox.BatchSize = 50
	}
	if c.Outbox.MaxAttempts == 0 {
		c.Outbox.MaxAttempts = 10
	}
	if c.Broker.Exchange == "" {
		c.Broker.Exchange = "field-booking"
	}
	if c.Broker.Queue == "" {
		c.Broker.Queue = "finance.booking-income"
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Booking.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: booking.advance_booking_days must not be negative", ErrInvalidConfig)
	}
	if c.Booking.CancelMinNoticeMinutes < 0 {
		return fmt.Errorf("%w: booking.cancel_min_notice_minutes must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if _, err := c.PriceTable(); err != nil {
		return fmt.Errorf("%w: pricing: %v", ErrInvalidConfig, err)
	}
	if c.Broker.Enabled && c.Broker.URL == "" {
		return fmt.Errorf("%w: broker.url is required when broker is enabled", ErrInvalidConfig)
	}
	return nil
}

// Location часовой пояс, в котором считается "сегодня"
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// PriceTable таблица цен по видам спорта: значения по умолчанию, переопределенные секцией [pricing]
func (c *Config) PriceTable() (domain.PriceTable, error) {
	table := domain.DefaultPriceTable()
	for name, price := range c.Pricing {
		sport, err := domain.ParseSport(name)
		if err != nil {
			return nil, err
		}
		if price <= 0 {
			return nil, fmt.Errorf("price for %s must be positive", sport)
		}
		table[sport] = decimal.NewFromFloat(price)
	}
	return table, nil
}

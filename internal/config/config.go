package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/intunemindset/IM-BookingService/internal/domain"
)

// Config конфигурация сервиса, загружаемая из config.toml
type Config struct {
	Server        ServerConfig         `toml:"server"`
	Database      DatabaseConfig       `toml:"database"`
	Logs          LogsConfig           `toml:"logs"`
	Metrics       MetricsConfig        `toml:"metrics"`
	PayPal        PayPalConfig         `toml:"paypal"`
	Practitioners []PractitionerConfig `toml:"practitioners"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`     // секунды
	WriteTimeout    int    `toml:"write_timeout"`    // секунды
	IdleTimeout     int    `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int    `toml:"shutdown_timeout"` // секунды
	Timezone        string `toml:"timezone"`         // таймзона практики
	PublicURL       string `toml:"public_url"`       // базовый URL для return/cancel ссылок
	AdminToken      string `toml:"admin_token"`      // токен операторских эндпоинтов
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// PayPalConfig настройки платежного процессора
// Отсутствие client_id/secret - валидное состояние: движок уходит
// в fallback-подтверждение, а не падает на старте
type PayPalConfig struct {
	ClientID  string `toml:"client_id"`
	Secret    string `toml:"secret"`
	Mode      string `toml:"mode"` // "sandbox" | "live"
	Timeout   int    `toml:"timeout"` // секунды
	BrandName string `toml:"brand_name"`
}

// PractitionerConfig справочные данные практикующего
type PractitionerConfig struct {
	ID                     string  `toml:"id"`
	Name                   string  `toml:"name"`
	Title                  string  `toml:"title"`
	SessionPrice           float64 `toml:"session_price"`
	Currency               string  `toml:"currency"`
	SessionDurationMinutes int     `toml:"session_duration_minutes"`
}

// Load загружает конфигурацию из TOML-файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Server.Timezone == "" {
		c.Server.Timezone = domain.DefaultTimezone
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "im-booking-service"
	}
	if c.PayPal.Mode == "" {
		c.PayPal.Mode = "sandbox"
	}
	if c.PayPal.Timeout == 0 {
		c.PayPal.Timeout = 15
	}
	if c.PayPal.BrandName == "" {
		c.PayPal.BrandName = "Intune Mindset"
	}

	for i := range c.Practitioners {
		if c.Practitioners[i].SessionPrice == 0 {
			c.Practitioners[i].SessionPrice = domain.DefaultSessionPrice
		}
		if c.Practitioners[i].Currency == "" {
			c.Practitioners[i].Currency = domain.DefaultCurrency
		}
		if c.Practitioners[i].SessionDurationMinutes == 0 {
			c.Practitioners[i].SessionDurationMinutes = domain.DefaultSessionDurationMinutes
		}
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if len(c.Practitioners) == 0 {
		return fmt.Errorf("config: at least one practitioner is required")
	}
	seen := make(map[string]struct{}, len(c.Practitioners))
	for _, p := range c.Practitioners {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("config: practitioner id and name are required")
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("config: duplicate practitioner id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// DomainPractitioners конвертирует справочник в доменные модели
func (c *Config) DomainPractitioners() domain.Practitioners {
	practitioners := make(domain.Practitioners, len(c.Practitioners))
	for i, p := range c.Practitioners {
		practitioners[i] = domain.Practitioner{
			ID:                     p.ID,
			Name:                   p.Name,
			Title:                  p.Title,
			SessionPrice:           p.SessionPrice,
			Currency:               p.Currency,
			SessionDurationMinutes: p.SessionDurationMinutes,
		}
	}
	return practitioners
}

// PayPalClientID возвращает client_id с приоритетом переменной окружения
// Читается при каждом обращении: креденшелы резолвятся в момент вызова,
// а не на старте (их отсутствие - обрабатываемое состояние)
func (c *Config) PayPalClientID() string {
	if v := os.Getenv("PAYPAL_CLIENT_ID"); v != "" {
		return v
	}
	return c.PayPal.ClientID
}

// PayPalSecret возвращает secret с приоритетом переменной окружения
func (c *Config) PayPalSecret() string {
	if v := os.Getenv("PAYPAL_SECRET"); v != "" {
		return v
	}
	return c.PayPal.Secret
}

// PayPalMode возвращает режим процессора с приоритетом переменной окружения
func (c *Config) PayPalMode() string {
	if v := os.Getenv("PAYPAL_MODE"); v != "" {
		return v
	}
	return c.PayPal.Mode
}

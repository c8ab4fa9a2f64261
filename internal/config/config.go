package config

import (
	"github.com/maxviazov/recipe-catalog-service/internal/logger"
)

type Config struct {
	App        AppConfig           `mapstructure:"app"`
	Logger     logger.LoggerConfig `mapstructure:"logger"`
	Postgres   PostgresConfig      `mapstructure:"postgres"`
	Pagination PaginationConfig    `mapstructure:"pagination"`
	Ads        AdsConfig           `mapstructure:"ads"`
	Metrics    MetricsConfig       `mapstructure:"metrics"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`
	// PublicURL is the origin used for absolute, crawlable page links.
	PublicURL string `mapstructure:"public_url" validate:"omitempty,url"`
}

// PostgresConfig carries connection and pool tuning. Durations are seconds.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"min=1,max=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
	AutoMigrate       bool   `mapstructure:"auto_migrate"`
}

// PaginationConfig bounds page sizes for every listing surface.
type PaginationConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size" validate:"min=1"`
	MaxPageSize     int `mapstructure:"max_page_size" validate:"min=1,gtefield=DefaultPageSize"`
}

// AdsConfig controls the in-feed ad slot on public listings.
type AdsConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	InsertAtIndex int  `mapstructure:"insert_at_index" validate:"min=0"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

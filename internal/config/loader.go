package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/maxviazov/recipe-catalog-service/internal/navigator"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
)

// Load reads a YAML config file and overlays APP_* environment variables
// (APP_POSTGRES_PASSWORD overrides postgres.password, and so on).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks every section except the logger, which validates itself
// after applying its own defaults.
func (c *Config) Validate() error {
	v := validator.New()
	sections := []struct {
		name string
		val  any
	}{
		{"app", c.App},
		{"postgres", c.Postgres},
		{"pagination", c.Pagination},
		{"ads", c.Ads},
	}
	for _, s := range sections {
		if err := v.Struct(s.val); err != nil {
			return fmt.Errorf("invalid %s config: %w", s.name, err)
		}
	}
	return nil
}

// PaginationPolicy exposes the configured bounds to the pagination engine.
func (c *Config) PaginationPolicy() pagination.Policy {
	return pagination.Policy{
		DefaultPageSize: c.Pagination.DefaultPageSize,
		MaxPageSize:     c.Pagination.MaxPageSize,
	}
}

// AdSlot returns the public listing ad slot, or nil when ads are off.
func (c *Config) AdSlot() *navigator.AdSlotConfig {
	if !c.Ads.Enabled {
		return nil
	}
	return &navigator.AdSlotConfig{InsertAtIndex: c.Ads.InsertAtIndex}
}

// setDefaults registers every key so AutomaticEnv can fill keys that are
// absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "recipe-catalog-service")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.public_url", "")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)
	v.SetDefault("postgres.auto_migrate", false)

	v.SetDefault("pagination.default_page_size", pagination.DefaultPageSize)
	v.SetDefault("pagination.max_page_size", pagination.MaxPageSize)

	v.SetDefault("ads.enabled", false)
	v.SetDefault("ads.insert_at_index", 2)

	v.SetDefault("metrics.enabled", true)
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maxviazov/recipe-catalog-service/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func clearSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("APP_POSTGRES_USER", "")
	t.Setenv("APP_POSTGRES_PASSWORD", "")
	t.Setenv("APP_POSTGRES_DB", "")
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	// Minimal YAML; secrets will come from ENV
	yaml := `
app:
  name: recipe-catalog-service
  version: 0.1.0
  env: test
  port: 18080
  public_url: https://recipes.example.com

logger:
  level: info
  format: json
  output_target: stdout
  time_format: rfc3339

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5

pagination:
  default_page_size: 12
  max_page_size: 60

ads:
  enabled: true
  insert_at_index: 3
`
	path := writeTempConfig(t, yaml)

	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DB", "testdb")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Port != 18080 || cfg.App.PublicURL != "https://recipes.example.com" {
		t.Fatalf("app section not loaded: %+v", cfg.App)
	}
	if cfg.Postgres.User != "testuser" || cfg.Postgres.Password != "testpass" || cfg.Postgres.DBName != "testdb" {
		t.Fatalf("env overrides not applied: got user=%q pass=%q db=%q", cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName)
	}
	if cfg.Postgres.MaxConns != 5 || cfg.Postgres.MinConns != 1 {
		t.Fatalf("pool settings: max=%d min=%d", cfg.Postgres.MaxConns, cfg.Postgres.MinConns)
	}
	if cfg.Logger.OutputTarget != "stdout" || cfg.Logger.TimeFormat != "rfc3339" {
		t.Fatalf("logger section not loaded: %+v", cfg.Logger)
	}
	policy := cfg.PaginationPolicy()
	if policy.DefaultPageSize != 12 || policy.MaxPageSize != 60 {
		t.Fatalf("pagination policy: %+v", policy)
	}
	if !cfg.Ads.Enabled || cfg.Ads.InsertAtIndex != 3 {
		t.Fatalf("ads section: %+v", cfg.Ads)
	}
	if !cfg.Metrics.Enabled {
		t.Fatalf("metrics should default to enabled")
	}
}

func TestConfigLoad_EnvOverridesPagination(t *testing.T) {
	path := writeTempConfig(t, "app:\n  env: test\n")
	t.Setenv("APP_POSTGRES_USER", "u")
	t.Setenv("APP_POSTGRES_PASSWORD", "p")
	t.Setenv("APP_POSTGRES_DB", "d")
	t.Setenv("APP_PAGINATION_MAX_PAGE_SIZE", "40")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Pagination.MaxPageSize != 40 || cfg.Pagination.DefaultPageSize != 10 {
		t.Fatalf("pagination = %+v", cfg.Pagination)
	}
}

func TestConfigLoad_MissingRequiredEnvFails(t *testing.T) {
	yaml := `
app:
  env: test
postgres:
  host: localhost
`
	path := writeTempConfig(t, yaml)
	clearSecrets(t)

	if _, err := config.Load(path); err == nil {
		t.Fatalf("expected error when required env are missing, got nil")
	}
}

func TestConfigLoad_RejectsInvertedPageSizes(t *testing.T) {
	yaml := `
app:
  env: test
pagination:
  default_page_size: 50
  max_page_size: 20
`
	path := writeTempConfig(t, yaml)
	t.Setenv("APP_POSTGRES_USER", "u")
	t.Setenv("APP_POSTGRES_PASSWORD", "p")
	t.Setenv("APP_POSTGRES_DB", "d")

	if _, err := config.Load(path); err == nil {
		t.Fatalf("expected validation error for default > max")
	}
}

func TestConfigLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestConfig_AdSlot(t *testing.T) {
	cfg := &config.Config{Ads: config.AdsConfig{Enabled: false, InsertAtIndex: 3}}
	if cfg.AdSlot() != nil {
		t.Fatalf("expected no ad slot when ads are disabled")
	}
	cfg.Ads.Enabled = true
	slot := cfg.AdSlot()
	if slot == nil || slot.InsertAtIndex != 3 {
		t.Fatalf("unexpected ad slot: %+v", slot)
	}
}

package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Search.DefaultMinConfidence != 0.7 {
		t.Errorf("Search.DefaultMinConfidence = %v, want 0.7", cfg.Search.DefaultMinConfidence)
	}
	if cfg.Search.HistorySize != 5 {
		t.Errorf("Search.HistorySize = %d, want 5", cfg.Search.HistorySize)
	}
	if cfg.Storage.URLExpiry != time.Hour {
		t.Errorf("Storage.URLExpiry = %v, want 1h", cfg.Storage.URLExpiry)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_CONNS", "40")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("REDIS_HISTORY_TTL", "2h")
	t.Setenv("STORAGE_BUCKET", "exports")
	t.Setenv("SEARCH_HISTORY_SIZE", "8")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.MaxConns != 40 {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Redis.Enabled || cfg.Redis.HistoryTTL != 2*time.Hour {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Storage.BucketName != "exports" {
		t.Errorf("Storage.BucketName = %q", cfg.Storage.BucketName)
	}
	if cfg.Search.HistorySize != 8 {
		t.Errorf("Search.HistorySize = %d", cfg.Search.HistorySize)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("Server.AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if got := cfg.GetDatabaseDSN(); got != "host=db.internal port=5432 user=postgres password=postgres dbname=transcript_search sslmode=disable" {
		t.Errorf("GetDatabaseDSN() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"confidence above one", func(c *Config) { c.Search.DefaultMinConfidence = 1.5 }, true},
		{"empty history", func(c *Config) { c.Search.HistorySize = 0 }, true},
		{"production default secret", func(c *Config) { c.Server.Environment = "production" }, true},
		{"production auto migrate", func(c *Config) {
			c.Server.Environment = "production"
			c.JWT.AccessSecret = "s3cret"
			c.Database.AutoMigrate = true
		}, true},
		{"production ok", func(c *Config) {
			c.Server.Environment = "production"
			c.JWT.AccessSecret = "s3cret"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv()
			if err != nil {
				t.Fatalf("FromEnv() error = %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

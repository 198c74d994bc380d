package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	defaultAccessSecret = "your-access-secret-change-in-production"
	productionEnv       = "production"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	JWT      JWTConfig
	Assembly AssemblyAIConfig
	Search   SearchConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `default:"8080"`
	Host            string   `default:"0.0.0.0"`
	Environment     string   `default:"development"`
	AllowedOrigins  []string `split_words:"true" default:"http://localhost:3000"`
	ShutdownTimeout int      `split_words:"true" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `default:"localhost"`
	Port        string `default:"5432"`
	User        string `default:"postgres"`
	Password    string `default:"postgres"`
	Name        string `default:"transcript_search"`
	SSLMode     string `envconfig:"SSLMODE" default:"disable"`
	MaxConns    int    `split_words:"true" default:"25"`
	MinConns    int    `split_words:"true" default:"5"`
	AutoMigrate bool   `split_words:"true" default:"false"`
}

// RedisConfig holds Redis configuration. When disabled, search history is
// kept in process memory.
type RedisConfig struct {
	Enabled    bool          `default:"true"`
	Host       string        `default:"localhost"`
	Port       string        `default:"6379"`
	Password   string        `default:""`
	DB         int           `default:"0"`
	HistoryTTL time.Duration `split_words:"true" default:"720h"`
}

// StorageConfig holds object storage configuration for exports
type StorageConfig struct {
	Endpoint        string        `default:"localhost:9000"`
	AccessKeyID     string        `envconfig:"ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string        `envconfig:"SECRET_KEY" default:"minioadmin"`
	BucketName      string        `envconfig:"BUCKET" default:"transcript-search"`
	UseSSL          bool          `envconfig:"USE_SSL" default:"false"`
	PublicURL       string        `split_words:"true" default:""`
	URLExpiry       time.Duration `envconfig:"URL_EXPIRY" default:"1h"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string        `split_words:"true" default:"your-access-secret-change-in-production"`
	AccessExpiry time.Duration `split_words:"true" default:"15m"`
	Issuer       string        `default:"transcript-search"`
}

// AssemblyAIConfig holds AssemblyAI configuration used to import transcripts
type AssemblyAIConfig struct {
	APIKey        string `envconfig:"API_KEY" default:""`
	WebhookSecret string `split_words:"true" default:""`
}

// SearchConfig holds tunables for transcript search
type SearchConfig struct {
	DefaultMinConfidence float64 `split_words:"true" default:"0.7"`
	HistorySize          int     `split_words:"true" default:"5"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config, err := FromEnv()
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// FromEnv reads every section from the process environment
func FromEnv() (*Config, error) {
	config := &Config{}
	sections := []struct {
		prefix string
		spec   interface{}
	}{
		{"", &config.Server},
		{"DB", &config.Database},
		{"REDIS", &config.Redis},
		{"STORAGE", &config.Storage},
		{"JWT", &config.JWT},
		{"ASSEMBLYAI", &config.Assembly},
		{"SEARCH", &config.Search},
	}
	for _, s := range sections {
		if err := envconfig.Process(s.prefix, s.spec); err != nil {
			return nil, fmt.Errorf("failed to read %s config: %w", s.prefix, err)
		}
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Search.DefaultMinConfidence < 0 || c.Search.DefaultMinConfidence > 1 {
		return fmt.Errorf("SEARCH_DEFAULT_MIN_CONFIDENCE must be within [0,1]")
	}
	if c.Search.HistorySize < 1 {
		return fmt.Errorf("SEARCH_HISTORY_SIZE must be positive")
	}
	if c.IsProduction() {
		if c.JWT.AccessSecret == "" || c.JWT.AccessSecret == defaultAccessSecret {
			return fmt.Errorf("JWT_ACCESS_SECRET is required in production")
		}
		if c.Database.AutoMigrate {
			return fmt.Errorf("DB_AUTO_MIGRATE must be disabled in production; run cmd/migrate instead")
		}
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == productionEnv
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

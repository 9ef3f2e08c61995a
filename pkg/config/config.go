package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig `envconfig:"DB"`
	Redis      RedisConfig
	Google     GoogleOAuthConfig
	JWT        JWTConfig
	Login      LoginConfig
	Cache      CacheConfig
	Groq       GroqConfig
	AssemblyAI AssemblyAIConfig
	Storage    StorageConfig `envconfig:"MINIO"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `split_words:"true" default:"8080"`
	Host            string        `split_words:"true" default:"0.0.0.0"`
	Environment     string        `split_words:"true" default:"development"`
	AllowedOrigins  []string      `split_words:"true" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host           string        `split_words:"true" default:"localhost"`
	Port           string        `split_words:"true" default:"5432"`
	User           string        `split_words:"true" default:"postgres"`
	Password       string        `split_words:"true" default:"postgres"`
	Name           string        `split_words:"true" default:"sales_review"`
	SSLMode        string        `split_words:"true" default:"disable"`
	MaxOpenConns   int           `split_words:"true" default:"25"`
	MaxIdleConns   int           `split_words:"true" default:"5"`
	ConnectTimeout time.Duration `split_words:"true" default:"30s"`
}

// RedisConfig holds Redis configuration. An empty Addr selects the in-memory store.
type RedisConfig struct {
	Addr     string `split_words:"true"`
	Password string `split_words:"true"`
	DB       int    `split_words:"true" default:"0"`
}

// GoogleOAuthConfig holds Google OAuth configuration
type GoogleOAuthConfig struct {
	ClientID     string `split_words:"true"`
	ClientSecret string `split_words:"true"`
	RedirectURL  string `split_words:"true" default:"http://localhost:8080/v1/auth/google/callback"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string        `split_words:"true"`
	RefreshSecret string        `split_words:"true"`
	AccessExpiry  time.Duration `split_words:"true" default:"24h"`
	RefreshExpiry time.Duration `split_words:"true" default:"720h"`
	Issuer        string        `split_words:"true" default:"sales-review"`
}

// LoginConfig bounds failed password logins per username.
type LoginConfig struct {
	MaxAttempts int           `split_words:"true" default:"5"`
	Window      time.Duration `split_words:"true" default:"15m"`
}

// CacheConfig holds cache TTLs
type CacheConfig struct {
	StatisticsTTL time.Duration `split_words:"true" default:"60s"`
}

// GroqConfig holds the chat-completion endpoint used for transcript analysis
type GroqConfig struct {
	APIKey  string        `split_words:"true"`
	BaseURL string        `split_words:"true" default:"https://api.groq.com"`
	Model   string        `split_words:"true" default:"llama-3.3-70b-versatile"`
	Timeout time.Duration `split_words:"true" default:"30s"`
}

// AssemblyAIConfig holds transcription configuration
type AssemblyAIConfig struct {
	APIKey string `split_words:"true"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Endpoint        string `split_words:"true"`
	AccessKeyID     string `split_words:"true"`
	SecretAccessKey string `split_words:"true"`
	BucketName      string `split_words:"true" default:"sales-review"`
	UseSSL          bool   `split_words:"true" default:"false"`
	PublicURL       string `split_words:"true"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if c.JWT.RefreshSecret == "" {
		return fmt.Errorf("JWT_REFRESH_SECRET is required")
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.JWT.AccessExpiry <= 0 || c.JWT.RefreshExpiry <= 0 {
		return fmt.Errorf("JWT expiries must be positive")
	}
	if c.Database.Host == "" || c.Database.Name == "" {
		return fmt.Errorf("DB_HOST and DB_NAME are required")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.Login.MaxAttempts < 1 {
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS must be at least 1")
	}
	if c.Google.ClientID != "" && c.Google.ClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_SECRET is required when GOOGLE_CLIENT_ID is set")
	}
	return nil
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

// GetRedisAddr returns the Redis address, empty when Redis is not configured
func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) GoogleEnabled() bool {
	return c.Google.ClientID != ""
}

func (c *Config) StorageEnabled() bool {
	return c.Storage.Endpoint != "" && c.Storage.AccessKeyID != ""
}

func (c *Config) TranscriptionEnabled() bool {
	return c.AssemblyAI.APIKey != ""
}

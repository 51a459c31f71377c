package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MinJWTSecretLength is the shortest accepted HS256 signing secret.
const MinJWTSecretLength = 32

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Auth     AuthConfig
	LLM      LLMConfig
	Scoring  ScoringConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	PoolMin  int
	PoolMax  int
}

// DSN returns the postgres:// connection string for this configuration.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// AuthConfig holds JWT issuance settings.
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

// LLMConfig holds the chat-completion client settings.
// An empty APIKey disables the profile chat endpoint.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Enabled reports whether an API key is configured.
func (l LLMConfig) Enabled() bool {
	return l.APIKey != ""
}

// ScoringConfig holds the recommendation constants that operators may tune.
type ScoringConfig struct {
	UnitsAffected      int
	Occupancy          float64
	MaxRecommendations int
	MinScore           float64
}

// Load reads configuration from environment variables.
// It uses viper to read values and provides sensible defaults for development.
func Load() (*Config, error) {
	v := newViper()

	cfg := &Config{
		Server:   serverConfig(v),
		Database: databaseConfig(v),
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			Issuer:    v.GetString("JWT_ISSUER"),
			TokenTTL:  v.GetDuration("JWT_TTL"),
		},
		LLM: LLMConfig{
			APIKey:      v.GetString("OPENAI_API_KEY"),
			BaseURL:     v.GetString("OPENAI_BASE_URL"),
			Model:       v.GetString("OPENAI_MODEL"),
			Temperature: float32(v.GetFloat64("OPENAI_TEMPERATURE")),
			Timeout:     v.GetDuration("OPENAI_TIMEOUT"),
		},
		Scoring: ScoringConfig{
			UnitsAffected:      v.GetInt("SCORING_UNITS_AFFECTED"),
			Occupancy:          v.GetFloat64("SCORING_OCCUPANCY"),
			MaxRecommendations: v.GetInt("SCORING_MAX_RECOMMENDATIONS"),
			MinScore:           v.GetFloat64("SCORING_MIN_SCORE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOps reads only the server and database sections. The ampctl
// maintenance commands use it so they run without API secrets.
func LoadOps() (ServerConfig, DatabaseConfig, error) {
	v := newViper()
	server, db := serverConfig(v), databaseConfig(v)
	if err := db.validate(); err != nil {
		return server, db, fmt.Errorf("configuration validation failed: %w", err)
	}
	return server, db, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "amp_report")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_POOL_MIN", 2)
	v.SetDefault("DB_POOL_MAX", 10)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("JWT_ISSUER", "amp-report")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_TEMPERATURE", 0.7)
	v.SetDefault("OPENAI_TIMEOUT", "60s")
	v.SetDefault("SCORING_UNITS_AFFECTED", 50)
	v.SetDefault("SCORING_OCCUPANCY", 0.8)
	v.SetDefault("SCORING_MAX_RECOMMENDATIONS", 15)
	v.SetDefault("SCORING_MIN_SCORE", 0.1)

	v.AutomaticEnv()
	return v
}

func serverConfig(v *viper.Viper) ServerConfig {
	return ServerConfig{
		Port:     v.GetString("PORT"),
		Env:      v.GetString("ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),
	}
}

func databaseConfig(v *viper.Viper) DatabaseConfig {
	return DatabaseConfig{
		Host:     v.GetString("DB_HOST"),
		Port:     v.GetString("DB_PORT"),
		Name:     v.GetString("DB_NAME"),
		User:     v.GetString("DB_USER"),
		Password: v.GetString("DB_PASSWORD"),
		SSLMode:  v.GetString("DB_SSLMODE"),
		PoolMin:  v.GetInt("DB_POOL_MIN"),
		PoolMax:  v.GetInt("DB_POOL_MAX"),
	}
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if err := c.Database.validate(); err != nil {
		return err
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	if len(c.Auth.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLength)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("OPENAI_TEMPERATURE must be between 0 and 2")
	}

	if c.Scoring.UnitsAffected < 1 {
		return fmt.Errorf("SCORING_UNITS_AFFECTED must be at least 1")
	}
	if c.Scoring.Occupancy <= 0 || c.Scoring.Occupancy > 1 {
		return fmt.Errorf("SCORING_OCCUPANCY must be in (0, 1]")
	}
	if c.Scoring.MaxRecommendations < 1 {
		return fmt.Errorf("SCORING_MAX_RECOMMENDATIONS must be at least 1")
	}
	if c.Scoring.MinScore < 0 || c.Scoring.MinScore >= 1 {
		return fmt.Errorf("SCORING_MIN_SCORE must be in [0, 1)")
	}

	return nil
}

func (d DatabaseConfig) validate() error {
	if d.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if d.Port == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	if d.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if d.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if d.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if d.PoolMin < 0 {
		return fmt.Errorf("DB_POOL_MIN must be non-negative")
	}
	if d.PoolMax < 1 {
		return fmt.Errorf("DB_POOL_MAX must be at least 1")
	}
	if d.PoolMin > d.PoolMax {
		return fmt.Errorf("DB_POOL_MIN must be less than or equal to DB_POOL_MAX")
	}
	return nil
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

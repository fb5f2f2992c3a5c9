package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	Session  SessionConfig
	Cookie   CookieConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
}

// DatabaseConfig holds database connection and pool settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string

	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeMinutes int
}

// SessionConfig holds the session token secret and lifetime.
// Loaded once at startup and never mutated afterwards.
type SessionConfig struct {
	Secret     string
	TTLSeconds int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// RedisConfig holds the optional report-cache backend address.
// An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AMQPConfig holds the optional notification event broker URL.
// An empty URL disables event publishing.
type AMQPConfig struct {
	URL      string
	Exchange string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		Session:  loadSessionConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Redis:    loadRedisConfig(),
		AMQP:     loadAMQPConfig(),
	}

	if config.IsProd() && config.Session.Secret == "dev_session_secret" {
		return nil, fmt.Errorf("PROD_SESSION_SECRET must be set in prod mode")
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "transit_backoffice"),

		MaxOpenConns:           getEnvInt("DB_MAX_OPEN_CONNS", 50),
		MaxIdleConns:           getEnvInt("DB_MAX_IDLE_CONNS", 10),
		ConnMaxLifetimeMinutes: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 60),
	}
}

// loadSessionConfig loads session token config based on mode
func loadSessionConfig(mode string) SessionConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	ttl, _ := strconv.Atoi(getEnv("SESSION_TTL_SECONDS", "3600"))
	if ttl <= 0 {
		ttl = 3600
	}

	return SessionConfig{
		Secret:     getEnv(prefix+"SESSION_SECRET", "dev_session_secret"),
		TTLSeconds: ttl,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", strconv.FormatBool(mode == "prod")))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadRedisConfig loads the optional redis report-cache config
func loadRedisConfig() RedisConfig {
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

// loadAMQPConfig loads the optional event broker config
func loadAMQPConfig() AMQPConfig {
	return AMQPConfig{
		URL:      getEnv("AMQP_URL", ""),
		Exchange: getEnv("AMQP_EXCHANGE", "backoffice.events"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable; non-positive or
// unparseable values fall back to the default
func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://backoffice.transitco.example"
	}
	return origins
}

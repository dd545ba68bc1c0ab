package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode     string
	Port        string
	StoreDriver string
	Database    DatabaseConfig
	JWT         JWTConfig
	SMTP        SMTPConfig
	Redis       RedisConfig
	Report      ReportConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	Timezone        string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnectAttempts int
}

// JWTConfig holds identity token configuration
type JWTConfig struct {
	Secret          string
	Issuer          string
	AccessTokenMins int
}

// SMTPConfig holds outgoing mail configuration. Mail is disabled when Host
// or From is empty.
type SMTPConfig struct {
	Host          string
	Port          int
	User          string
	Pass          string
	From          string
	SkipTLSVerify bool
}

// Enabled reports whether SMTP is configured
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// RedisConfig holds the optional lookup option cache configuration
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ReportConfig holds the daily report schedule
type ReportConfig struct {
	Enabled  bool
	Schedule string
	Timezone string
}

// Location loads the report time zone, falling back to KST
func (c ReportConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("⚠️ Unknown REPORT_TIMEZONE %q, using KST", c.Timezone)
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// Global config instance
var AppConfig *Config

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

	// Build config based on APP_MODE
	storeDriver := strings.TrimSpace(getEnv("STORE_DRIVER", "mysql"))
	if storeDriver != "mysql" && storeDriver != "memory" {
		return nil, fmt.Errorf("invalid STORE_DRIVER: '%s' (must be 'mysql' or 'memory')", storeDriver)
	}

	config := &Config{
		AppMode:     appMode,
		Port:        getEnv("PORT", "3000"),
		StoreDriver: storeDriver,
		Database:    loadDatabaseConfig(appMode),
		JWT:         loadJWTConfig(appMode),
		SMTP:        loadSMTPConfig(),
		Redis:       loadRedisConfig(),
		Report:      loadReportConfig(),
	}

	// Set global config
	AppConfig = config

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
		Host:            getEnv(prefix+"DB_HOST", "localhost"),
		Port:            getEnv(prefix+"DB_PORT", "3306"),
		User:            getEnv(prefix+"DB_USER", "root"),
		Password:        getEnv(prefix+"DB_PASS", ""),
		DBName:          getEnv(prefix+"DB_NAME", "olympia"),
		Timezone:        getEnv("DB_TIMEZONE", "Asia/Seoul"),
		MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
		MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
		ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ConnectAttempts: getInt("DB_CONNECT_ATTEMPTS", 5),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", "default_secret"),
		Issuer:          getEnv("JWT_ISSUER", "olympia-api"),
		AccessTokenMins: accessMins,
	}
}

// loadSMTPConfig loads SMTP config
func loadSMTPConfig() SMTPConfig {
	port, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if port == 0 {
		port = 587
	}

	return SMTPConfig{
		Host:          getEnv("SMTP_HOST", ""),
		Port:          port,
		User:          getEnv("SMTP_USER", ""),
		Pass:          getEnv("SMTP_PASS", ""),
		From:          getEnv("SMTP_FROM", ""),
		SkipTLSVerify: getEnv("SMTP_SKIP_TLS_VERIFY", "") == "1",
	}
}

// loadRedisConfig loads Redis config. An empty URL disables the cache.
func loadRedisConfig() RedisConfig {
	return RedisConfig{
		URL:          getEnv("REDIS_URL", ""),
		PoolSize:     getInt("REDIS_POOL_SIZE", 10),
		MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
}

// loadReportConfig loads the daily report schedule
func loadReportConfig() ReportConfig {
	enabled, err := strconv.ParseBool(getEnv("REPORT_ENABLED", "true"))
	if err != nil {
		enabled = true
	}

	return ReportConfig{
		Enabled:  enabled,
		Schedule: getEnv("REPORT_SCHEDULE", "0 8 * * *"),
		Timezone: getEnv("REPORT_TIMEZONE", "Asia/Seoul"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt parses an integer env var with default value
func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getDuration parses a duration env var ("5s", "1m") with default value
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
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
		return "https://bible-olympia.web.app"
	}
	return origins
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database  DatabaseConfig
	App       AppConfig
	CORS      CORSConfig
	AI        AIConfig
	RateLimit RateLimitConfig
	SMTP      SMTPConfig
	Storage   StorageConfig
	Jobs      JobsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Name          string
	Version       string
	Port          int
	Env           string
	LogLevel      string
	RunMigrations bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// AIConfig configures the external expense anomaly detector
type AIConfig struct {
	Enabled     bool
	EngineURL   string
	Timeout     time.Duration
	WorkerCount int
	QueueSize   int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	AlertTo  []string
}

type StorageConfig struct {
	ExportDir string
}

type JobsConfig struct {
	BudgetWatchInterval     time.Duration
	PayrollReminderInterval time.Duration
	BudgetWarningRatio      decimal.Decimal
	PayrollReminderDay      int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using process environment")
	}

	config := &Config{}
	var errs []error

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432, &errs),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "ai_finance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(getEnvInt("DB_MAX_CONNS", 25, &errs)),
		MinConns: int32(getEnvInt("DB_MIN_CONNS", 5, &errs)),
	}

	config.App = AppConfig{
		Name:          getEnv("APP_NAME", "ai-finance"),
		Version:       getEnv("APP_VERSION", "v1.0.0"),
		Port:          getEnvInt("APP_PORT", 8080, &errs),
		Env:           getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true, &errs),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	config.AI = AIConfig{
		Enabled:     getEnvBool("AI_ENABLED", true, &errs),
		EngineURL:   getEnv("AI_ENGINE_URL", "http://localhost:8000"),
		Timeout:     getEnvDuration("AI_TIMEOUT", 3*time.Second, &errs),
		WorkerCount: getEnvInt("AI_WORKERS", 2, &errs),
		QueueSize:   getEnvInt("AI_QUEUE_SIZE", 256, &errs),
	}

	config.RateLimit = RateLimitConfig{
		RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 20, &errs),
		Burst:             getEnvInt("RATE_LIMIT_BURST", 40, &errs),
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     getEnvInt("SMTP_PORT", 587, &errs),
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "alerts@ai-finance.local"),
		FromName: getEnv("SMTP_FROM_NAME", "AI Finance"),
		AlertTo:  getEnvSlice("ALERT_EMAIL_TO", nil),
	}

	config.Storage = StorageConfig{
		ExportDir: getEnv("EXPORT_DIR", "./exports"),
	}

	config.Jobs = JobsConfig{
		BudgetWatchInterval:     getEnvDuration("BUDGET_WATCH_INTERVAL", time.Hour, &errs),
		PayrollReminderInterval: getEnvDuration("PAYROLL_REMINDER_INTERVAL", 6*time.Hour, &errs),
		BudgetWarningRatio:      getEnvDecimal("BUDGET_WARNING_RATIO", decimal.RequireFromString("0.85"), &errs),
		PayrollReminderDay:      getEnvInt("PAYROLL_REMINDER_DAY", 25, &errs),
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if c.AI.Enabled {
		if _, err := url.ParseRequestURI(c.AI.EngineURL); err != nil {
			return fmt.Errorf("AI_ENGINE_URL is invalid: %w", err)
		}
		if c.AI.WorkerCount <= 0 || c.AI.QueueSize <= 0 {
			return fmt.Errorf("AI_WORKERS and AI_QUEUE_SIZE must be positive")
		}
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if !c.Jobs.BudgetWarningRatio.IsPositive() {
		return fmt.Errorf("BUDGET_WARNING_RATIO must be positive")
	}
	if c.Jobs.PayrollReminderDay < 1 || c.Jobs.PayrollReminderDay > 28 {
		return fmt.Errorf("PAYROLL_REMINDER_DAY must be between 1 and 28")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.Database.User),
		url.QueryEscape(c.Database.Password),
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return i
}

func getEnvFloat(key string, fallback float64, errs *[]error) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool, errs *[]error) bool {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return d
}

func getEnvDecimal(key string, fallback decimal.Decimal, errs *[]error) decimal.Decimal {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return d
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Paystack   PaystackConfig
	Withdrawal WithdrawalConfig
	Deposit    DepositConfig
	Sweeper    SweeperConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string
	BaseURL      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	ConnMaxLifetime time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
}

// AuthConfig holds bearer-token verification settings. Token issuance is
// handled by an external identity service; this service only verifies.
type AuthConfig struct {
	JWTSecret string
}

// PaystackConfig holds credentials and endpoints for the payment gateway.
// Injected into the gateway client at construction; never read ambiently.
type PaystackConfig struct {
	SecretKey   string
	BaseURL     string
	CallbackURL string
	Timeout     time.Duration
}

// WithdrawalConfig holds payout policy.
type WithdrawalConfig struct {
	Fee       decimal.Decimal
	MinAmount decimal.Decimal
}

// DepositConfig holds deposit policy.
type DepositConfig struct {
	MinAmount decimal.Decimal
}

// SweeperConfig holds reconciliation sweep scheduling.
type SweeperConfig struct {
	Interval time.Duration
	Limit    int
	Enabled  bool
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string // debug, info, warn, error
}

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			BaseURL:      getEnv("APP_URL", "http://localhost:8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "coolpay"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "5m"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Paystack: PaystackConfig{
			SecretKey:   getEnv("PAYSTACK_SECRET_KEY", ""),
			BaseURL:     getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
			CallbackURL: getEnv("PAYSTACK_CALLBACK_URL", getEnv("APP_URL", "http://localhost:8080")+"/api/webhooks/paystack"),
			Timeout:     getEnvAsDuration("PAYSTACK_TIMEOUT", "10s"),
		},
		Withdrawal: WithdrawalConfig{
			Fee:       getEnvAsDecimal("WITHDRAWAL_FEE", "300"),
			MinAmount: getEnvAsDecimal("WITHDRAWAL_MIN_AMOUNT", "1000"),
		},
		Deposit: DepositConfig{
			MinAmount: getEnvAsDecimal("DEPOSIT_MIN_AMOUNT", "100"),
		},
		Sweeper: SweeperConfig{
			Interval: getEnvAsDuration("SWEEPER_INTERVAL", "24h"),
			Limit:    getEnvAsInt("SWEEPER_LIMIT", 100),
			Enabled:  getEnvAsBool("SWEEPER_ENABLED", true),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host cannot be empty")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name cannot be empty")
	}

	if c.Paystack.BaseURL == "" {
		return fmt.Errorf("paystack base URL cannot be empty")
	}

	if c.Withdrawal.Fee.IsNegative() {
		return fmt.Errorf("withdrawal fee cannot be negative, got %s", c.Withdrawal.Fee)
	}
	if c.Withdrawal.MinAmount.Sign() <= 0 {
		return fmt.Errorf("withdrawal minimum must be positive, got %s", c.Withdrawal.MinAmount)
	}
	if c.Deposit.MinAmount.Sign() <= 0 {
		return fmt.Errorf("deposit minimum must be positive, got %s", c.Deposit.MinAmount)
	}

	if c.Sweeper.Limit <= 0 {
		return fmt.Errorf("sweeper limit must be positive, got %d", c.Sweeper.Limit)
	}
	if c.Sweeper.Interval <= 0 {
		return fmt.Errorf("sweeper interval must be positive, got %s", c.Sweeper.Interval)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to parsing the default if provided value is invalid
		duration, err = time.ParseDuration(defaultValue)
		if err != nil {
			return 0
		}
	}
	return duration
}

func getEnvAsDecimal(key, defaultValue string) decimal.Decimal {
	valueStr := getEnv(key, defaultValue)
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		value, err = decimal.NewFromString(defaultValue)
		if err != nil {
			return decimal.Zero
		}
	}
	return value
}

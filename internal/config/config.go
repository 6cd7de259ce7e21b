package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	ListenAddr  string
	LogLevel    string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	SMTP   SMTPConfig
	Roster RosterConfig
	Auth   AuthConfig

	SyncSchedule string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// RosterConfig points at the external resident roster provider.
type RosterConfig struct {
	BaseURL   string
	AccountID string
	APIKey    string
	APISecret string
	TimeoutMS int
}

// AuthConfig identifies the external identity provider.
type AuthConfig struct {
	TenantID string
	Audience string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "sundries"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		ListenAddr:  getenv("LISTEN_ADDR", ":8080"),
		LogLevel:    strings.ToLower(getenv("LOG_LEVEL", "info")),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "sundries"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),

		SMTP: SMTPConfig{
			Host:     getenv("SMTP_HOST", "localhost"),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: getenv("SMTP_USERNAME", ""),
			Password: getenv("SMTP_PASSWORD", ""),
			From:     getenv("SMTP_FROM", "billing@sundries-services.co.uk"),
		},
		Roster: RosterConfig{
			BaseURL:   getenv("ROSTER_BASE_URL", ""),
			AccountID: getenv("ROSTER_ACCOUNT_ID", ""),
			APIKey:    getenv("ROSTER_API_KEY", ""),
			APISecret: getenv("ROSTER_API_SECRET", ""),
			TimeoutMS: getenvInt("ROSTER_TIMEOUT_MS", 30000),
		},
		Auth: AuthConfig{
			TenantID: strings.TrimSpace(getenv("TENANT_ID", "")),
			Audience: strings.TrimSpace(getenv("API_AUDIENCE", "")),
		},

		SyncSchedule: getenv("ROSTER_SYNC_SCHEDULE", "0 2 * * *"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

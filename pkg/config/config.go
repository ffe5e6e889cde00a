package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Admin    AdminConfig
	Auth     AuthConfig
	Schedule ScheduleConfig
	OTEL     OTELConfig
}

// AppConfig holds application identity
type AppConfig struct {
	Name     string
	Env      string
	Version  string
	LogLevel string
}

// ServerConfig holds the local API server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	File          string
	MigrationsDir string
	BackupDir     string
	BusyTimeoutMS int
}

// AdminConfig holds the credentials seeded for the first administrator
type AdminConfig struct {
	Username string
	Password string
	FullName string
	Gender   string
	Phone    string
	Email    string
}

// AuthConfig holds session token configuration
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// ScheduleConfig holds the appointment slot grid
type ScheduleConfig struct {
	SlotStartHour            int
	SlotEndHour              int
	SlotIntervalMinutes      int
	MaxAppointmentsPerDay    int
	MaxAppointmentsPerDoctor int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from an optional .env file and environment variables.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "clinic"),
			Env:      getEnv("APP_ENV", "development"),
			Version:  getEnv("APP_VERSION", "1.0.0"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "127.0.0.1"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			File:          getEnv("DB_FILE", "clinic.db"),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
			BackupDir:     getEnv("BACKUP_DIR", "backups"),
			BusyTimeoutMS: getEnvAsInt("DB_BUSY_TIMEOUT_MS", 5000),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", "123456"),
			FullName: getEnv("ADMIN_NAME", "Administrator"),
			Gender:   getEnv("ADMIN_GENDER", "male"),
			Phone:    getEnv("ADMIN_PHONE", "0123456789"),
			Email:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "clinic-local-secret"),
			TokenTTLHours: getEnvAsInt("TOKEN_TTL_HOURS", 12),
		},
		Schedule: ScheduleConfig{
			SlotStartHour:            getEnvAsInt("SLOT_START_HOUR", 8),
			SlotEndHour:              getEnvAsInt("SLOT_END_HOUR", 17),
			SlotIntervalMinutes:      getEnvAsInt("SLOT_INTERVAL_MINUTES", 30),
			MaxAppointmentsPerDay:    getEnvAsInt("MAX_APPOINTMENTS_PER_DAY", 20),
			MaxAppointmentsPerDoctor: getEnvAsInt("MAX_APPOINTMENTS_PER_DOCTOR", 10),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "clinic"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// DSN returns the go-sqlite3 connection string for the database file
func (c *DatabaseConfig) DSN() string {
	return "file:" + c.File + "?_foreign_keys=on&_busy_timeout=" + strconv.Itoa(c.BusyTimeoutMS)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// This function will Load the ENVIRONMENT VARIABLES from .env if GO_ENV variable is not set.
// A missing .env file is not an error: every variable has a default.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

const (
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverSpaces   = "spaces"
	DriverPostgres = "postgres"
)

type EnvironmentVariable struct {
	GO_ENV string
	// Storage
	STORAGE_DRIVER string `validate:"oneof=file redis spaces postgres"`
	TASKS_FILE     string `validate:"required"`
	USERS_FILE     string `validate:"required"`
	// Postgres (STORAGE_DRIVER=postgres)
	DB_USER_NAME string `validate:"required_if=STORAGE_DRIVER postgres"`
	DB_PASSWORD  string
	DB_NAME      string `validate:"required_if=STORAGE_DRIVER postgres"`
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	// Redis Configuration (STORAGE_DRIVER=redis)
	REDIS_URL string `validate:"required_if=STORAGE_DRIVER redis"`
	// DigitalOcean Spaces (STORAGE_DRIVER=spaces)
	DO_SPACES_KEY      string `validate:"required_if=STORAGE_DRIVER spaces"`
	DO_SPACES_SECRET   string `validate:"required_if=STORAGE_DRIVER spaces"`
	DO_SPACES_BUCKET   string `validate:"required_if=STORAGE_DRIVER spaces"`
	DO_SPACES_REGION   string
	DO_SPACES_ENDPOINT string
	DO_SPACES_PREFIX   string
	// HTTP server
	PORT                int `validate:"min=1,max=65535"`
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int `validate:"min=0"`
	// Logging
	LOG_LEVEL  string
	LOG_FORMAT string `validate:"oneof=text json"`
	// Overdue reminder
	CRON_ENABLED      bool
	REMINDER_SCHEDULE string
	// Reminder email, sent only when SMTP credentials and REMINDER_EMAIL are set
	SMTP_HOST      string
	SMTP_PORT      int
	SMTP_USERNAME  string
	SMTP_PASSWORD  string
	SMTP_FROM      string
	REMINDER_EMAIL string `validate:"omitempty,email"`
}

func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	rateLimit, err := strconv.Atoi(os.Getenv("RATE_LIMIT_REQUESTS"))
	if err != nil {
		rateLimit = 100
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}

	// Database defaults
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	sslMode := os.Getenv("DB_SSL_MODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	region := os.Getenv("DO_SPACES_REGION")
	if region == "" {
		region = "nyc3"
	}

	endpoint := os.Getenv("DO_SPACES_ENDPOINT")
	if endpoint == "" {
		endpoint = region + ".digitaloceanspaces.com"
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:         os.Getenv("GO_ENV"),
		STORAGE_DRIVER: getOrDefault("STORAGE_DRIVER", DriverFile),
		TASKS_FILE:     getOrDefault("TASKS_FILE", "tasks.json"),
		USERS_FILE:     getOrDefault("USERS_FILE", "users.json"),
		// Postgres
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      dbHost,
		DB_PORT:      dbPort,
		DB_SSL_MODE:  sslMode,
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// DigitalOcean
		DO_SPACES_KEY:       os.Getenv("DO_SPACES_KEY"),
		DO_SPACES_SECRET:    os.Getenv("DO_SPACES_SECRET"),
		DO_SPACES_BUCKET:    os.Getenv("DO_SPACES_BUCKET"),
		DO_SPACES_REGION:    region,
		DO_SPACES_ENDPOINT:  endpoint,
		DO_SPACES_PREFIX:    os.Getenv("DO_SPACES_PREFIX"),
		PORT:                port,
		ALLOWED_ORIGINS:     os.Getenv("ALLOWED_ORIGINS"),
		RATE_LIMIT_REQUESTS: rateLimit,
		LOG_LEVEL:           getOrDefault("LOG_LEVEL", "info"),
		LOG_FORMAT:          getOrDefault("LOG_FORMAT", "text"),
		CRON_ENABLED:        os.Getenv("CRON_ENABLED") != "false", // Default to enabled
		REMINDER_SCHEDULE:   getOrDefault("REMINDER_SCHEDULE", "0 0 9 * * *"),
		SMTP_HOST:           getOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTP_PORT:           smtpPort,
		SMTP_USERNAME:       os.Getenv("SMTP_USERNAME"),
		SMTP_PASSWORD:       os.Getenv("SMTP_PASSWORD"),
		SMTP_FROM:           getOrDefault("SMTP_FROM", "noreply@localhost"),
		REMINDER_EMAIL:      os.Getenv("REMINDER_EMAIL"),
	}

	return envVariables, nil
}

// Validate checks the combination of settings, e.g. that the chosen storage
// driver has its connection settings.
func (e *EnvironmentVariable) Validate() error {
	return validator.New().Struct(e)
}

func getOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

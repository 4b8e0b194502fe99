package config

import (
	"net"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sdko-org/ha-platform/internal/database"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ListenHost is the interface the HTTP listener binds to.
const ListenHost = "0.0.0.0"

type Config struct {
	Port int

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	InitMaxAttempts     int
	InitRetryInterval   time.Duration
	InitRetryMultiplier float64
	InitRetryMaxDelay   time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string

	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnvInt("PORT", 8080),
		DBHost:              getEnv("DB_HOST", "postgres"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBName:              getEnv("DB_NAME", "appdb"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		InitMaxAttempts:     getEnvInt("INIT_MAX_ATTEMPTS", 0),
		InitRetryInterval:   getEnvDuration("INIT_RETRY_INTERVAL", 2*time.Second),
		InitRetryMultiplier: getEnvFloat("INIT_RETRY_MULTIPLIER", 1),
		InitRetryMaxDelay:   getEnvDuration("INIT_RETRY_MAX_DELAY", 30*time.Second),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", LogFormatText),
		LogFile:             getEnv("LOG_FILE", ""),
		ShutdownTimeout:     getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.DBHost, validation.Required),
		validation.Field(&c.DBPort, validation.Required, validation.By(validatePort)),
		validation.Field(&c.DBName, validation.Required),
		validation.Field(&c.DBUser, validation.Required),
		validation.Field(&c.DBSSLMode, validation.In("disable", "allow", "prefer", "require", "verify-ca", "verify-full")),
		validation.Field(&c.InitMaxAttempts, validation.Min(0)),
		validation.Field(&c.InitRetryInterval, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.InitRetryMultiplier, validation.Min(1.0)),
		validation.Field(&c.InitRetryMaxDelay, validation.When(c.InitRetryMultiplier > 1, validation.Min(c.InitRetryInterval))),
		validation.Field(&c.LogLevel, validation.Required, validation.In("trace", "debug", "info", "warn", "warning", "error")),
		validation.Field(&c.LogFormat, validation.Required, validation.In(LogFormatText, LogFormatJSON)),
		validation.Field(&c.ShutdownTimeout, validation.Required),
	)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(ListenHost, strconv.Itoa(c.Port))
}

func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSSLMode,
	}
}

func validatePort(value interface{}) error {
	s, _ := value.(string)
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		return validation.NewError("validation_invalid_port", "must be a port number between 1 and 65535")
	}
	return nil
}

// envOr returns the parsed value of key, or fallback when the variable is
// unset or does not parse.
func envOr[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getEnv(key, fallback string) string {
	return envOr(key, fallback, func(s string) (string, error) { return s, nil })
}

func getEnvInt(key string, fallback int) int {
	return envOr(key, fallback, strconv.Atoi)
}

func getEnvFloat(key string, fallback float64) float64 {
	return envOr(key, fallback, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	return envOr(key, fallback, time.ParseDuration)
}

// Package config provides centralized configuration management for the
// application. It loads settings from environment variables with sensible
// defaults and validates the result on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Sheets  SheetsConfig
	Rate    RateLimitConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout per request (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// SheetsConfig holds the remote spreadsheet settings.
type SheetsConfig struct {
	// SpreadsheetID addresses the record spreadsheet. When unset, the
	// documented fallback ID is used and a warning is shown on every load.
	SpreadsheetID string `env:"SPREADSHEET_ID"`

	// WorksheetName is the worksheet holding the match records.
	WorksheetName string `env:"WORKSHEET_NAME" default:"シート1"`

	// CredentialsJSON is the whole service-account JSON, supplied by the
	// hosting environment's secret store. Takes precedence over the file.
	CredentialsJSON string `env:"GOOGLE_SERVICE_ACCOUNT_JSON"`

	// CredentialsFile is the local service-account file path, used only
	// when CredentialsJSON is not set.
	CredentialsFile string `env:"GOOGLE_SERVICE_ACCOUNT_FILE" default:"service_account.json"`

	// SpreadsheetIDFromFallback is set by Load when SpreadsheetID was not
	// configured and the fallback ID is in use. Not an env var.
	SpreadsheetIDFromFallback bool
}

// DefaultSpreadsheetID is the documented fallback spreadsheet. Loads
// against it work but carry a warning diagnostic, since deployments are
// expected to configure their own ID.
const DefaultSpreadsheetID = "1V9guZQbpV8UDU_W2pC1WBsE1hOHqIO4yTsG8oGzaPQU"

// RateLimitConfig holds per-IP request throttling settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the per-IP limit (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}

// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Server   ServerConfig
	Database DatabaseConfig
	Steam    SteamConfig
	SMTP     SMTPConfig
	Tracker  TrackerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// DatabaseConfig holds SQLite database configuration.
type DatabaseConfig struct {
	Path string // Path to the SQLite database file (default: steamwatch.db)
}

// SteamConfig holds Steam storefront API configuration.
type SteamConfig struct {
	// CountryCode selects the storefront currency (default: ca).
	CountryCode string
	// Language selects the storefront locale (default: en).
	Language string
	// Timeout is the per-request deadline for storefront calls (default: 15s).
	Timeout time.Duration
}

// SMTPConfig holds outbound email configuration.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // Sender address (default: no-reply@example.com)
}

// TrackerConfig holds the price tracking cycle configuration.
type TrackerConfig struct {
	// Interval between automatic tracking cycles (default: 30m).
	Interval time.Duration
	// AlertCooldown is the minimum time between two sends for one subscription (default: 24h).
	AlertCooldown time.Duration
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dbPath := flag.String("db-path", "", "Path to the SQLite database file")

	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	steamCC := flag.String("steam-cc", "", "Steam storefront country code (default: ca)")
	steamLang := flag.String("steam-lang", "", "Steam storefront language (default: en)")
	steamTimeout := flag.String("steam-timeout", "", "Steam request timeout (default: 15s)")

	trackInterval := flag.String("track-interval", "", "Interval between tracking cycles (default: 30m)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Path: getConfigValue(*dbPath, "DATABASE_PATH", "steamwatch.db"),
		},
		Steam: SteamConfig{
			CountryCode: getConfigValue(*steamCC, "STEAM_COUNTRY_CODE", "ca"),
			Language:    getConfigValue(*steamLang, "STEAM_LANGUAGE", "en"),
		},
		SMTP: SMTPConfig{
			Host:     getConfigValue("", "SMTP_HOST", ""),
			Port:     getIntConfigValue("", "SMTP_PORT", 587),
			Username: getConfigValue("", "SMTP_USER", ""),
			Password: getConfigValue("", "SMTP_PASS", ""),
			From:     getConfigValue("", "EMAIL_FROM", "no-reply@example.com"),
		},
	}

	// Parse durations.
	var err error
	if cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}
	if cfg.Steam.Timeout, err = parseDurationValue(*steamTimeout, "STEAM_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Tracker.Interval, err = parseDurationValue(*trackInterval, "TRACK_INTERVAL", "30m"); err != nil {
		return nil, err
	}
	if cfg.Tracker.AlertCooldown, err = parseDurationValue("", "ALERT_COOLDOWN", "24h"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Database.Path == "" {
		return errors.New("database path cannot be empty")
	}

	if c.Tracker.Interval <= 0 {
		return fmt.Errorf("track interval must be positive, got %s", c.Tracker.Interval)
	}
	if c.Tracker.AlertCooldown <= 0 {
		return fmt.Errorf("alert cooldown must be positive, got %s", c.Tracker.AlertCooldown)
	}

	// SMTP settings may be empty; the mailer reports sends as failed until configured.

	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// parseDurationValue resolves a duration from flag, env var, or default.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	strValue := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, strValue, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		// Env vars take precedence over .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}

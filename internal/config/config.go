package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Auth     AuthConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMock         bool
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// AuthConfig groups session and account bootstrap settings.
type AuthConfig struct {
	Session   SessionConfig
	Bootstrap BootstrapConfig
}

// SessionConfig controls the session cookie issued after login.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// BootstrapConfig names an administrator account to provision at startup.
// Both fields must be set for provisioning to happen.
type BootstrapConfig struct {
	AdminUsername string
	AdminPassword string
}

// Enabled reports whether startup provisioning was requested.
func (b BootstrapConfig) Enabled() bool {
	return strings.TrimSpace(b.AdminUsername) != "" && b.AdminPassword != ""
}

// LoadDotEnv loads variables from the given .env files. Missing files are
// ignored and variables already present in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load inspects the environment, and the optional file named by CONFIG_FILE,
// and builds a Config value.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			v.GetString("SERVER_ADDR"),
			v.GetString("ADDR"),
			":8080",
		),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			v.GetString("DATABASE_URL"),
			v.GetString("DB_URL"),
			"",
		),
		MaxIdleConns:    parseIntWithDefault(v.GetString("DATABASE_MAX_IDLE_CONNS"), 0),
		MaxOpenConns:    parseIntWithDefault(v.GetString("DATABASE_MAX_OPEN_CONNS"), 0),
		ConnMaxLifetime: parseDurationWithDefault(v.GetString("DATABASE_CONN_MAX_LIFETIME"), 0),
		ConnMaxIdleTime: parseDurationWithDefault(v.GetString("DATABASE_CONN_MAX_IDLE_TIME"), 0),
		UseMock:         parseBoolWithDefault(v.GetString("DATABASE_USE_MOCK"), false),
	}
	if strings.TrimSpace(cfg.Database.URL) == "" {
		cfg.Database.UseMock = true
	}

	cfg.Logging = LoggingConfig{
		Level: firstNonEmpty(v.GetString("LOG_LEVEL"), "info"),
	}

	cfg.Auth = AuthConfig{
		Session: SessionConfig{
			Lifetime:     parseDurationWithDefault(v.GetString("SESSION_LIFETIME"), 12*time.Hour),
			CookieName:   firstNonEmpty(v.GetString("SESSION_COOKIE_NAME"), "alerscan_session"),
			CookieDomain: strings.TrimSpace(v.GetString("SESSION_COOKIE_DOMAIN")),
			CookieSecure: parseBoolWithDefault(v.GetString("SESSION_COOKIE_SECURE"), true),
		},
		Bootstrap: BootstrapConfig{
			AdminUsername: strings.TrimSpace(v.GetString("BOOTSTRAP_ADMIN_USERNAME")),
			AdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
		},
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver      string
	DBDSN         string
	ServerPort    string
	SessionSecret string
	CSRFKey       string
	SecureCookies bool

	AdminUsername string
	AdminPassword string
	AdminFullName string

	ResourcesDir string

	LogLevel  string
	LogFormat string

	MetricsEnabled bool
	LoginRate      float64
	LoginBurst     int
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from an arbitrary lookup, so tests don't have to
// touch the real environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBDriver:      strings.ToLower(getenv("DB_DRIVER")),
		DBDSN:         getenv("DB_DSN"),
		ServerPort:    getenv("SERVER_PORT"),
		SessionSecret: getenv("SESSION_SECRET"),
		CSRFKey:       getenv("CSRF_KEY"),
		AdminUsername: getenv("ADMIN_USERNAME"),
		AdminPassword: getenv("ADMIN_PASSWORD"),
		AdminFullName: getenv("ADMIN_FULL_NAME"),
		ResourcesDir:  getenv("RESOURCES_DIR"),
		LogLevel:      getenv("LOG_LEVEL"),
		LogFormat:     getenv("LOG_FORMAT"),
	}

	if cfg.DBDriver == "" {
		cfg.DBDriver = "postgres"
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, errors.New("DB_DRIVER must be postgres or sqlite")
	}
	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is not set")
	}
	if cfg.CSRFKey != "" && len(cfg.CSRFKey) != 32 {
		return nil, errors.New("CSRF_KEY must be exactly 32 bytes")
	}

	// the legacy deployment shipped admin/123456; keep it as the fallback
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "123456"
	}
	if cfg.AdminFullName == "" {
		cfg.AdminFullName = "Administrador"
	}
	if cfg.ResourcesDir == "" {
		cfg.ResourcesDir = "./recursos"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}

	var err error
	if cfg.SecureCookies, err = parseBool(getenv("SECURE_COOKIES"), false); err != nil {
		return nil, errors.New("SECURE_COOKIES must be a boolean")
	}
	if cfg.MetricsEnabled, err = parseBool(getenv("METRICS_ENABLED"), true); err != nil {
		return nil, errors.New("METRICS_ENABLED must be a boolean")
	}

	cfg.LoginRate = 1
	if v := getenv("LOGIN_RATE"); v != "" {
		if cfg.LoginRate, err = strconv.ParseFloat(v, 64); err != nil || cfg.LoginRate <= 0 {
			return nil, errors.New("LOGIN_RATE must be a positive number")
		}
	}
	cfg.LoginBurst = 5
	if v := getenv("LOGIN_BURST"); v != "" {
		if cfg.LoginBurst, err = strconv.Atoi(v); err != nil || cfg.LoginBurst <= 0 {
			return nil, errors.New("LOGIN_BURST must be a positive integer")
		}
	}

	return cfg, nil
}

func parseBool(v string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	return strconv.ParseBool(v)
}

// Package config loads service settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	yaml "go.yaml.in/yaml/v3"

	"github.com/harentsoaR/homecare-scheduler/internal/scheduler"
)

type Config struct {
	APIPort        string   `yaml:"api_port"`
	MongoURI       string   `yaml:"mongo_uri"`
	MongoDatabase  string   `yaml:"mongo_database"`
	JWTSecret      string   `yaml:"jwt_secret"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// TrustedProxies may set X-Forwarded-For. Empty means the peer address
	// is the client IP.
	TrustedProxies []string `yaml:"trusted_proxies"`

	// DefaultDoctors seeds every new session.
	DefaultDoctors []string `yaml:"default_doctors"`

	RawSessionIdleTTL string        `yaml:"session_idle_ttl"`
	SessionIdleTTL    time.Duration `yaml:"-"`
	SessionSweep      string        `yaml:"session_sweep"` // cron spec

	AuthRatePerSec float64 `yaml:"auth_rate_per_sec"`
	AuthRateBurst  int     `yaml:"auth_rate_burst"`

	LogLevel  string `yaml:"log_level"`
	LogPretty bool   `yaml:"log_pretty"`
}

func defaults() *Config {
	return &Config{
		APIPort:           "8080",
		AllowedOrigins:    []string{"http://localhost:3000"},
		DefaultDoctors:    append([]string(nil), scheduler.DefaultDoctors...),
		RawSessionIdleTTL: "12h",
		SessionSweep:      "@every 10m",
		AuthRatePerSec:    1,
		AuthRateBurst:     5,
		LogLevel:          "info",
	}
}

// Load reads .env (if present), then CONFIG_FILE (if set), then the
// environment.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(cfg.RawSessionIdleTTL)
	if err != nil {
		return nil, fmt.Errorf("session idle ttl %q: %w", cfg.RawSessionIdleTTL, err)
	}
	cfg.SessionIdleTTL = ttl

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.APIPort, "API_PORT")
	setString(&c.MongoURI, "MONGO_URI")
	setString(&c.MongoDatabase, "MONGO_DATABASE")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.RawSessionIdleTTL, "SESSION_IDLE_TTL")
	setString(&c.SessionSweep, "SESSION_SWEEP")
	setString(&c.LogLevel, "LOG_LEVEL")
	setList(&c.AllowedOrigins, "CORS_ALLOWED_ORIGINS")
	setList(&c.TrustedProxies, "TRUSTED_PROXIES")
	setList(&c.DefaultDoctors, "DEFAULT_DOCTORS")

	if v := os.Getenv("AUTH_RATE_PER_SEC"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("AUTH_RATE_PER_SEC: %w", err)
		}
		c.AuthRatePerSec = f
	}
	if v := os.Getenv("AUTH_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AUTH_RATE_BURST: %w", err)
		}
		c.AuthRateBurst = n
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LOG_PRETTY: %w", err)
		}
		c.LogPretty = b
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGO_URI is not set"))
	}
	if c.MongoDatabase == "" {
		errs = append(errs, errors.New("MONGO_DATABASE is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.SessionIdleTTL <= 0 {
		errs = append(errs, errors.New("session idle ttl must be positive"))
	}
	if c.AuthRatePerSec <= 0 || c.AuthRateBurst <= 0 {
		errs = append(errs, errors.New("auth rate and burst must be positive"))
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setList splits a comma separated variable, dropping blank items.
func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}

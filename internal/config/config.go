// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// MinSessionSecretLength is the shortest session secret Load accepts. The
// secret doubles as the AES-256 key, which needs 32 bytes.
const MinSessionSecretLength = 32

// placeholderSecrets are values that ship in sample configs and must never
// reach production.
var placeholderSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config is the application configuration, read from HOMEHNI_* environment
// variables.
type Config struct {
	DBPath        string `env:"HOMEHNI_DB_PATH" envDefault:"./data/homehni.db"`
	SessionSecret string `env:"HOMEHNI_SESSION_SECRET,required"`
	ServerHost    string `env:"HOMEHNI_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"HOMEHNI_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"HOMEHNI_ENV" envDefault:"development"`
	LogLevel      string `env:"HOMEHNI_LOG_LEVEL" envDefault:"info"`
	BaseURL       string `env:"HOMEHNI_BASE_URL" envDefault:"https://www.homehni.com"`

	// Page cache. Redis is optional; without it the cache stays in-process.
	RedisURL     string `env:"HOMEHNI_REDIS_URL"`
	CachePrefix  string `env:"HOMEHNI_CACHE_PREFIX" envDefault:"hni:"`
	CacheTTL     int    `env:"HOMEHNI_CACHE_TTL" envDefault:"3600"` // seconds
	CacheMaxSize int    `env:"HOMEHNI_CACHE_MAX_SIZE" envDefault:"10000"`

	// Lead notification mail.
	SMTPHost     string `env:"HOMEHNI_SMTP_HOST"`
	SMTPPort     int    `env:"HOMEHNI_SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"HOMEHNI_SMTP_USER"`
	SMTPPassword string `env:"HOMEHNI_SMTP_PASSWORD"`
	MailFrom     string `env:"HOMEHNI_MAIL_FROM" envDefault:"noreply@homehni.com"`
	LeadInbox    string `env:"HOMEHNI_LEAD_INBOX" envDefault:"support@homehni.com"` // recipient for leads with no routed inbox

	// Country lookup for lead enrichment.
	GeoIPDBPath string `env:"HOMEHNI_GEOIP_DB_PATH"` // path to GeoLite2-Country.mmdb

	// AI copy suggestions.
	OpenAIAPIKey string `env:"HOMEHNI_OPENAI_API_KEY"`
	OpenAIModel  string `env:"HOMEHNI_OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Legacy content import.
	LegacyMySQLDSN string `env:"HOMEHNI_LEGACY_MYSQL_DSN"` // DSN of the legacy WordPress database

	// Seeding.
	DoSeed bool `env:"HOMEHNI_DO_SEED" envDefault:"false"`
}

// IsDevelopment reports whether the app runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the host:port the server listens on.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache reports whether Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MailEnabled reports whether SMTP delivery is configured.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

// GeoIPEnabled reports whether a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// SuggestionsEnabled reports whether AI copy suggestions are configured.
func (c Config) SuggestionsEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// Load reads the configuration from the environment and validates the
// session secret.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := checkSessionSecret(cfg.SessionSecret); err != nil {
		return nil, err
	}
	return cfg, nil
}

func checkSessionSecret(secret string) error {
	if len(secret) < MinSessionSecretLength {
		return fmt.Errorf("HOMEHNI_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(secret))
	}
	for _, placeholder := range placeholderSecrets {
		if secret == placeholder {
			return fmt.Errorf("HOMEHNI_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}
	if characterClasses(secret) < 3 {
		slog.Warn("HOMEHNI_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}
	return nil
}

// characterClasses counts how many of lowercase, uppercase, digits, and
// punctuation appear in s. Random secrets hit at least three.
func characterClasses(s string) int {
	classes := []string{
		"abcdefghijklmnopqrstuvwxyz",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"0123456789",
		"!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\",
	}
	n := 0
	for _, class := range classes {
		if strings.ContainsAny(s, class) {
			n++
		}
	}
	return n
}

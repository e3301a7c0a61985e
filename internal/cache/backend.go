// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache holds the published-page cache and its storage backends.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrMiss is returned by Backend.Get when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Backend stores opaque byte payloads with per-entry TTLs. Implementations
// must be safe for concurrent use.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Config selects and sizes the cache backend.
type Config struct {
	// RedisURL switches the backend to Redis when set, e.g.
	// redis://localhost:6379/0. Empty means in-process memory.
	RedisURL string

	// Prefix namespaces Redis keys so one instance can share a server.
	Prefix string

	// TTL is the default lifetime of an entry when the caller passes 0.
	TTL time.Duration

	// MaxEntries caps the memory backend. 0 means uncapped.
	MaxEntries int
}

// DefaultConfig returns the sizing used when the environment sets nothing.
func DefaultConfig() Config {
	return Config{
		Prefix:     "hni:",
		TTL:        time.Hour,
		MaxEntries: 10000,
	}
}

// New builds the backend cfg describes. A Redis URL that cannot be reached
// degrades to the memory backend with a warning rather than failing startup.
func New(cfg Config) Backend {
	if cfg.RedisURL != "" {
		r, err := NewRedis(cfg.RedisURL, cfg.Prefix, cfg.TTL)
		if err == nil {
			return r
		}
		slog.Warn("redis unavailable, using memory cache", "error", err, "category", "cache")
	}
	return NewMemory(cfg.TTL, cfg.MaxEntries)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig configures cross-site request protection for the admin surface.
// filippo.io/csrf/gorilla validates Fetch metadata and Origin headers, so
// there is no token cookie to configure.
type CSRFConfig struct {
	// AuthKey is the 32-byte token authentication key. The app reuses the
	// session secret.
	AuthKey []byte

	// TrustedOrigins lists host:port values allowed to make cross-origin
	// admin requests.
	TrustedOrigins []string
}

// DefaultCSRFConfig builds the config for the environment. Development
// trusts the local hosts so browser tooling can exercise the admin API.
func DefaultCSRFConfig(authKey []byte, isDev bool) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey}
	if isDev {
		cfg.TrustedOrigins = []string{"localhost:8080", "127.0.0.1:8080"}
	}
	return cfg
}

// CSRF returns the protection middleware for state-changing admin routes.
// Failures answer with the API's JSON error envelope.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.ErrorHandler(http.HandlerFunc(rejectCSRF)),
	}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}
	return csrf.Protect(cfg.AuthKey, opts...)
}

func rejectCSRF(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("rejected cross-site request",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"category", "system",
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"success":false,"error":"Cross-site request rejected"}`))
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// SecurityHeadersConfig tunes the hardening headers stamped on every
// response.
type SecurityHeadersConfig struct {
	// IsDevelopment relaxes the policy set: HSTS is dropped because local
	// servers run plain HTTP, and the CSP admits self-hosted assets so
	// browser tooling works against the API.
	IsDevelopment bool

	// ContentSecurityPolicy overrides the built default when set.
	ContentSecurityPolicy string

	// HSTSMaxAge is the Strict-Transport-Security max-age in seconds.
	// Zero disables the header.
	HSTSMaxAge int

	// FrameOptions is the X-Frame-Options value. Empty skips the header.
	FrameOptions string

	// ReferrerPolicy is the Referrer-Policy value. Empty skips the header.
	ReferrerPolicy string
}

// DefaultSecurityHeadersConfig returns the policy set for a JSON API that
// serves no HTML of its own. The CSP exists as defense in depth for anything
// a browser renders directly, like error pages or the sitemap.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	cfg := SecurityHeadersConfig{
		IsDevelopment:  isDev,
		FrameOptions:   "DENY",
		ReferrerPolicy: "strict-origin-when-cross-origin",
	}

	directives := []string{
		"default-src 'none'",
		"frame-ancestors 'none'",
		"base-uri 'none'",
		"form-action 'self'",
	}
	if isDev {
		directives[0] = "default-src 'self'"
	} else {
		cfg.HSTSMaxAge = 31536000
	}
	cfg.ContentSecurityPolicy = strings.Join(directives, "; ")

	return cfg
}

// SecurityHeaders stamps the configured hardening headers on every response
// before the handler runs, so they apply to error responses too.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	var hsts string
	if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(cfg.HSTSMaxAge) + "; includeSubDomains"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()

			h.Set("X-Content-Type-Options", "nosniff")
			if cfg.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			if hsts != "" {
				h.Set("Strict-Transport-Security", hsts)
			}
			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}

			next.ServeHTTP(w, r)
		})
	}
}

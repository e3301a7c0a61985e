// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
)

// adminPaths stay out of crawler indexes regardless of configuration.
var adminPaths = []string{"/admin", "/api/admin"}

// RobotsConfig drives robots.txt rendering.
type RobotsConfig struct {
	SiteURL       string
	DisallowAll   bool     // staging deployments block everything
	DisallowPaths []string // extra paths on top of the admin surface
	ExtraRules    string   // appended verbatim, e.g. a Crawl-delay
}

// RenderRobots produces the robots.txt body for cfg.
func RenderRobots(cfg RobotsConfig) string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")

	if cfg.DisallowAll {
		sb.WriteString("Disallow: /\n")
	} else {
		for _, path := range adminPaths {
			sb.WriteString("Disallow: " + path + "\n")
		}
		for _, path := range cfg.DisallowPaths {
			sb.WriteString("Disallow: " + path + "\n")
		}
		sb.WriteString("Allow: /\n")
	}

	if cfg.ExtraRules != "" {
		sb.WriteString("\n" + cfg.ExtraRules)
		if !strings.HasSuffix(cfg.ExtraRules, "\n") {
			sb.WriteString("\n")
		}
	}

	if cfg.SiteURL != "" && !cfg.DisallowAll {
		sb.WriteString("\nSitemap: " + strings.TrimSuffix(cfg.SiteURL, "/") + "/sitemap.xml\n")
	}

	return sb.String()
}

// GenerateRobots renders robots.txt for the common case.
func GenerateRobots(siteURL string, disallowAll bool, extraRules string) string {
	return RenderRobots(RobotsConfig{
		SiteURL:     siteURL,
		DisallowAll: disallowAll,
		ExtraRules:  extraRules,
	})
}

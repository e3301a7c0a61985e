// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html/template"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// bodySanitizer strips dangerous markup from section bodies. UGCPolicy allows
// the safe formatting tags editors actually use.
var bodySanitizer = bluemonday.UGCPolicy()

// markdown converts content-block bodies written in Markdown.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// RenderBody converts a content-block body to sanitized HTML. Bodies that
// already look like HTML are sanitized as-is; everything else is treated as
// Markdown first.
func RenderBody(body string) template.HTML {
	if body == "" {
		return ""
	}

	if strings.HasPrefix(strings.TrimSpace(body), "<") {
		return template.HTML(bodySanitizer.Sanitize(body))
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		slog.Warn("markdown conversion failed", "error", err)
		return template.HTML(bodySanitizer.Sanitize(body))
	}
	return template.HTML(bodySanitizer.Sanitize(buf.String()))
}

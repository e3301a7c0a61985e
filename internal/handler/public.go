// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/homehni/homehni-web/internal/catalog"
	"github.com/homehni/homehni-web/internal/model"
	"github.com/homehni/homehni-web/internal/render"
	"github.com/homehni/homehni-web/internal/seo"
	"github.com/homehni/homehni-web/internal/util"
)

// publicSection is one active section as the public site consumes it.
type publicSection struct {
	Type    string               `json:"section_type"`
	Content model.SectionContent `json:"content"`
	Preview render.Preview       `json:"preview"`
}

// GetPublicPage handles GET /api/pages/{slug}: one published page with its
// active sections in display order. Drafts read as not found.
func (h *Handler) GetPublicPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		writeJSONError(w, http.StatusNotFound, "Page not found")
		return
	}

	cached, err := h.pageCache.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Page not found")
			return
		}
		slog.Error("failed to load public page", "error", err, "slug", slug)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	sections := make([]publicSection, 0, len(cached.Sections))
	for _, sec := range cached.Sections {
		if !sec.IsActive {
			continue
		}
		sections = append(sections, publicSection{
			Type:    sec.Type,
			Content: sec.Content,
			Preview: render.Section(sec),
		})
	}

	resp := map[string]any{
		"page":     pageToResponse(cached.Page),
		"sections": sections,
	}
	if h.site != nil {
		resp["meta"] = seo.BuildMeta(&cached.Page, h.site)
		if slug == "home" {
			resp["schema"] = seo.BuildWebSiteSchema(h.site)
		}
	}
	writeJSONSuccess(w, resp)
}

// Sitemap handles GET /sitemap.xml over the published pages, the pricing
// pages and the service landing pages.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pages, err := h.queries.ListPublishedPages(ctx)
	if err != nil {
		slog.Error("failed to list pages for sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sitemapPages := make([]seo.SitemapPage, 0, len(pages))
	for _, p := range pages {
		sitemapPages = append(sitemapPages, seo.SitemapPage{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}
	tags := make([]string, 0)
	for _, svc := range catalog.Services() {
		tags = append(tags, svc.Tag)
	}

	xml, err := seo.GenerateSitemap(h.siteURL(), sitemapPages, tags)
	if err != nil {
		slog.Error("failed to build sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(xml)
}

// Robots handles GET /robots.txt.
func (h *Handler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.GenerateRobots(h.siteURL(), false, "")))
}

// SecurityTxt handles GET /.well-known/security.txt.
func (h *Handler) SecurityTxt(w http.ResponseWriter, _ *http.Request) {
	contact := "mailto:security@homehni.com"
	if h.leadInbox != "" {
		contact = "mailto:" + h.leadInbox
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.GenerateSecurityTxt(contact, time.Now().AddDate(1, 0, 0))))
}

func (h *Handler) siteURL() string {
	if h.site != nil {
		return h.site.SiteURL
	}
	return ""
}

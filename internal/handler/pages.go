// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/homehni/homehni-web/internal/model"
	"github.com/homehni/homehni-web/internal/store"
)

// PageResponse represents a page in API responses.
type PageResponse struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description,omitempty"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	MetaKeywords    []string   `json:"meta_keywords,omitempty"`
	IsPublished     bool       `json:"is_published"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SectionResponse represents a section in API responses.
type SectionResponse struct {
	ID        model.SectionID      `json:"id"`
	Type      string               `json:"section_type"`
	Label     string               `json:"label"`
	Content   model.SectionContent `json:"content"`
	SortOrder int64                `json:"sort_order"`
	IsActive  bool                 `json:"is_active"`
}

func pageToResponse(p model.ContentPage) PageResponse {
	resp := PageResponse{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Description:     p.Description,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		MetaKeywords:    p.MetaKeywords,
		IsPublished:     p.IsPublished,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.ScheduledAt.Valid {
		resp.ScheduledAt = &p.ScheduledAt.Time
	}
	return resp
}

func sectionToResponse(s model.PageSection) SectionResponse {
	return SectionResponse{
		ID:        s.ID,
		Type:      s.Type,
		Label:     model.HumanizeSectionType(s.Type),
		Content:   s.Content,
		SortOrder: s.SortOrder,
		IsActive:  s.IsActive,
	}
}

func sectionsToResponse(sections []model.PageSection) []SectionResponse {
	result := make([]SectionResponse, 0, len(sections))
	for _, s := range sections {
		result = append(result, sectionToResponse(s))
	}
	return result
}

// ListPages handles GET /api/admin/pages.
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, offset := parsePagination(r)

	pages, err := h.queries.ListPages(ctx, store.ListPagesParams{Limit: limit, Offset: offset})
	if err != nil {
		slog.Error("failed to list pages", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	total, err := h.queries.CountPages(ctx)
	if err != nil {
		slog.Error("failed to count pages", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	result := make([]PageResponse, 0, len(pages))
	for _, page := range pages {
		result = append(result, pageToResponse(page))
	}

	writeJSONSuccess(w, map[string]any{
		"pages": result,
		"total": total,
	})
}

// GetPage handles GET /api/admin/pages/{id}. The response includes the page's
// sections in display order.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid page ID")
		return
	}

	page, ok := h.requirePage(ctx, w, id)
	if !ok {
		return
	}

	sections, err := h.queries.ListSectionsByPage(ctx, page.ID)
	if err != nil {
		slog.Error("failed to list sections", "error", err, "page_id", page.ID)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSONSuccess(w, map[string]any{
		"page":     pageToResponse(page),
		"sections": sectionsToResponse(sections),
	})
}

// DeletePage handles DELETE /api/admin/pages/{id}. Sections go with the page
// via the foreign key cascade.
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid page ID")
		return
	}

	page, ok := h.requirePage(ctx, w, id)
	if !ok {
		return
	}

	if err := h.queries.DeletePage(ctx, page.ID); err != nil {
		slog.Error("failed to delete page", "error", err, "page_id", page.ID)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.invalidatePage(ctx, page.Slug)
	slog.Info("page deleted", "page_id", page.ID, "slug", page.Slug)

	writeJSONSuccess(w, nil)
}

// requirePage fetches a page by ID, writing the JSON error response itself
// when the page is missing or the query fails.
func (h *Handler) requirePage(ctx context.Context, w http.ResponseWriter, id int64) (model.ContentPage, bool) {
	page, err := h.queries.GetPageByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Page not found")
		} else {
			slog.Error("failed to get page", "error", err, "page_id", id)
			writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return model.ContentPage{}, false
	}
	return page, true
}

// invalidatePage drops a page from the cache, logging on failure.
func (h *Handler) invalidatePage(ctx context.Context, slug string) {
	if h.pageCache == nil {
		return
	}
	if err := h.pageCache.Invalidate(ctx, slug); err != nil {
		slog.Warn("failed to invalidate page cache", "slug", slug, "error", err)
	}
}

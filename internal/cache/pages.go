// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/homehni/homehni-web/internal/model"
)

// PageFetcher loads a published page and its sections from the store. The
// page cache depends on this narrow contract rather than the query layer so
// tests can drive it without a database.
type PageFetcher interface {
	GetPageBySlug(ctx context.Context, slug string) (model.ContentPage, error)
	ListSectionsByPage(ctx context.Context, pageID int64) ([]model.PageSection, error)
}

// CachedPage is one published page with its ordered sections, as served to
// the public site.
type CachedPage struct {
	Page     model.ContentPage   `json:"page"`
	Sections []model.PageSection `json:"sections"`
}

// PageCache serves published pages through a byte cache. Draft pages are
// never cached and read as not found on the public surface.
type PageCache struct {
	backend Backend
	fetcher PageFetcher
	ttl     time.Duration
}

// NewPageCache creates a page cache over the given backend.
func NewPageCache(backend Backend, fetcher PageFetcher, ttl time.Duration) *PageCache {
	return &PageCache{
		backend: backend,
		fetcher: fetcher,
		ttl:     ttl,
	}
}

func pageKey(slug string) string {
	return "page:" + slug
}

// GetBySlug returns the published page for a slug, from cache when possible.
// Unpublished pages return sql.ErrNoRows like missing ones.
func (c *PageCache) GetBySlug(ctx context.Context, slug string) (*CachedPage, error) {
	key := pageKey(slug)

	if data, err := c.backend.Get(ctx, key); err == nil {
		var cached CachedPage
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		// A corrupt entry is dropped and refetched.
		_ = c.backend.Delete(ctx, key)
	} else if !errors.Is(err, ErrMiss) {
		return nil, fmt.Errorf("reading page cache for %q: %w", slug, err)
	}

	page, err := c.fetcher.GetPageBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !page.IsPublished {
		return nil, sql.ErrNoRows
	}

	sections, err := c.fetcher.ListSectionsByPage(ctx, page.ID)
	if err != nil {
		return nil, fmt.Errorf("loading sections for %q: %w", slug, err)
	}

	cached := &CachedPage{Page: page, Sections: sections}
	if data, err := json.Marshal(cached); err == nil {
		_ = c.backend.Set(ctx, key, data, c.ttl)
	}
	return cached, nil
}

// Invalidate drops the cached entry for a slug. Called on every save,
// publish or delete touching the page.
func (c *PageCache) Invalidate(ctx context.Context, slug string) error {
	return c.backend.Delete(ctx, pageKey(slug))
}

// InvalidateAll drops every cached page.
func (c *PageCache) InvalidateAll(ctx context.Context) error {
	return c.backend.Clear(ctx)
}

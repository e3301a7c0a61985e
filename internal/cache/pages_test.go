// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/homehni/homehni-web/internal/model"
)

type fakeFetcher struct {
	pages    map[string]model.ContentPage
	sections map[int64][]model.PageSection
	fetches  int
}

func (f *fakeFetcher) GetPageBySlug(_ context.Context, slug string) (model.ContentPage, error) {
	f.fetches++
	page, ok := f.pages[slug]
	if !ok {
		return model.ContentPage{}, sql.ErrNoRows
	}
	return page, nil
}

func (f *fakeFetcher) ListSectionsByPage(_ context.Context, pageID int64) ([]model.PageSection, error) {
	return f.sections[pageID], nil
}

func newPageCacheFixture() (*PageCache, *fakeFetcher) {
	fetcher := &fakeFetcher{
		pages: map[string]model.ContentPage{
			"about": {ID: 1, Title: "About", Slug: "about", IsPublished: true},
			"draft": {ID: 2, Title: "Draft", Slug: "draft"},
		},
		sections: map[int64][]model.PageSection{
			1: {{ID: model.PersistedID(10), PageID: 1, Type: model.SectionHero, Content: model.SectionContent{"title": "About Us"}, IsActive: true}},
		},
	}
	backend := NewMemory(time.Hour, 0)
	return NewPageCache(backend, fetcher, time.Hour), fetcher
}

func TestPageCacheServesFromCacheAfterFirstFetch(t *testing.T) {
	pc, fetcher := newPageCacheFixture()
	ctx := context.Background()

	first, err := pc.GetBySlug(ctx, "about")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if first.Page.Title != "About" || len(first.Sections) != 1 {
		t.Errorf("cached page = %+v", first)
	}

	second, err := pc.GetBySlug(ctx, "about")
	if err != nil {
		t.Fatalf("second GetBySlug: %v", err)
	}
	if fetcher.fetches != 1 {
		t.Errorf("fetches = %d, want 1 (second read served from cache)", fetcher.fetches)
	}
	if second.Sections[0].Content.String("title") != "About Us" {
		t.Errorf("section content lost in round trip: %+v", second.Sections[0])
	}
	if second.Sections[0].ID != model.PersistedID(10) {
		t.Errorf("section ID lost in round trip: %v", second.Sections[0].ID)
	}
}

func TestPageCacheHidesDrafts(t *testing.T) {
	pc, _ := newPageCacheFixture()

	_, err := pc.GetBySlug(context.Background(), "draft")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("draft page err = %v, want sql.ErrNoRows", err)
	}
}

func TestPageCacheMissingPage(t *testing.T) {
	pc, _ := newPageCacheFixture()

	_, err := pc.GetBySlug(context.Background(), "nope")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("missing page err = %v, want sql.ErrNoRows", err)
	}
}

func TestPageCacheInvalidate(t *testing.T) {
	pc, fetcher := newPageCacheFixture()
	ctx := context.Background()

	if _, err := pc.GetBySlug(ctx, "about"); err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if err := pc.Invalidate(ctx, "about"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := pc.GetBySlug(ctx, "about"); err != nil {
		t.Fatalf("GetBySlug after invalidate: %v", err)
	}
	if fetcher.fetches != 2 {
		t.Errorf("fetches = %d, want 2 (invalidate forces refetch)", fetcher.fetches)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/homehni/homehni-web/internal/store"
)

func TestEditorCreateFlow(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	// Open in creation mode
	rec := c.do(http.MethodPost, "/api/admin/editor/open", map[string]any{})
	if rec.Code != http.StatusOK {
		t.Fatalf("open editor = %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["creating"] != true {
		t.Error("fresh editor should be in creation mode")
	}

	// Set page fields; slug auto-derives from the title
	rec = c.do(http.MethodPut, "/api/admin/editor/page", map[string]any{
		"title":        "Sell Your Flat Fast",
		"is_published": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update page = %d: %s", rec.Code, rec.Body.String())
	}
	body = decodeBody(t, rec)
	page := body["page"].(map[string]any)
	if page["slug"] != "sell-your-flat-fast" {
		t.Errorf("slug = %v, want auto-derived sell-your-flat-fast", page["slug"])
	}

	// Add a hero section; it gets a pending ID and default content
	rec = c.do(http.MethodPost, "/api/admin/editor/sections", map[string]any{
		"section_type": "hero",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("add section = %d: %s", rec.Code, rec.Body.String())
	}
	body = decodeBody(t, rec)
	section := body["section"].(map[string]any)
	sectionID, _ := section["id"].(string)
	if sectionID == "" {
		t.Fatalf("pending section ID should serialize as a string: %v", section["id"])
	}
	if body["preview"] == nil {
		t.Error("add section response missing preview")
	}

	// Edit the section's content through its pending ID
	rec = c.do(http.MethodPut, "/api/admin/editor/sections/"+sectionID, map[string]any{
		"content": map[string]any{"title": "Zero Brokerage", "subtitle": "List free"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update section = %d: %s", rec.Code, rec.Body.String())
	}

	// Save persists the page and its pending sections
	rec = c.do(http.MethodPost, "/api/admin/editor/save", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("save = %d: %s", rec.Code, rec.Body.String())
	}
	body = decodeBody(t, rec)
	saved := body["page"].(map[string]any)
	if saved["id"].(float64) <= 0 {
		t.Error("saved page should carry its assigned ID")
	}

	queries := store.New(h.db)
	stored, err := queries.GetPageBySlug(context.Background(), "sell-your-flat-fast")
	if err != nil {
		t.Fatalf("GetPageBySlug after save: %v", err)
	}
	sections, err := queries.ListSectionsByPage(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("ListSectionsByPage: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("stored sections = %d, want 1", len(sections))
	}
	if sections[0].Content.String("title") != "Zero Brokerage" {
		t.Errorf("stored section title = %q", sections[0].Content.String("title"))
	}

	// Saving recorded success notifications for the session
	rec = c.do(http.MethodGet, "/api/admin/editor/notifications", nil)
	body = decodeBody(t, rec)
	if notifications := body["notifications"].([]any); len(notifications) == 0 {
		t.Error("expected notifications after save")
	}

	// A second drain comes back empty
	rec = c.do(http.MethodGet, "/api/admin/editor/notifications", nil)
	body = decodeBody(t, rec)
	if notifications := body["notifications"].([]any); len(notifications) != 0 {
		t.Errorf("second drain = %d notifications, want 0", len(notifications))
	}
}

func TestEditorEditExistingPage(t *testing.T) {
	h := newTestHandler(t)
	page := createPublishedPage(t, h.db, "existing")
	c := newClient(t, h)

	rec := c.do(http.MethodPost, "/api/admin/editor/open", map[string]any{"page_id": page.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("open existing = %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["creating"] != false {
		t.Error("opening an existing page should not be creation mode")
	}
	if sections := body["sections"].([]any); len(sections) != 2 {
		t.Errorf("loaded sections = %d, want 2", len(sections))
	}

	rec = c.do(http.MethodPut, "/api/admin/editor/page", map[string]any{"title": "Renamed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update title = %d", rec.Code)
	}

	rec = c.do(http.MethodPost, "/api/admin/editor/save", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("save = %d: %s", rec.Code, rec.Body.String())
	}

	stored, err := store.New(h.db).GetPageByID(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("GetPageByID: %v", err)
	}
	if stored.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", stored.Title)
	}
	if stored.Slug != "existing" {
		t.Errorf("existing slug must not be overwritten, got %q", stored.Slug)
	}
}

func TestEditorOpenMissingPage(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	rec := c.do(http.MethodPost, "/api/admin/editor/open", map[string]any{"page_id": 9999})
	if rec.Code != http.StatusNotFound {
		t.Errorf("open missing page = %d, want 404", rec.Code)
	}
}

func TestEditorSaveRequiresTitle(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	c.do(http.MethodPost, "/api/admin/editor/open", map[string]any{})
	rec := c.do(http.MethodPost, "/api/admin/editor/save", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("save without title = %d, want 422", rec.Code)
	}
	body := decodeBody(t, rec)
	fields := body["fields"].(map[string]any)
	if fields["title"] == nil {
		t.Errorf("expected title field error, got %v", fields)
	}
}

func TestEditorRemoveSection(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	c.do(http.MethodPost, "/api/admin/editor/open", map[string]any{})
	rec := c.do(http.MethodPost, "/api/admin/editor/sections", map[string]any{"section_type": "faq"})
	body := decodeBody(t, rec)
	sectionID := body["section"].(map[string]any)["id"].(string)

	rec = c.do(http.MethodDelete, "/api/admin/editor/sections/"+sectionID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove section = %d", rec.Code)
	}

	rec = c.do(http.MethodGet, "/api/admin/editor", nil)
	body = decodeBody(t, rec)
	if sections := body["sections"].([]any); len(sections) != 0 {
		t.Errorf("sections after removal = %d, want 0", len(sections))
	}

	// Removing again is a 404
	rec = c.do(http.MethodDelete, "/api/admin/editor/sections/"+sectionID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("double removal = %d, want 404", rec.Code)
	}
}

func TestEditorAddSectionRequiresType(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	c.do(http.MethodPost, "/api/admin/editor/open", map[string]any{})
	rec := c.do(http.MethodPost, "/api/admin/editor/sections", map[string]any{"section_type": ""})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty section type = %d, want 422", rec.Code)
	}
}

func TestEditorDiscard(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	c.do(http.MethodPost, "/api/admin/editor/open", map[string]any{})
	c.do(http.MethodPut, "/api/admin/editor/page", map[string]any{"title": "Unsaved"})
	c.do(http.MethodDelete, "/api/admin/editor", nil)

	rec := c.do(http.MethodGet, "/api/admin/editor", nil)
	body := decodeBody(t, rec)
	page := body["page"].(map[string]any)
	if page["title"] != "" {
		t.Errorf("title after discard = %v, want empty", page["title"])
	}
}

func TestEditorSessionsAreIsolated(t *testing.T) {
	h := newTestHandler(t)
	alice := newClient(t, h)
	bob := newClient(t, h)

	alice.do(http.MethodPost, "/api/admin/editor/open", map[string]any{})
	alice.do(http.MethodPut, "/api/admin/editor/page", map[string]any{"title": "Alice's Draft"})

	rec := bob.do(http.MethodGet, "/api/admin/editor", nil)
	body := decodeBody(t, rec)
	page := body["page"].(map[string]any)
	if page["title"] == "Alice's Draft" {
		t.Error("second session sees the first session's draft")
	}
}

func TestEditorUpdatePersistedSectionID(t *testing.T) {
	h := newTestHandler(t)
	page := createPublishedPage(t, h.db, "persisted-sections")
	c := newClient(t, h)

	c.do(http.MethodPost, "/api/admin/editor/open", map[string]any{"page_id": page.ID})

	rec := c.do(http.MethodGet, "/api/admin/editor", nil)
	body := decodeBody(t, rec)
	sections := body["sections"].([]any)
	first := sections[0].(map[string]any)

	// Persisted IDs serialize as decimal strings
	id := first["id"].(string)
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		t.Fatalf("persisted section ID %q is not numeric", id)
	}
	rec = c.do(http.MethodPut, "/api/admin/editor/sections/"+id, map[string]any{
		"is_active": false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update persisted section = %d: %s", rec.Code, rec.Body.String())
	}
	section := decodeBody(t, rec)["section"].(map[string]any)
	if section["is_active"] != false {
		t.Error("is_active flag not applied")
	}
}

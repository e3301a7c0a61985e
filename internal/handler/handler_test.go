// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/homehni/homehni-web/internal/cache"
	"github.com/homehni/homehni-web/internal/editor"
	"github.com/homehni/homehni-web/internal/model"
	"github.com/homehni/homehni-web/internal/seo"
	"github.com/homehni/homehni-web/internal/session"
	"github.com/homehni/homehni-web/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "handler-test.db")
	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testSite() *seo.SiteConfig {
	return &seo.SiteConfig{
		SiteName:        "HomeHNI",
		SiteURL:         "https://www.homehni.com",
		SiteDescription: "Buy, sell and rent property with zero brokerage.",
	}
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	db := testDB(t)
	backend := cache.NewMemory(time.Minute, 0)
	t.Cleanup(func() { _ = backend.Close() })

	return New(db, Options{
		Sessions:  session.New(db, true),
		Editors:   editor.NewManager(store.NewEditorStore(db)),
		PageCache: cache.NewPageCache(backend, store.New(db), time.Minute),
		Site:      testSite(),
		LeadInbox: "support@homehni.com",
	})
}

// testRouter mirrors the production routes without CSRF or rate limiting so
// tests exercise the handlers, not the protections around them.
func testRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(h.sm.LoadAndSave)

	r.Get("/health", h.Health)
	r.Get("/health/live", h.Liveness)
	r.Get("/health/ready", h.Readiness)
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
	r.Get("/.well-known/security.txt", h.SecurityTxt)

	r.Get("/api/pages/{slug}", h.GetPublicPage)
	r.Get("/api/plans", h.ListPlans)
	r.Get("/api/services", h.ListServices)
	r.Get("/api/services/{tag}", h.GetService)
	r.Post("/api/leads", h.CreateLead)

	r.Get("/api/admin/pages", h.ListPages)
	r.Get("/api/admin/pages/{id}", h.GetPage)
	r.Delete("/api/admin/pages/{id}", h.DeletePage)
	r.Post("/api/admin/editor/open", h.OpenEditor)
	r.Get("/api/admin/editor", h.GetEditorState)
	r.Delete("/api/admin/editor", h.DiscardEditor)
	r.Put("/api/admin/editor/page", h.UpdateEditorPage)
	r.Post("/api/admin/editor/sections", h.AddEditorSection)
	r.Put("/api/admin/editor/sections/{id}", h.UpdateEditorSection)
	r.Delete("/api/admin/editor/sections/{id}", h.RemoveEditorSection)
	r.Post("/api/admin/editor/save", h.SaveEditor)
	r.Get("/api/admin/editor/notifications", h.EditorNotifications)
	r.Get("/api/admin/catalog", h.GetCatalog)
	r.Get("/api/admin/catalog/layouts/{type}", h.GetSectionLayout)
	r.Get("/api/admin/leads", h.ListLeads)
	r.Post("/api/admin/suggest", h.SuggestContent)
	r.Get("/api/admin/jobs", h.ListJobs)

	return r
}

// apiClient drives the test router while carrying session cookies between
// requests, like a browser would.
type apiClient struct {
	t       *testing.T
	router  chi.Router
	cookies []*http.Cookie
}

func newClient(t *testing.T, h *Handler) *apiClient {
	return &apiClient{t: t, router: testRouter(h)}
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return body
}

func createPublishedPage(t *testing.T, db *sql.DB, slug string) model.ContentPage {
	t.Helper()

	queries := store.New(db)
	page, err := queries.CreatePage(context.Background(), store.CreatePageParams{
		Title:       "Test " + slug,
		Slug:        slug,
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	_, err = queries.CreateSection(context.Background(), store.CreateSectionParams{
		PageID:      page.ID,
		SectionType: model.SectionHero,
		Content:     model.SectionContent{"title": "Welcome"},
		SortOrder:   0,
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	_, err = queries.CreateSection(context.Background(), store.CreateSectionParams{
		PageID:      page.ID,
		SectionType: model.SectionStats,
		Content:     model.SectionContent{"title": "Hidden"},
		SortOrder:   1,
		IsActive:    false,
	})
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	return page
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	rec := c.do(http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}

	rec = c.do(http.MethodGet, "/health/live", nil)
	if rec.Code != http.StatusOK || decodeBody(t, rec)["status"] != "alive" {
		t.Errorf("liveness = %d %s", rec.Code, rec.Body.String())
	}

	rec = c.do(http.MethodGet, "/health/ready", nil)
	if rec.Code != http.StatusOK || decodeBody(t, rec)["status"] != "ready" {
		t.Errorf("readiness = %d %s", rec.Code, rec.Body.String())
	}
}

func TestGetPublicPage(t *testing.T) {
	h := newTestHandler(t)
	createPublishedPage(t, h.db, "about-us")
	c := newClient(t, h)

	rec := c.do(http.MethodGet, "/api/pages/about-us", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/pages/about-us = %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)

	sections, ok := body["sections"].([]any)
	if !ok {
		t.Fatalf("sections missing: %v", body)
	}
	if len(sections) != 1 {
		t.Errorf("active sections = %d, want 1 (inactive filtered)", len(sections))
	}
	if body["meta"] == nil {
		t.Error("expected SEO meta in response")
	}
}

func TestGetPublicPageDraftIsNotFound(t *testing.T) {
	h := newTestHandler(t)
	queries := store.New(h.db)
	_, err := queries.CreatePage(context.Background(), store.CreatePageParams{
		Title: "Draft", Slug: "draft-page",
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	c := newClient(t, h)

	rec := c.do(http.MethodGet, "/api/pages/draft-page", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("draft page returned %d, want 404", rec.Code)
	}
}

func TestGetPublicPageInvalidSlug(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	rec := c.do(http.MethodGet, "/api/pages/Not%20A%20Slug!", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("invalid slug returned %d, want 404", rec.Code)
	}
}

func TestSitemap(t *testing.T) {
	h := newTestHandler(t)
	createPublishedPage(t, h.db, "gurgaon-guide")
	c := newClient(t, h)

	rec := c.do(http.MethodGet, "/sitemap.xml", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /sitemap.xml = %d", rec.Code)
	}
	xml := rec.Body.String()
	if !strings.Contains(xml, "https://www.homehni.com/gurgaon-guide") {
		t.Error("sitemap missing published page")
	}
	if !strings.Contains(xml, "/services/loans") {
		t.Error("sitemap missing service landing pages")
	}
	if !strings.Contains(xml, "/pricing") {
		t.Error("sitemap missing pricing page")
	}
}

func TestRobotsAndSecurityTxt(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	rec := c.do(http.MethodGet, "/robots.txt", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Sitemap:") {
		t.Errorf("robots.txt = %d %q", rec.Code, rec.Body.String())
	}

	rec = c.do(http.MethodGet, "/.well-known/security.txt", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Contact: mailto:support@homehni.com") {
		t.Errorf("security.txt = %d %q", rec.Code, rec.Body.String())
	}
}

func TestListPlansAllAudiences(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	rec := c.do(http.MethodGet, "/api/plans", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/plans = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	audiences, ok := body["audiences"].(map[string]any)
	if !ok {
		t.Fatalf("audiences missing: %v", body)
	}
	for _, want := range []string{"owner", "buyer", "seller", "tenant", "agent", "builder"} {
		if audiences[want] == nil {
			t.Errorf("missing audience %q", want)
		}
	}
}

func TestListPlansSingleAudience(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	rec := c.do(http.MethodGet, "/api/plans?audience=owner", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/plans?audience=owner = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	plans, ok := body["plans"].([]any)
	if !ok || len(plans) == 0 {
		t.Fatalf("plans missing: %v", body)
	}
	first := plans[0].(map[string]any)
	if first["price"] == nil {
		t.Error("plan missing price breakdown")
	}

	rec = c.do(http.MethodGet, "/api/plans?audience=martian", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown audience = %d, want 404", rec.Code)
	}
}

func TestServices(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	rec := c.do(http.MethodGet, "/api/services", nil)
	body := decodeBody(t, rec)
	services, ok := body["services"].([]any)
	if !ok || len(services) != 9 {
		t.Fatalf("services = %v", body["services"])
	}

	rec = c.do(http.MethodGet, "/api/services/loans", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/services/loans = %d", rec.Code)
	}
	body = decodeBody(t, rec)
	if body["schema"] == nil {
		t.Error("service response missing JSON-LD schema")
	}

	rec = c.do(http.MethodGet, "/api/services/nonexistent", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown service = %d, want 404", rec.Code)
	}
}

func TestCatalogAndLayouts(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	rec := c.do(http.MethodGet, "/api/admin/catalog", nil)
	body := decodeBody(t, rec)
	types, ok := body["types"].([]any)
	if !ok || len(types) == 0 {
		t.Fatalf("catalog types missing: %v", body)
	}
	entry := types[0].(map[string]any)
	for _, key := range []string{"section_type", "label", "default_content"} {
		if entry[key] == nil {
			t.Errorf("catalog entry missing %q", key)
		}
	}

	rec = c.do(http.MethodGet, "/api/admin/catalog/layouts/hero", nil)
	body = decodeBody(t, rec)
	layout, ok := body["layout"].(map[string]any)
	if !ok {
		t.Fatalf("layout missing: %v", body)
	}
	if layout["fields"] == nil {
		t.Error("layout missing fields")
	}
}

func TestListAndDeletePages(t *testing.T) {
	h := newTestHandler(t)
	page := createPublishedPage(t, h.db, "to-delete")
	c := newClient(t, h)

	rec := c.do(http.MethodGet, "/api/admin/pages", nil)
	body := decodeBody(t, rec)
	if body["total"].(float64) != 1 {
		t.Errorf("total = %v, want 1", body["total"])
	}

	rec = c.do(http.MethodGet, "/api/admin/pages/"+strconv.FormatInt(page.ID, 10), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET page = %d", rec.Code)
	}
	body = decodeBody(t, rec)
	if sections := body["sections"].([]any); len(sections) != 2 {
		t.Errorf("admin view sections = %d, want 2 (drafts included)", len(sections))
	}

	rec = c.do(http.MethodDelete, "/api/admin/pages/"+strconv.FormatInt(page.ID, 10), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE page = %d", rec.Code)
	}

	rec = c.do(http.MethodGet, "/api/admin/pages/"+strconv.FormatInt(page.ID, 10), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted page = %d, want 404", rec.Code)
	}
}

func TestSuggestDisabled(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	rec := c.do(http.MethodPost, "/api/admin/suggest", map[string]any{"section_type": "hero"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("suggest without API key = %d, want 503", rec.Code)
	}
}

func TestJobsWithoutScheduler(t *testing.T) {
	h := newTestHandler(t)
	c := newClient(t, h)

	rec := c.do(http.MethodGet, "/api/admin/jobs", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("jobs without scheduler = %d, want 503", rec.Code)
	}
}

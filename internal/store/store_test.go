package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/homehni/homehni-web/internal/model"
)

// testDB opens a migrated scratch database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "store-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func createTestPage(t *testing.T, q *Queries, slug string) model.ContentPage {
	t.Helper()
	page, err := q.CreatePage(context.Background(), CreatePageParams{
		Title:        "Test Page",
		Slug:         slug,
		Description:  "A test page",
		MetaTitle:    "Test Page | HomeHNI",
		MetaKeywords: []string{"real estate", "india"},
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	return page
}

func TestCreateAndGetPage(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	page := createTestPage(t, q, "test-page")
	if page.ID == 0 {
		t.Error("page.ID should not be 0")
	}
	if page.IsPublished {
		t.Error("new page should not be published")
	}

	got, err := q.GetPageByID(ctx, page.ID)
	if err != nil {
		t.Fatalf("GetPageByID: %v", err)
	}
	if got.Slug != "test-page" {
		t.Errorf("Slug = %q, want %q", got.Slug, "test-page")
	}
	if len(got.MetaKeywords) != 2 || got.MetaKeywords[0] != "real estate" {
		t.Errorf("MetaKeywords = %v, want [real estate india]", got.MetaKeywords)
	}

	bySlug, err := q.GetPageBySlug(ctx, "test-page")
	if err != nil {
		t.Fatalf("GetPageBySlug: %v", err)
	}
	if bySlug.ID != page.ID {
		t.Errorf("GetPageBySlug ID = %d, want %d", bySlug.ID, page.ID)
	}
}

func TestUpdatePage(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	page := createTestPage(t, q, "update-me")
	err := q.UpdatePage(ctx, UpdatePageParams{
		ID:          page.ID,
		Title:       "Updated",
		Slug:        "updated",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}

	got, err := q.GetPageByID(ctx, page.ID)
	if err != nil {
		t.Fatalf("GetPageByID: %v", err)
	}
	if got.Title != "Updated" || got.Slug != "updated" || !got.IsPublished {
		t.Errorf("page not updated: %+v", got)
	}

	if err := q.UpdatePage(ctx, UpdatePageParams{ID: 99999, Title: "x", Slug: "x"}); err != sql.ErrNoRows {
		t.Errorf("UpdatePage missing row: err = %v, want sql.ErrNoRows", err)
	}
}

func TestSlugExists(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	page := createTestPage(t, q, "taken")

	exists, err := q.SlugExists(ctx, "taken")
	if err != nil {
		t.Fatalf("SlugExists: %v", err)
	}
	if !exists {
		t.Error("SlugExists(taken) = false, want true")
	}

	exists, err = q.SlugExistsExcluding(ctx, SlugExistsExcludingParams{Slug: "taken", ID: page.ID})
	if err != nil {
		t.Fatalf("SlugExistsExcluding: %v", err)
	}
	if exists {
		t.Error("slug should not count against its own page")
	}
}

func TestPublishDuePages(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	past := sql.NullTime{Time: time.Now().Add(-time.Hour), Valid: true}
	future := sql.NullTime{Time: time.Now().Add(time.Hour), Valid: true}

	due, err := q.CreatePage(ctx, CreatePageParams{Title: "Due", Slug: "due", ScheduledAt: past})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	notDue, err := q.CreatePage(ctx, CreatePageParams{Title: "Not Due", Slug: "not-due", ScheduledAt: future})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	published, err := q.PublishDuePages(ctx, time.Now())
	if err != nil {
		t.Fatalf("PublishDuePages: %v", err)
	}
	if published != 1 {
		t.Errorf("published = %d, want 1", published)
	}

	got, _ := q.GetPageByID(ctx, due.ID)
	if !got.IsPublished || got.ScheduledAt.Valid {
		t.Errorf("due page should be published with schedule cleared: %+v", got)
	}
	got, _ = q.GetPageByID(ctx, notDue.ID)
	if got.IsPublished {
		t.Error("future-scheduled page should stay unpublished")
	}
}

func TestSectionsOrderedBySortOrder(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	page := createTestPage(t, q, "with-sections")

	// Insert out of order; the list must come back sorted.
	for _, order := range []int64{2, 0, 1} {
		_, err := q.CreateSection(ctx, CreateSectionParams{
			PageID:      page.ID,
			SectionType: model.SectionHero,
			Content:     model.SectionContent{"title": "Section"},
			SortOrder:   order,
			IsActive:    true,
		})
		if err != nil {
			t.Fatalf("CreateSection: %v", err)
		}
	}

	sections, err := q.ListSectionsByPage(ctx, page.ID)
	if err != nil {
		t.Fatalf("ListSectionsByPage: %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("len(sections) = %d, want 3", len(sections))
	}
	for i, sec := range sections {
		if sec.SortOrder != int64(i) {
			t.Errorf("sections[%d].SortOrder = %d, want %d", i, sec.SortOrder, i)
		}
		if sec.ID.IsPending() {
			t.Errorf("sections[%d] should carry a persisted ID", i)
		}
	}
}

func TestSectionContentRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	page := createTestPage(t, q, "content-round-trip")
	content := model.SectionContent{
		"title": "By the Numbers",
		"stats": []any{
			map[string]any{"value": "10K+", "label": "Listings"},
		},
	}

	section, err := q.CreateSection(ctx, CreateSectionParams{
		PageID:      page.ID,
		SectionType: model.SectionStats,
		Content:     content,
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}

	id, ok := section.ID.StorageID()
	if !ok {
		t.Fatal("created section should be persisted")
	}
	got, err := q.GetSectionByID(ctx, id)
	if err != nil {
		t.Fatalf("GetSectionByID: %v", err)
	}
	if got.Content.String("title") != "By the Numbers" {
		t.Errorf("title = %q", got.Content.String("title"))
	}
	items := got.Content.Items("stats")
	if len(items) != 1 || items[0]["value"] != "10K+" {
		t.Errorf("stats = %v", items)
	}
}

func TestDeletePageCascadesSections(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	page := createTestPage(t, q, "cascade")
	_, err := q.CreateSection(ctx, CreateSectionParams{
		PageID:      page.ID,
		SectionType: model.SectionHero,
		Content:     model.SectionContent{},
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}

	if err := q.DeletePage(ctx, page.ID); err != nil {
		t.Fatalf("DeletePage: %v", err)
	}
	sections, err := q.ListSectionsByPage(ctx, page.ID)
	if err != nil {
		t.Fatalf("ListSectionsByPage: %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("sections should cascade on page delete, got %d", len(sections))
	}
}

func TestEditorStoreBatchInsert(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	es := NewEditorStore(db)

	page, err := es.InsertPage(ctx, model.ContentPage{Title: "Editor Page", Slug: "editor-page"})
	if err != nil {
		t.Fatalf("InsertPage: %v", err)
	}

	pending := []model.PageSection{
		{ID: model.NewPendingID(), PageID: page.ID, Type: model.SectionHero, Content: model.SectionContent{"title": "A"}, SortOrder: 0, IsActive: true},
		{ID: model.NewPendingID(), PageID: page.ID, Type: model.SectionStats, Content: model.SectionContent{"title": "B"}, SortOrder: 1, IsActive: true},
	}
	inserted, err := es.InsertSections(ctx, pending)
	if err != nil {
		t.Fatalf("InsertSections: %v", err)
	}
	if len(inserted) != 2 {
		t.Fatalf("len(inserted) = %d, want 2", len(inserted))
	}
	for i, sec := range inserted {
		if sec.ID.IsPending() {
			t.Errorf("inserted[%d] still pending", i)
		}
		if sec.Type != pending[i].Type {
			t.Errorf("inserted[%d].Type = %q, want %q (order preserved)", i, sec.Type, pending[i].Type)
		}
	}

	stored, err := es.SectionsForPage(ctx, page.ID)
	if err != nil {
		t.Fatalf("SectionsForPage: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("len(stored) = %d, want 2", len(stored))
	}
}

func TestLeads(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	lead, err := q.CreateLead(ctx, CreateLeadParams{
		ID:      "lead-1",
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Service: "loans",
		Country: "India",
	})
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if lead.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	leads, err := q.ListLeads(ctx, ListLeadsParams{Limit: 10})
	if err != nil {
		t.Fatalf("ListLeads: %v", err)
	}
	if len(leads) != 1 || leads[0].Name != "Asha Rao" {
		t.Errorf("leads = %+v", leads)
	}

	recent, err := q.ListLeadsSince(ctx, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("ListLeadsSince: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("len(recent) = %d, want 1", len(recent))
	}

	count, err := q.CountLeads(ctx)
	if err != nil {
		t.Fatalf("CountLeads: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestEvents(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	err := q.CreateEvent(ctx, CreateEventParams{
		Level:    model.EventLevelWarning,
		Category: model.EventCategoryContent,
		Message:  "slug collision",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	events, err := q.ListEvents(ctx, ListEventsParams{Limit: 10})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Metadata != "{}" {
		t.Errorf("empty meta should default to {}, got %q", events[0].Metadata)
	}

	pruned, err := q.PruneEvents(ctx, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("PruneEvents: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	q := New(db)
	count, err := q.CountPages(ctx)
	if err != nil {
		t.Fatalf("CountPages: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	home, err := q.GetPageBySlug(ctx, "home")
	if err != nil {
		t.Fatalf("GetPageBySlug: %v", err)
	}
	sections, err := q.ListSectionsByPage(ctx, home.ID)
	if err != nil {
		t.Fatalf("ListSectionsByPage: %v", err)
	}
	if len(sections) != 6 {
		t.Errorf("home sections = %d, want 6", len(sections))
	}
}

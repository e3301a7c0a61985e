// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homehni/homehni-web/internal/model"
	"github.com/homehni/homehni-web/internal/notify"
)

// fakeStorage records calls so tests can assert on the exact persistence
// traffic an editing flow produces.
type fakeStorage struct {
	nextPageID    int64
	nextSectionID int64

	sectionsByPage map[int64][]model.PageSection

	insertPageCalls    int
	updatePageCalls    int
	insertSectionCalls int
	insertedSections   []model.PageSection
	failInsertSections bool
	failInsertPage     bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		nextPageID:     100,
		nextSectionID:  500,
		sectionsByPage: make(map[int64][]model.PageSection),
	}
}

func (f *fakeStorage) SectionsForPage(_ context.Context, pageID int64) ([]model.PageSection, error) {
	return f.sectionsByPage[pageID], nil
}

func (f *fakeStorage) InsertPage(_ context.Context, page model.ContentPage) (model.ContentPage, error) {
	f.insertPageCalls++
	if f.failInsertPage {
		return model.ContentPage{}, errors.New("insert failed")
	}
	f.nextPageID++
	page.ID = f.nextPageID
	return page, nil
}

func (f *fakeStorage) UpdatePage(_ context.Context, _ model.ContentPage) error {
	f.updatePageCalls++
	return nil
}

func (f *fakeStorage) InsertSections(_ context.Context, sections []model.PageSection) ([]model.PageSection, error) {
	f.insertSectionCalls++
	if f.failInsertSections {
		return nil, errors.New("insert failed")
	}
	out := make([]model.PageSection, len(sections))
	for i, sec := range sections {
		f.nextSectionID++
		sec.ID = model.PersistedID(f.nextSectionID)
		out[i] = sec
	}
	f.insertedSections = append(f.insertedSections, out...)
	return out, nil
}

func newTestEditor(t *testing.T, opts ...Option) (*Editor, *fakeStorage, *notify.Recorder) {
	t.Helper()
	storage := newFakeStorage()
	recorder := &notify.Recorder{}
	return New(storage, recorder, opts...), storage, recorder
}

func TestSetTitleDerivesSlugWhenEmpty(t *testing.T) {
	e, _, _ := newTestEditor(t)
	e.SetTitle("Luxury Villas")
	assert.Equal(t, "luxury-villas", e.Page().Slug)
}

func TestSetTitleNeverOverwritesManualSlug(t *testing.T) {
	e, _, _ := newTestEditor(t)
	e.SetSlug("custom-slug")
	e.SetTitle("Luxury Villas")
	e.SetTitle("Budget Flats in Pune")
	assert.Equal(t, "custom-slug", e.Page().Slug)
}

func TestAddSectionAppendInvariant(t *testing.T) {
	e, _, _ := newTestEditor(t)

	types := []string{"hero", "stats", "faq", "testimonials", "cta_banner"}
	for _, typ := range types {
		_, err := e.AddSection(typ)
		require.NoError(t, err)
	}

	sections := e.Sections()
	require.Len(t, sections, len(types))
	for i, sec := range sections {
		assert.Equal(t, int64(i), sec.SortOrder, "sort_order at %d", i)
		assert.Equal(t, types[i], sec.Type)
		assert.True(t, sec.ID.IsPending())
		assert.True(t, sec.IsActive)
	}
}

func TestAddSectionUsesCatalogContent(t *testing.T) {
	e, _, _ := newTestEditor(t)

	sec, err := e.AddSection("hero")
	require.NoError(t, err)
	assert.Equal(t, "Find Your Dream Home", sec.Content.String("title"))

	sec, err = e.AddSection("price_table")
	require.NoError(t, err)
	assert.Equal(t, "New price table Section", sec.Content.String("title"))
	assert.Equal(t, "Section description", sec.Content.String("description"))
}

func TestAddSectionRejectsEmptyType(t *testing.T) {
	e, _, recorder := newTestEditor(t)

	_, err := e.AddSection("  ")
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, e.Sections())

	notes := recorder.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.VariantError, notes[0].Variant)
}

func TestRemoveSection(t *testing.T) {
	e, _, _ := newTestEditor(t)
	first, _ := e.AddSection("hero")
	second, _ := e.AddSection("stats")

	require.NoError(t, e.RemoveSection(first.ID))
	sections := e.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, second.ID, sections[0].ID)

	assert.ErrorIs(t, e.RemoveSection(first.ID), ErrSectionNotFound)
}

func TestUpdateSectionReplacesByID(t *testing.T) {
	e, _, _ := newTestEditor(t)
	sec, _ := e.AddSection("hero")

	draft := NewDraft(sec)
	draft.SetField("title", "Own Your Future")
	require.NoError(t, e.UpdateSection(draft.Save()))

	got := e.Sections()[0]
	assert.Equal(t, "Own Your Future", got.Content.String("title"))
	assert.Equal(t, sec.ID, got.ID)
}

func TestSaveValidationGate(t *testing.T) {
	tests := []struct {
		name  string
		title string
		slug  string
	}{
		{name: "empty title", title: "", slug: "luxury-villas"},
		{name: "empty slug", title: "Luxury Villas", slug: ""},
		{name: "both empty", title: "", slug: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, storage, recorder := newTestEditor(t)
			e.page.Title = tt.title
			e.page.Slug = tt.slug

			_, err := e.Save(context.Background())
			require.ErrorIs(t, err, ErrValidation)

			assert.Zero(t, storage.insertPageCalls, "no page insert on validation failure")
			assert.Zero(t, storage.updatePageCalls)
			assert.Zero(t, storage.insertSectionCalls)
			assert.Len(t, recorder.Drain(), 1, "exactly one validation notification")
		})
	}
}

func TestSaveCreateFlow(t *testing.T) {
	var savedPage model.ContentPage
	e, storage, recorder := newTestEditor(t, WithOnSave(func(p model.ContentPage) { savedPage = p }))

	_, err := e.AddSection("hero")
	require.NoError(t, err)
	_, err = e.AddSection("stats")
	require.NoError(t, err)
	e.SetTitle("Luxury Villas")
	assert.Equal(t, "luxury-villas", e.Page().Slug)

	page, err := e.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, storage.insertPageCalls)
	assert.Equal(t, 0, storage.updatePageCalls)
	assert.Equal(t, 1, storage.insertSectionCalls)
	require.Len(t, storage.insertedSections, 2)
	for i, sec := range storage.insertedSections {
		assert.Equal(t, int64(i), sec.SortOrder)
		assert.Equal(t, page.ID, sec.PageID)
	}

	assert.Equal(t, page.ID, savedPage.ID, "onSave received the persisted page")

	notes := recorder.Drain()
	require.Len(t, notes, 2, "page save and section save reported independently")
	assert.Equal(t, notify.VariantSuccess, notes[0].Variant)
	assert.Equal(t, notify.VariantSuccess, notes[1].Variant)

	// The in-memory list now carries persisted IDs; a second save issues no
	// further section inserts.
	for _, sec := range e.Sections() {
		assert.False(t, sec.ID.IsPending())
	}
	_, err = e.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, storage.insertSectionCalls)
	assert.Equal(t, 1, storage.updatePageCalls)
}

func TestSaveFiltersTemporarySections(t *testing.T) {
	e, storage, _ := newTestEditor(t)

	existing := &model.ContentPage{ID: 42, Title: "Services", Slug: "services"}
	storage.sectionsByPage[42] = []model.PageSection{
		{ID: model.PersistedID(1), PageID: 42, Type: "hero", SortOrder: 0, IsActive: true},
		{ID: model.PersistedID(2), PageID: 42, Type: "stats", SortOrder: 1, IsActive: true},
	}
	require.NoError(t, e.Initialize(context.Background(), existing, false))

	// Append two new sections after the persisted ones.
	_, err := e.AddSection("faq")
	require.NoError(t, err)
	_, err = e.AddSection("cta_banner")
	require.NoError(t, err)

	_, err = e.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, storage.updatePageCalls)
	assert.Equal(t, 0, storage.insertPageCalls)

	// Only the two temporary sections are inserted, re-sequenced over the
	// filtered subset, not over the full list.
	require.Len(t, storage.insertedSections, 2)
	assert.Equal(t, "faq", storage.insertedSections[0].Type)
	assert.Equal(t, int64(0), storage.insertedSections[0].SortOrder)
	assert.Equal(t, "cta_banner", storage.insertedSections[1].Type)
	assert.Equal(t, int64(1), storage.insertedSections[1].SortOrder)
}

func TestSaveWithNoTemporarySectionsSkipsInsert(t *testing.T) {
	e, storage, _ := newTestEditor(t)

	existing := &model.ContentPage{ID: 7, Title: "About", Slug: "about"}
	storage.sectionsByPage[7] = []model.PageSection{
		{ID: model.PersistedID(1), PageID: 7, Type: "hero", SortOrder: 0, IsActive: true},
		{ID: model.PersistedID(2), PageID: 7, Type: "content_block", SortOrder: 1, IsActive: true},
		{ID: model.PersistedID(3), PageID: 7, Type: "faq", SortOrder: 2, IsActive: true},
	}
	require.NoError(t, e.Initialize(context.Background(), existing, false))

	// Delete the middle section and save without adding anything.
	require.NoError(t, e.RemoveSection(model.PersistedID(2)))
	_, err := e.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, storage.updatePageCalls)
	assert.Equal(t, 0, storage.insertSectionCalls, "no section insert when nothing is pending")
}

func TestSaveSectionFailureKeepsPageSave(t *testing.T) {
	e, storage, recorder := newTestEditor(t)
	storage.failInsertSections = true

	_, err := e.AddSection("hero")
	require.NoError(t, err)
	e.SetTitle("Luxury Villas")

	page, err := e.Save(context.Background())
	require.NoError(t, err, "section failure does not fail the save")
	assert.NotZero(t, page.ID)

	notes := recorder.Drain()
	require.Len(t, notes, 2)
	assert.Equal(t, notify.VariantSuccess, notes[0].Variant)
	assert.Equal(t, notify.VariantError, notes[1].Variant)

	// The section stays pending so a retry can pick it up.
	assert.True(t, e.Sections()[0].ID.IsPending())
}

func TestInitializeCreatingPreservesSections(t *testing.T) {
	e, _, _ := newTestEditor(t)

	_, err := e.AddSection("hero")
	require.NoError(t, err)
	e.SetTitle("Scratch Title")

	// Re-initializing in creation mode resets page fields but keeps the
	// accumulated sections: metadata can come after section assembly.
	require.NoError(t, e.Initialize(context.Background(), nil, true))
	assert.Empty(t, e.Page().Title)
	assert.Empty(t, e.Page().Slug)
	assert.Len(t, e.Sections(), 1)
}

func TestOnSectionsUpdateFires(t *testing.T) {
	var updates int
	e, _, _ := newTestEditor(t, WithOnSectionsUpdate(func(sections []model.PageSection) {
		updates++
	}))

	_, err := e.AddSection("hero")
	require.NoError(t, err)
	sec := e.Sections()[0]
	require.NoError(t, e.RemoveSection(sec.ID))

	assert.Equal(t, 2, updates)
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/homehni/homehni-web/internal/model"
)

// EditorStore adapts the query layer to the page editor's storage contract.
// Section batches run in one transaction so a partial insert never leaves a
// page with a gap in its new sections.
type EditorStore struct {
	db      *sql.DB
	queries *Queries
}

// NewEditorStore returns an EditorStore over db.
func NewEditorStore(db *sql.DB) *EditorStore {
	return &EditorStore{db: db, queries: New(db)}
}

// SectionsForPage returns a page's sections ordered by sort_order ascending.
func (s *EditorStore) SectionsForPage(ctx context.Context, pageID int64) ([]model.PageSection, error) {
	return s.queries.ListSectionsByPage(ctx, pageID)
}

// InsertPage persists a new page and returns it with its assigned ID.
func (s *EditorStore) InsertPage(ctx context.Context, page model.ContentPage) (model.ContentPage, error) {
	return s.queries.CreatePage(ctx, CreatePageParams{
		Title:           page.Title,
		Slug:            page.Slug,
		Description:     page.Description,
		MetaTitle:       page.MetaTitle,
		MetaDescription: page.MetaDescription,
		MetaKeywords:    page.MetaKeywords,
		IsPublished:     page.IsPublished,
		ScheduledAt:     page.ScheduledAt,
	})
}

// UpdatePage updates an existing page keyed by its ID.
func (s *EditorStore) UpdatePage(ctx context.Context, page model.ContentPage) error {
	return s.queries.UpdatePage(ctx, UpdatePageParams{
		ID:              page.ID,
		Title:           page.Title,
		Slug:            page.Slug,
		Description:     page.Description,
		MetaTitle:       page.MetaTitle,
		MetaDescription: page.MetaDescription,
		MetaKeywords:    page.MetaKeywords,
		IsPublished:     page.IsPublished,
		ScheduledAt:     page.ScheduledAt,
	})
}

// InsertSections batch-inserts sections in one transaction and returns them
// with assigned IDs, preserving input order.
func (s *EditorStore) InsertSections(ctx context.Context, sections []model.PageSection) ([]model.PageSection, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)
	out := make([]model.PageSection, 0, len(sections))
	for _, section := range sections {
		inserted, err := qtx.CreateSection(ctx, CreateSectionParams{
			PageID:      section.PageID,
			SectionType: section.Type,
			Content:     section.Content,
			SortOrder:   section.SortOrder,
			IsActive:    section.IsActive,
		})
		if err != nil {
			return nil, fmt.Errorf("inserting %s section: %w", section.Type, err)
		}
		out = append(out, inserted)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing sections: %w", err)
	}
	return out, nil
}

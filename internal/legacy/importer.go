// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/homehni/homehni-web/internal/model"
	"github.com/homehni/homehni-web/internal/store"
	"github.com/homehni/homehni-web/internal/util"
)

// ImportOptions controls the import run.
type ImportOptions struct {
	TablePrefix  string
	SkipExisting bool // Skip pages whose slug already exists
	DryRun       bool // Read and report without writing
}

// ImportResult summarizes what an import run did.
type ImportResult struct {
	PagesImported int
	PagesSkipped  int
	Errors        []string
}

// HasErrors returns true if there were any errors during import.
func (r *ImportResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Importer copies pages from the legacy site into the content store. Each
// legacy page becomes a page with a single content_block section holding the
// old HTML body.
type Importer struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewImporter creates an importer writing into the given database.
func NewImporter(db *sql.DB, logger *slog.Logger) *Importer {
	return &Importer{db: db, logger: logger}
}

// Run performs the import.
func (imp *Importer) Run(ctx context.Context, dsn string, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	reader, err := NewReader(dsn, opts.TablePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to legacy database: %w", err)
	}
	defer reader.Close()

	pages, err := reader.GetPages()
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy pages: %w", err)
	}

	imp.logger.Info("legacy import started", "pages", len(pages), "dry_run", opts.DryRun)

	queries := store.New(imp.db)
	for _, legacyPage := range pages {
		if err := imp.importPage(ctx, queries, legacyPage, opts, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("page %q: %v", legacyPage.Slug, err))
			imp.logger.Error("failed to import legacy page", "slug", legacyPage.Slug, "error", err)
		}
	}

	imp.logger.Info("legacy import finished",
		"imported", result.PagesImported,
		"skipped", result.PagesSkipped,
		"errors", len(result.Errors),
	)
	return result, nil
}

// importPage converts and stores one legacy page.
func (imp *Importer) importPage(ctx context.Context, queries *store.Queries, legacyPage LegacyPage, opts ImportOptions, result *ImportResult) error {
	slug := legacyPage.Slug
	if slug == "" {
		slug = util.Slugify(legacyPage.Title)
	}

	exists, err := queries.SlugExists(ctx, slug)
	if err != nil {
		return fmt.Errorf("checking slug: %w", err)
	}
	if exists {
		if opts.SkipExisting {
			result.PagesSkipped++
			return nil
		}
		return fmt.Errorf("slug already exists")
	}

	if opts.DryRun {
		result.PagesImported++
		return nil
	}

	page, err := queries.CreatePage(ctx, store.CreatePageParams{
		Title:           legacyPage.Title,
		Slug:            slug,
		MetaTitle:       legacyPage.MetaTitle.String,
		MetaDescription: legacyPage.MetaDescription.String,
		MetaKeywords:    splitKeywords(legacyPage.MetaKeywords.String),
		IsPublished:     legacyPage.Published,
	})
	if err != nil {
		return fmt.Errorf("creating page: %w", err)
	}

	body := strings.TrimSpace(legacyPage.Body)
	if body == "" {
		result.PagesImported++
		return nil
	}

	_, err = queries.CreateSection(ctx, store.CreateSectionParams{
		PageID:      page.ID,
		SectionType: model.SectionContentBlock,
		Content: model.SectionContent{
			"title": legacyPage.Title,
			"body":  body,
		},
		SortOrder: 0,
		IsActive:  true,
	})
	if err != nil {
		return fmt.Errorf("creating body section: %w", err)
	}

	result.PagesImported++
	return nil
}

// splitKeywords turns the legacy comma-separated keywords column into a slice.
func splitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

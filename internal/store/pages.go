package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/homehni/homehni-web/internal/model"
)

const createPage = `
INSERT INTO pages (title, slug, description, meta_title, meta_description, meta_keywords, is_published, scheduled_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, slug, description, meta_title, meta_description, meta_keywords, is_published, scheduled_at, created_at, updated_at
`

// CreatePageParams holds the fields for CreatePage.
type CreatePageParams struct {
	Title           string
	Slug            string
	Description     string
	MetaTitle       string
	MetaDescription string
	MetaKeywords    []string
	IsPublished     bool
	ScheduledAt     sql.NullTime
}

// CreatePage inserts a page and returns the stored row.
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (model.ContentPage, error) {
	keywords, err := marshalKeywords(arg.MetaKeywords)
	if err != nil {
		return model.ContentPage{}, err
	}
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, createPage,
		arg.Title,
		arg.Slug,
		arg.Description,
		arg.MetaTitle,
		arg.MetaDescription,
		keywords,
		arg.IsPublished,
		arg.ScheduledAt,
		now,
		now,
	)
	return scanPage(row)
}

const updatePage = `
UPDATE pages
SET title = ?, slug = ?, description = ?, meta_title = ?, meta_description = ?, meta_keywords = ?, is_published = ?, scheduled_at = ?, updated_at = ?
WHERE id = ?
`

// UpdatePageParams holds the fields for UpdatePage.
type UpdatePageParams struct {
	ID              int64
	Title           string
	Slug            string
	Description     string
	MetaTitle       string
	MetaDescription string
	MetaKeywords    []string
	IsPublished     bool
	ScheduledAt     sql.NullTime
}

// UpdatePage updates a page keyed by ID.
func (q *Queries) UpdatePage(ctx context.Context, arg UpdatePageParams) error {
	keywords, err := marshalKeywords(arg.MetaKeywords)
	if err != nil {
		return err
	}
	result, err := q.db.ExecContext(ctx, updatePage,
		arg.Title,
		arg.Slug,
		arg.Description,
		arg.MetaTitle,
		arg.MetaDescription,
		keywords,
		arg.IsPublished,
		arg.ScheduledAt,
		time.Now().UTC(),
		arg.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const getPageByID = `
SELECT id, title, slug, description, meta_title, meta_description, meta_keywords, is_published, scheduled_at, created_at, updated_at
FROM pages WHERE id = ?
`

// GetPageByID returns the page with the given ID.
func (q *Queries) GetPageByID(ctx context.Context, id int64) (model.ContentPage, error) {
	return scanPage(q.db.QueryRowContext(ctx, getPageByID, id))
}

const getPageBySlug = `
SELECT id, title, slug, description, meta_title, meta_description, meta_keywords, is_published, scheduled_at, created_at, updated_at
FROM pages WHERE slug = ?
`

// GetPageBySlug returns the page with the given slug.
func (q *Queries) GetPageBySlug(ctx context.Context, slug string) (model.ContentPage, error) {
	return scanPage(q.db.QueryRowContext(ctx, getPageBySlug, slug))
}

const listPages = `
SELECT id, title, slug, description, meta_title, meta_description, meta_keywords, is_published, scheduled_at, created_at, updated_at
FROM pages ORDER BY updated_at DESC LIMIT ? OFFSET ?
`

// ListPagesParams holds pagination for ListPages.
type ListPagesParams struct {
	Limit  int64
	Offset int64
}

// ListPages returns pages ordered by most recently updated.
func (q *Queries) ListPages(ctx context.Context, arg ListPagesParams) ([]model.ContentPage, error) {
	rows, err := q.db.QueryContext(ctx, listPages, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPages(rows)
}

const listPublishedPages = `
SELECT id, title, slug, description, meta_title, meta_description, meta_keywords, is_published, scheduled_at, created_at, updated_at
FROM pages WHERE is_published = 1 ORDER BY title
`

// ListPublishedPages returns all published pages.
func (q *Queries) ListPublishedPages(ctx context.Context) ([]model.ContentPage, error) {
	rows, err := q.db.QueryContext(ctx, listPublishedPages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPages(rows)
}

const countPages = `SELECT COUNT(*) FROM pages`

// CountPages returns the total number of pages.
func (q *Queries) CountPages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPages).Scan(&count)
	return count, err
}

const slugExists = `SELECT EXISTS(SELECT 1 FROM pages WHERE slug = ?)`

// SlugExists reports whether any page uses the slug.
func (q *Queries) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, slugExists, slug).Scan(&exists)
	return exists, err
}

const slugExistsExcluding = `SELECT EXISTS(SELECT 1 FROM pages WHERE slug = ? AND id != ?)`

// SlugExistsExcludingParams holds the fields for SlugExistsExcluding.
type SlugExistsExcludingParams struct {
	Slug string
	ID   int64
}

// SlugExistsExcluding reports whether another page uses the slug.
func (q *Queries) SlugExistsExcluding(ctx context.Context, arg SlugExistsExcludingParams) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, slugExistsExcluding, arg.Slug, arg.ID).Scan(&exists)
	return exists, err
}

const deletePage = `DELETE FROM pages WHERE id = ?`

// DeletePage removes a page; its sections cascade.
func (q *Queries) DeletePage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePage, id)
	return err
}

const publishDuePages = `
UPDATE pages
SET is_published = 1, scheduled_at = NULL, updated_at = ?
WHERE is_published = 0 AND scheduled_at IS NOT NULL AND scheduled_at <= ?
`

// PublishDuePages flips unpublished pages whose schedule has passed and
// returns how many were published.
func (q *Queries) PublishDuePages(ctx context.Context, now time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, publishDuePages, now.UTC(), now.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func marshalKeywords(keywords []string) (string, error) {
	if keywords == nil {
		keywords = []string{}
	}
	data, err := json.Marshal(keywords)
	if err != nil {
		return "", fmt.Errorf("marshaling keywords: %w", err)
	}
	return string(data), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (model.ContentPage, error) {
	var (
		page     model.ContentPage
		keywords string
	)
	err := row.Scan(
		&page.ID,
		&page.Title,
		&page.Slug,
		&page.Description,
		&page.MetaTitle,
		&page.MetaDescription,
		&keywords,
		&page.IsPublished,
		&page.ScheduledAt,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err != nil {
		return model.ContentPage{}, err
	}
	if err := json.Unmarshal([]byte(keywords), &page.MetaKeywords); err != nil {
		return model.ContentPage{}, fmt.Errorf("unmarshaling keywords for page %d: %w", page.ID, err)
	}
	return page, nil
}

func scanPages(rows *sql.Rows) ([]model.ContentPage, error) {
	var pages []model.ContentPage
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}
